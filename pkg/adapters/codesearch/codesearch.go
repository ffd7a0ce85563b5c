// Package codesearch defines the upstream code-search contract consumed
// by the search tool.
package codesearch

import "context"

// Item is one search hit, already mapped to the fixed output shape.
type Item struct {
	// Name is the file name.
	Name string `json:"name"`
	// Path is the file path inside the repository.
	Path string `json:"path"`
	// Repository identifies the source repository (owner/name).
	Repository string `json:"repository"`
	// URL is the canonical browse URL of the hit.
	URL string `json:"url"`
	// Content holds inline matched fragments, when the provider returns
	// them. Optional.
	Content string `json:"content,omitempty"`
}

// ResultSet is one provider response. TotalCount is the provider's
// reported total, which may exceed len(Items).
type ResultSet struct {
	TotalCount int
	Items      []Item
}

// Client searches an external code-search provider.
//
// Implementations must honor ctx on all network operations and should
// surface missing credentials before attempting any call.
type Client interface {
	// Name returns a short provider name (e.g., "github").
	Name() string
	// Search returns up to limit items matching the free-text query.
	Search(ctx context.Context, query string, limit int) (*ResultSet, error)
}
