// Package fake provides a canned codesearch.Client for unit tests.
package fake

import (
	"context"
	"fmt"

	"github.com/greyflux/greymcp/pkg/adapters/codesearch"
)

// Client returns deterministic canned results. Total controls the
// reported total count independently of how many items exist; Err, when
// set, is returned from every Search call.
type Client struct {
	Total int
	Items []codesearch.Item
	Err   error

	// Calls records the queries and limits seen, for assertions.
	Calls []Call
}

// Call is one recorded Search invocation.
type Call struct {
	Query string
	Limit int
}

// New returns a fake with n generated items and a matching total.
func New(n int) *Client {
	c := &Client{Total: n}
	for i := 0; i < n; i++ {
		c.Items = append(c.Items, codesearch.Item{
			Name:       fmt.Sprintf("script%d.src", i),
			Path:       fmt.Sprintf("src/script%d.src", i),
			Repository: "example/greyhack-scripts",
			URL:        fmt.Sprintf("https://example.test/script%d", i),
			Content:    fmt.Sprintf("// fragment %d", i),
		})
	}
	return c
}

func (c *Client) Name() string { return "fake" }

func (c *Client) Search(ctx context.Context, query string, limit int) (*codesearch.ResultSet, error) {
	c.Calls = append(c.Calls, Call{Query: query, Limit: limit})
	if c.Err != nil {
		return nil, c.Err
	}
	// Returns every item regardless of limit, so callers' own truncation
	// is exercised.
	return &codesearch.ResultSet{TotalCount: c.Total, Items: c.Items}, nil
}
