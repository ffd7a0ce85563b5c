// Package github implements codesearch.Client against the GitHub REST
// code-search endpoint.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/greyflux/greymcp/pkg/adapters/codesearch"
	"github.com/greyflux/greymcp/pkg/errmodel"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 10 * time.Second
	// GitHub's linguist classifies GreyScript sources as MiniScript.
	languageQualifier = "language:MiniScript"
	// Media type that adds matched text fragments to each item.
	acceptTextMatch = "application/vnd.github.text-match+json"
	apiVersion      = "2022-11-28"
	maxPerPage      = 100
)

// Client searches GitHub code. The zero value is not usable; use New.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (tests, GitHub Enterprise).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New returns a GitHub code-search client. token may be empty; Search
// then fails with an unauthenticated error before any network call.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Name() string { return "github" }

// Search queries the code-search endpoint, scoped to the GreyScript
// language, and maps each hit to the fixed item shape. One request only;
// pagination and rate-limit handling are out of scope.
func (c *Client) Search(ctx context.Context, query string, limit int) (*codesearch.ResultSet, error) {
	if c.token == "" {
		return nil, errmodel.Policy(errmodel.CodeUnauthenticated,
			"GITHUB_TOKEN is not set; code search requires an authenticated GitHub API call", nil)
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > maxPerPage {
		limit = maxPerPage
	}

	q := url.Values{}
	q.Set("q", query+" "+languageQualifier)
	q.Set("per_page", fmt.Sprintf("%d", limit))
	reqURL := c.baseURL + "/search/code?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errmodel.System("bad_request", "building search request failed", nil, err)
	}
	req.Header.Set("Accept", acceptTextMatch)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errmodel.Network(errmodel.CodeUpstream, "github code search request failed",
			map[string]any{"query": query}, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return nil, errmodel.Policy(errmodel.CodeUnauthenticated,
			fmt.Sprintf("github rejected the credential (status %d)", res.StatusCode), nil)
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, errmodel.Network(errmodel.CodeUpstream,
			fmt.Sprintf("github code search returned status %d", res.StatusCode),
			map[string]any{"body": string(body)}, nil)
	}

	var payload searchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, errmodel.Network(errmodel.CodeUpstream, "decoding github response failed", nil, err)
	}

	out := &codesearch.ResultSet{TotalCount: payload.TotalCount}
	for _, it := range payload.Items {
		out.Items = append(out.Items, codesearch.Item{
			Name:       it.Name,
			Path:       it.Path,
			Repository: it.Repository.FullName,
			URL:        it.HTMLURL,
			Content:    joinFragments(it.TextMatches),
		})
	}
	return out, nil
}

type searchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []searchItem `json:"items"`
}

type searchItem struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	HTMLURL    string `json:"html_url"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
	TextMatches []textMatch `json:"text_matches"`
}

type textMatch struct {
	Fragment string `json:"fragment"`
}

func joinFragments(matches []textMatch) string {
	if len(matches) == 0 {
		return ""
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m.Fragment)
	}
	return strings.Join(parts, "\n...\n")
}
