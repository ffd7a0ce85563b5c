// Package tools defines the four GreyScript tool definitions served by
// the process: code search, the stub transpiler, the API validator and
// template generation.
package tools

import (
	"context"

	"github.com/greyflux/greymcp/pkg/adapters/codesearch"
	"github.com/greyflux/greymcp/pkg/tool"
)

const defaultMaxResults = 5

// Search builds the greyscript_search definition over the given
// code-search client.
func Search(client codesearch.Client) tool.Definition {
	return tool.Definition{
		Name:        "greyscript_search",
		Description: "Search GitHub for GreyScript code examples",
		Params: []tool.Param{
			{Name: "query", Type: tool.ParamString, Required: true,
				Description: "Free-text search query"},
			{Name: "max_results", Type: tool.ParamInteger, Default: defaultMaxResults,
				Description: "Maximum number of results to return"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			query, _ := args["query"].(string)
			max := defaultMaxResults
			if v, ok := args["max_results"].(int); ok && v > 0 {
				max = v
			}

			rs, err := client.Search(ctx, query, max)
			if err != nil {
				return nil, err
			}

			items := rs.Items
			if len(items) > max {
				items = items[:max]
			}
			results := make([]map[string]any, 0, len(items))
			for _, it := range items {
				m := map[string]any{
					"name":       it.Name,
					"path":       it.Path,
					"repository": it.Repository,
					"url":        it.URL,
				}
				if it.Content != "" {
					m["content"] = it.Content
				}
				results = append(results, m)
			}

			// total_count reflects the upstream total, not len(results).
			return map[string]any{
				"query":       query,
				"total_count": rs.TotalCount,
				"results":     results,
			}, nil
		},
	}
}
