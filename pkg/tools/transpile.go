package tools

import (
	"context"
	"fmt"

	"github.com/greyflux/greymcp/pkg/tool"
)

// Transpile builds the greyscript_transpile definition. Transpilation has
// no real implementation; the handler is an explicit not-yet-implemented
// capability returning a deterministic placeholder annotated with the
// input's length.
func Transpile() tool.Definition {
	return tool.Definition{
		Name:        "greyscript_transpile",
		Description: "Transpile GreyScript source (not yet implemented; returns a placeholder)",
		Params: []tool.Param{
			{Name: "code", Type: tool.ParamString, Required: true,
				Description: "GreyScript source text"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			code, _ := args["code"].(string)
			return map[string]any{
				"status":        "not_implemented",
				"source_length": len(code),
				"message": fmt.Sprintf(
					"transpilation is not implemented yet; received %d bytes of source", len(code)),
			}, nil
		},
	}
}
