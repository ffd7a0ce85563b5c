package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/greyflux/greymcp/pkg/errmodel"
	"github.com/greyflux/greymcp/pkg/greyscript"
	"github.com/greyflux/greymcp/pkg/tool"
)

// Generate builds the greyscript_generate definition: fixed script
// templates with the game version (and, for custom, a description)
// interpolated. Output is byte-identical for identical parameters.
func Generate() tool.Definition {
	types := greyscript.ScriptTypes()
	return tool.Definition{
		Name: "greyscript_generate",
		Description: fmt.Sprintf("Generate a GreyScript template (%s)",
			strings.Join(types, ", ")),
		Params: []tool.Param{
			{Name: "script_type", Type: tool.ParamString, Required: true, Enum: types,
				Description: "Which template to generate"},
			{Name: "custom_description", Type: tool.ParamString,
				Description: "Description line for the custom template"},
			{Name: "game_version", Type: tool.ParamString, Default: greyscript.LatestVersion,
				Description: "Game version the script targets"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			scriptType, _ := args["script_type"].(string)
			version, _ := args["game_version"].(string)
			if version == "" {
				version = greyscript.LatestVersion
			}
			description, _ := args["custom_description"].(string)

			code, ok := greyscript.Template(scriptType, version, description)
			if !ok {
				return nil, errmodel.Validation(errmodel.CodeInvalidScriptType,
					fmt.Sprintf("script_type %q is not one of: %s", scriptType, strings.Join(types, ", ")),
					map[string]any{"script_type": scriptType})
			}
			return map[string]any{
				"script_type":  scriptType,
				"game_version": version,
				"code":         code,
			}, nil
		},
	}
}
