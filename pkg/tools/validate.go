package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/greyflux/greymcp/pkg/greyscript"
	"github.com/greyflux/greymcp/pkg/tool"
)

// Validate builds the greyscript_validate definition: a substring scan of
// the source against the fixed API allow-list, with deprecation warnings
// for the target version and errors for removed symbols.
func Validate() tool.Definition {
	return tool.Definition{
		Name:        "greyscript_validate",
		Description: "Check GreyScript source against the known API surface for a game version",
		Params: []tool.Param{
			{Name: "code", Type: tool.ParamString, Required: true,
				Description: "GreyScript source text"},
			{Name: "version", Type: tool.ParamString, Default: greyscript.LatestVersion,
				Description: "Target game version"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			code, _ := args["code"].(string)
			version, _ := args["version"].(string)
			if version == "" {
				version = greyscript.LatestVersion
			}

			apiCalls := greyscript.DetectAPICalls(code)

			var warnings []string
			for _, dep := range greyscript.Deprecations {
				if !strings.Contains(code, dep.Name) {
					continue
				}
				if greyscript.VersionAtLeast(version, dep.Since) {
					warnings = append(warnings,
						fmt.Sprintf("%s is deprecated since %s; use %s", dep.Name, dep.Since, dep.Replacement))
				}
			}

			var errs []string
			for _, rm := range greyscript.DetectRemoved(code) {
				errs = append(errs,
					fmt.Sprintf("%s is not a known API; use %s", rm.Old, rm.Replacement))
			}

			report := map[string]any{
				"valid":     len(warnings) == 0 && len(errs) == 0,
				"version":   version,
				"api_calls": asAny(apiCalls),
				"warnings":  asAny(warnings),
				"errors":    asAny(errs),
			}
			return report, nil
		},
	}
}

// asAny keeps report lists JSON-friendly and never nil.
func asAny(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}
