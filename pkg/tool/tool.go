// Package tool implements the registry and dispatch contract: named tools
// with declarative parameter specs, routed invocations, and a result that
// is always exactly one of success or failure.
package tool

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// ParamType is the type tag of a declared parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
	ParamBoolean ParamType = "boolean"
)

// Param declares one accepted field of a tool. It is data, not code:
// callers can introspect the full contract before invoking.
type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required,omitempty"`
	// Default is filled in for absent optional fields before invocation.
	Default any `json:"default,omitempty"`
	// Enum restricts a string parameter to a fixed set of values,
	// enforced at dispatch and surfaced in the derived schema.
	Enum []string `json:"enum,omitempty"`
}

// Handler implements a tool's behavior. Args have been validated and
// defaulted against the declared parameters; undeclared fields pass
// through untouched.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

// Definition declares the static interface of a tool plus its handler.
type Definition struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// InputSchema derives a JSON Schema (draft 2020-12) from the declared
// parameters, for discovery by protocol clients. additionalProperties is
// left open because the dispatch contract passes extra fields through.
func (d Definition) InputSchema() *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(d.Params))
	var required []string
	for _, p := range d.Params {
		ps := &jsonschema.Schema{
			Type:        string(p.Type),
			Description: p.Description,
		}
		if p.Default != nil {
			if raw, err := json.Marshal(p.Default); err == nil {
				ps.Default = json.RawMessage(raw)
			}
		}
		if len(p.Enum) > 0 {
			ps.Enum = make([]any, 0, len(p.Enum))
			for _, v := range p.Enum {
				ps.Enum = append(ps.Enum, v)
			}
		}
		props[p.Name] = ps
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// Param returns the declared parameter by name.
func (d Definition) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
