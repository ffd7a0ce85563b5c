package tool

import (
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/greyflux/greymcp/pkg/errmodel"
)

// Registry holds tool definitions by name. It is built once at startup
// and read-only afterwards; the lock exists because protocol sessions may
// list tools concurrently with late registration in tests.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Definition
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Definition{}}
}

// Register inserts a definition. The first registration of a name wins;
// a second one fails and leaves the registry unchanged.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return errmodel.Validation("empty_name", "tool name is empty", nil)
	}
	if def.Handler == nil {
		return errmodel.Validation("nil_handler", fmt.Sprintf("tool %q has no handler", def.Name), nil)
	}
	if err := compileInputSchema(def); err != nil {
		return errmodel.Validation("bad_schema", fmt.Sprintf("tool %q has an invalid parameter schema", def.Name),
			map[string]any{"tool": def.Name, "error": err.Error()})
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[def.Name]; exists {
		return errmodel.Validation(errmodel.CodeDuplicateName,
			fmt.Sprintf("tool %q already registered", def.Name),
			map[string]any{"tool": def.Name})
	}
	r.byName[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Resolve returns a definition by name.
func (r *Registry) Resolve(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.byName[name]
	return def, ok
}

// List returns all definitions in registration order.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// compileInputSchema compiles the derived schema so that a malformed
// definition fails at registration, not at first dispatch.
func compileInputSchema(def Definition) error {
	b, err := json.Marshal(def.InputSchema())
	if err != nil {
		return err
	}
	c := jsonschema.NewCompiler()
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	if err := c.AddResource("mem://schema.json", doc); err != nil {
		return err
	}
	_, err = c.Compile("mem://schema.json")
	return err
}
