package tool

import (
	"context"
	"testing"

	"github.com/greyflux/greymcp/pkg/errmodel"
)

func echoDef(name string) Definition {
	return Definition{
		Name:        name,
		Description: "echoes a message",
		Params: []Param{
			{Name: "msg", Type: ParamString, Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"echo": args["msg"]}, nil
		},
	}
}

func TestRegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(echoDef("echo")); err != nil {
		t.Fatal(err)
	}
	def, ok := reg.Resolve("echo")
	if !ok || def.Name != "echo" {
		t.Fatalf("resolve failed: %v %v", def, ok)
	}
	if _, ok := reg.Resolve("missing"); ok {
		t.Fatal("resolved a tool that was never registered")
	}
}

func TestRegisterDuplicateKeepsFirst(t *testing.T) {
	reg := NewRegistry()
	first := echoDef("echo")
	first.Description = "first"
	if err := reg.Register(first); err != nil {
		t.Fatal(err)
	}
	second := echoDef("echo")
	second.Description = "second"
	err := reg.Register(second)
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
	if !errmodel.IsCode(err, errmodel.CodeDuplicateName) {
		t.Fatalf("code=%v", errmodel.From(err).Code)
	}
	def, _ := reg.Resolve("echo")
	if def.Description != "first" {
		t.Fatalf("registry did not retain the first registration: %q", def.Description)
	}
}

func TestRegisterRejectsBadDefinitions(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Definition{Name: "", Handler: echoDef("x").Handler}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := reg.Register(Definition{Name: "nohandler"}); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	names := []string{"charlie", "alpha", "bravo"}
	for _, n := range names {
		if err := reg.Register(echoDef(n)); err != nil {
			t.Fatal(err)
		}
	}
	defs := reg.List()
	if len(defs) != len(names) {
		t.Fatalf("len=%d", len(defs))
	}
	for i, n := range names {
		if defs[i].Name != n {
			t.Fatalf("order[%d]=%s want %s", i, defs[i].Name, n)
		}
	}
}
