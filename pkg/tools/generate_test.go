package tools

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/greyflux/greymcp/pkg/errmodel"
	"github.com/greyflux/greymcp/pkg/greyscript"
	"github.com/greyflux/greymcp/pkg/tool"
)

func TestGeneratePortScanner(t *testing.T) {
	d := dispatcherWith(t, Generate())
	res := d.Dispatch(context.Background(), tool.Request{
		Tool: "greyscript_generate",
		Args: map[string]any{"script_type": "port_scanner", "game_version": "0.9.0"},
	})
	if !res.OK() {
		t.Fatalf("failure: %v", res.Failure)
	}
	code := res.Output["code"].(string)
	if !strings.Contains(code, "0.9.0") {
		t.Fatalf("version not interpolated:\n%s", code)
	}
}

func TestGenerateCustomWithoutDescription(t *testing.T) {
	d := dispatcherWith(t, Generate())
	res := d.Dispatch(context.Background(), tool.Request{
		Tool: "greyscript_generate",
		Args: map[string]any{"script_type": "custom"},
	})
	if !res.OK() {
		t.Fatalf("failure: %v", res.Failure)
	}
	code := res.Output["code"].(string)
	if !strings.Contains(code, greyscript.NoDescription) {
		t.Fatalf("missing default description line:\n%s", code)
	}
	// The version default is also applied.
	if res.Output["game_version"] != greyscript.LatestVersion {
		t.Fatalf("game_version=%v", res.Output["game_version"])
	}
}

func TestGenerateInvalidScriptType(t *testing.T) {
	// Dispatched calls are stopped by the declared enum.
	d := dispatcherWith(t, Generate())
	res := d.Dispatch(context.Background(), tool.Request{
		Tool: "greyscript_generate",
		Args: map[string]any{"script_type": "worm"},
	})
	if res.OK() {
		t.Fatal("expected failure")
	}
	if res.Failure.Code != errmodel.CodeInvalidEnum {
		t.Fatalf("code=%s", res.Failure.Code)
	}

	// Direct handler calls hit the handler's own guard.
	_, err := Generate().Handler(context.Background(), map[string]any{"script_type": "worm"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errmodel.IsCode(err, errmodel.CodeInvalidScriptType) {
		t.Fatalf("code=%s", errmodel.From(err).Code)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	d := dispatcherWith(t, Generate())
	args := map[string]any{"script_type": "password_cracker", "game_version": "0.8.5"}
	a := d.Dispatch(context.Background(), tool.Request{Tool: "greyscript_generate", Args: args})
	b := d.Dispatch(context.Background(), tool.Request{Tool: "greyscript_generate", Args: args})
	if !a.OK() || !b.OK() {
		t.Fatalf("failures: %v %v", a.Failure, b.Failure)
	}
	if !reflect.DeepEqual(a.Output, b.Output) {
		t.Fatal("repeated invocation produced different output")
	}
}

func TestGenerateDeclaresEnum(t *testing.T) {
	def := Generate()
	p, ok := def.Param("script_type")
	if !ok {
		t.Fatal("script_type not declared")
	}
	if len(p.Enum) != 4 {
		t.Fatalf("enum=%v", p.Enum)
	}
}
