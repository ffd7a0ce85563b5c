package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/greyflux/greymcp/pkg/errmodel"
)

// Request is a single invocation: a tool name plus a parameter mapping.
type Request struct {
	Tool string
	Args map[string]any
}

// Result is exactly one of success (Output set) or failure (Failure set).
// Dispatch always returns one of the two, never both and never neither.
type Result struct {
	Output  map[string]any
	Failure *errmodel.Error
}

// OK reports whether the result is a success.
func (r Result) OK() bool { return r.Failure == nil }

// Dispatcher validates and routes invocation requests against a registry.
// It holds no per-invocation state.
type Dispatcher struct {
	reg    *Registry
	log    *slog.Logger
	tracer trace.Tracer
}

// NewDispatcher returns a dispatcher over reg. A nil logger falls back to
// slog.Default().
func NewDispatcher(reg *Registry, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		reg:    reg,
		log:    log,
		tracer: otel.Tracer("greymcp/tool"),
	}
}

// Dispatch resolves the tool, validates and defaults the arguments,
// invokes the handler, and wraps any fault — returned or panicked — into
// a failure result. It never lets an error escape past this boundary.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	ctx, span := d.tracer.Start(ctx, "tool.dispatch",
		trace.WithAttributes(attribute.String("tool.name", req.Tool)))
	defer span.End()

	id := uuid.NewString()
	span.SetAttributes(attribute.String("invocation.id", id))
	log := d.log.With("tool", req.Tool, "invocation_id", id)

	def, ok := d.reg.Resolve(req.Tool)
	if !ok {
		return d.fail(ctx, span, log, errmodel.Validation(errmodel.CodeUnknownTool,
			fmt.Sprintf("tool %q is not registered", req.Tool),
			map[string]any{"tool": req.Tool}))
	}

	args, verr := validateArgs(def, req.Args)
	if verr != nil {
		return d.fail(ctx, span, log, verr)
	}

	out, err := invoke(ctx, def, args)
	if err != nil {
		return d.fail(ctx, span, log, errmodel.From(err))
	}

	span.SetAttributes(attribute.String("tool.outcome", "success"))
	log.DebugContext(ctx, "tool dispatched")
	return Result{Output: out}
}

func (d *Dispatcher) fail(ctx context.Context, span trace.Span, log *slog.Logger, err *errmodel.Error) Result {
	span.SetAttributes(
		attribute.String("tool.outcome", "failure"),
		attribute.String("tool.error_code", err.Code),
	)
	log.WarnContext(ctx, "tool dispatch failed", "code", err.Code, "error", err.Message)
	return Result{Failure: err}
}

// invoke runs the handler with panic recovery, so a faulty handler turns
// into an error instead of taking the process down.
func invoke(ctx context.Context, def Definition, args map[string]any) (out map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errmodel.System("panic",
				fmt.Sprintf("tool handler panicked: %v", r),
				map[string]any{"tool": def.Name}, nil)
		}
	}()
	return def.Handler(ctx, args)
}

// validateArgs checks required fields, type tags and enum membership,
// fills declared defaults, and passes undeclared fields through
// untouched.
func validateArgs(def Definition, in map[string]any) (map[string]any, *errmodel.Error) {
	out := make(map[string]any, len(in)+len(def.Params))
	for k, v := range in {
		out[k] = v
	}
	for _, p := range def.Params {
		v, present := out[p.Name]
		if !present {
			if p.Required {
				return nil, errmodel.Validation(errmodel.CodeMissingRequired,
					fmt.Sprintf("required parameter %q is missing", p.Name),
					map[string]any{"tool": def.Name, "param": p.Name})
			}
			if p.Default != nil {
				out[p.Name] = p.Default
			}
			continue
		}
		cv, ok := coerce(p.Type, v)
		if !ok {
			return nil, errmodel.Validation(errmodel.CodeTypeMismatch,
				fmt.Sprintf("parameter %q must be of type %s", p.Name, p.Type),
				map[string]any{"tool": def.Name, "param": p.Name})
		}
		if len(p.Enum) > 0 && !enumHas(p.Enum, cv) {
			return nil, errmodel.Validation(errmodel.CodeInvalidEnum,
				fmt.Sprintf("parameter %q must be one of: %s", p.Name, strings.Join(p.Enum, ", ")),
				map[string]any{"tool": def.Name, "param": p.Name, "value": cv})
		}
		out[p.Name] = cv
	}
	return out, nil
}

func enumHas(enum []string, v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, e := range enum {
		if e == s {
			return true
		}
	}
	return false
}

// coerce checks a value against a type tag. JSON decoding hands numbers
// over as float64, so integral floats are accepted for integer fields.
func coerce(t ParamType, v any) (any, bool) {
	switch t {
	case ParamString:
		s, ok := v.(string)
		return s, ok
	case ParamBoolean:
		b, ok := v.(bool)
		return b, ok
	case ParamInteger:
		switch n := v.(type) {
		case int:
			return n, true
		case int32:
			return int(n), true
		case int64:
			return int(n), true
		case float64:
			if n == math.Trunc(n) {
				return int(n), true
			}
			return nil, false
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return nil, false
			}
			return int(i), true
		}
		return nil, false
	}
	// Unknown type tags pass the value through unchecked.
	return v, true
}
