package registry

import (
	"context"
	"testing"

	"github.com/hzargar/rhino-gh-bridge/internal/common"
)

func newTestRegistry() *Registry {
	return New(common.NewSilentLogger())
}

func noopInvoke(ctx context.Context, args map[string]any) map[string]any {
	return map[string]any{"success": true}
}

func noopHandle(ctx context.Context, body map[string]any) (map[string]any, error) {
	return map[string]any{"success": true}, nil
}

func TestRegisterTool_DuplicateLastWins(t *testing.T) {
	r := newTestRegistry()

	r.RegisterTool(ToolDescriptor{Name: "a", Kind: KindUtility, Description: "first", Invoke: noopInvoke})
	r.RegisterTool(ToolDescriptor{Name: "b", Kind: KindUtility, Description: "other", Invoke: noopInvoke})
	r.RegisterTool(ToolDescriptor{Name: "a", Kind: KindUtility, Description: "second", Invoke: noopInvoke})

	tools := r.Tools()
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	// The replacement keeps the original slot, so order is a, b.
	if tools[0].Name != "a" || tools[1].Name != "b" {
		t.Errorf("unexpected order: %s, %s", tools[0].Name, tools[1].Name)
	}
	if tools[0].Description != "second" {
		t.Errorf("expected last registration to win, got %q", tools[0].Description)
	}
}

func TestDiscover_AtomicRepopulate(t *testing.T) {
	r := newTestRegistry()

	mod := func(name, tool string) Module {
		return Module{Name: name, Register: func(r *Registry) {
			r.RegisterTool(ToolDescriptor{Name: tool, Kind: KindUtility, Invoke: noopInvoke})
		}}
	}

	r.Discover(mod("m1", "t1"), mod("m2", "t2"))
	if len(r.Tools()) != 2 {
		t.Fatalf("expected 2 tools after first pass, got %d", len(r.Tools()))
	}

	// A second pass clears the registry first, so nothing accumulates.
	r.Discover(mod("m1", "t1"))
	if len(r.Tools()) != 1 {
		t.Fatalf("expected 1 tool after second pass, got %d", len(r.Tools()))
	}
	if _, ok := r.Tool("t2"); ok {
		t.Error("tool from previous pass still present")
	}
}

func TestDiscover_PanicIsolation(t *testing.T) {
	r := newTestRegistry()

	good := Module{Name: "good", Register: func(r *Registry) {
		r.RegisterTool(ToolDescriptor{Name: "ok", Kind: KindUtility, Invoke: noopInvoke})
	}}
	bad := Module{Name: "bad", Register: func(r *Registry) {
		panic("boom")
	}}

	result := r.Discover(bad, good)

	if len(result.Loaded) != 1 || result.Loaded[0] != "good" {
		t.Errorf("expected only good module loaded, got %v", result.Loaded)
	}
	if _, failed := result.Failed["bad"]; !failed {
		t.Error("expected bad module in failures")
	}
	if _, ok := r.Tool("ok"); !ok {
		t.Error("good module's tool missing after sibling panic")
	}
}

func TestDiscover_NilRegisterFunc(t *testing.T) {
	r := newTestRegistry()

	result := r.Discover(Module{Name: "empty"})
	if _, failed := result.Failed["empty"]; !failed {
		t.Error("expected module without register function to fail")
	}
}

func TestListByKind(t *testing.T) {
	r := newTestRegistry()

	r.RegisterTool(ToolDescriptor{Name: "r1", Kind: KindRhino, Invoke: noopInvoke})
	r.RegisterTool(ToolDescriptor{Name: "g1", Kind: KindGrasshopper, Invoke: noopInvoke})
	r.RegisterTool(ToolDescriptor{Name: "r2", Kind: KindRhino, Invoke: noopInvoke})

	rhino := r.ListByKind(KindRhino)
	if len(rhino) != 2 || rhino[0].Name != "r1" || rhino[1].Name != "r2" {
		t.Errorf("unexpected rhino tools: %v", rhino)
	}
	if got := r.ListByKind(KindUtility); len(got) != 0 {
		t.Errorf("expected no utility tools, got %d", len(got))
	}
}

func TestHandlerLookup(t *testing.T) {
	r := newTestRegistry()

	r.RegisterHandler(HandlerDescriptor{Endpoint: "/echo", Handle: noopHandle})

	if _, ok := r.Handler("/echo"); !ok {
		t.Error("registered handler not found")
	}
	if _, ok := r.Handler("/echo/"); ok {
		t.Error("lookup should be exact-path, trailing slash matched")
	}
	if _, ok := r.Handler("/missing"); ok {
		t.Error("unregistered endpoint found")
	}
}

func TestValidateBody(t *testing.T) {
	r := newTestRegistry()

	r.RegisterHandler(HandlerDescriptor{
		Endpoint: "/set_slider",
		Params: []Param{
			{Name: "slider_name", Type: "string", Required: true},
			{Name: "new_value", Type: "number", Required: true},
		},
		Handle: noopHandle,
	})

	if violations := r.ValidateBody("/set_slider", map[string]any{"slider_name": "Width", "new_value": 5.0}); violations != nil {
		t.Errorf("valid body rejected: %v", violations)
	}

	violations := r.ValidateBody("/set_slider", map[string]any{"slider_name": "Width"})
	if len(violations) == 0 {
		t.Error("missing required field not reported")
	}

	violations = r.ValidateBody("/set_slider", map[string]any{"slider_name": 12, "new_value": 5.0})
	if len(violations) == 0 {
		t.Error("wrong type not reported")
	}

	// Endpoints without declared params accept anything.
	r.RegisterHandler(HandlerDescriptor{Endpoint: "/free", Handle: noopHandle})
	if violations := r.ValidateBody("/free", map[string]any{"whatever": true}); violations != nil {
		t.Errorf("schema-less endpoint rejected body: %v", violations)
	}
}
