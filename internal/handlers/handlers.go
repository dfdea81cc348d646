// Package handlers implements the bridge-side operations. Each handler runs
// its capability probe at call time: the host environment can change between
// any two requests, so "is the subsystem loaded" and "is there an active
// document" are answered fresh on every call, never at registration.
package handlers

import (
	"github.com/hzargar/rhino-gh-bridge/internal/common"
	"github.com/hzargar/rhino-gh-bridge/internal/host"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

// Set holds the shared dependencies of all bridge handlers.
type Set struct {
	host   host.Adapter
	logger *common.Logger
}

// New creates the handler set bound to a host adapter.
func New(adapter host.Adapter, logger *common.Logger) *Set {
	return &Set{host: adapter, logger: logger}
}

// Modules returns the handler extension modules in load order. The bridge
// binary hands these to Registry.Discover; a failing module is isolated there.
func (s *Set) Modules() []registry.Module {
	return []registry.Module{
		{Name: "rhino_handlers", Register: s.registerRhino},
		{Name: "grasshopper_handlers", Register: s.registerGrasshopper},
		{Name: "truss_handlers", Register: s.registerTruss},
		{Name: "utility_handlers", Register: s.registerUtility},
	}
}

// document probes for the model subsystem and its active document. A non-nil
// envelope means the caller should return it as-is; the extra fields give the
// agent the operation-specific empty default it expects.
func (s *Set) document(emptyDefaults map[string]any) (host.Document, map[string]any) {
	if !s.host.Probe().RhinoAvailable {
		return nil, failure("Rhino is not available", emptyDefaults)
	}
	doc := s.host.Document()
	if doc == nil {
		return nil, failure("no active document found", emptyDefaults)
	}
	return doc, nil
}

// canvas probes for the parametric subsystem and its active definition.
func (s *Set) canvas(emptyDefaults map[string]any) (host.Canvas, map[string]any) {
	if !s.host.Probe().GrasshopperAvailable {
		return nil, failure("Grasshopper is not available", emptyDefaults)
	}
	canvas := s.host.Canvas()
	if canvas == nil {
		return nil, failure("no active document found", emptyDefaults)
	}
	return canvas, nil
}

func failure(msg string, extra map[string]any) map[string]any {
	out := map[string]any{"success": false, "error": msg}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// --- Body parameter helpers. JSON numbers decode as float64; these coerce
// the handful of shapes agents actually send.

func getFloat(body map[string]any, key string, def float64) float64 {
	switch v := body[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

func getInt(body map[string]any, key string, def int) int {
	switch v := body[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

func getString(body map[string]any, key, def string) string {
	if v, ok := body[key].(string); ok {
		return v
	}
	return def
}

func getBool(body map[string]any, key string, def bool) bool {
	if v, ok := body[key].(bool); ok {
		return v
	}
	return def
}
