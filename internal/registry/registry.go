// Package registry holds the two descriptor catalogs that correlate the
// agent-visible tools with the bridge-side handlers. The two catalogs share a
// registry type but are never populated in the same process: the MCP binary
// discovers tool modules, the bridge binary discovers handler modules, and the
// only coupling between them is the endpoint path convention.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/hzargar/rhino-gh-bridge/internal/common"
)

// Kind partitions tools by the subsystem they address.
type Kind string

const (
	KindRhino       Kind = "rhino"
	KindGrasshopper Kind = "grasshopper"
	KindUtility     Kind = "utility"
)

// Param describes one typed tool parameter in declaration order.
type Param struct {
	Name        string
	Type        string // string, number, integer, boolean, array, object
	Description string
	Required    bool
	Default     any
}

// InvokeFunc is a tool's invocation thunk. It never returns a Go error: all
// failures, transport included, are reported in-band through the envelope.
type InvokeFunc func(ctx context.Context, args map[string]any) map[string]any

// ToolDescriptor is the registered metadata record for one agent-invocable tool.
// Immutable after registration.
type ToolDescriptor struct {
	Name        string
	Description string
	Kind        Kind
	Params      []Param
	Invoke      InvokeFunc
}

// HandlerFunc executes one bridge operation. A returned error is a host fault
// (converted to HTTP 500 by the dispatch layer); recoverable conditions are
// reported inside the returned envelope with success:false.
type HandlerFunc func(ctx context.Context, body map[string]any) (map[string]any, error)

// HandlerDescriptor binds one endpoint path to its execution function.
// Params, when present, are compiled into a JSON schema that the bridge
// validates request bodies against before dispatch.
type HandlerDescriptor struct {
	Endpoint    string
	Description string
	Params      []Param
	Handle      HandlerFunc
}

// Module is one discoverable extension unit: a named registration function.
// Modules replace the original implementation's filesystem scan with a
// compiled-in manifest, keeping discovery deterministic and order-stable.
type Module struct {
	Name     string
	Register func(r *Registry)
}

// DiscoveryResult summarizes one discovery pass.
type DiscoveryResult struct {
	Loaded []string
	Failed map[string]error
}

// Registry accumulates tool and handler descriptors in registration order.
// Safe for concurrent reads after discovery completes.
type Registry struct {
	mu     sync.RWMutex
	logger *common.Logger

	tools     []ToolDescriptor
	toolIndex map[string]int

	handlers     []HandlerDescriptor
	handlerIndex map[string]int

	schemas map[string]*compiledSchema
}

// New creates an empty registry.
func New(logger *common.Logger) *Registry {
	r := &Registry{logger: logger}
	r.reset()
	return r
}

func (r *Registry) reset() {
	r.tools = nil
	r.toolIndex = make(map[string]int)
	r.handlers = nil
	r.handlerIndex = make(map[string]int)
	r.schemas = make(map[string]*compiledSchema)
}

// RegisterTool adds a tool descriptor. Duplicate names are reported as a
// warning and the last registration wins, replacing the earlier descriptor in
// place so registration order is preserved.
func (r *Registry) RegisterTool(td ToolDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, dup := r.toolIndex[td.Name]; dup {
		r.logger.Warn().Str("tool", td.Name).Msg("duplicate tool registration, last registration wins")
		r.tools[idx] = td
		return
	}
	r.toolIndex[td.Name] = len(r.tools)
	r.tools = append(r.tools, td)
}

// RegisterHandler adds a handler descriptor and compiles its parameter schema.
// Duplicate endpoints follow the same warn-and-replace policy as tools.
func (r *Registry) RegisterHandler(hd HandlerDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	schema, err := compileSchema(hd.Params)
	if err != nil {
		r.logger.Warn().Str("endpoint", hd.Endpoint).Str("error", err.Error()).
			Msg("failed to compile parameter schema, body validation disabled for endpoint")
		schema = nil
	}
	r.schemas[hd.Endpoint] = schema

	if idx, dup := r.handlerIndex[hd.Endpoint]; dup {
		r.logger.Warn().Str("endpoint", hd.Endpoint).Msg("duplicate handler registration, last registration wins")
		r.handlers[idx] = hd
		return
	}
	r.handlerIndex[hd.Endpoint] = len(r.handlers)
	r.handlers = append(r.handlers, hd)
}

// Discover runs an atomic clear-then-populate pass over the given modules.
// The registry is always cleared first, so repeated discovery never
// accumulates duplicates. A panicking module is isolated and reported in the
// result without aborting the remaining modules.
func (r *Registry) Discover(modules ...Module) DiscoveryResult {
	r.mu.Lock()
	r.reset()
	r.mu.Unlock()

	result := DiscoveryResult{Failed: make(map[string]error)}
	for _, m := range modules {
		if err := r.loadModule(m); err != nil {
			r.logger.Warn().Str("module", m.Name).Str("error", err.Error()).Msg("module registration failed")
			result.Failed[m.Name] = err
			continue
		}
		r.logger.Debug().Str("module", m.Name).Msg("module registered")
		result.Loaded = append(result.Loaded, m.Name)
	}
	return result
}

func (r *Registry) loadModule(m Module) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("module %s panicked: %v", m.Name, rec)
		}
	}()
	if m.Register == nil {
		return fmt.Errorf("module %s has no register function", m.Name)
	}
	m.Register(r)
	return nil
}

// ListByKind returns tool descriptors of the given kind in registration order.
func (r *Registry) ListByKind(kind Kind) []ToolDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ToolDescriptor
	for _, td := range r.tools {
		if td.Kind == kind {
			out = append(out, td)
		}
	}
	return out
}

// Tools returns all tool descriptors in registration order.
func (r *Registry) Tools() []ToolDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ToolDescriptor, len(r.tools))
	copy(out, r.tools)
	return out
}

// Tool looks up a tool descriptor by name.
func (r *Registry) Tool(name string) (ToolDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.toolIndex[name]
	if !ok {
		return ToolDescriptor{}, false
	}
	return r.tools[idx], true
}

// Handlers returns all handler descriptors in registration order.
func (r *Registry) Handlers() []HandlerDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]HandlerDescriptor, len(r.handlers))
	copy(out, r.handlers)
	return out
}

// Handler looks up a handler descriptor by exact endpoint path.
func (r *Registry) Handler(endpoint string) (HandlerDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.handlerIndex[endpoint]
	if !ok {
		return HandlerDescriptor{}, false
	}
	return r.handlers[idx], true
}

// ValidateBody checks a decoded request body against the endpoint's compiled
// parameter schema. Returns nil when the endpoint has no schema.
func (r *Registry) ValidateBody(endpoint string, body map[string]any) []string {
	r.mu.RLock()
	schema := r.schemas[endpoint]
	r.mu.RUnlock()

	if schema == nil {
		return nil
	}
	return schema.validate(body)
}
