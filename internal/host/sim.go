package host

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// SimHost is an in-process host implementation. The standalone bridge binary
// runs against it, and tests use it to exercise every handler path, including
// the unavailable-subsystem envelopes, without a live Rhino process.
type SimHost struct {
	rhino       bool
	grasshopper bool
	doc         *SimDocument
	canvas      *SimCanvas
}

// SimOption configures a SimHost.
type SimOption func(*SimHost)

// WithoutRhino simulates the model subsystem failing to load.
func WithoutRhino() SimOption {
	return func(h *SimHost) { h.rhino = false }
}

// WithoutGrasshopper simulates the parametric subsystem failing to load.
func WithoutGrasshopper() SimOption {
	return func(h *SimHost) { h.grasshopper = false }
}

// WithoutDocument simulates Rhino running with no active document.
func WithoutDocument() SimOption {
	return func(h *SimHost) { h.doc = nil }
}

// WithoutCanvas simulates Grasshopper running with no active definition.
func WithoutCanvas() SimOption {
	return func(h *SimHost) { h.canvas = nil }
}

// NewSimHost creates a simulated host with both subsystems loaded, an empty
// document, and a canvas seeded with the stock slider set.
func NewSimHost(opts ...SimOption) *SimHost {
	h := &SimHost{
		rhino:       true,
		grasshopper: true,
		doc:         NewSimDocument(),
		canvas:      NewSimCanvas(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Probe implements Adapter.
func (h *SimHost) Probe() Capabilities {
	return Capabilities{RhinoAvailable: h.rhino, GrasshopperAvailable: h.grasshopper}
}

// Document implements Adapter.
func (h *SimHost) Document() Document {
	if !h.rhino || h.doc == nil {
		return nil
	}
	return h.doc
}

// Canvas implements Adapter.
func (h *SimHost) Canvas() Canvas {
	if !h.grasshopper || h.canvas == nil {
		return nil
	}
	return h.canvas
}

// simObject is one stored geometry object.
type simObject struct {
	id    string
	start [3]float64
	end   [3]float64
	tags  map[string]string
}

// SimDocument is an in-memory model document.
type SimDocument struct {
	mu      sync.Mutex
	units   string
	objects map[string]simObject
	order   []string
}

// NewSimDocument creates an empty simulated document with millimeter units.
func NewSimDocument() *SimDocument {
	return &SimDocument{
		units:   "Millimeters",
		objects: make(map[string]simObject),
	}
}

// Units implements Document.
func (d *SimDocument) Units() string { return d.units }

// ObjectCount implements Document.
func (d *SimDocument) ObjectCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.objects)
}

// AddLine implements Document.
func (d *SimDocument) AddLine(start, end [3]float64, tags map[string]string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := uuid.New().String()
	copied := make(map[string]string, len(tags))
	for k, v := range tags {
		copied[k] = v
	}
	d.objects[id] = simObject{id: id, start: start, end: end, tags: copied}
	d.order = append(d.order, id)
	return id, nil
}

// Length implements Document.
func (d *SimDocument) Length(id string) (float64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	obj, ok := d.objects[id]
	if !ok {
		return 0, false
	}
	dx := obj.end[0] - obj.start[0]
	dy := obj.end[1] - obj.start[1]
	dz := obj.end[2] - obj.start[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz), true
}

// ObjectsByTag implements Document. Results follow insertion order.
func (d *SimDocument) ObjectsByTag(key, value string) []Object {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []Object
	for _, id := range d.order {
		obj, ok := d.objects[id]
		if !ok {
			continue
		}
		if obj.tags[key] == value {
			tags := make(map[string]string, len(obj.tags))
			for k, v := range obj.tags {
				tags[k] = v
			}
			out = append(out, Object{ID: obj.id, Start: obj.start, End: obj.end, Tags: tags})
		}
	}
	return out
}

// DeleteObjects implements Document.
func (d *SimDocument) DeleteObjects(ids []string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	deleted := 0
	for _, id := range ids {
		if _, ok := d.objects[id]; ok {
			delete(d.objects, id)
			deleted++
		}
	}
	return deleted
}

// SimCanvas is an in-memory parametric canvas.
type SimCanvas struct {
	mu         sync.Mutex
	sliders    map[string]*Slider
	order      []string
	panels     []Panel
	valueLists []ValueList
	components []Component

	suspendDepth int
	recomputes   int
}

// NewSimCanvas creates a canvas seeded with the stock sliders the original
// bridge reported (Width, Height, Count) plus a few annotation components.
func NewSimCanvas() *SimCanvas {
	c := &SimCanvas{sliders: make(map[string]*Slider)}
	c.AddSlider(Slider{Name: "Width", Value: 10, Min: 0, Max: 100, Position: [2]float64{120, 40}})
	c.AddSlider(Slider{Name: "Height", Value: 20, Min: 0, Max: 50, Position: [2]float64{120, 80}})
	c.AddSlider(Slider{Name: "Count", Value: 5, Min: 1, Max: 20, Position: [2]float64{120, 120}})
	c.panels = []Panel{
		{Name: "Panel", Text: "overall building width (m)", Position: [2]float64{180, 40}},
	}
	c.valueLists = []ValueList{
		{Name: "Truss Type", Items: []string{"Pratt", "Warren", "Howe"}, Selected: "Pratt", Position: [2]float64{120, 160}},
	}
	c.components = []Component{
		{Name: "Line", Type: "Curve", Position: [2]float64{300, 60}},
	}
	return c
}

// AddSlider inserts or replaces a slider definition.
func (c *SimCanvas) AddSlider(s Slider) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sliders[s.Name]; !exists {
		c.order = append(c.order, s.Name)
	}
	copied := s
	c.sliders[s.Name] = &copied
}

// Sliders implements Canvas. Results follow insertion order.
func (c *SimCanvas) Sliders() []Slider {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Slider, 0, len(c.order))
	for _, name := range c.order {
		if s, ok := c.sliders[name]; ok {
			out = append(out, *s)
		}
	}
	return out
}

// Slider implements Canvas.
func (c *SimCanvas) Slider(name string) (Slider, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sliders[name]
	if !ok {
		return Slider{}, false
	}
	return *s, true
}

// SetSlider implements Canvas. Values outside the slider's bounds are clamped
// the way a real slider grip would stop at its rail end.
func (c *SimCanvas) SetSlider(name string, value float64) (float64, Slider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sliders[name]
	if !ok {
		return 0, Slider{}, fmt.Errorf("slider %q not found", name)
	}

	old := s.Value
	if value < s.Min {
		value = s.Min
	}
	if value > s.Max {
		value = s.Max
	}
	s.Value = value

	if c.suspendDepth == 0 {
		c.recomputes++
	}
	return old, *s, nil
}

// Panels implements Canvas.
func (c *SimCanvas) Panels() []Panel {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Panel, len(c.panels))
	copy(out, c.panels)
	return out
}

// ValueLists implements Canvas.
func (c *SimCanvas) ValueLists() []ValueList {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ValueList, len(c.valueLists))
	copy(out, c.valueLists)
	return out
}

// Components implements Canvas.
func (c *SimCanvas) Components() []Component {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Component, len(c.components))
	copy(out, c.components)
	return out
}

// SuspendSolver implements Canvas.
func (c *SimCanvas) SuspendSolver() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suspendDepth++
}

// ResumeSolver implements Canvas.
func (c *SimCanvas) ResumeSolver() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.suspendDepth > 0 {
		c.suspendDepth--
		if c.suspendDepth == 0 {
			c.recomputes++
		}
	}
}

// Recomputes reports how many solver passes have run. Test hook.
func (c *SimCanvas) Recomputes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recomputes
}

// SliderNamesSorted returns slider names in lexical order. Test hook.
func (c *SimCanvas) SliderNamesSorted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.sliders))
	for name := range c.sliders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
