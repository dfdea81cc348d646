// Package host defines the capability interface between bridge handlers and
// the live modeling session. Handlers never touch host objects directly: they
// probe for availability, fetch the active document, and go through the narrow
// read/write contracts below. The host environment can change between any two
// calls (a plugin loads, a document closes), so nothing here is cached.
package host

// Capabilities reports which subsystems are currently loaded. Recomputed on
// every probe, never cached across requests.
type Capabilities struct {
	RhinoAvailable       bool `json:"rhino_available"`
	GrasshopperAvailable bool `json:"grasshopper_available"`
}

// Slider is a read-only snapshot of a number slider component. Validity is
// limited to the response it is returned in; only the name is a stable handle.
type Slider struct {
	Name     string     `json:"name"`
	Value    float64    `json:"current_value"`
	Min      float64    `json:"min"`
	Max      float64    `json:"max"`
	Position [2]float64 `json:"position"`
	Group    string     `json:"group,omitempty"`
}

// Panel is a snapshot of a text panel component.
type Panel struct {
	Name     string     `json:"name"`
	Text     string     `json:"text"`
	Position [2]float64 `json:"position"`
}

// ValueList is a snapshot of a value-list (dropdown) component.
type ValueList struct {
	Name     string     `json:"name"`
	Items    []string   `json:"items"`
	Selected string     `json:"selected"`
	Position [2]float64 `json:"position"`
}

// Component is a snapshot of any other canvas component.
type Component struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Position [2]float64 `json:"position"`
}

// Object is a snapshot of one geometry object in the model document.
type Object struct {
	ID    string            `json:"id"`
	Start [3]float64        `json:"start"`
	End   [3]float64        `json:"end"`
	Tags  map[string]string `json:"-"`
}

// Adapter is the injected gateway to the host process. Probe is best-effort
// and must be called per request, not at registration time.
type Adapter interface {
	// Probe reports which subsystems are currently reachable.
	Probe() Capabilities

	// Document returns the live model document, or nil when Rhino has no
	// active document.
	Document() Document

	// Canvas returns the live parametric canvas, or nil when Grasshopper has
	// no active definition.
	Canvas() Canvas
}

// Document is the model-document capability: geometry creation, tagged-object
// bookkeeping, and session metadata. Implementations are not required to be
// goroutine-safe; the bridge serializes all handler execution.
type Document interface {
	Units() string
	ObjectCount() int

	// AddLine creates a line object and returns its ID. Tags are attached as
	// user text and drive later find-and-delete passes.
	AddLine(start, end [3]float64, tags map[string]string) (string, error)

	// Length returns the length of the object with the given ID.
	Length(id string) (float64, bool)

	// ObjectsByTag returns snapshots of every object carrying tag key=value.
	ObjectsByTag(key, value string) []Object

	// DeleteObjects removes the given objects and reports how many existed.
	DeleteObjects(ids []string) int
}

// Canvas is the parametric-definition capability: component snapshots, slider
// mutation, and solver control.
type Canvas interface {
	Sliders() []Slider
	Slider(name string) (Slider, bool)

	// SetSlider updates a slider, clamping the value into the slider's bounds.
	// Returns the previous value and the snapshot after the update.
	SetSlider(name string, value float64) (old float64, updated Slider, err error)

	Panels() []Panel
	ValueLists() []ValueList
	Components() []Component

	// SuspendSolver pauses the recompute cycle for a batch of mutations.
	// Every SuspendSolver must be paired with exactly one ResumeSolver;
	// ResumeSolver triggers a single recompute.
	SuspendSolver()
	ResumeSolver()
}

// SliderNames extracts the name of every slider, for "did you mean" context in
// not-found errors.
func SliderNames(c Canvas) []string {
	sliders := c.Sliders()
	names := make([]string, len(sliders))
	for i, s := range sliders {
		names[i] = s.Name
	}
	return names
}
