package handlers

import (
	"strings"
	"testing"

	"github.com/hzargar/rhino-gh-bridge/internal/common"
	"github.com/hzargar/rhino-gh-bridge/internal/host"
	"github.com/hzargar/rhino-gh-bridge/internal/truss"
)

func newTestSet(opts ...host.SimOption) (*Set, *host.SimHost) {
	h := host.NewSimHost(opts...)
	return New(h, common.NewSilentLogger()), h
}

func TestDrawLine(t *testing.T) {
	s, h := newTestSet()

	resp, err := s.handleDrawLine(t.Context(), map[string]any{
		"start_x": 0.0, "start_y": 0.0, "start_z": 0.0,
		"end_x": 3.0, "end_y": 4.0, "end_z": 0.0,
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	if resp["line_id"] == nil || resp["line_id"] == "" {
		t.Error("missing line_id")
	}
	if resp["length"] != 5.0 {
		t.Errorf("expected length 5, got %v", resp["length"])
	}
	if doc := h.Document(); doc.ObjectCount() != 1 {
		t.Errorf("expected 1 object in document, got %d", doc.ObjectCount())
	}
}

func TestDrawLine_RhinoUnavailable(t *testing.T) {
	s, _ := newTestSet(host.WithoutRhino())

	resp, err := s.handleDrawLine(t.Context(), map[string]any{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if resp["success"] != false {
		t.Fatalf("expected failure envelope, got %v", resp)
	}
	if resp["error"] != "Rhino is not available" {
		t.Errorf("unexpected error: %v", resp["error"])
	}
	if _, present := resp["line_id"]; !present {
		t.Error("failure envelope should carry the empty default line_id")
	}
}

func TestDrawLine_NoDocument(t *testing.T) {
	s, _ := newTestSet(host.WithoutDocument())

	resp, _ := s.handleDrawLine(t.Context(), map[string]any{})
	if resp["error"] != "no active document found" {
		t.Errorf("unexpected error: %v", resp["error"])
	}
}

func TestGetRhinoInfo(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleGetRhinoInfo(t.Context(), map[string]any{})
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	info, ok := resp["info"].(map[string]any)
	if !ok {
		t.Fatalf("missing info object: %v", resp)
	}
	if info["rhino_available"] != true || info["grasshopper_available"] != true {
		t.Errorf("unexpected capabilities: %v", info)
	}
	if info["document_units"] != "Millimeters" {
		t.Errorf("unexpected units: %v", info["document_units"])
	}
}

func TestListSliders(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleListSliders(t.Context(), map[string]any{})
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	sliders, ok := resp["sliders"].([]host.Slider)
	if !ok {
		t.Fatalf("unexpected sliders type %T", resp["sliders"])
	}
	if len(sliders) != 3 {
		t.Errorf("expected 3 seeded sliders, got %d", len(sliders))
	}
}

func TestSetSlider(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleSetSlider(t.Context(), map[string]any{
		"slider_name": "Width", "new_value": 42.0,
	})
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	if resp["old_value"] != 10.0 {
		t.Errorf("expected old value 10, got %v", resp["old_value"])
	}
	if resp["new_value"] != 42.0 {
		t.Errorf("expected new value 42, got %v", resp["new_value"])
	}
}

func TestSetSlider_Clamped(t *testing.T) {
	s, _ := newTestSet()

	// Height bounds are [0, 50].
	resp, _ := s.handleSetSlider(t.Context(), map[string]any{
		"slider_name": "Height", "new_value": 999.0,
	})
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	if resp["new_value"] != 50.0 {
		t.Errorf("expected clamp to 50, got %v", resp["new_value"])
	}
}

func TestSetSlider_NotFound(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleSetSlider(t.Context(), map[string]any{
		"slider_name": "Nope", "new_value": 1.0,
	})
	if resp["success"] != false {
		t.Fatalf("expected failure, got %v", resp)
	}
	if !strings.Contains(resp["error"].(string), "not found") {
		t.Errorf("unexpected error: %v", resp["error"])
	}
	valid, ok := resp["valid_sliders"].([]string)
	if !ok || len(valid) != 3 {
		t.Errorf("expected the 3 valid slider names, got %v", resp["valid_sliders"])
	}
}

func TestSetSliders_Batch(t *testing.T) {
	s, h := newTestSet()
	canvas := h.Canvas().(*host.SimCanvas)
	before := canvas.Recomputes()

	resp, _ := s.handleSetSliders(t.Context(), map[string]any{
		"updates": map[string]any{
			"Width":   999.0, // clamped to 100
			"Height":  25.0,
			"Missing": 1.0,
		},
	})

	// The batch executes even when items fail.
	if resp["success"] != true {
		t.Fatalf("expected batch success, got %v", resp)
	}
	if resp["failed_updates"] != 1 {
		t.Errorf("expected 1 failed update, got %v", resp["failed_updates"])
	}
	if resp["total_updates"] != 3 {
		t.Errorf("expected 3 total updates, got %v", resp["total_updates"])
	}

	results, ok := resp["results"].([]map[string]any)
	if !ok {
		t.Fatalf("unexpected results type %T", resp["results"])
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 per-item results, got %d", len(results))
	}

	// Items come back in lexical order: Height, Missing, Width.
	if results[0]["slider_name"] != "Height" || results[0]["success"] != true {
		t.Errorf("unexpected first item: %v", results[0])
	}
	if results[1]["slider_name"] != "Missing" || results[1]["success"] != false {
		t.Errorf("unexpected second item: %v", results[1])
	}
	if results[2]["slider_name"] != "Width" || results[2]["new_value"] != 100.0 {
		t.Errorf("unexpected third item: %v", results[2])
	}
	if results[2]["clamped"] != true || results[2]["requested_value"] != 999.0 {
		t.Errorf("clamp not reported: %v", results[2])
	}

	// One solver pass for the whole batch.
	if got := canvas.Recomputes() - before; got != 1 {
		t.Errorf("expected exactly 1 recompute for the batch, got %d", got)
	}
}

func TestSetSliders_EmptyBatch(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleSetSliders(t.Context(), map[string]any{})
	if resp["success"] != false {
		t.Fatalf("expected failure for empty batch, got %v", resp)
	}
}

func TestSetSliders_GrasshopperUnavailable(t *testing.T) {
	s, _ := newTestSet(host.WithoutGrasshopper())

	resp, _ := s.handleSetSliders(t.Context(), map[string]any{
		"updates": map[string]any{"Width": 5.0},
	})
	if resp["error"] != "Grasshopper is not available" {
		t.Errorf("unexpected error: %v", resp["error"])
	}
}

func TestCanvasContext(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleCanvasContext(t.Context(), map[string]any{})
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	for _, key := range []string{"sliders", "panels", "value_lists", "components", "purpose_guesses"} {
		if _, present := resp[key]; !present {
			t.Errorf("missing %s in canvas context", key)
		}
	}
}

func TestGenerateTruss(t *testing.T) {
	s, h := newTestSet()

	resp, _ := s.handleGenerateTruss(t.Context(), map[string]any{
		"truss_type": "Pratt", "num_divisions": 4.0,
	})
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	// 4 top + 4 bottom chords, 5 verticals, 4 diagonals.
	if resp["num_members"] != 17 {
		t.Errorf("expected 17 members, got %v", resp["num_members"])
	}
	if resp["truss_type"] != "Pratt" {
		t.Errorf("unexpected truss_type: %v", resp["truss_type"])
	}

	doc := h.Document()
	tagged := doc.ObjectsByTag("object_type", truss.Tag)
	if len(tagged) != 17 {
		t.Errorf("expected 17 tagged objects, got %d", len(tagged))
	}
}

func TestGenerateTruss_ClearPrevious(t *testing.T) {
	s, h := newTestSet()

	s.handleGenerateTruss(t.Context(), map[string]any{"truss_type": "Brown"})
	resp, _ := s.handleGenerateTruss(t.Context(), map[string]any{"truss_type": "Vierendeel"})

	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	// Brown with 4 divisions: 8 chords + 5 verticals + 8 diagonals = 21.
	if resp["cleared"] != 21 {
		t.Errorf("expected 21 cleared members, got %v", resp["cleared"])
	}
	// Only the second truss remains: 8 chords + 5 verticals = 13.
	doc := h.Document()
	if got := len(doc.ObjectsByTag("object_type", truss.Tag)); got != 13 {
		t.Errorf("expected 13 remaining members, got %d", got)
	}
}

func TestGenerateTruss_KeepPrevious(t *testing.T) {
	s, h := newTestSet()

	s.handleGenerateTruss(t.Context(), map[string]any{"truss_type": "Vierendeel"})
	resp, _ := s.handleGenerateTruss(t.Context(), map[string]any{
		"truss_type": "Vierendeel", "clear_previous": false,
	})

	if resp["cleared"] != 0 {
		t.Errorf("expected nothing cleared, got %v", resp["cleared"])
	}
	doc := h.Document()
	if got := len(doc.ObjectsByTag("object_type", truss.Tag)); got != 26 {
		t.Errorf("expected both trusses present (26 members), got %d", got)
	}
}

func TestGenerateTruss_UnknownTypeDefaultsToPratt(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleGenerateTruss(t.Context(), map[string]any{"truss_type": "gothic"})
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	if resp["truss_type"] != "Pratt" {
		t.Errorf("expected fallback to Pratt, got %v", resp["truss_type"])
	}
}

func TestGenerateTruss_InvalidDivisions(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleGenerateTruss(t.Context(), map[string]any{"num_divisions": 0.0})
	if resp["success"] != false {
		t.Fatalf("expected failure for zero divisions, got %v", resp)
	}
}

func TestEcho(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleEcho(t.Context(), map[string]any{"message": "ping"})
	if resp["echo"] != "Echo: ping" {
		t.Errorf("unexpected echo: %v", resp["echo"])
	}

	resp, _ = s.handleEcho(t.Context(), map[string]any{})
	if resp["echo"] != "Echo: No message provided" {
		t.Errorf("unexpected default echo: %v", resp["echo"])
	}
}

func TestQuantifyVolume(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleQuantifyVolume(t.Context(), map[string]any{"volume": 12.5})
	if resp["volume"] != 12.5 {
		t.Errorf("unexpected volume: %v", resp["volume"])
	}
	if resp["message"] != "Calculated volume: 12.50 cubic units." {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestSystemInfo(t *testing.T) {
	s, _ := newTestSet()

	resp, _ := s.handleSystemInfo(t.Context(), map[string]any{})
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	if resp["go_version"] == "" || resp["platform"] == "" {
		t.Errorf("missing runtime fields: %v", resp)
	}
}
