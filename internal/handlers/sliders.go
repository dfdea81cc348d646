package handlers

import (
	"context"
	"fmt"
	"sort"

	"github.com/hzargar/rhino-gh-bridge/internal/host"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

func (s *Set) registerGrasshopper(r *registry.Registry) {
	r.RegisterHandler(registry.HandlerDescriptor{
		Endpoint:    "/list_sliders",
		Description: "List Grasshopper sliders",
		Handle:      s.handleListSliders,
	})

	r.RegisterHandler(registry.HandlerDescriptor{
		Endpoint:    "/set_slider",
		Description: "Set Grasshopper slider value",
		Params: []registry.Param{
			{Name: "slider_name", Type: "string", Description: "Name of the slider component", Required: true},
			{Name: "new_value", Type: "number", Description: "New value to set", Required: true},
		},
		Handle: s.handleSetSlider,
	})

	r.RegisterHandler(registry.HandlerDescriptor{
		Endpoint:    "/set_sliders",
		Description: "Set multiple Grasshopper sliders in one batch",
		Params: []registry.Param{
			{Name: "updates", Type: "object", Description: "Map of slider name to new value", Required: true},
		},
		Handle: s.handleSetSliders,
	})

	r.RegisterHandler(registry.HandlerDescriptor{
		Endpoint:    "/canvas_context",
		Description: "Inspect the Grasshopper canvas with heuristic purpose guesses",
		Handle:      s.handleCanvasContext,
	})
}

func (s *Set) handleListSliders(ctx context.Context, body map[string]any) (map[string]any, error) {
	canvas, unavailable := s.canvas(map[string]any{"sliders": []host.Slider{}})
	if unavailable != nil {
		return unavailable, nil
	}

	sliders := canvas.Sliders()
	return map[string]any{
		"success": true,
		"sliders": sliders,
		"count":   len(sliders),
		"message": fmt.Sprintf("Found %d slider components", len(sliders)),
	}, nil
}

func (s *Set) handleSetSlider(ctx context.Context, body map[string]any) (map[string]any, error) {
	name := getString(body, "slider_name", "")
	value := getFloat(body, "new_value", 0)

	canvas, unavailable := s.canvas(map[string]any{"slider_name": name, "new_value": value})
	if unavailable != nil {
		return unavailable, nil
	}

	old, updated, err := canvas.SetSlider(name, value)
	if err != nil {
		// Include the valid names so the agent can self-correct.
		return failure(fmt.Sprintf("Slider '%s' not found", name), map[string]any{
			"slider_name":   name,
			"new_value":     value,
			"valid_sliders": host.SliderNames(canvas),
		}), nil
	}

	return map[string]any{
		"success":     true,
		"slider_name": name,
		"old_value":   old,
		"new_value":   updated.Value,
		"message":     fmt.Sprintf("Slider '%s' updated to %v", name, updated.Value),
	}, nil
}

// handleSetSliders applies a batch of slider updates under a single solver
// suspension. Per-item failures do not fail the batch: the response reports
// each item, and success means the batch executed, not that every item took.
// The solver resume is deferred so a failing item can never leave the
// recompute cycle suspended.
func (s *Set) handleSetSliders(ctx context.Context, body map[string]any) (map[string]any, error) {
	updates, ok := body["updates"].(map[string]any)
	if !ok || len(updates) == 0 {
		return failure("no slider updates provided", map[string]any{"results": []any{}}), nil
	}

	canvas, unavailable := s.canvas(map[string]any{"results": []any{}})
	if unavailable != nil {
		return unavailable, nil
	}

	canvas.SuspendSolver()
	defer canvas.ResumeSolver()

	results := make([]map[string]any, 0, len(updates))
	failed := 0
	for _, name := range sortedKeys(updates) {
		raw := updates[name]
		value, isNum := raw.(float64)
		if !isNum {
			failed++
			results = append(results, map[string]any{
				"slider_name": name,
				"success":     false,
				"error":       fmt.Sprintf("value for '%s' is not a number", name),
			})
			continue
		}

		old, updated, err := canvas.SetSlider(name, value)
		if err != nil {
			failed++
			results = append(results, map[string]any{
				"slider_name": name,
				"success":     false,
				"error":       fmt.Sprintf("Slider '%s' not found", name),
			})
			continue
		}

		item := map[string]any{
			"slider_name": name,
			"success":     true,
			"old_value":   old,
			"new_value":   updated.Value,
		}
		if updated.Value != value {
			item["clamped"] = true
			item["requested_value"] = value
		}
		results = append(results, item)
	}

	return map[string]any{
		"success":        true,
		"results":        results,
		"total_updates":  len(updates),
		"failed_updates": failed,
		"message":        fmt.Sprintf("Applied %d of %d slider updates", len(updates)-failed, len(updates)),
	}, nil
}

// sortedKeys gives batch results a deterministic order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
