package handlers

import (
	"context"
	"fmt"

	"github.com/hzargar/rhino-gh-bridge/internal/inspect"
)

// handleCanvasContext returns a full snapshot of the parametric canvas plus
// heuristic purpose guesses for each slider. The guesses are advisory only.
func (s *Set) handleCanvasContext(ctx context.Context, body map[string]any) (map[string]any, error) {
	canvas, unavailable := s.canvas(map[string]any{
		"sliders": []any{}, "panels": []any{}, "value_lists": []any{}, "components": []any{},
	})
	if unavailable != nil {
		return unavailable, nil
	}

	sliders := canvas.Sliders()
	return map[string]any{
		"success":         true,
		"sliders":         sliders,
		"panels":          canvas.Panels(),
		"value_lists":     canvas.ValueLists(),
		"components":      canvas.Components(),
		"purpose_guesses": inspect.CanvasPurposes(canvas),
		"message":         fmt.Sprintf("Canvas context with %d sliders", len(sliders)),
	}, nil
}
