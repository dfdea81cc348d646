package handlers

import (
	"context"
	"fmt"

	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

func (s *Set) registerRhino(r *registry.Registry) {
	r.RegisterHandler(registry.HandlerDescriptor{
		Endpoint:    "/draw_line",
		Description: "Draw a line in Rhino",
		Params: []registry.Param{
			{Name: "start_x", Type: "number", Description: "X-coordinate of the line start point"},
			{Name: "start_y", Type: "number", Description: "Y-coordinate of the line start point"},
			{Name: "start_z", Type: "number", Description: "Z-coordinate of the line start point"},
			{Name: "end_x", Type: "number", Description: "X-coordinate of the line end point"},
			{Name: "end_y", Type: "number", Description: "Y-coordinate of the line end point"},
			{Name: "end_z", Type: "number", Description: "Z-coordinate of the line end point"},
		},
		Handle: s.handleDrawLine,
	})

	r.RegisterHandler(registry.HandlerDescriptor{
		Endpoint:    "/get_rhino_info",
		Description: "Get Rhino session info",
		Handle:      s.handleGetRhinoInfo,
	})
}

func (s *Set) handleDrawLine(ctx context.Context, body map[string]any) (map[string]any, error) {
	start := [3]float64{
		getFloat(body, "start_x", 0),
		getFloat(body, "start_y", 0),
		getFloat(body, "start_z", 0),
	}
	end := [3]float64{
		getFloat(body, "end_x", 0),
		getFloat(body, "end_y", 0),
		getFloat(body, "end_z", 0),
	}

	doc, unavailable := s.document(map[string]any{"line_id": nil})
	if unavailable != nil {
		return unavailable, nil
	}

	id, err := doc.AddLine(start, end, nil)
	if err != nil {
		return failure("failed to create line in Rhino", map[string]any{"line_id": nil}), nil
	}

	length, _ := doc.Length(id)
	return map[string]any{
		"success":     true,
		"line_id":     id,
		"start_point": start,
		"end_point":   end,
		"length":      length,
		"message":     fmt.Sprintf("Line created successfully with length %.2f", length),
	}, nil
}

func (s *Set) handleGetRhinoInfo(ctx context.Context, body map[string]any) (map[string]any, error) {
	caps := s.host.Probe()
	if !caps.RhinoAvailable {
		return failure("Rhino is not available", map[string]any{"info": map[string]any{}}), nil
	}

	info := map[string]any{
		"rhino_available":       caps.RhinoAvailable,
		"grasshopper_available": caps.GrasshopperAvailable,
	}
	if doc := s.host.Document(); doc != nil {
		info["document_units"] = doc.Units()
		info["object_count"] = doc.ObjectCount()
	}

	return map[string]any{
		"success": true,
		"info":    info,
		"message": "Rhino information retrieved successfully",
	}, nil
}
