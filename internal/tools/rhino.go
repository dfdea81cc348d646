package tools

import (
	"context"

	"github.com/hzargar/rhino-gh-bridge/internal/client"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

func registerRhinoTools(c *client.Client) func(*registry.Registry) {
	return func(r *registry.Registry) {
		r.RegisterTool(registry.ToolDescriptor{
			Name: "draw_line_rhino",
			Kind: registry.KindRhino,
			Description: "Draw a line in Rhino 3D space between two points. " +
				"Creates a line object in the current Rhino document. " +
				"Coordinates are in the document's current units.",
			Params: []registry.Param{
				{Name: "start_x", Type: "number", Description: "X-coordinate of the line start point", Required: true},
				{Name: "start_y", Type: "number", Description: "Y-coordinate of the line start point", Required: true},
				{Name: "start_z", Type: "number", Description: "Z-coordinate of the line start point", Required: true},
				{Name: "end_x", Type: "number", Description: "X-coordinate of the line end point", Required: true},
				{Name: "end_y", Type: "number", Description: "Y-coordinate of the line end point", Required: true},
				{Name: "end_z", Type: "number", Description: "Z-coordinate of the line end point", Required: true},
			},
			Invoke: func(ctx context.Context, args map[string]any) map[string]any {
				return c.Call(ctx, "/draw_line", args)
			},
		})

		r.RegisterTool(registry.ToolDescriptor{
			Name: "get_rhino_info",
			Kind: registry.KindRhino,
			Description: "Get information about the current Rhino session and document: " +
				"document units, object count, and which subsystems are loaded.",
			Invoke: func(ctx context.Context, args map[string]any) map[string]any {
				return c.Call(ctx, "/get_rhino_info", map[string]any{})
			},
		})

		r.RegisterTool(registry.ToolDescriptor{
			Name: "generate_truss",
			Kind: registry.KindRhino,
			Description: "Generate a parametric roof truss in Rhino from an upper chord line, " +
				"a depth, a division count, and a topology " +
				"(Pratt, Warren, Vierendeel, Howe, Brown, or Onedir). " +
				"Previously generated truss members are cleared first unless clear_previous is false.",
			Params: []registry.Param{
				{Name: "upper_line_start_x", Type: "number", Description: "Upper chord start X", Default: 0.0},
				{Name: "upper_line_start_y", Type: "number", Description: "Upper chord start Y", Default: 0.0},
				{Name: "upper_line_start_z", Type: "number", Description: "Upper chord start Z", Default: 0.0},
				{Name: "upper_line_end_x", Type: "number", Description: "Upper chord end X", Default: 10.0},
				{Name: "upper_line_end_y", Type: "number", Description: "Upper chord end Y", Default: 0.0},
				{Name: "upper_line_end_z", Type: "number", Description: "Upper chord end Z", Default: 0.0},
				{Name: "truss_depth", Type: "number", Description: "Depth of the truss below the upper chord", Default: 2.0},
				{Name: "num_divisions", Type: "integer", Description: "Number of bays along the chord (>= 1)", Default: 4},
				{Name: "truss_type", Type: "string", Description: "Topology name; unknown names fall back to Pratt", Default: "Pratt"},
				{Name: "clear_previous", Type: "boolean", Description: "Delete previously generated truss members first", Default: true},
			},
			Invoke: func(ctx context.Context, args map[string]any) map[string]any {
				return c.Call(ctx, "/generate_truss", args)
			},
		})
	}
}
