package tools

import (
	"context"

	"github.com/hzargar/rhino-gh-bridge/internal/client"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

func registerGrasshopperTools(c *client.Client) func(*registry.Registry) {
	return func(r *registry.Registry) {
		r.RegisterTool(registry.ToolDescriptor{
			Name: "list_grasshopper_sliders",
			Kind: registry.KindGrasshopper,
			Description: "List all number slider components in the current Grasshopper definition " +
				"with their names, bounds, and current values. " +
				"Use this to discover what sliders are available for modification.",
			Invoke: func(ctx context.Context, args map[string]any) map[string]any {
				return c.Call(ctx, "/list_sliders", map[string]any{})
			},
		})

		r.RegisterTool(registry.ToolDescriptor{
			Name: "set_grasshopper_slider",
			Kind: registry.KindGrasshopper,
			Description: "Change the value of a Grasshopper slider component by name. " +
				"Values outside the slider's bounds are clamped. " +
				"Use 'list_grasshopper_sliders' first to see available sliders.",
			Params: []registry.Param{
				{Name: "slider_name", Type: "string", Description: "The name/nickname of the slider component", Required: true},
				{Name: "new_value", Type: "number", Description: "The new value to set", Required: true},
			},
			Invoke: func(ctx context.Context, args map[string]any) map[string]any {
				return c.Call(ctx, "/set_slider", args)
			},
		})

		r.RegisterTool(registry.ToolDescriptor{
			Name: "set_grasshopper_sliders",
			Kind: registry.KindGrasshopper,
			Description: "Set multiple Grasshopper sliders in one batch. " +
				"The solver is suspended for the whole batch and recomputes once at the end. " +
				"Items that fail (unknown slider, non-numeric value) are reported per item " +
				"without aborting the rest of the batch.",
			Params: []registry.Param{
				{Name: "updates", Type: "object", Description: "Map of slider name to new numeric value", Required: true},
			},
			Invoke: func(ctx context.Context, args map[string]any) map[string]any {
				return c.Call(ctx, "/set_sliders", args)
			},
		})

		r.RegisterTool(registry.ToolDescriptor{
			Name: "get_canvas_context",
			Kind: registry.KindGrasshopper,
			Description: "Inspect the Grasshopper canvas: sliders, panels, value lists, and other " +
				"components, plus heuristic guesses about what each slider controls. " +
				"The purpose guesses are hints inferred from names and nearby annotations, not facts.",
			Invoke: func(ctx context.Context, args map[string]any) map[string]any {
				return c.Call(ctx, "/canvas_context", map[string]any{})
			},
		})
	}
}
