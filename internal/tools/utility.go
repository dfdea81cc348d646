package tools

import (
	"context"
	"encoding/json"

	"github.com/hzargar/rhino-gh-bridge/internal/client"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

func registerUtilityTools(c *client.Client) func(*registry.Registry) {
	return func(r *registry.Registry) {
		r.RegisterTool(registry.ToolDescriptor{
			Name:        "test_echo",
			Kind:        registry.KindUtility,
			Description: "Round-trip a message through the bridge server. Useful for verifying end-to-end connectivity.",
			Params: []registry.Param{
				{Name: "message", Type: "string", Description: "The message to echo back", Default: "Hello from the MCP agent!"},
			},
			Invoke: func(ctx context.Context, args map[string]any) map[string]any {
				if _, ok := args["message"]; !ok {
					args["message"] = "Hello from the MCP agent!"
				}
				return c.Call(ctx, "/utility_echo", args)
			},
		})

		r.RegisterTool(registry.ToolDescriptor{
			Name: "quantify_volume",
			Kind: registry.KindUtility,
			Description: "Compute the volume of a prismatic member from its length and cross-sectional area. " +
				"The multiplication happens agent-side; the bridge formats the result.",
			Params: []registry.Param{
				{Name: "length", Type: "number", Description: "Length of the member", Required: true},
				{Name: "cross_sectional_area", Type: "number", Description: "Cross-sectional area of the member", Required: true},
			},
			Invoke: func(ctx context.Context, args map[string]any) map[string]any {
				length, ok1 := toFloat(args["length"])
				area, ok2 := toFloat(args["cross_sectional_area"])
				if !ok1 || !ok2 {
					return map[string]any{
						"success": false,
						"error":   "length and cross_sectional_area must be numbers",
					}
				}
				return c.Call(ctx, "/quantify_volume", map[string]any{"volume": length * area})
			},
		})

		r.RegisterTool(registry.ToolDescriptor{
			Name:        "test_system_info",
			Kind:        registry.KindUtility,
			Description: "Report runtime and version information from the bridge server process.",
			Invoke: func(ctx context.Context, args map[string]any) map[string]any {
				return c.Call(ctx, "/test_system_info", map[string]any{})
			},
		})
	}
}

// toFloat accepts the numeric shapes JSON decoding can produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
