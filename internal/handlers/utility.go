package handlers

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hzargar/rhino-gh-bridge/internal/config"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

// Utility handlers are diagnostic endpoints that exercise the dispatch path
// without touching the host, so they work even when no subsystem is loaded.
func (s *Set) registerUtility(r *registry.Registry) {
	r.RegisterHandler(registry.HandlerDescriptor{
		Endpoint:    "/utility_echo",
		Description: "Echo a message back through the bridge",
		Params: []registry.Param{
			{Name: "message", Type: "string", Description: "The message to echo back"},
		},
		Handle: s.handleEcho,
	})

	r.RegisterHandler(registry.HandlerDescriptor{
		Endpoint:    "/quantify_volume",
		Description: "Report a material volume computed agent-side",
		Params: []registry.Param{
			{Name: "volume", Type: "number", Description: "Precomputed volume", Required: true},
		},
		Handle: s.handleQuantifyVolume,
	})

	r.RegisterHandler(registry.HandlerDescriptor{
		Endpoint:    "/test_system_info",
		Description: "Report the bridge process environment",
		Handle:      s.handleSystemInfo,
	})
}

func (s *Set) handleEcho(ctx context.Context, body map[string]any) (map[string]any, error) {
	message := getString(body, "message", "No message provided")
	return map[string]any{
		"success":          true,
		"original_message": message,
		"echo":             "Echo: " + message,
		"message":          "Utility tool is working correctly!",
	}, nil
}

func (s *Set) handleQuantifyVolume(ctx context.Context, body map[string]any) (map[string]any, error) {
	volume := getFloat(body, "volume", 0)
	return map[string]any{
		"success": true,
		"volume":  volume,
		"message": fmt.Sprintf("Calculated volume: %.2f cubic units.", volume),
	}, nil
}

func (s *Set) handleSystemInfo(ctx context.Context, body map[string]any) (map[string]any, error) {
	return map[string]any{
		"success":        true,
		"go_version":     runtime.Version(),
		"platform":       runtime.GOOS + "/" + runtime.GOARCH,
		"bridge_version": config.GetVersion(),
		"message":        "System info retrieved successfully",
	}, nil
}
