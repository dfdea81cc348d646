// Package tools declares the agent-visible tool modules. Each module
// registers tool descriptors whose invocation thunks post to the bridge
// endpoint the paired handler listens on. The endpoint path is the only
// contract shared with the bridge side.
package tools

import (
	"github.com/hzargar/rhino-gh-bridge/internal/client"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

// Modules returns the tool extension modules in load order.
func Modules(c *client.Client) []registry.Module {
	return []registry.Module{
		{Name: "rhino_tools", Register: registerRhinoTools(c)},
		{Name: "grasshopper_tools", Register: registerGrasshopperTools(c)},
		{Name: "utility_tools", Register: registerUtilityTools(c)},
	}
}
