// Package mcpserver exposes the registered tool descriptors over the Model
// Context Protocol. Descriptors are translated to MCP tool definitions and
// invocation results are returned as JSON text content.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hzargar/rhino-gh-bridge/internal/common"
	"github.com/hzargar/rhino-gh-bridge/internal/config"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

// New builds an MCP server publishing every tool currently in the registry.
func New(cfg *config.Config, reg *registry.Registry, logger *common.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		cfg.MCP.Name,
		config.GetVersion(),
		server.WithToolCapabilities(true),
	)
	RegisterTools(s, reg, logger)
	return s
}

// RegisterTools adds each registry descriptor to the MCP server.
func RegisterTools(s *server.MCPServer, reg *registry.Registry, logger *common.Logger) {
	for _, td := range reg.Tools() {
		s.AddTool(BuildTool(td), ToolHandler(td, logger))
		logger.Debug().Str("tool", td.Name).Str("kind", string(td.Kind)).Msg("Registered MCP tool")
	}
}

// BuildTool translates a tool descriptor into an MCP tool definition.
func BuildTool(td registry.ToolDescriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(td.Description)}
	for _, p := range td.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(td.Name, opts...)
}

func buildParamOption(p registry.Param) mcp.ToolOption {
	var propOpts []mcp.PropertyOption
	if p.Required {
		propOpts = append(propOpts, mcp.Required())
	}
	if p.Description != "" {
		propOpts = append(propOpts, mcp.Description(p.Description))
	}

	switch p.Type {
	case "number", "integer":
		if d, ok := p.Default.(float64); ok {
			propOpts = append(propOpts, mcp.DefaultNumber(d))
		}
		return mcp.WithNumber(p.Name, propOpts...)
	case "boolean":
		if d, ok := p.Default.(bool); ok {
			propOpts = append(propOpts, mcp.DefaultBool(d))
		}
		return mcp.WithBoolean(p.Name, propOpts...)
	case "array":
		propOpts = append(propOpts, mcp.WithStringItems())
		return mcp.WithArray(p.Name, propOpts...)
	case "object":
		return mcp.WithObject(p.Name, propOpts...)
	default:
		if d, ok := p.Default.(string); ok {
			propOpts = append(propOpts, mcp.DefaultString(d))
		}
		return mcp.WithString(p.Name, propOpts...)
	}
}

// ToolHandler wraps a descriptor's invocation thunk as an MCP handler. The
// bridge reports logical failures inside the envelope, so the handler only
// flags an MCP-level error when the envelope cannot be serialised.
func ToolHandler(td registry.ToolDescriptor, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		if args == nil {
			args = map[string]any{}
		}

		logger.Debug().Str("tool", td.Name).Msg("Invoking tool")
		envelope := td.Invoke(ctx, args)

		body, err := json.Marshal(envelope)
		if err != nil {
			return errorResult(fmt.Sprintf("Error encoding result: %v", err)), nil
		}
		return textResult(string(body)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
