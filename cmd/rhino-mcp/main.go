package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hzargar/rhino-gh-bridge/internal/client"
	"github.com/hzargar/rhino-gh-bridge/internal/common"
	"github.com/hzargar/rhino-gh-bridge/internal/config"
	"github.com/hzargar/rhino-gh-bridge/internal/mcpserver"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
	"github.com/hzargar/rhino-gh-bridge/internal/tools"
)

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for desktop MCP clients)")
	configFile := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Print version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("rhino-mcp version %s\n", config.GetVersion())
		os.Exit(0)
	}

	var paths []string
	if *configFile != "" {
		paths = append(paths, *configFile)
	}
	cfg, err := config.LoadFromFiles(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Stdout carries the protocol when running over stdio, so console
	// logging has to be dropped in that mode.
	if *stdio {
		cfg.Logging.Outputs = []string{"file"}
		if cfg.Logging.FilePath == "" {
			cfg.Logging.FilePath = "logs/rhino-mcp.log"
		}
	}
	logger := common.NewLoggerFromConfig(cfg.Logging)

	c := client.New(cfg.BridgeURL(), logger)

	reg := registry.New(logger)
	result := reg.Discover(tools.Modules(c)...)
	for name, loadErr := range result.Failed {
		logger.Warn().Str("module", name).Str("error", loadErr.Error()).Msg("tool module failed to load")
	}
	logger.Info().
		Int("modules", len(result.Loaded)).
		Int("tools", len(reg.Tools())).
		Str("bridge_url", cfg.BridgeURL()).
		Msg("tool modules loaded")

	// A down bridge is not fatal: tools report unreachability in-band, and
	// the bridge may come up inside Rhino after this process starts.
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	status := c.Status(ctx)
	cancel()
	if ok, _ := status["status"].(string); ok == "running" {
		logger.Info().Msg("bridge server reachable")
	} else {
		logger.Warn().Str("bridge_url", cfg.BridgeURL()).Msg("bridge server not reachable at startup")
	}

	mcpServer := mcpserver.New(cfg, reg, logger)

	if *stdio {
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	addr := fmt.Sprintf(":%d", cfg.MCP.Port)
	logger.Info().Str("addr", addr).Msg("starting MCP streamable HTTP server")
	if err := httpServer.Start(addr); err != nil {
		logger.Error().Str("error", err.Error()).Msg("MCP server error")
		os.Exit(1)
	}
}
