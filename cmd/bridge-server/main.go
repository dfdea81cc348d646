package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hzargar/rhino-gh-bridge/internal/bridge"
	"github.com/hzargar/rhino-gh-bridge/internal/common"
	"github.com/hzargar/rhino-gh-bridge/internal/config"
	"github.com/hzargar/rhino-gh-bridge/internal/handlers"
	"github.com/hzargar/rhino-gh-bridge/internal/host"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles        configPaths
	serverPort         = flag.Int("port", 0, "Bridge port (overrides config)")
	serverHost         = flag.String("host", "", "Bridge host (overrides config)")
	showVersion        = flag.Bool("version", false, "Print version information")
	withoutRhino       = flag.Bool("without-rhino", false, "Simulate a host without Rhino loaded")
	withoutGrasshopper = flag.Bool("without-grasshopper", false, "Simulate a host without Grasshopper loaded")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("bridge-server version %s\n", config.GetVersion())
		os.Exit(0)
	}

	// Auto-discover config file if not specified. Binary-relative paths are
	// tried first so the config is found even when the working directory
	// differs from the binary location.
	if len(configFiles) == 0 {
		for _, path := range configSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				configFiles = append(configFiles, path)
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	config.ApplyFlagOverrides(cfg, *serverPort, *serverHost)

	logger := common.NewLoggerFromConfig(cfg.Logging)

	logger.Info().
		Str("host", cfg.Bridge.Host).
		Int("port", cfg.Bridge.Port).
		Str("config_files", fmt.Sprintf("%v", configFiles)).
		Msg("configuration loaded")

	var hostOpts []host.SimOption
	if *withoutRhino {
		hostOpts = append(hostOpts, host.WithoutRhino())
	}
	if *withoutGrasshopper {
		hostOpts = append(hostOpts, host.WithoutGrasshopper())
	}
	adapter := host.NewSimHost(hostOpts...)

	reg := registry.New(logger)
	result := reg.Discover(handlers.New(adapter, logger).Modules()...)
	for name, loadErr := range result.Failed {
		logger.Warn().Str("module", name).Str("error", loadErr.Error()).Msg("handler module failed to load")
	}
	logger.Info().
		Int("modules", len(result.Loaded)).
		Int("endpoints", len(reg.Handlers())).
		Msg("handler modules loaded")

	srv := bridge.New(cfg, reg, adapter, logger)
	if err := srv.Start(); err != nil {
		logger.Error().Str("error", err.Error()).Msg("bridge failed to start")
		os.Exit(1)
	}

	logger.Info().
		Str("url", fmt.Sprintf("http://%s", srv.Addr())).
		Msg("bridge server ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error().Str("error", err.Error()).Msg("bridge shutdown failed")
	}

	logger.Info().Msg("bridge server stopped")
}

// configSearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths are tried first, with CWD fallbacks after.
func configSearchPaths() []string {
	candidates := []string{
		"rhino-bridge.toml",
		"config/rhino-bridge.toml",
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, "rhino-bridge.toml"),
		filepath.Join(binDir, "config", "rhino-bridge.toml"),
	}
	return append(paths, candidates...)
}
