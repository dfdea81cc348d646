package config

import "github.com/hzargar/rhino-gh-bridge/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Bridge: BridgeConfig{
			Host: "localhost",
			Port: 8080,
		},
		MCP: MCPConfig{
			Name: "Rhino-GH-MCP",
			Port: 8090,
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/rhino-bridge.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
