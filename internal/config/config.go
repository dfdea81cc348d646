package config

import (
	"fmt"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hzargar/rhino-gh-bridge/internal/common"
)

// Config represents the application configuration shared by the MCP server
// and the bridge server binaries.
type Config struct {
	Bridge  BridgeConfig         `toml:"bridge"`
	MCP     MCPConfig            `toml:"mcp"`
	Logging common.LoggingConfig `toml:"logging"`
}

// BridgeConfig contains the bridge server's listen address. The same values
// are used by the agent-side transport client as the target address.
type BridgeConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// MCPConfig contains agent-side MCP server settings.
type MCPConfig struct {
	Name string `toml:"name"`
	Port int    `toml:"port"`
}

// BridgeURL returns the base URL of the bridge server.
func (c *Config) BridgeURL() string {
	return fmt.Sprintf("http://%s:%d", c.Bridge.Host, c.Bridge.Port)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files. Missing files are skipped.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies RHINO_* environment variable overrides to config.
// RHINO_BRIDGE_HOST and RHINO_BRIDGE_PORT are the documented way to point the
// agent at a non-default bridge address.
func applyEnvOverrides(config *Config) {
	if host := os.Getenv("RHINO_BRIDGE_HOST"); host != "" {
		config.Bridge.Host = host
	}
	if port := os.Getenv("RHINO_BRIDGE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Bridge.Port = p
		}
	}
	if port := os.Getenv("RHINO_MCP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.MCP.Port = p
		}
	}
	if level := os.Getenv("RHINO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Bridge.Port = port
	}
	if host != "" {
		config.Bridge.Host = host
	}
}
