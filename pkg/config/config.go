// Package config loads and validates the agent's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level agent configuration.
type Config struct {
	// Agent holds identity and diagnostics settings.
	Agent AgentConfig `yaml:"agent"`

	// Trace configures the hardware-operation trace log.
	Trace TraceConfig `yaml:"trace"`

	// Announce configures mDNS advertisement of the agent.
	Announce AnnounceConfig `yaml:"announce"`

	// Warmboot configures warm-restart state persistence.
	Warmboot WarmbootConfig `yaml:"warmboot"`

	// Startup lists objects to provision when the agent starts.
	Startup StartupConfig `yaml:"startup"`
}

// AgentConfig holds identity and diagnostics settings.
type AgentConfig struct {
	// Name is the agent instance name. Defaults to the hostname.
	Name string `yaml:"name"`

	// LogLevel is the slog level: debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
}

// TraceConfig configures the hardware-operation trace log.
type TraceConfig struct {
	// File is the .swlog trace file path. Empty disables tracing.
	File string `yaml:"file"`
}

// AnnounceConfig configures mDNS advertisement.
type AnnounceConfig struct {
	Enabled bool `yaml:"enabled"`

	// Port is the advertised port. Defaults to 9339.
	Port int `yaml:"port"`
}

// WarmbootConfig configures warm-restart state persistence.
type WarmbootConfig struct {
	// StatePath is the JSON state file path. Empty disables warm boot.
	StatePath string `yaml:"state_path"`
}

// StartupConfig lists objects to provision at startup.
type StartupConfig struct {
	Ports []PortSpec `yaml:"ports"`
	Vlans []uint16   `yaml:"vlans"`
}

// PortSpec describes one port to create at startup.
type PortSpec struct {
	Lanes   []uint32 `yaml:"lanes"`
	Speed   uint32   `yaml:"speed"`
	MTU     uint32   `yaml:"mtu"`
	AdminUp bool     `yaml:"admin_up"`
}

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field string
	Msg   string
}

// Error returns the validation failure as "field: msg".
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Agent:    AgentConfig{LogLevel: "info"},
		Announce: AnnounceConfig{Port: 9339},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses and validates YAML configuration bytes. Missing fields take
// their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions and bad values.
func (c *Config) Validate() error {
	switch c.Agent.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "agent.log_level", Msg: fmt.Sprintf("unknown level %q", c.Agent.LogLevel)}
	}

	if c.Announce.Enabled && (c.Announce.Port <= 0 || c.Announce.Port > 65535) {
		return &ValidationError{Field: "announce.port", Msg: fmt.Sprintf("port %d out of range", c.Announce.Port)}
	}

	for i, p := range c.Startup.Ports {
		if len(p.Lanes) == 0 {
			return &ValidationError{Field: fmt.Sprintf("startup.ports[%d].lanes", i), Msg: "at least one lane required"}
		}
		if p.Speed == 0 {
			return &ValidationError{Field: fmt.Sprintf("startup.ports[%d].speed", i), Msg: "speed required"}
		}
	}

	for i, v := range c.Startup.Vlans {
		if v == 0 || v > 4094 {
			return &ValidationError{Field: fmt.Sprintf("startup.vlans[%d]", i), Msg: fmt.Sprintf("vlan id %d out of range", v)}
		}
	}

	return nil
}
