// Package config handles reportgen configuration loading.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/apiverify/reportgen/internal/layout"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Render RenderConfig `yaml:"render"`
	Source SourceConfig `yaml:"source"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`

	// RenderTimeoutSeconds is the wall-clock budget for one render
	// call before the server responds 504.
	RenderTimeoutSeconds int `yaml:"render_timeout_seconds"`
}

// RenderTimeout returns the configured timeout as a duration.
func (s ServerConfig) RenderTimeout() time.Duration {
	return time.Duration(s.RenderTimeoutSeconds) * time.Second
}

// RenderConfig holds layout settings.
type RenderConfig struct {
	// Profile selects the field-detail layout: "full" or "grouped".
	Profile string `yaml:"profile"`

	// ClipLimit bounds cell values, in runes.
	ClipLimit int `yaml:"clip_limit"`

	// WrapEvery is the soft-wrap interval for long tokens.
	WrapEvery int `yaml:"wrap_every"`
}

// SourceConfig holds standalone-mode settings.
type SourceConfig struct {
	// URL is the HTTP endpoint serving the validation JSON. Empty
	// means use the embedded sample.
	URL string `yaml:"url"`

	// Output is the local PDF filename written by the render
	// command.
	Output string `yaml:"output"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                 ":8080",
			RenderTimeoutSeconds: 30,
		},
		Render: RenderConfig{
			Profile:   layout.ProfileFull,
			ClipLimit: 2000,
			WrapEvery: 30,
		},
		Source: SourceConfig{
			Output: "validation_report.pdf",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the renderer cannot honor.
func (c *Config) Validate() error {
	if _, err := layout.ProfileByName(c.Render.Profile); err != nil {
		return err
	}
	if c.Server.RenderTimeoutSeconds <= 0 {
		return fmt.Errorf("server.render_timeout_seconds must be positive, got %d",
			c.Server.RenderTimeoutSeconds)
	}
	return nil
}
