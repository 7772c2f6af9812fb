// Package config provides configuration management.
//
// Values are layered, lowest precedence first: Default(), then an optional
// YAML or JSON file, then VFXCOST_* environment variables. Nested keys use a
// double underscore, e.g. VFXCOST_PRICING__FPS_POLICY=resolution.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"vfx-cost/core/pricing"
	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
	"vfx-cost/internal/logging"
	"vfx-cost/internal/metrics"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "VFXCOST_"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version" koanf:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing" yaml:"pricing" koanf:"pricing"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output" koanf:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" yaml:"server" koanf:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging" koanf:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// Currency labels every amount; no conversion is performed
	Currency types.Currency `json:"currency" yaml:"currency" koanf:"currency"`

	// FPSPolicy is "subtotal" (60fps adds 20% of the scene) or "resolution"
	// (60fps doubles the resolution surcharge)
	FPSPolicy string `json:"fps_policy" yaml:"fps_policy" koanf:"fps_policy"`

	// BriefMode is "binary" (Clear / Not Clear) or "graded" (None..Hard)
	BriefMode string `json:"brief_mode" yaml:"brief_mode" koanf:"brief_mode"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default report format
	DefaultFormat string `json:"default_format" yaml:"default_format" koanf:"default_format"`

	// ShowDetails lists every driver, including zero lines
	ShowDetails bool `json:"show_details" yaml:"show_details" koanf:"show_details"`

	// NoColor disables ANSI colors in CLI output
	NoColor bool `json:"no_color" yaml:"no_color" koanf:"no_color"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr" koanf:"addr"`

	// MetricsEnabled exposes /metrics
	MetricsEnabled bool `json:"metrics_enabled" yaml:"metrics_enabled" koanf:"metrics_enabled"`

	// WebsocketEnabled exposes /ws/estimate
	WebsocketEnabled bool `json:"websocket_enabled" yaml:"websocket_enabled" koanf:"websocket_enabled"`

	// Metrics names and labels the exported series
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" koanf:"metrics"`
}

// MetricsConfig contains Prometheus naming settings
type MetricsConfig struct {
	Namespace string `json:"namespace" yaml:"namespace" koanf:"namespace"`
	Subsystem string `json:"subsystem" yaml:"subsystem" koanf:"subsystem"`

	// Buckets are latency histogram bounds in milliseconds, in increasing order.
	// Empty keeps the built-in buckets.
	Buckets []float64 `json:"buckets,omitempty" yaml:"buckets,omitempty" koanf:"buckets"`

	// Labels are added to every series
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty" koanf:"labels"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Currency:  types.CurrencyMMK,
			FPSPolicy: string(pricing.FPSPolicySubtotal),
			BriefMode: string(pricing.BriefModeBinary),
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   false,
			NoColor:       false,
		},
		Server: ServerConfig{
			Addr:             ":8080",
			MetricsEnabled:   true,
			WebsocketEnabled: true,
			Metrics: MetricsConfig{
				Namespace: "vfxcost",
				Subsystem: "pricing",
			},
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load layers defaults, the file at path (skipped when empty or missing) and
// the environment, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			// YAML is a superset of JSON, so one parser serves both.
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(errors.TypeConfig, err, "load config file %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.TypeConfig, err, "stat config file %s", path)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "load environment", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "decode config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	if _, err := pricing.ParseFPSPolicy(c.Pricing.FPSPolicy); err != nil {
		return errors.Wrap(errors.TypeConfig, "pricing.fps_policy", err)
	}
	if _, err := pricing.ParseBriefMode(c.Pricing.BriefMode); err != nil {
		return errors.Wrap(errors.TypeConfig, "pricing.brief_mode", err)
	}
	switch c.Output.DefaultFormat {
	case "cli", "json", "markdown", "html":
	default:
		return errors.Newf(errors.TypeConfig, "output.default_format: unknown format %q", c.Output.DefaultFormat)
	}
	if c.Server.Addr == "" {
		return errors.Config("server.addr must not be empty")
	}
	for i, b := range c.Server.Metrics.Buckets {
		if b <= 0 || (i > 0 && b <= c.Server.Metrics.Buckets[i-1]) {
			return errors.Config("server.metrics.buckets must be positive and increasing")
		}
	}
	return nil
}

// MetricsOptions configures a metrics manager from the server section
func (c *Config) MetricsOptions() []metrics.Option {
	return []metrics.Option{
		metrics.WithMetricsEnabled(c.Server.MetricsEnabled),
		metrics.WithNamespace(c.Server.Metrics.Namespace),
		metrics.WithSubsystem(c.Server.Metrics.Subsystem),
		metrics.WithHistogramBuckets(c.Server.Metrics.Buckets),
		metrics.WithConstLabels(c.Server.Metrics.Labels),
	}
}

// RateCard builds the pricing tables selected by this configuration.
// Call Validate first; unknown values fall back to the canonical policies.
func (c *Config) RateCard() *pricing.RateCard {
	policy, _ := pricing.ParseFPSPolicy(c.Pricing.FPSPolicy)
	mode, _ := pricing.ParseBriefMode(c.Pricing.BriefMode)
	return pricing.NewRateCard(
		pricing.WithFPSPolicy(policy),
		pricing.WithBriefMode(mode),
		pricing.WithCurrency(c.Pricing.Currency),
	)
}

// Save saves configuration as YAML
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := c.YAML()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// YAML renders the configuration
func (c *Config) YAML() ([]byte, error) {
	return yamlv3.Marshal(c)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
