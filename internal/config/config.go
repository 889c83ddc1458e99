// Package config loads deployment settings from defaults, environment
// variables (SHEETPREP_*), and an optional YAML file, in that precedence.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full deployment surface.
type Config struct {
	ListenAddr     string `mapstructure:"listen_addr" yaml:"listen_addr"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	MaxRows        int    `mapstructure:"max_rows" yaml:"max_rows"`
	PreviewRows    int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	// NaNPolicy selects how missing values behave inside statistical
	// routines: "skip" or "propagate".
	NaNPolicy string `mapstructure:"nan_policy" yaml:"nan_policy"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ListenAddr:     ":8080",
		MaxUploadBytes: 16 << 20,
		MaxRows:        100000,
		PreviewRows:    20,
		NaNPolicy:      "skip",
	}
}

// Load reads configuration. cfgFile may be empty, in which case only
// defaults and environment variables apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SHEETPREP")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("max_upload_bytes", def.MaxUploadBytes)
	v.SetDefault("max_rows", def.MaxRows)
	v.SetDefault("preview_rows", def.PreviewRows)
	v.SetDefault("nan_policy", def.NaNPolicy)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("preview_rows must not be negative, got %d", c.PreviewRows)
	}
	switch c.NaNPolicy {
	case "skip", "propagate":
	default:
		return fmt.Errorf("nan_policy must be skip or propagate, got %q", c.NaNPolicy)
	}
	return nil
}

// Save writes the configuration as YAML.
func Save(c *Config, path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
