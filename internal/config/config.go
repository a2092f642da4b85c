package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Threshold source modes.
const (
	ThresholdsFixed     = "fixed"     // published derivation-cohort constants
	ThresholdsReference = "reference" // quantiles of a reference cohort file
)

// Config holds all runtime configuration for an mlcds process.
type Config struct {
	ModelPath      string   `yaml:"model_path"`      // serialized XGBoost JSON artifact
	ReferencePath  string   `yaml:"reference_path"`  // reference cohort parquet (reference mode)
	ThresholdsMode string   `yaml:"thresholds_mode"` // "fixed" or "reference"
	Listen         string   `yaml:"listen"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	LogFormat      string   // "text" or "json"
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	ModelPath      string   `yaml:"model_path"`
	ReferencePath  string   `yaml:"reference_path"`
	ThresholdsMode string   `yaml:"thresholds_mode"`
	Listen         string   `yaml:"listen"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values already set (by flags) win over file values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.ModelPath == "" {
		c.ModelPath = yc.ModelPath
	}
	if c.ReferencePath == "" {
		c.ReferencePath = yc.ReferencePath
	}
	if c.ThresholdsMode == "" {
		c.ThresholdsMode = yc.ThresholdsMode
	}
	if c.Listen == "" {
		c.Listen = yc.Listen
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = yc.AllowedOrigins
	}
	return nil
}

// Validate checks the artifact configuration shared by all scoring commands.
func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("--model or MLCDS_MODEL is required")
	}
	if _, err := os.Stat(c.ModelPath); err != nil {
		return fmt.Errorf("model artifact not accessible: %w", err)
	}
	switch c.ThresholdsMode {
	case "", ThresholdsFixed:
		c.ThresholdsMode = ThresholdsFixed
	case ThresholdsReference:
		if c.ReferencePath == "" {
			return fmt.Errorf("--reference is required when --thresholds-mode=reference")
		}
		if _, err := os.Stat(c.ReferencePath); err != nil {
			return fmt.Errorf("reference cohort not accessible: %w", err)
		}
	default:
		return fmt.Errorf("unknown thresholds mode %q (want %q or %q)",
			c.ThresholdsMode, ThresholdsFixed, ThresholdsReference)
	}
	return nil
}

// ValidateServe checks serve-specific fields on top of Validate.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Listen == "" {
		return fmt.Errorf("--listen is required")
	}
	return nil
}
