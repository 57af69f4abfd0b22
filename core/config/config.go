// Package config loads the optional aw configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/adalundhe/aw/core/storage"
	"gopkg.in/yaml.v3"
)

// Environment overrides; each wins over its config-file counterpart.
const (
	ProviderEnvVar = "AW_PROVIDER"
	ModelEnvVar    = "AW_MODEL"
	WebURLEnvVar   = "AW_WEB_URL"
)

// DefaultWebPort is the local API server port.
const DefaultWebPort = 24377

// Config holds user-tunable settings. Every field has a working default;
// the config file is optional.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Web        WebConfig        `yaml:"web"`
}

// GenerationConfig selects the text-generation provider for summaries.
type GenerationConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// WebConfig holds local API server settings.
type WebConfig struct {
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Generation: GenerationConfig{Provider: "anthropic"},
		Web:        WebConfig{Port: DefaultWebPort},
	}
}

// Load reads <data-root>/config.yaml, layering file values and environment
// overrides onto the defaults. A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	path, err := storage.ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Generation.Provider == "" {
		c.Generation.Provider = Default().Generation.Provider
	}
	if c.Web.Port == 0 {
		c.Web.Port = DefaultWebPort
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(ProviderEnvVar); v != "" {
		c.Generation.Provider = v
	}
	if v := os.Getenv(ModelEnvVar); v != "" {
		c.Generation.Model = v
	}
	if v := os.Getenv(WebURLEnvVar); v != "" {
		c.Web.BaseURL = v
	}
}
