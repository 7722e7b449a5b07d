// Package config holds application configuration: defaults, an optional
// YAML file, then environment variable overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// HTTPAddr is the listen address of the API server.
	HTTPAddr string `yaml:"http_addr"`

	// AllowedOrigin is the frontend origin permitted by CORS.
	AllowedOrigin string `yaml:"allowed_origin"`

	// MetricsNamespace prefixes all Prometheus metric names.
	MetricsNamespace string `yaml:"metrics_namespace"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the built-in defaults after loading any .env
// file in the working directory.
func DefaultConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:         ":8000",
		AllowedOrigin:    "http://localhost:3000",
		MetricsNamespace: "findash",
		Debug:            false,
	}
	cfg.applyEnv()
	return cfg
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FINDASH_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("FINDASH_ALLOWED_ORIGIN"); v != "" {
		c.AllowedOrigin = v
	}
	if v := os.Getenv("FINDASH_METRICS_NAMESPACE"); v != "" {
		c.MetricsNamespace = v
	}
	if v := os.Getenv("FINDASH_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}
