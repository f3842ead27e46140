// Package config provides configuration for the chat relay.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPersona is the fixed system preamble prepended to every prompt.
const DefaultPersona = "You are AI God, a wise and compassionate guide. " +
	"Answer every question thoughtfully, with warmth and honesty."

// Config holds the relay configuration. It is loaded once at startup and
// never mutated afterwards; everything downstream receives it explicitly at
// construction time.
type Config struct {
	// Server settings
	HTTPPort int `yaml:"http_port"`

	// Transcript store: "sqlite" (default) or "postgres".
	DatabaseDriver string `yaml:"database_driver"`
	DatabaseURL    string `yaml:"database_url"`

	// Completion endpoint
	CompletionURL    string  `yaml:"completion_url"`
	CompletionAPIKey string  `yaml:"completion_api_key"`
	Model            string  `yaml:"model"`
	Temperature      float64 `yaml:"temperature"`
	// CompletionTimeout appears in YAML as completion_timeout_ms.
	CompletionTimeout time.Duration `yaml:"-"`

	// Context assembly
	Persona       string `yaml:"persona"`
	HistoryWindow int    `yaml:"history_window"`

	// Observability
	MetricsNamespace string `yaml:"metrics_namespace"`

	// Transcript access policy; empty means the built-in default.
	PolicyFile string `yaml:"policy_file"`
}

// Load builds configuration from defaults, then an optional YAML file named
// by GODCHAT_CONFIG, then environment variables. Env wins over file.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:          8080,
		DatabaseDriver:    "sqlite",
		DatabaseURL:       "file:godchat.db?cache=shared&mode=rwc",
		CompletionURL:     "https://api.openai.com",
		Model:             "gpt-4o",
		Temperature:       0.7,
		CompletionTimeout: 60 * time.Second,
		Persona:           DefaultPersona,
		HistoryWindow:     10,
		MetricsNamespace:  "godchat",
	}

	if path := os.Getenv("GODCHAT_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadEnv()

	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var file struct {
		Config              `yaml:",inline"`
		CompletionTimeoutMS int `yaml:"completion_timeout_ms"`
	}
	file.Config = *c
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	*c = file.Config
	if file.CompletionTimeoutMS > 0 {
		c.CompletionTimeout = time.Duration(file.CompletionTimeoutMS) * time.Millisecond
	}
	return nil
}

func (c *Config) loadEnv() {
	c.HTTPPort = getEnvInt("HTTP_PORT", c.HTTPPort)
	c.DatabaseDriver = getEnv("DATABASE_DRIVER", c.DatabaseDriver)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.CompletionURL = getEnv("COMPLETION_URL", c.CompletionURL)
	c.CompletionAPIKey = getEnv("COMPLETION_API_KEY", c.CompletionAPIKey)
	c.Model = getEnv("COMPLETION_MODEL", c.Model)
	c.Temperature = getEnvFloat("COMPLETION_TEMPERATURE", c.Temperature)
	c.CompletionTimeout = time.Duration(getEnvInt("COMPLETION_TIMEOUT_MS", int(c.CompletionTimeout/time.Millisecond))) * time.Millisecond
	c.Persona = getEnv("PERSONA", c.Persona)
	c.HistoryWindow = getEnvInt("HISTORY_WINDOW", c.HistoryWindow)
	c.MetricsNamespace = getEnv("METRICS_NAMESPACE", c.MetricsNamespace)
	c.PolicyFile = getEnv("POLICY_FILE", c.PolicyFile)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
