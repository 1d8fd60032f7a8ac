// Package config provides environment-based configuration for the CLI and server.
package config

import (
	"os"
	"strconv"

	"github.com/jonathan/equity-insight/internal/llm"
)

// Environment variable names
const (
	EnvAPIKey = "GEMINI_API_KEY"
	EnvModel  = "EQUITY_MODEL"
	EnvPort   = "PORT"
)

const defaultPort = 8080

// Config holds runtime configuration resolved from the environment.
// APIKey may be empty here; the research service treats that as a fatal
// configuration error before issuing any network call.
type Config struct {
	APIKey string
	Model  string
	Port   int
}

// Load resolves configuration from the process environment. The .env file,
// if any, is loaded by main before this runs.
func Load() Config {
	cfg := Config{
		APIKey: os.Getenv(EnvAPIKey),
		Model:  os.Getenv(EnvModel),
		Port:   defaultPort,
	}

	if cfg.Model == "" {
		cfg.Model = llm.DefaultModel
	}

	if port := os.Getenv(EnvPort); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Port = n
		}
	}

	return cfg
}

// LLMConfig returns the generation settings for the configured model
func (c Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Model = c.Model
	return cfg
}
