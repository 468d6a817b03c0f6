// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// EnvAPIKey names the environment variable holding the Gemini credential.
	EnvAPIKey = "GEMINI_API_KEY"
	// defaultRequestTimeout is the default timeout for model calls.
	defaultRequestTimeout = 600 * time.Second
	// defaultModel is the vision model used when the config names none.
	defaultModel = "gemini-2.0-flash-exp"
	// defaultOllamaURL is the fallback endpoint for the ollama provider.
	defaultOllamaURL = "http://localhost:11434"
)

// Config represents the top-level application configuration. The
// provider credential is read from the environment only and never
// serialized; every component receives the config explicitly at
// construction rather than reading ambient state.
type Config struct {
	Provider       string `json:"provider,omitempty"`
	Model          string `json:"model,omitempty"`
	JudgeModel     string `json:"judgeModel,omitempty"`
	OllamaURL      string `json:"ollamaUrl,omitempty"`
	TimeoutSeconds int    `json:"timeout,omitempty" mapstructure:"timeout"`
	Debug          bool   `json:"debug"`
	OutputPath     string `json:"output,omitempty" mapstructure:"output"`
	LogFile        string `json:"logFile,omitempty"`
	APIKey         string `json:"-" mapstructure:"-"`
	ConfigPath     string `json:"-" mapstructure:"-"`
}

// RequestTimeout returns the timeout duration for model calls, falling
// back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ProviderName returns the configured provider, defaulting to gemini.
func (c Config) ProviderName() string {
	if p := strings.TrimSpace(strings.ToLower(c.Provider)); p != "" {
		return p
	}
	return "gemini"
}

// ModelName returns the vision model identifier, applying the default
// when unset.
func (c Config) ModelName() string {
	if m := strings.TrimSpace(c.Model); m != "" {
		return m
	}
	return defaultModel
}

// JudgeModelName returns the model used for accuracy evaluation. The
// judge defaults to the same class of model as the assessors.
func (c Config) JudgeModelName() string {
	if m := strings.TrimSpace(c.JudgeModel); m != "" {
		return m
	}
	return c.ModelName()
}

// OllamaHost returns the ollama endpoint, applying the default if unset.
func (c Config) OllamaHost() string {
	if u := strings.TrimSpace(c.OllamaURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return defaultOllamaURL
}

// LogFilePath returns the path to the application log file, applying a
// default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "hazardbench.log"
}

// OutputFilePath returns where the benchmark report is written.
func (c Config) OutputFilePath() string {
	if path := c.OutputPath; strings.TrimSpace(path) != "" {
		return path
	}
	return "hazardData/benchmark_results.json"
}

// Load reads the application configuration. The config file is optional;
// a missing file at the default path yields defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultConfigPath {
			config = Config{}
		} else {
			return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
		}
	}

	config.ConfigPath = path
	config.APIKey = LoadAPIKey()
	return config, nil
}

// LoadAPIKey reads the provider credential from a local .env file or the
// process environment. The .env file is consulted first so the key can
// live next to the checkout, mirroring how it is usually supplied.
func LoadAPIKey() string {
	_ = godotenv.Load()
	return strings.TrimSpace(os.Getenv(EnvAPIKey))
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
