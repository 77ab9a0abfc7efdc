package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries the CLI settings. Values come from an optional YAML file,
// overridden by environment variables.
type Config struct {
	Token        string `yaml:"token"`
	BaseURL      string `yaml:"base_url"`
	Model        string `yaml:"model"`
	WhisperModel string `yaml:"whisper_model"`
	System       string `yaml:"system"`
}

const defaultConfigFile = "deepinfra.yaml"

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	path := os.Getenv("DEEPINFRA_CONFIG")
	if path == "" {
		path = defaultConfigFile
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if os.Getenv("DEEPINFRA_CONFIG") != "" {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg.Token = getEnv("DEEPINFRA_API_TOKEN", cfg.Token)
	cfg.BaseURL = getEnv("DEEPINFRA_BASE_URL", cfg.BaseURL)
	cfg.Model = getEnv("DEEPINFRA_MODEL", cfg.Model)
	cfg.WhisperModel = getEnv("DEEPINFRA_WHISPER_MODEL", cfg.WhisperModel)
	cfg.System = getEnv("DEEPINFRA_SYSTEM_PROMPT", cfg.System)

	if cfg.Token == "" {
		return nil, fmt.Errorf("DEEPINFRA_API_TOKEN is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
