package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	HuggingFace struct {
		BaseURL string        `yaml:"base_url"`
		Token   string        `yaml:"token"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"huggingface"`

	Models struct {
		// Classifier is the text-classification model identifier.
		Classifier string `yaml:"classifier"`
		// Image is the primary text-to-image model identifier.
		Image string `yaml:"image"`
		// ImageFallback is the faster, lower-fidelity model used by the
		// final generation tier.
		ImageFallback string `yaml:"image_fallback"`
	} `yaml:"models"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Set defaults
	if config.Server.Port == "" {
		config.Server.Port = "8000"
	}

	if config.HuggingFace.BaseURL == "" {
		config.HuggingFace.BaseURL = "https://api-inference.huggingface.co"
	}

	if config.HuggingFace.Timeout == 0 {
		config.HuggingFace.Timeout = 120 * time.Second
	}

	if config.Models.Classifier == "" {
		config.Models.Classifier = "j-hartmann/emotion-english-distilroberta-base"
	}

	if config.Models.Image == "" {
		config.Models.Image = "black-forest-labs/FLUX.1-dev"
	}

	if config.Models.ImageFallback == "" {
		config.Models.ImageFallback = "black-forest-labs/FLUX.1-schnell"
	}

	if config.Database.Path == "" {
		config.Database.Path = "./data/novavision.db"
	}

	// Expand environment variables in the API token
	config.HuggingFace.Token = os.ExpandEnv(config.HuggingFace.Token)

	return config, nil
}
