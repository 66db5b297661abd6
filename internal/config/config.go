// Package config loads sketchbook settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the commands need to build providers and storage.
type Config struct {
	Describe DescribeConfig `yaml:"describe"`
	Image    ImageConfig    `yaml:"image"`

	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	GeminiAPIKey  string `yaml:"gemini_api_key"`
	OllamaURL     string `yaml:"ollama_url"`

	// WorkDir holds images generated as local files.
	WorkDir string `yaml:"work_dir"`
	// SaveDir is where saved gallery images are written.
	SaveDir string `yaml:"save_dir"`

	HTTPTimeout time.Duration `yaml:"http_timeout"`
}

// DescribeConfig selects the provider used to describe reference images.
type DescribeConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// ImageConfig selects the image generator and its fixed options.
type ImageConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	Size     string `yaml:"size"`
	Quality  string `yaml:"quality"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Describe: DescribeConfig{
			Provider: "openai",
		},
		Image: ImageConfig{
			Provider: "openai",
			Size:     "1024x1024",
			Quality:  "hd",
		},
		OllamaURL:   "http://localhost:11434",
		WorkDir:     "./work",
		SaveDir:     "./work",
		HTTPTimeout: 60 * time.Second,
	}
}

// Load reads path (skipped when empty) over the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Describe.Provider = getEnv("DESCRIBE_PROVIDER", c.Describe.Provider)
	c.Describe.Model = getEnv("DESCRIBE_MODEL", c.Describe.Model)
	c.Image.Provider = getEnv("IMAGE_PROVIDER", c.Image.Provider)
	c.Image.Model = getEnv("IMAGE_MODEL", c.Image.Model)
	c.Image.Size = getEnv("IMAGE_SIZE", c.Image.Size)
	c.Image.Quality = getEnv("IMAGE_QUALITY", c.Image.Quality)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.GeminiAPIKey)
	c.OllamaURL = getEnv("OLLAMA_URL", c.OllamaURL)
	c.WorkDir = getEnv("WORK_DIR", c.WorkDir)
	c.SaveDir = getEnv("SAVE_DIR", c.SaveDir)
	c.HTTPTimeout = time.Second * time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", int(c.HTTPTimeout/time.Second)))
}

// Validate checks provider names and required directories.
func (c *Config) Validate() error {
	switch c.Describe.Provider {
	case "openai", "ollama", "gemini":
	default:
		return fmt.Errorf("unsupported describe provider: %q", c.Describe.Provider)
	}
	switch c.Image.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported image provider: %q", c.Image.Provider)
	}
	if c.WorkDir == "" {
		return fmt.Errorf("work_dir is required")
	}
	if c.SaveDir == "" {
		return fmt.Errorf("save_dir is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
