package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Languages   LanguagesConfig   `yaml:"languages"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Retry       RetryConfig       `yaml:"retry"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type LLMConfig struct {
	Model           string   `yaml:"model"`
	APIKeys         []string `yaml:"api_keys"`
	Temperature     float64  `yaml:"temperature"`
	MaxOutputTokens int      `yaml:"max_output_tokens"`
}

type ChunkerConfig struct {
	MaxTokens          int     `yaml:"max_tokens"`
	MinSegmentDuration float64 `yaml:"min_segment_duration"`
}

type LanguagesConfig struct {
	// TranscriptPrefs is the caption language preference order, best first.
	TranscriptPrefs []string `yaml:"transcript_prefs"`
	Output          string   `yaml:"output"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Threads    int    `yaml:"threads"`
}

type RetryConfig struct {
	MaxAttempts   int `yaml:"max_attempts"`
	BackoffBaseMs int `yaml:"backoff_base_ms"`
	BackoffCapMs  int `yaml:"backoff_cap_ms"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Cache  string `yaml:"cache"`
	Input  string `yaml:"input"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads a YAML config file, applies defaults, and validates. A missing
// file is not an error: the defaults plus GEMINI_API_KEY are enough to run
// against a video that has platform captions.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.LLM.APIKeys) == 0 {
		if env := os.Getenv("GEMINI_API_KEY"); env != "" {
			for _, k := range strings.Split(env, ",") {
				if k = strings.TrimSpace(k); k != "" {
					c.LLM.APIKeys = append(c.LLM.APIKeys, k)
				}
			}
		}
	}

	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxOutputTokens == 0 {
		c.LLM.MaxOutputTokens = 8192
	}
	if c.Chunker.MaxTokens == 0 {
		c.Chunker.MaxTokens = 3000
	}
	if c.Chunker.MaxTokens < 0 {
		return fmt.Errorf("chunker.max_tokens must be positive")
	}
	if c.Chunker.MinSegmentDuration == 0 {
		c.Chunker.MinSegmentDuration = 20.0
	}
	if len(c.Languages.TranscriptPrefs) == 0 {
		c.Languages.TranscriptPrefs = []string{"zh-Hans", "zh-Hant", "zh", "en"}
	}
	if c.Languages.Output == "" {
		c.Languages.Output = "zh"
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.BackoffBaseMs == 0 {
		c.Retry.BackoffBaseMs = 2000
	}
	if c.Retry.BackoffCapMs == 0 {
		c.Retry.BackoffCapMs = 10000
	}
	if c.Retry.BackoffCapMs < c.Retry.BackoffBaseMs {
		return fmt.Errorf("retry.backoff_cap_ms must be >= retry.backoff_base_ms")
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "outputs"
	}
	if c.Paths.Cache == "" {
		c.Paths.Cache = ".cache"
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
