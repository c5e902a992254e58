package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	Models  ModelsConfig  `yaml:"models"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Logging LoggingConfig `yaml:"logging"`
}

type PathsConfig struct {
	Videos   string `yaml:"videos"`
	Audios   string `yaml:"audios"`
	Outputs  string `yaml:"outputs"`
	Profiles string `yaml:"profiles"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
	AudioCodec string `yaml:"audio_codec"`
}

// ModelsConfig selects which profile each pipeline stage uses by default.
type ModelsConfig struct {
	Transcription  string `yaml:"transcription"`
	Summarization  string `yaml:"summarization"`
	TextGeneration string `yaml:"text_generation"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads and validates the application configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Allow ${VAR} references for secrets such as API keys.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.Videos == "" {
		return fmt.Errorf("paths.videos is required")
	}
	if c.Paths.Outputs == "" {
		return fmt.Errorf("paths.outputs is required")
	}
	if c.Models.Transcription == "" {
		return fmt.Errorf("models.transcription is required")
	}
	if c.Models.Summarization == "" {
		return fmt.Errorf("models.summarization is required")
	}

	if c.Paths.Audios == "" {
		c.Paths.Audios = "data/audios"
	}
	if c.Paths.Profiles == "" {
		c.Paths.Profiles = "configs/models.yaml"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 1
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "pcm_s16le"
	}
	if c.Models.TextGeneration == "" {
		c.Models.TextGeneration = c.Models.Summarization
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
