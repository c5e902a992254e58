package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{
					Videos:  "data/videos",
					Outputs: "data/outputs",
				},
				Models: ModelsConfig{
					Transcription: "whisper_base",
					Summarization: "gemini_flash",
				},
			},
			wantErr: false,
		},
		{
			name: "missing videos path",
			config: Config{
				Paths: PathsConfig{
					Outputs: "data/outputs",
				},
				Models: ModelsConfig{
					Transcription: "whisper_base",
					Summarization: "gemini_flash",
				},
			},
			wantErr: true,
		},
		{
			name: "missing transcription model",
			config: Config{
				Paths: PathsConfig{
					Videos:  "data/videos",
					Outputs: "data/outputs",
				},
				Models: ModelsConfig{
					Summarization: "gemini_flash",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Paths: PathsConfig{
			Videos:  "data/videos",
			Outputs: "data/outputs",
		},
		Models: ModelsConfig{
			Transcription: "whisper_base",
			Summarization: "gemini_flash",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.FFmpeg.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", cfg.FFmpeg.SampleRate)
	}
	if cfg.Models.TextGeneration != "gemini_flash" {
		t.Errorf("TextGeneration = %q, want fallback to summarization model", cfg.Models.TextGeneration)
	}
	if cfg.Paths.Audios != "data/audios" {
		t.Errorf("Audios = %q, want default", cfg.Paths.Audios)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
paths:
  videos: "data/videos"
  audios: "data/audios"
  outputs: "data/outputs"

models:
  transcription: "whisper_base"
  summarization: "gemini_flash"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.Videos != "data/videos" {
		t.Errorf("Videos = %v, want %v", cfg.Paths.Videos, "data/videos")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %v, want debug", cfg.Logging.Level)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
