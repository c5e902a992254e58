package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lecture-mind/internal/artifact"
	"lecture-mind/internal/config"
	"lecture-mind/internal/logger"
	"lecture-mind/internal/processor"
	"lecture-mind/pkg/executor"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	audioPath := flag.String("audio", "", "path to audio artifact to transcribe")
	modelID := flag.String("model", "", "transcription model id (defaults to config)")
	flag.Parse()

	if *audioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: transcribe --audio <path> [--model <id>]")
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	registry, err := config.LoadRegistry(cfg.Paths.Profiles)
	if err != nil {
		log.Error(ctx, "Failed to load model profiles: %v", err)
		os.Exit(1)
	}

	id := *modelID
	if id == "" {
		id = cfg.Models.Transcription
	}
	profile, err := registry.Resolve(id)
	if err != nil {
		log.Error(ctx, "Resolve model %q: %v", id, err)
		os.Exit(1)
	}
	if profile.Type != config.StageTypeTranscription {
		log.Error(ctx, "Model %q has type %s, want transcription", id, profile.Type)
		os.Exit(1)
	}

	store := artifact.NewStore(cfg.Paths.Videos, cfg.Paths.Audios, cfg.Paths.Outputs)
	if err := store.EnsureDirs(); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	runner := processor.NewTranscriptionRunner(store, executor.New())
	outputPath, err := runner.Run(ctx, *audioPath, profile)
	if err != nil {
		log.Error(ctx, "Transcription failed: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Transcription complete: %s", outputPath)
}
