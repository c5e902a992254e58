package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lecture-mind/internal/artifact"
	"lecture-mind/internal/config"
	"lecture-mind/internal/logger"
	"lecture-mind/internal/summarizer"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	transcriptPath := flag.String("transcript", "", "path to transcript artifact to summarize")
	modelID := flag.String("model", "", "summarization model id (defaults to config)")
	flag.Parse()

	if *transcriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: summarize --transcript <path> [--model <id>]")
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
		id = cfg.Models.Summarization
	}
	profile, err := registry.Resolve(id)
	if err != nil {
		log.Error(ctx, "Resolve model %q: %v", id, err)
		os.Exit(1)
	}
	if profile.Type != config.StageTypeSummarization {
		log.Error(ctx, "Model %q has type %s, want summarization", id, profile.Type)
		os.Exit(1)
	}

	store := artifact.NewStore(cfg.Paths.Videos, cfg.Paths.Audios, cfg.Paths.Outputs)
	if err := store.EnsureDirs(); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	runner := summarizer.New(summarizer.KindSummary, cfg.Gemini.APIKeys, store, log)
	outputPath, err := runner.Run(ctx, *transcriptPath, profile)
	if err != nil {
		log.Error(ctx, "Summarization failed: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Summarization complete: %s", outputPath)
}
