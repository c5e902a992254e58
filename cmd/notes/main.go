package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lecture-mind/internal/artifact"
	"lecture-mind/internal/config"
	"lecture-mind/internal/logger"
	"lecture-mind/internal/mindmap"
	"lecture-mind/internal/summarizer"
	"lecture-mind/pkg/executor"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	summaryPath := flag.String("summary", "", "path to summary artifact to generate from")
	modelID := flag.String("model", "", "text generation model id (defaults to config)")
	flag.Parse()

	if *summaryPath == "" {
		fmt.Fprintln(os.Stderr, "usage: notes --summary <path> [--model <id>]")
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
		id = cfg.Models.TextGeneration
	}
	profile, err := registry.Resolve(id)
	if err != nil {
		log.Error(ctx, "Resolve model %q: %v", id, err)
		os.Exit(1)
	}
	if profile.Type != config.StageTypeTextGeneration && profile.Type != config.StageTypeSummarization {
		log.Error(ctx, "Model %q has type %s, want text_generation", id, profile.Type)
		os.Exit(1)
	}

	store := artifact.NewStore(cfg.Paths.Videos, cfg.Paths.Audios, cfg.Paths.Outputs)
	if err := store.EnsureDirs(); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	mapPath, err := mindmap.New(exec, store, log).Run(ctx, *summaryPath, profile)
	if err != nil {
		log.Error(ctx, "Mind map generation failed: %v", err)
		os.Exit(1)
	}
	log.Info(ctx, "Mind map saved: %s", mapPath)

	notesPath, err := summarizer.New(summarizer.KindNotes, cfg.Gemini.APIKeys, store, log).Run(ctx, *summaryPath, profile)
	if err != nil {
		log.Error(ctx, "Notes generation failed: %v", err)
		os.Exit(1)
	}
	log.Info(ctx, "Notes saved: %s", notesPath)

	faqPath, err := summarizer.New(summarizer.KindFAQ, cfg.Gemini.APIKeys, store, log).Run(ctx, *summaryPath, profile)
	if err != nil {
		log.Error(ctx, "FAQ generation failed: %v", err)
		os.Exit(1)
	}
	log.Info(ctx, "FAQ saved: %s", faqPath)
}
