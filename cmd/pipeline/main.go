package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lecture-mind/internal/artifact"
	"lecture-mind/internal/config"
	"lecture-mind/internal/logger"
	"lecture-mind/internal/processor"
	"lecture-mind/internal/watcher"
	"lecture-mind/pkg/executor"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	video := flag.String("video", "", "path to a video file to process")
	clean := flag.String("clean", "", "clean outputs before processing: 'video' (this video only) or 'all'")
	force := flag.Bool("force", false, "recompute stages even when their artifacts exist")
	watch := flag.Bool("watch", false, "watch the input directory and process new videos")
	flag.Parse()

	ctx := context.Background()
	videos := collectVideos(*video, flag.Args())

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var log logger.Logger
	if cfg.Logging.File != "" {
		log = logger.NewWithFile(cfg.Logging.Level, cfg.Logging.File)
	} else {
		log = logger.New(cfg.Logging.Level)
	}

	registry, err := config.LoadRegistry(cfg.Paths.Profiles)
	if err != nil {
		log.Error(ctx, "Failed to load model profiles: %v", err)
		os.Exit(1)
	}

	store := artifact.NewStore(cfg.Paths.Videos, cfg.Paths.Audios, cfg.Paths.Outputs)
	if err := store.EnsureDirs(); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	switch *clean {
	case "":
	case artifact.CleanAll:
		if err := store.Clean(ctx, artifact.CleanAll, log); err != nil {
			log.Error(ctx, "Clean failed: %v", err)
			os.Exit(1)
		}
		log.Info(ctx, "Cleaned all output artifacts")
	case "video":
		if len(videos) == 0 {
			fmt.Fprintln(os.Stderr, "--clean video requires at least one video argument")
			os.Exit(1)
		}
		for _, v := range videos {
			key := artifact.VideoKey(v)
			if err := store.Clean(ctx, key, log); err != nil {
				log.Error(ctx, "Clean %s failed: %v", key, err)
				os.Exit(1)
			}
			log.Info(ctx, "Cleaned artifacts for %s", key)
		}
	default:
		fmt.Fprintf(os.Stderr, "invalid --clean value %q, want 'video' or 'all'\n", *clean)
		os.Exit(1)
	}

	proc := processor.New(cfg, registry, store, executor.New(), log, processor.WithForce(*force))

	if *watch {
		runWatch(ctx, cfg, proc, log)
		return
	}

	if len(videos) == 0 {
		if *clean != "" {
			return
		}
		fmt.Fprintln(os.Stderr, "usage: pipeline [flags] [--video <path>] <video>...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Videos are processed strictly one at a time; one video's failure never
	// aborts the others' runs.
	failed := 0
	for _, videoPath := range videos {
		if err := proc.Process(ctx, videoPath); err != nil {
			log.Error(ctx, "Processing %s failed: %v", videoPath, err)
			failed++
		}
	}

	if failed > 0 {
		log.Error(ctx, "%d of %d videos failed", failed, len(videos))
		os.Exit(1)
	}
}

// collectVideos merges the --video flag with positional video arguments. The
// flag value, when set, is processed first.
func collectVideos(flagVideo string, args []string) []string {
	if flagVideo == "" {
		return args
	}
	return append([]string{flagVideo}, args...)
}

func runWatch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) {
	w, err := watcher.New(cfg.Paths.Videos, proc.Process, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Pipeline ready, monitoring %s. Press Ctrl+C to stop", cfg.Paths.Videos)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	cancel()
	log.Info(ctx, "Pipeline stopped")
}
