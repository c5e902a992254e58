package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"lecture-mind/internal/logger"
)

// videoExtensions are the input formats accepted from the watched directory.
var videoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}

type implWatcher struct {
	inputDir string
	handler  Handler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	queue    chan string
}

// New creates a Watcher over inputDir. Detected videos are handled strictly
// one at a time, in arrival order.
func New(inputDir string, handler Handler, log logger.Logger) (Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := w.Add(inputDir); err != nil {
		w.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  w,
		queue:    make(chan string, 64),
	}, nil
}

// Start begins monitoring the input directory and blocks until ctx is
// cancelled or the watcher fails. One video runs the full pipeline before the
// next is picked up; there is no parallel fan-out.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for new videos (%s)", w.inputDir, strings.Join(videoExtensions, " "))

	go w.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isVideoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New video detected: %s", event.Name)
			select {
			case w.queue <- event.Name:
			default:
				w.logger.Warn(ctx, "Queue full, dropping %s", event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// drain processes queued videos sequentially. A short delay gives the writer
// time to finish placing the file before the pipeline reads it.
func (w *implWatcher) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case videoPath := <-w.queue:
			time.Sleep(500 * time.Millisecond)
			if err := w.handler(ctx, videoPath); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", videoPath, err)
			}
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range videoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}
