package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler is called for each new video file detected in the input directory
type Handler func(ctx context.Context, videoPath string) error
