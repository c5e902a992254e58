package processor

import (
	"context"

	"lecture-mind/internal/config"
)

// Processor defines the interface for running the full pipeline on one video
type Processor interface {
	Process(ctx context.Context, videoPath string) error
}

// StageRunner wraps exactly one external model call: it takes an input
// artifact path plus a resolved model profile and returns the output artifact
// path. On failure no partial artifact is left at the canonical path.
type StageRunner interface {
	Run(ctx context.Context, inputPath string, profile config.ModelProfile) (string, error)
}
