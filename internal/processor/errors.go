package processor

import (
	"fmt"

	"lecture-mind/internal/artifact"
)

// StageError reports the failure of one pipeline stage for one video. It
// aborts the remaining stages of that video only; other videos in the same
// invocation keep their own independent runs.
type StageError struct {
	Stage artifact.Stage
	Key   string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed for %s: %v", e.Stage, e.Key, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
