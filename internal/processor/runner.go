package processor

import (
	"lecture-mind/internal/artifact"
	"lecture-mind/pkg/executor"
)

// NewTranscriptionRunner returns the stage runner wrapping the whisper call,
// for callers that invoke the transcription stage on its own.
func NewTranscriptionRunner(store *artifact.Store, exec executor.Executor) StageRunner {
	return newWhisperRunner(store, exec)
}
