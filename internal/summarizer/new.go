package summarizer

import (
	"lecture-mind/internal/artifact"
	"lecture-mind/internal/logger"
)

type implSummarizer struct {
	kind       Kind
	apiKeys    []string
	currentKey int
	store      *artifact.Store
	logger     logger.Logger
}

// New creates a Runner of the given kind that rotates through the supplied
// Gemini API keys.
func New(kind Kind, apiKeys []string, store *artifact.Store, log logger.Logger) Runner {
	return &implSummarizer{
		kind:    kind,
		apiKeys: apiKeys,
		store:   store,
		logger:  log,
	}
}
