package processor

import (
	"lecture-mind/internal/artifact"
	"lecture-mind/internal/config"
	"lecture-mind/internal/logger"
	"lecture-mind/internal/mindmap"
	"lecture-mind/internal/summarizer"
	"lecture-mind/pkg/executor"
)

type implProcessor struct {
	cfg      *config.Config
	registry *config.Registry
	store    *artifact.Store
	executor executor.Executor
	logger   logger.Logger
	force    bool

	transcribe StageRunner
	summarize  StageRunner
	mindmap    StageRunner
	notes      StageRunner
	faq        StageRunner
}

// Option customizes Processor creation
type Option func(*implProcessor)

// WithForce makes every stage recompute even when its artifact already exists
func WithForce(force bool) Option {
	return func(p *implProcessor) {
		p.force = force
	}
}

// New creates a Processor with the production stage runners wired in
func New(cfg *config.Config, registry *config.Registry, store *artifact.Store, exec executor.Executor, log logger.Logger, opts ...Option) Processor {
	p := &implProcessor{
		cfg:      cfg,
		registry: registry,
		store:    store,
		executor: exec,
		logger:   log,

		transcribe: newWhisperRunner(store, exec),
		summarize:  summarizer.New(summarizer.KindSummary, cfg.Gemini.APIKeys, store, log),
		mindmap:    mindmap.New(exec, store, log),
		notes:      summarizer.New(summarizer.KindNotes, cfg.Gemini.APIKeys, store, log),
		faq:        summarizer.New(summarizer.KindFAQ, cfg.Gemini.APIKeys, store, log),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}
