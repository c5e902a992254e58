package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"lecture-mind/internal/artifact"
	"lecture-mind/internal/config"
	"lecture-mind/internal/logger"
)

// state tracks orchestrator progress through the pipeline for one video.
type state int

const (
	stateExtracting state = iota
	stateTranscribing
	stateSummarizing
	stateGenerating
	stateDone
)

func (s state) String() string {
	switch s {
	case stateExtracting:
		return "Extracting"
	case stateTranscribing:
		return "Transcribing"
	case stateSummarizing:
		return "Summarizing"
	case stateGenerating:
		return "Generating"
	case stateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Process runs the full pipeline for one video: audio extraction,
// transcription, summarization, then mindmap/notes/FAQ generation. A stage is
// skipped when its artifact already exists, unless the processor was created
// with WithForce. On stage failure the remaining stages for this video are
// aborted and a *StageError is returned.
func (p *implProcessor) Process(ctx context.Context, videoPath string) error {
	startTime := time.Now()
	key := artifact.VideoKey(videoPath)

	if err := p.store.EnsureDirs(); err != nil {
		return err
	}

	// Resolve every profile up front so configuration errors abort before
	// any stage runs or any file is written.
	transcribeProfile, err := p.resolveProfile(p.cfg.Models.Transcription, config.StageTypeTranscription)
	if err != nil {
		return err
	}
	summarizeProfile, err := p.resolveProfile(p.cfg.Models.Summarization, config.StageTypeSummarization)
	if err != nil {
		return err
	}
	// Generation accepts a summarization profile too: the default config
	// reuses the summarization model when no dedicated one is set.
	generateProfile, err := p.resolveProfile(p.cfg.Models.TextGeneration, config.StageTypeTextGeneration, config.StageTypeSummarization)
	if err != nil {
		return err
	}

	runLog, err := logger.NewRunLog(p.store.LogsDir(), key, p.logger)
	if err != nil {
		return fmt.Errorf("create run log: %w", err)
	}
	defer runLog.Close()

	runLog.Info(ctx, "========================================")
	runLog.Info(ctx, "Starting pipeline for %s", filepath.Base(videoPath))
	runLog.Info(ctx, "========================================")

	// Extracting
	runLog.Info(ctx, "State: %s", stateExtracting)
	audioPath := p.store.PathFor(key, artifact.StageAudio)
	if !p.skip(ctx, runLog, key, artifact.StageAudio) {
		if audioPath, err = p.extractAudio(ctx, videoPath, key); err != nil {
			return p.fail(ctx, runLog, key, artifact.StageAudio, err)
		}
		runLog.Info(ctx, "Audio extracted: %s", audioPath)
	}

	// Transcribing
	runLog.Info(ctx, "State: %s", stateTranscribing)
	transcriptPath := p.store.PathFor(key, artifact.StageTranscript)
	if !p.skip(ctx, runLog, key, artifact.StageTranscript) {
		if transcriptPath, err = p.transcribe.Run(ctx, audioPath, transcribeProfile); err != nil {
			return p.fail(ctx, runLog, key, artifact.StageTranscript, err)
		}
		runLog.Info(ctx, "Transcript written: %s", transcriptPath)
	}

	// Summarizing
	runLog.Info(ctx, "State: %s", stateSummarizing)
	summaryPath := p.store.PathFor(key, artifact.StageSummary)
	if !p.skip(ctx, runLog, key, artifact.StageSummary) {
		if summaryPath, err = p.summarize.Run(ctx, transcriptPath, summarizeProfile); err != nil {
			return p.fail(ctx, runLog, key, artifact.StageSummary, err)
		}
		runLog.Info(ctx, "Summary written: %s", summaryPath)
	}

	// Generating: mindmap, notes, FAQ all derive from the summary
	runLog.Info(ctx, "State: %s", stateGenerating)
	generators := []struct {
		stage  artifact.Stage
		runner StageRunner
	}{
		{artifact.StageMindmap, p.mindmap},
		{artifact.StageNotes, p.notes},
		{artifact.StageFAQ, p.faq},
	}
	for _, g := range generators {
		if p.skip(ctx, runLog, key, g.stage) {
			continue
		}
		if _, err := g.runner.Run(ctx, summaryPath, generateProfile); err != nil {
			return p.fail(ctx, runLog, key, g.stage, err)
		}
		runLog.Info(ctx, "Stage %s completed: %s", g.stage, p.store.PathFor(key, g.stage))
	}

	runLog.Info(ctx, "State: %s", stateDone)
	runLog.Info(ctx, "Pipeline completed in %s", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// skip reports whether a stage's artifact already exists and recompute is not
// forced. Skipped stages leave no trace beyond a single log line.
func (p *implProcessor) skip(ctx context.Context, runLog logger.Logger, key string, stage artifact.Stage) bool {
	if p.force || !p.store.Exists(key, stage) {
		return false
	}
	runLog.Info(ctx, "Stage %s skipped, artifact exists: %s", stage, p.store.PathFor(key, stage))
	return true
}

// fail records a stage failure in both run logs and wraps it as a StageError.
func (p *implProcessor) fail(ctx context.Context, runLog logger.Logger, key string, stage artifact.Stage, err error) error {
	stageErr := &StageError{Stage: stage, Key: key, Err: err}
	runLog.Error(ctx, "State: Failed(%s): %v", stage, err)
	return stageErr
}

func (p *implProcessor) resolveProfile(id string, want ...config.StageType) (config.ModelProfile, error) {
	profile, err := p.registry.Resolve(id)
	if err != nil {
		return config.ModelProfile{}, err
	}
	for _, t := range want {
		if profile.Type == t {
			return profile, nil
		}
	}
	return config.ModelProfile{}, fmt.Errorf("%w: model %q has type %s, want %s",
		config.ErrInvalidProfile, id, profile.Type, want[0])
}
