// Package artifact manages the fixed on-disk layout of pipeline outputs.
// Every artifact is addressed deterministically by (video key, stage); the
// existence of the file at that path is what the orchestrator consults to
// decide skip-vs-recompute.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stage identifies one pipeline step and its artifact type.
type Stage int

const (
	StageAudio Stage = iota
	StageTranscript
	StageSummary
	StageMindmap
	StageNotes
	StageFAQ
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageAudio, StageTranscript, StageSummary, StageMindmap, StageNotes, StageFAQ}

func (s Stage) String() string {
	switch s {
	case StageAudio:
		return "audio"
	case StageTranscript:
		return "transcript"
	case StageSummary:
		return "summary"
	case StageMindmap:
		return "mindmap"
	case StageNotes:
		return "notes"
	case StageFAQ:
		return "faq"
	default:
		return "unknown"
	}
}

// Store maps (video key, stage) pairs to canonical artifact paths under a
// fixed directory layout. The layout mirrors the original data tree:
//
//	<audios>/<key>.wav
//	<outputs>/transcripts/<key>.txt
//	<outputs>/summaries/<key>.md
//	<outputs>/mindmaps/<key>.png
//	<outputs>/notes/<key>_notes.md
//	<outputs>/faqs/<key>_faqs.md
//	<outputs>/logs/<key>_<ts>.log
type Store struct {
	audiosDir  string
	outputsDir string
	videosDir  string
}

// NewStore creates a Store over the given directories. videosDir is only
// recorded so Clean can refuse to ever touch it.
func NewStore(videosDir, audiosDir, outputsDir string) *Store {
	return &Store{
		videosDir:  videosDir,
		audiosDir:  audiosDir,
		outputsDir: outputsDir,
	}
}

// EnsureDirs creates every artifact directory that does not exist yet.
func (s *Store) EnsureDirs() error {
	dirs := []string{s.videosDir, s.audiosDir, s.LogsDir()}
	for _, stage := range Stages {
		dirs = append(dirs, s.stageDir(stage))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// PathFor returns the canonical artifact path for (key, stage). Pure function
// of its inputs, no I/O.
func (s *Store) PathFor(key string, stage Stage) string {
	return filepath.Join(s.stageDir(stage), key+stageSuffix(stage))
}

// Exists reports whether the artifact for (key, stage) is present on disk.
func (s *Store) Exists(key string, stage Stage) bool {
	info, err := os.Stat(s.PathFor(key, stage))
	return err == nil && !info.IsDir()
}

// LogsDir returns the run-log directory.
func (s *Store) LogsDir() string {
	return filepath.Join(s.outputsDir, "logs")
}

// VideoKey derives the artifact key for a video path: the file name stem.
func VideoKey(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *Store) stageDir(stage Stage) string {
	switch stage {
	case StageAudio:
		return s.audiosDir
	case StageTranscript:
		return filepath.Join(s.outputsDir, "transcripts")
	case StageSummary:
		return filepath.Join(s.outputsDir, "summaries")
	case StageMindmap:
		return filepath.Join(s.outputsDir, "mindmaps")
	case StageNotes:
		return filepath.Join(s.outputsDir, "notes")
	case StageFAQ:
		return filepath.Join(s.outputsDir, "faqs")
	default:
		return s.outputsDir
	}
}

func stageSuffix(stage Stage) string {
	switch stage {
	case StageAudio:
		return ".wav"
	case StageTranscript:
		return ".txt"
	case StageSummary:
		return ".md"
	case StageMindmap:
		return ".png"
	case StageNotes:
		return "_notes.md"
	case StageFAQ:
		return "_faqs.md"
	default:
		return ""
	}
}
