package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"lecture-mind/internal/artifact"
	"lecture-mind/internal/config"
	"lecture-mind/internal/logger"
)

// fakeExecutor stands in for ffmpeg: it writes a file at the last argument,
// which is where the real command places its output.
type fakeExecutor struct {
	calls int
	fail  bool
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls++
	if f.fail {
		return "", fmt.Errorf("exec failed")
	}
	out := args[len(args)-1]
	return "", os.WriteFile(out, []byte("RIFF"), 0644)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

// fakeRunner counts model invocations and writes its canonical artifact,
// mirroring the all-or-nothing contract of real stage runners.
type fakeRunner struct {
	store *artifact.Store
	stage artifact.Stage
	calls int
	fail  bool
}

func (f *fakeRunner) Run(ctx context.Context, inputPath string, profile config.ModelProfile) (string, error) {
	f.calls++
	if f.fail {
		return "", fmt.Errorf("model call failed")
	}
	out := f.store.PathFor(artifact.VideoKey(inputPath), f.stage)
	if err := artifact.WriteAtomic(out, []byte(f.stage.String())); err != nil {
		return "", err
	}
	return out, nil
}

type testPipeline struct {
	proc       *implProcessor
	exec       *fakeExecutor
	transcribe *fakeRunner
	summarize  *fakeRunner
	mindmap    *fakeRunner
	notes      *fakeRunner
	faq        *fakeRunner
	videosDir  string
}

func newTestPipeline(t *testing.T, force bool) *testPipeline {
	t.Helper()

	root := t.TempDir()
	videosDir := filepath.Join(root, "videos")
	store := artifact.NewStore(videosDir, filepath.Join(root, "audios"), filepath.Join(root, "outputs"))
	if err := store.EnsureDirs(); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Paths: config.PathsConfig{
			Videos:  videosDir,
			Outputs: filepath.Join(root, "outputs"),
		},
		Models: config.ModelsConfig{
			Transcription:  "whisper_base",
			Summarization:  "gemini_flash",
			TextGeneration: "gemini_flash",
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	registry := config.NewRegistry(map[string]config.ModelProfile{
		"whisper_base": {Type: config.StageTypeTranscription, Checkpoint: "models/base.bin"},
		"gemini_flash": {Type: config.StageTypeSummarization, Checkpoint: "gemini-2.5-flash"},
	})

	exec := &fakeExecutor{}
	tp := &testPipeline{
		exec:       exec,
		transcribe: &fakeRunner{store: store, stage: artifact.StageTranscript},
		summarize:  &fakeRunner{store: store, stage: artifact.StageSummary},
		mindmap:    &fakeRunner{store: store, stage: artifact.StageMindmap},
		notes:      &fakeRunner{store: store, stage: artifact.StageNotes},
		faq:        &fakeRunner{store: store, stage: artifact.StageFAQ},
		videosDir:  videosDir,
	}

	tp.proc = &implProcessor{
		cfg:        cfg,
		registry:   registry,
		store:      store,
		executor:   exec,
		logger:     logger.New("error"),
		force:      force,
		transcribe: tp.transcribe,
		summarize:  tp.summarize,
		mindmap:    tp.mindmap,
		notes:      tp.notes,
		faq:        tp.faq,
	}

	return tp
}

func (tp *testPipeline) addVideo(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(tp.videosDir, name)
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func (tp *testPipeline) modelCalls() int {
	return tp.transcribe.calls + tp.summarize.calls + tp.mindmap.calls + tp.notes.calls + tp.faq.calls
}

func TestProcessProducesAllArtifacts(t *testing.T) {
	ctx := context.Background()
	tp := newTestPipeline(t, false)
	video := tp.addVideo(t, "lecture01.mp4")

	if err := tp.proc.Process(ctx, video); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	for _, stage := range artifact.Stages {
		if !tp.proc.store.Exists("lecture01", stage) {
			t.Errorf("artifact %s missing after run", stage)
		}
	}
}

func TestProcessIdempotent(t *testing.T) {
	ctx := context.Background()
	tp := newTestPipeline(t, false)
	video := tp.addVideo(t, "lecture01.mp4")

	if err := tp.proc.Process(ctx, video); err != nil {
		t.Fatalf("first Process() error = %v", err)
	}

	firstExec := tp.exec.calls
	firstModels := tp.modelCalls()

	if err := tp.proc.Process(ctx, video); err != nil {
		t.Fatalf("second Process() error = %v", err)
	}

	if tp.exec.calls != firstExec {
		t.Errorf("second run invoked ffmpeg %d more times", tp.exec.calls-firstExec)
	}
	if tp.modelCalls() != firstModels {
		t.Errorf("second run invoked models %d more times", tp.modelCalls()-firstModels)
	}
}

func TestProcessForceRecomputes(t *testing.T) {
	ctx := context.Background()
	tp := newTestPipeline(t, true)
	video := tp.addVideo(t, "lecture01.mp4")

	if err := tp.proc.Process(ctx, video); err != nil {
		t.Fatalf("first Process() error = %v", err)
	}
	if err := tp.proc.Process(ctx, video); err != nil {
		t.Fatalf("second Process() error = %v", err)
	}

	if tp.transcribe.calls != 2 {
		t.Errorf("transcribe calls = %d, want 2 with force", tp.transcribe.calls)
	}
}

func TestProcessStageFailure(t *testing.T) {
	ctx := context.Background()
	tp := newTestPipeline(t, false)
	video := tp.addVideo(t, "lecture01.mp4")

	tp.transcribe.fail = true

	err := tp.proc.Process(ctx, video)
	if err == nil {
		t.Fatal("Process() expected error")
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error = %T, want *StageError", err)
	}
	if stageErr.Stage != artifact.StageTranscript {
		t.Errorf("failed stage = %s, want transcript", stageErr.Stage)
	}

	// Later stages must not have run.
	if tp.summarize.calls != 0 || tp.notes.calls != 0 {
		t.Error("downstream stages ran after failure")
	}

	// No partial transcript; prior artifacts stay on disk.
	if tp.proc.store.Exists("lecture01", artifact.StageTranscript) {
		t.Error("transcript artifact exists after failed stage")
	}
	if !tp.proc.store.Exists("lecture01", artifact.StageAudio) {
		t.Error("audio artifact from completed stage was removed")
	}
}

func TestProcessFailureIsolationAcrossVideos(t *testing.T) {
	ctx := context.Background()
	tp := newTestPipeline(t, false)
	bad := tp.addVideo(t, "bad.mp4")
	good := tp.addVideo(t, "good.mp4")

	tp.exec.fail = true
	if err := tp.proc.Process(ctx, bad); err == nil {
		t.Fatal("Process(bad) expected error")
	}

	tp.exec.fail = false
	if err := tp.proc.Process(ctx, good); err != nil {
		t.Fatalf("Process(good) error = %v", err)
	}

	for _, stage := range artifact.Stages {
		if !tp.proc.store.Exists("good", stage) {
			t.Errorf("good video artifact %s missing", stage)
		}
	}
}

func TestProcessUnknownModelRunsNothing(t *testing.T) {
	ctx := context.Background()
	tp := newTestPipeline(t, false)
	video := tp.addVideo(t, "lecture01.mp4")

	tp.proc.cfg.Models.Transcription = "nonexistent_model"

	err := tp.proc.Process(ctx, video)
	if !errors.Is(err, config.ErrUnknownModel) {
		t.Fatalf("Process() error = %v, want ErrUnknownModel", err)
	}

	if tp.exec.calls != 0 || tp.modelCalls() != 0 {
		t.Error("stages ran despite configuration error")
	}
	for _, stage := range artifact.Stages {
		if tp.proc.store.Exists("lecture01", stage) {
			t.Errorf("artifact %s written despite configuration error", stage)
		}
	}
}

func TestProcessWrongProfileType(t *testing.T) {
	ctx := context.Background()
	tp := newTestPipeline(t, false)
	video := tp.addVideo(t, "lecture01.mp4")

	// Point transcription at a summarization profile.
	tp.proc.cfg.Models.Transcription = "gemini_flash"

	err := tp.proc.Process(ctx, video)
	if !errors.Is(err, config.ErrInvalidProfile) {
		t.Fatalf("Process() error = %v, want ErrInvalidProfile", err)
	}
	if tp.modelCalls() != 0 {
		t.Error("stages ran despite configuration error")
	}
}
