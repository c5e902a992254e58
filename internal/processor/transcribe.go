package processor

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"lecture-mind/internal/artifact"
	"lecture-mind/internal/config"
	"lecture-mind/pkg/executor"
)

// whisperRunner converts an audio artifact to a plain-text transcript by
// invoking a whisper.cpp binary with a local model checkpoint.
type whisperRunner struct {
	store *artifact.Store
	exec  executor.Executor
}

func newWhisperRunner(store *artifact.Store, exec executor.Executor) *whisperRunner {
	return &whisperRunner{store: store, exec: exec}
}

// Run transcribes audioPath and returns the canonical transcript path. The
// transcript is written into a temp directory first so a failed or partial
// transcription never lands at the canonical path.
func (r *whisperRunner) Run(ctx context.Context, audioPath string, profile config.ModelProfile) (string, error) {
	if _, err := os.Stat(profile.Checkpoint); err != nil {
		return "", errors.Wrapf(err, "model checkpoint %s", profile.Checkpoint)
	}

	key := artifact.VideoKey(audioPath)
	outputPath := r.store.PathFor(key, artifact.StageTranscript)

	tempDir, err := os.MkdirTemp(filepath.Dir(outputPath), "transcribe-*")
	if err != nil {
		return "", errors.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(tempDir)

	outputPrefix := filepath.Join(tempDir, key)

	// Whisper arguments
	// -m: Model checkpoint path
	// -f: Input audio file
	// -otxt: Output plain text
	// -l: Force language (prevents hallucination)
	// -t: Number of threads
	// --prompt: Domain keywords to improve accuracy
	// --output-file: Output file prefix (whisper appends .txt)
	args := []string{
		"-m", profile.Checkpoint,
		"-f", audioPath,
		"-otxt",
		"--output-file", outputPrefix,
	}
	if profile.Language != "" {
		args = append(args, "-l", profile.Language)
	}
	if profile.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(profile.Threads))
	}
	if profile.Prompt != "" {
		args = append(args, "--prompt", profile.Prompt)
	}

	binary := profile.BinaryPath
	if binary == "" {
		binary = "whisper-cli"
	}

	if _, err := r.exec.Execute(ctx, binary, args...); err != nil {
		return "", errors.Wrap(err, "whisper transcribe")
	}

	data, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return "", errors.Wrap(err, "read whisper output")
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", errors.New("empty transcription result")
	}

	if err := artifact.WriteAtomic(outputPath, data); err != nil {
		return "", err
	}

	return outputPath, nil
}
