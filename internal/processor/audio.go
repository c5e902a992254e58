package processor

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"lecture-mind/internal/artifact"
)

// extractAudio extracts audio from a video file into a 16kHz mono WAV, the
// format the speech-to-text models expect. The output is staged under a temp
// name and promoted only when ffmpeg succeeds.
func (p *implProcessor) extractAudio(ctx context.Context, videoPath, key string) (string, error) {
	audioPath := p.store.PathFor(key, artifact.StageAudio)
	tmpPath := artifact.TempPath(audioPath)

	// FFmpeg arguments for audio extraction
	// -vn: No video (audio only)
	// -ar: Sample rate (16kHz is what Whisper expects)
	// -ac: Channel count (mono)
	// -c:a: Audio codec (uncompressed PCM by default)
	// -f wav: Container must be forced, the temp name has no .wav extension
	// -y: Overwrite output file if exists
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", strconv.Itoa(p.cfg.FFmpeg.SampleRate),
		"-ac", strconv.Itoa(p.cfg.FFmpeg.Channels),
		"-c:a", p.cfg.FFmpeg.AudioCodec,
		"-f", "wav",
		"-y",
		tmpPath,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	if err := artifact.Promote(tmpPath, audioPath); err != nil {
		return "", err
	}

	return audioPath, nil
}
