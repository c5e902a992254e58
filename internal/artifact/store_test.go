package artifact

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	s := NewStore(
		filepath.Join(root, "videos"),
		filepath.Join(root, "audios"),
		filepath.Join(root, "outputs"),
	)
	if err := s.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPathForDeterministic(t *testing.T) {
	s := NewStore("data/videos", "data/audios", "data/outputs")

	first := s.PathFor("lecture01", StageTranscript)
	for i := 0; i < 3; i++ {
		if got := s.PathFor("lecture01", StageTranscript); got != first {
			t.Fatalf("PathFor() = %q, want %q", got, first)
		}
	}

	// A fresh store over the same directories yields the same path, as a
	// process restart would.
	other := NewStore("data/videos", "data/audios", "data/outputs")
	if got := other.PathFor("lecture01", StageTranscript); got != first {
		t.Errorf("PathFor() across stores = %q, want %q", got, first)
	}
}

func TestPathForLayout(t *testing.T) {
	s := NewStore("data/videos", "data/audios", "data/outputs")

	tests := []struct {
		stage Stage
		want  string
	}{
		{StageAudio, filepath.Join("data/audios", "lec.wav")},
		{StageTranscript, filepath.Join("data/outputs", "transcripts", "lec.txt")},
		{StageSummary, filepath.Join("data/outputs", "summaries", "lec.md")},
		{StageMindmap, filepath.Join("data/outputs", "mindmaps", "lec.png")},
		{StageNotes, filepath.Join("data/outputs", "notes", "lec_notes.md")},
		{StageFAQ, filepath.Join("data/outputs", "faqs", "lec_faqs.md")},
	}

	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			if got := s.PathFor("lec", tt.stage); got != tt.want {
				t.Errorf("PathFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExists(t *testing.T) {
	s := newTestStore(t)

	if s.Exists("lec", StageSummary) {
		t.Error("Exists() = true before artifact written")
	}

	if err := WriteAtomic(s.PathFor("lec", StageSummary), []byte("summary")); err != nil {
		t.Fatal(err)
	}

	if !s.Exists("lec", StageSummary) {
		t.Error("Exists() = false after artifact written")
	}
}

func TestVideoKey(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/videos/lecture01.mp4", "lecture01"},
		{"lecture01.mov", "lecture01"},
		{"/abs/path/stats.lecture.mkv", "stats.lecture"},
		{"data/audios/lecture01.wav", "lecture01"},
	}

	for _, tt := range tests {
		if got := VideoKey(tt.path); got != tt.want {
			t.Errorf("VideoKey(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestEnsureDirs(t *testing.T) {
	s := newTestStore(t)

	for _, stage := range Stages {
		dir := filepath.Dir(s.PathFor("x", stage))
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("stage dir %s missing: %v", dir, err)
		}
	}
	if _, err := os.Stat(s.LogsDir()); err != nil {
		t.Errorf("logs dir missing: %v", err)
	}
}
