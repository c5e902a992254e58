package summarizer

import (
	"context"

	"lecture-mind/internal/config"
)

// Runner turns one input artifact into one generated-text artifact using the
// model named by the profile.
type Runner interface {
	Run(ctx context.Context, inputPath string, profile config.ModelProfile) (string, error)
}

// Kind selects which document a Runner produces from its input.
type Kind int

const (
	// KindSummary produces a markdown summary from a transcript.
	KindSummary Kind = iota
	// KindNotes produces structured study notes from a summary, with a docx
	// rendering alongside the markdown.
	KindNotes
	// KindFAQ produces a question/answer document from a summary.
	KindFAQ
)

func (k Kind) String() string {
	switch k {
	case KindSummary:
		return "summary"
	case KindNotes:
		return "notes"
	case KindFAQ:
		return "faq"
	default:
		return "unknown"
	}
}
