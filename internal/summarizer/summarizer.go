package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"lecture-mind/internal/artifact"
	"lecture-mind/internal/config"
)

const summaryPrompt = `You are an expert at analyzing educational and lecture videos. Based on the transcript below, write a DETAILED summary in English.

Requirements:
- Start with a one-sentence title describing the topic of the video
- List ALL main steps / topics in order of appearance
- Explain each point in detail, including important notes, tips, and caveats
- Keep domain terminology as-is
- Use markdown format: headings, bullet points, bold for key terms
- Aim for roughly %d to %d words

Transcript:
---
%s
---`

const notesPrompt = `You are preparing study notes from a lecture summary. Based on the summary below, produce structured revision notes in English.

Requirements:
- Group the material into clearly titled sections
- Under each section, write concise bullet points a student can revise from
- Bold key terms and definitions
- End with a "Key takeaways" section
- Use markdown format

Summary:
---
%s
---`

const faqPrompt = `You are preparing a FAQ document from a lecture summary. Based on the summary below, write the questions a student is most likely to ask, each followed by a short, accurate answer drawn from the material.

Requirements:
- 5 to 10 question/answer pairs
- Format each as "### Q: <question>" followed by the answer paragraph
- Answer only from the material, do not invent facts

Summary:
---
%s
---`

// Run reads the input artifact, generates the document for this runner's
// kind, and writes it at the canonical path for the input's video key.
func (s *implSummarizer) Run(ctx context.Context, inputPath string, profile config.ModelProfile) (string, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", inputPath)
	}

	key := videoKeyFromInput(inputPath)
	s.logger.Info(ctx, "Generating %s for %s with model %s", s.kind, key, profile.ID)

	text, err := s.callGemini(ctx, profile, s.buildPrompt(profile, string(content)))
	if err != nil {
		return "", err
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		key,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(text),
	)

	outputPath := s.store.PathFor(key, s.stage())
	if err := artifact.WriteAtomic(outputPath, []byte(md)); err != nil {
		return "", err
	}

	if s.kind == KindNotes {
		docxPath := strings.TrimSuffix(outputPath, ".md") + ".docx"
		if err := markdownToDocx(key, text, docxPath); err != nil {
			s.logger.Warn(ctx, "Failed to render docx for %s: %v", key, err)
		}
	}

	return outputPath, nil
}

func (s *implSummarizer) stage() artifact.Stage {
	switch s.kind {
	case KindNotes:
		return artifact.StageNotes
	case KindFAQ:
		return artifact.StageFAQ
	default:
		return artifact.StageSummary
	}
}

func (s *implSummarizer) buildPrompt(profile config.ModelProfile, content string) string {
	switch s.kind {
	case KindNotes:
		return fmt.Sprintf(notesPrompt, content)
	case KindFAQ:
		return fmt.Sprintf(faqPrompt, content)
	default:
		minWords, maxWords := profile.MinLength, profile.MaxLength
		if minWords <= 0 {
			minWords = 200
		}
		if maxWords <= 0 {
			maxWords = 1000
		}
		return fmt.Sprintf(summaryPrompt, minWords, maxWords, content)
	}
}

// callGemini sends the prompt to Gemini and returns the generated text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, profile config.ModelProfile, prompt string) (string, error) {
	if len(s.apiKeys) == 0 {
		return "", errors.New("no Gemini API keys configured")
	}

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.apiKeys[s.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = errors.Wrap(err, "create client")
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, profile.Checkpoint, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", errors.Wrap(err, "generate content")
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", errors.New("empty response from Gemini")
	}

	return "", errors.Wrap(lastErr, "all API keys exhausted")
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

// videoKeyFromInput recovers the video key from an input artifact path,
// stripping the stage suffix when present.
func videoKeyFromInput(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, "_notes")
	base = strings.TrimSuffix(base, "_faqs")
	return base
}
