// Package mindmap renders a summary document into a mind-map image. Concept
// extraction is a plain markdown outline walk; graph layout and rasterization
// are delegated to Graphviz.
package mindmap

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"lecture-mind/internal/artifact"
	"lecture-mind/internal/config"
	"lecture-mind/internal/logger"
	"lecture-mind/pkg/executor"
)

// Generator produces the mindmap artifact for a video from its summary.
type Generator struct {
	exec   executor.Executor
	store  *artifact.Store
	logger logger.Logger
	binary string
}

// New creates a Generator that renders through the `dot` binary.
func New(exec executor.Executor, store *artifact.Store, log logger.Logger) *Generator {
	return &Generator{
		exec:   exec,
		store:  store,
		logger: log,
		binary: "dot",
	}
}

// Run reads the summary at inputPath, builds a DOT graph from its outline,
// and renders it to the canonical mindmap PNG. The profile is accepted for
// runner-signature uniformity; rendering has no model parameters.
func (g *Generator) Run(ctx context.Context, inputPath string, profile config.ModelProfile) (string, error) {
	summary, err := os.ReadFile(inputPath)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", inputPath)
	}

	key := artifact.VideoKey(inputPath)
	outputPath := g.store.PathFor(key, artifact.StageMindmap)

	g.logger.Info(ctx, "Rendering mind map for %s", key)

	tempDir, err := os.MkdirTemp(filepath.Dir(outputPath), "mindmap-*")
	if err != nil {
		return "", errors.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(tempDir)

	dotPath := filepath.Join(tempDir, key+".dot")
	pngPath := filepath.Join(tempDir, key+".png")

	dotSource := buildDOT(key, string(summary))
	if err := os.WriteFile(dotPath, []byte(dotSource), 0644); err != nil {
		return "", errors.Wrap(err, "write dot file")
	}

	if _, err := g.exec.Execute(ctx, g.binary, "-Tpng", "-o", pngPath, dotPath); err != nil {
		return "", errors.Wrap(err, "render mind map")
	}

	if err := artifact.Promote(pngPath, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}
