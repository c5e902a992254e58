package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lecture-mind/internal/logger"
)

// CleanAll is the scope value that removes every video's artifacts.
const CleanAll = "all"

// Clean deletes artifact files for one video key, or for every video when
// scope is CleanAll. Run logs are included; the input videos directory is
// never touched. Missing paths are logged as warnings, not errors.
func (s *Store) Clean(ctx context.Context, scope string, log logger.Logger) error {
	if scope == "" {
		return fmt.Errorf("clean scope is required")
	}

	dirs := make([]string, 0, len(Stages)+1)
	for _, stage := range Stages {
		dirs = append(dirs, s.stageDir(stage))
	}
	dirs = append(dirs, s.LogsDir())

	for _, dir := range dirs {
		if dir == s.videosDir {
			continue
		}
		if err := s.cleanDir(ctx, dir, scope, log); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) cleanDir(ctx context.Context, dir, scope string, log logger.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn(ctx, "Clean: directory %s does not exist, skipping", dir)
			return nil
		}
		return fmt.Errorf("read directory %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if scope != CleanAll && !strings.HasPrefix(e.Name(), scope) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				log.Warn(ctx, "Clean: %s already absent", path)
				continue
			}
			return fmt.Errorf("remove %s: %w", path, err)
		}
		log.Debug(ctx, "Clean: removed %s", path)
	}

	return nil
}
