package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// RunLog is the append-only log pair for one video run: every event goes to
// the main file, errors additionally go to the errors-only file. Events are
// also forwarded to the parent logger so they stay visible on the console.
type RunLog struct {
	parent   Logger
	main     *os.File
	errors   *os.File
	mainLog  *log.Logger
	errorLog *log.Logger
	path     string
	errPath  string
}

// NewRunLog creates the log file pair for one (video key, run) in logsDir.
// File names follow <key>_<YYYYMMDD_HHMMSS>.log and <key>_<YYYYMMDD_HHMMSS>_error.log.
func NewRunLog(logsDir, videoKey string, parent Logger) (*RunLog, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", videoKey, stamp))
	errPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s_error.log", videoKey, stamp))

	main, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}

	errFile, err := os.OpenFile(errPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		main.Close()
		return nil, fmt.Errorf("open error log: %w", err)
	}

	return &RunLog{
		parent:   parent,
		main:     main,
		errors:   errFile,
		mainLog:  log.New(main, "", log.LstdFlags),
		errorLog: log.New(errFile, "", log.LstdFlags),
		path:     path,
		errPath:  errPath,
	}, nil
}

// Path returns the main log file path.
func (r *RunLog) Path() string { return r.path }

// ErrorPath returns the errors-only log file path.
func (r *RunLog) ErrorPath() string { return r.errPath }

// Close flushes and closes both log files.
func (r *RunLog) Close() error {
	errMain := r.main.Close()
	errErr := r.errors.Close()
	if errMain != nil {
		return errMain
	}
	return errErr
}

func (r *RunLog) Debug(ctx context.Context, msg string, args ...interface{}) {
	r.mainLog.Printf("[DEBUG] "+msg, args...)
	if r.parent != nil {
		r.parent.Debug(ctx, msg, args...)
	}
}

func (r *RunLog) Info(ctx context.Context, msg string, args ...interface{}) {
	r.mainLog.Printf("[INFO] "+msg, args...)
	if r.parent != nil {
		r.parent.Info(ctx, msg, args...)
	}
}

func (r *RunLog) Warn(ctx context.Context, msg string, args ...interface{}) {
	r.mainLog.Printf("[WARN] "+msg, args...)
	if r.parent != nil {
		r.parent.Warn(ctx, msg, args...)
	}
}

func (r *RunLog) Error(ctx context.Context, msg string, args ...interface{}) {
	r.mainLog.Printf("[ERROR] "+msg, args...)
	r.errorLog.Printf("[ERROR] "+msg, args...)
	if r.parent != nil {
		r.parent.Error(ctx, msg, args...)
	}
}
