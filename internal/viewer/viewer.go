// Package viewer implements a read-only view over the run logs the pipeline
// produces. It never writes to or locks the log files.
package viewer

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Run is one loaded log file with its parsed run timestamp.
type Run struct {
	File      string
	Name      string
	Timestamp time.Time
	IsError   bool
	Lines     []string
}

var (
	reFileStamp = regexp.MustCompile(`(\d{8}_\d{6})`)
	reLineStamp = regexp.MustCompile(`(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})`)
)

// LoadRuns reads every .log file in logsDir, newest first. Unreadable files
// are skipped rather than failing the whole load.
func LoadRuns(logsDir string) ([]Run, error) {
	entries, err := os.ReadDir(logsDir)
	if err != nil {
		return nil, err
	}

	var runs []Run
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}

		path := filepath.Join(logsDir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if len(lines) == 1 && lines[0] == "" {
			lines = nil
		}

		runs = append(runs, Run{
			File:      path,
			Name:      e.Name(),
			Timestamp: runTimestamp(e, lines),
			IsError:   strings.HasSuffix(e.Name(), "_error.log"),
			Lines:     lines,
		})
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})

	return runs, nil
}

// runTimestamp extracts the run time from the file name, falling back to the
// first log line, then to the file modification time.
func runTimestamp(entry os.DirEntry, lines []string) time.Time {
	if m := reFileStamp.FindString(entry.Name()); m != "" {
		if ts, err := time.ParseInLocation("20060102_150405", m, time.Local); err == nil {
			return ts
		}
	}

	if len(lines) > 0 {
		if m := reLineStamp.FindString(lines[0]); m != "" {
			if ts, err := time.ParseInLocation("2006/01/02 15:04:05", m, time.Local); err == nil {
				return ts
			}
		}
	}

	if info, err := entry.Info(); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}

// FilterLines returns the run's lines matching the substring filter and, when
// errorsOnly is set, only lines carrying the error level. The substring match
// is case-insensitive.
func FilterLines(run Run, filter string, errorsOnly bool) []string {
	var out []string
	needle := strings.ToLower(filter)

	for _, line := range run.Lines {
		if errorsOnly && !run.IsError && !strings.Contains(line, "[ERROR]") {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		out = append(out, line)
	}

	return out
}
