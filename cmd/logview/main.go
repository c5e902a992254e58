package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lecture-mind/internal/viewer"
)

func main() {
	logsDir := flag.String("logs-dir", "data/outputs/logs", "directory containing run log files")
	flag.Parse()

	if _, err := os.Stat(*logsDir); err != nil {
		fmt.Fprintf(os.Stderr, "logs directory %s: %v\n", *logsDir, err)
		os.Exit(1)
	}

	p := tea.NewProgram(viewer.NewModel(*logsDir), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "log viewer failed: %v\n", err)
		os.Exit(1)
	}
}
