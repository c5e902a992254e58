package viewer

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

func TestVisibleLinesSingleViewSkipsEmptyRuns(t *testing.T) {
	m := Model{
		combined: false,
		filter:   "summary",
		runs: []Run{
			{Name: "lec2_20260102_090000.log", Lines: []string{"transcript done"}},
			{Name: "lec1_20260101_090000.log", Lines: []string{"summary done"}},
		},
	}

	out := strings.Join(m.visibleLines(), "\n")
	if !strings.Contains(out, "summary done") {
		t.Errorf("single view did not fall through to the older run:\n%s", out)
	}
	if strings.Contains(out, "no log entries match") {
		t.Errorf("single view reported no matches despite older run matching:\n%s", out)
	}
}

func TestVisibleLinesSingleViewShowsOneRun(t *testing.T) {
	m := Model{
		combined: false,
		runs: []Run{
			{Name: "lec2_20260102_090000.log", Lines: []string{"newest line"}},
			{Name: "lec1_20260101_090000.log", Lines: []string{"older line"}},
		},
	}

	out := strings.Join(m.visibleLines(), "\n")
	if !strings.Contains(out, "newest line") {
		t.Errorf("single view missing newest run:\n%s", out)
	}
	if strings.Contains(out, "older line") {
		t.Errorf("single view leaked a second run:\n%s", out)
	}
}

func TestFilterBackspaceRemovesWholeRune(t *testing.T) {
	m := Model{filtering: true, filter: "xé"}

	updated, _ := m.updateFilterInput(tea.KeyMsg{Type: tea.KeyBackspace})
	got := updated.(Model).filter

	if got != "x" {
		t.Errorf("filter after backspace = %q, want %q", got, "x")
	}
	if !utf8.ValidString(got) {
		t.Errorf("filter is not valid UTF-8: %q", got)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	got := truncate("héllo", 3)
	if got != "hél" {
		t.Errorf("truncate() = %q, want %q", got, "hél")
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated string is not valid UTF-8: %q", got)
	}

	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q, want unchanged", got)
	}
}
