package viewer

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const refreshInterval = 5 * time.Second

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	fileStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

type tickMsg time.Time

// Model is the bubbletea model for the interactive log viewer.
type Model struct {
	logsDir    string
	runs       []Run
	loadErr    error
	combined   bool
	errorsOnly bool
	filter     string
	filtering  bool
	offset     int
	width      int
	height     int
}

// NewModel creates a viewer over logsDir with the combined view enabled.
func NewModel(logsDir string) Model {
	return Model{logsDir: logsDir, combined: true, width: 80, height: 24}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reload, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) reload() tea.Msg {
	runs, err := LoadRuns(m.logsDir)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{runs: runs}
}

type loadedMsg struct {
	runs []Run
	err  error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.runs = msg.runs
		m.loadErr = msg.err
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.reload, tick())

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilterInput(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.combined = !m.combined
			m.offset = 0
		case "e":
			m.errorsOnly = !m.errorsOnly
			m.offset = 0
		case "/":
			m.filtering = true
		case "r":
			return m, m.reload
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			m.offset++
		case "home", "g":
			m.offset = 0
		}
	}

	return m, nil
}

func (m Model) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
	case "esc":
		m.filtering = false
		m.filter = ""
	case "backspace":
		if runes := []rune(m.filter); len(runes) > 0 {
			m.filter = string(runes[:len(runes)-1])
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.filter += string(msg.Runes)
		}
	}
	m.offset = 0
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	mode := "Single"
	if m.combined {
		mode = "Combined"
	}
	scope := "All Logs"
	if m.errorsOnly {
		scope = "Errors Only"
	}
	header := fmt.Sprintf(" Log Viewer | %s | %s ", mode, scope)
	if m.filter != "" {
		header += fmt.Sprintf("| Filter: %s ", m.filter)
	}
	b.WriteString(headerStyle.Width(m.width).Render(header))
	b.WriteString("\n")

	body := m.visibleLines()
	limit := m.height - 2
	if limit < 1 {
		limit = 1
	}
	if m.offset > len(body) {
		m.offset = len(body)
	}
	end := m.offset + limit
	if end > len(body) {
		end = len(body)
	}
	for _, line := range body[m.offset:end] {
		b.WriteString(truncate(line, m.width))
		b.WriteString("\n")
	}
	for i := end - m.offset; i < limit; i++ {
		b.WriteString("\n")
	}

	if m.filtering {
		b.WriteString("Filter: " + m.filter + "█")
	} else {
		b.WriteString(helpStyle.Render("q:Quit | c:Toggle Combined | e:Toggle Errors | /:Filter | r:Refresh | j/k:Scroll"))
	}

	return b.String()
}

// visibleLines flattens the loaded runs into styled display lines, honoring
// the combined-view, errors-only, and substring filters.
func (m Model) visibleLines() []string {
	if m.loadErr != nil {
		return []string{errorStyle.Render("failed to load logs: " + m.loadErr.Error())}
	}

	var out []string
	for _, run := range m.runs {
		lines := FilterLines(run, m.filter, m.errorsOnly)
		if len(lines) == 0 {
			// In single view keep scanning: the newest run may have no
			// matching lines while an older one does.
			continue
		}

		out = append(out, fileStyle.Render(run.Name))
		for _, line := range lines {
			out = append(out, styleLine(line))
		}

		if !m.combined {
			break
		}
	}

	if len(out) == 0 {
		out = []string{helpStyle.Render("no log entries match")}
	}
	return out
}

func styleLine(line string) string {
	switch {
	case strings.Contains(line, "[ERROR]"):
		return errorStyle.Render(line)
	case strings.Contains(line, "[WARN]"):
		return warnStyle.Render(line)
	case strings.Contains(line, "[INFO]"):
		return infoStyle.Render(line)
	default:
		return line
	}
}

func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
