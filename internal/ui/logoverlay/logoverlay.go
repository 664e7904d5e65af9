// Package logoverlay shows recent debug log lines on top of the running UI.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/roster/internal/log"
	"github.com/zjrosen/roster/internal/ui/overlay"
	"github.com/zjrosen/roster/internal/ui/styles"
)

const (
	maxLines      = 500
	maxBoxWidth   = 140
	minBoxWidth   = 40
	maxViewHeight = 20
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model buffers log lines and renders them in a scrollable box.
type Model struct {
	visible  bool
	minLevel log.Level
	lines    []string
	width    int
	height   int
	viewport viewport.Model
}

func New() Model {
	return Model{minLevel: log.LevelDebug, viewport: viewport.New(minBoxWidth, 5)}
}

// Append buffers a formatted log line, dropping the oldest beyond the cap.
func (m Model) Append(line string) Model {
	m.lines = append(m.lines, strings.TrimRight(line, "\n"))
	if over := len(m.lines) - maxLines; over > 0 {
		m.lines = append([]string(nil), m.lines[over:]...)
	}
	if m.visible {
		m = m.refresh()
	}
	return m
}

func (m Model) Visible() bool {
	return m.visible
}

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m = m.refresh()
		m.viewport.GotoBottom()
	}
	return m
}

func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.refresh()
}

// Lines returns the buffered lines at or above the current level.
func (m Model) Lines() []string {
	out := make([]string, 0, len(m.lines))
	for _, l := range m.lines {
		if levelOf(l) >= m.minLevel {
			out = append(out, l)
		}
	}
	return out
}

func levelOf(line string) log.Level {
	for _, lvl := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo} {
		if strings.Contains(line, "["+lvl.String()+"]") {
			return lvl
		}
	}
	return log.LevelDebug
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil
	case "esc", "ctrl+x":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	default:
		return m, nil
	}
	return m.refresh(), nil
}

func (m Model) boxWidth() int {
	return min(max(m.width-8, minBoxWidth), maxBoxWidth)
}

func (m Model) refresh() Model {
	w := m.boxWidth()
	m.viewport.Width = w
	m.viewport.Height = min(max(m.height-10, 5), maxViewHeight)

	lines := m.Lines()
	if len(lines) == 0 {
		m.viewport.SetContent(lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("No log entries"))
		return m
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, w, "…")
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	return m
}

// View renders the box without positioning.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	w := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", w))
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).
		Render("Logs (" + m.minLevel.String() + "+)")
	hint := styles.HelpStyle.Render(" d/i/w/e level · j/k scroll · esc close")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(w).
		Render(title + "\n" + divider + "\n" + m.viewport.View() + "\n" + divider + "\n" + hint)
}

// Overlay renders the box centered on bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{Width: m.width, Height: m.height}, m.View(), bg)
}
