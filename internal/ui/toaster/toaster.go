// Package toaster shows short-lived notifications at the bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/roster/internal/ui/overlay"
	"github.com/zjrosen/roster/internal/ui/styles"
)

// Style determines the border color and icon of a toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
)

const maxWidth = 48

// Model holds the toaster state. Each Show bumps the generation so a stale
// DismissMsg from an earlier toast does not hide a newer one.
type Model struct {
	message    string
	style      Style
	visible    bool
	generation int
}

func New() Model {
	return Model{}
}

// Show displays message and returns the command that hides it after d.
// A zero duration keeps the toast until Hide is called.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.generation++
	if d <= 0 {
		return m, nil
	}
	return m, ScheduleDismiss(d, m.generation)
}

func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Update hides the toast when its own DismissMsg arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.Generation == m.generation {
		return m.Hide()
	}
	return m
}

func (m Model) Visible() bool {
	return m.visible
}

func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	box := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	icon := "✓ "
	switch m.style {
	case StyleError:
		box = box.BorderForeground(styles.ToastBorderErrorColor)
		icon = "✗ "
	case StyleInfo:
		box = box.BorderForeground(styles.ToastBorderInfoColor)
		icon = "i "
	default:
		box = box.BorderForeground(styles.ToastBorderSuccessColor)
	}

	return box.Render(wordwrap.String(icon+m.message, maxWidth))
}

// Overlay renders the toast bottom-center on bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg hides the toast shown with the matching generation.
type DismissMsg struct {
	Generation int
}

// ScheduleDismiss returns a command that emits DismissMsg after d.
func ScheduleDismiss(d time.Duration, generation int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{Generation: generation}
	})
}
