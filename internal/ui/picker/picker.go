// Package picker provides the role filter picker.
package picker

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/roster/internal/registry"
	"github.com/zjrosen/roster/internal/ui/overlay"
	"github.com/zjrosen/roster/internal/ui/styles"
)

// Option is a single entry in the picker.
type Option struct {
	Label string
	Value string
}

// SelectMsg is sent when the user picks an option with Enter.
type SelectMsg struct {
	Value string
}

// CancelMsg is sent when the picker is closed without a choice.
type CancelMsg struct{}

// Model holds the picker state.
type Model struct {
	title    string
	options  []Option
	selected int
	boxWidth int
	width    int
	height   int
}

func New(title string, options []Option) Model {
	return Model{title: title, options: options}
}

// RoleOptions builds the filter choices: the all-roles sentinel first, then
// configured roles, then any role seen in the collection that is not
// configured. Duplicates and blanks are dropped.
func RoleOptions(configured, seen []string) []Option {
	opts := []Option{{Label: "All roles", Value: registry.AllRoles}}
	have := map[string]bool{registry.AllRoles: true}
	for _, list := range [][]string{configured, seen} {
		for _, role := range list {
			if role == "" || have[role] {
				continue
			}
			have[role] = true
			opts = append(opts, Option{Label: role, Value: role})
		}
	}
	return opts
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

func (m Model) SetBoxWidth(width int) Model {
	m.boxWidth = width
	return m
}

// SetSelected moves the cursor to the option whose value matches.
func (m Model) SetSelected(value string) Model {
	m.selected = IndexOf(m.options, value)
	return m
}

// Selected returns the option under the cursor.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected]
	}
	return Option{}
}

func (m Model) Options() []Option {
	return m.options
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "j", "down", "ctrl+n":
		if m.selected < len(m.options)-1 {
			m.selected++
		}
	case "k", "up", "ctrl+p":
		if m.selected > 0 {
			m.selected--
		}
	case "enter":
		value := m.Selected().Value
		return m, func() tea.Msg { return SelectMsg{Value: value} }
	case "esc", "q":
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, nil
}

// View renders the picker box.
func (m Model) View() string {
	width := m.boxWidth
	if width == 0 {
		width = 25
	}

	rows := make([]string, len(m.options))
	for i, opt := range m.options {
		if i == m.selected {
			rows[i] = styles.SelectionIndicatorStyle.Render(">") + lipgloss.NewStyle().Bold(true).Render(opt.Label)
		} else {
			rows[i] = " " + opt.Label
		}
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1).
		Render(m.title)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", width))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(title + "\n" + divider + "\n" + strings.Join(rows, "\n"))
}

// Overlay renders the picker centered on background.
func (m Model) Overlay(background string) string {
	box := m.View()
	if background == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}

// IndexOf returns the index of the option with the given value, or 0.
func IndexOf(options []Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}
