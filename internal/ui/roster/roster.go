// Package roster renders the registration list. Every item carries a
// clickable Delete control; the list never deletes anything itself, it only
// asks the parent through DeleteRequestMsg.
package roster

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/roster/internal/keys"
	"github.com/zjrosen/roster/internal/registry"
	"github.com/zjrosen/roster/internal/ui/styles"
)

// DeleteRequestMsg asks the parent to confirm and delete the record with Email.
type DeleteRequestMsg struct {
	Email string
}

const (
	itemHeight   = 4
	deleteLabel  = "[ Delete ]"
	zonePrefix   = "roster-delete:"
	defaultEmpty = "No registrations yet."
)

// DeleteZoneID is the bubblezone id of the Delete control for email.
func DeleteZoneID(email string) string {
	return zonePrefix + email
}

// Model holds the last slice of records it was given.
type Model struct {
	records []registry.Record
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
	empty   string
}

func New() Model {
	return Model{width: 60, height: 12, empty: defaultEmpty}
}

// SetRecords replaces the displayed records.
func (m Model) SetRecords(records []registry.Record) Model {
	m.records = records
	m.cursor = min(m.cursor, max(len(records)-1, 0))
	return m.scroll()
}

func (m Model) Records() []registry.Record {
	return m.records
}

func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.scroll()
}

// SetEmptyText sets the line shown when there is nothing to list.
func (m Model) SetEmptyText(s string) Model {
	m.empty = s
	return m
}

func (m Model) Focus() Model {
	m.focused = true
	return m
}

func (m Model) Blur() Model {
	m.focused = false
	return m
}

func (m Model) Focused() bool {
	return m.focused
}

// Cursor returns the index of the highlighted record.
func (m Model) Cursor() int {
	return m.cursor
}

// Current returns the highlighted record.
func (m Model) Current() (registry.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.records) {
		return registry.Record{}, false
	}
	return m.records[m.cursor], true
}

// Update handles cursor movement, the delete key and clicks on Delete
// controls. Clicks work regardless of keyboard focus.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		for i := m.offset; i < min(m.offset+m.visible(), len(m.records)); i++ {
			email := m.records[i].Email
			if z := zone.Get(DeleteZoneID(email)); z != nil && z.InBounds(msg) {
				m.cursor = i
				return m, request(email)
			}
		}

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.List.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.List.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.List.Delete):
			if r, ok := m.Current(); ok {
				return m, request(r.Email)
			}
		}
		return m.scroll(), nil
	}
	return m, nil
}

func request(email string) tea.Cmd {
	return func() tea.Msg { return DeleteRequestMsg{Email: email} }
}

func (m Model) visible() int {
	return max(m.height/itemHeight, 1)
}

func (m Model) scroll() Model {
	n := m.visible()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
	m.offset = max(min(m.offset, len(m.records)-n), 0)
	return m
}

// View renders the visible items. Delete controls are wrapped with
// zone.Mark; the caller is responsible for zone.Scan.
func (m Model) View() string {
	if len(m.records) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Padding(1, 2).
			Render(m.empty)
	}

	end := min(m.offset+m.visible(), len(m.records))
	items := make([]string, 0, end-m.offset+1)
	for i := m.offset; i < end; i++ {
		items = append(items, m.renderItem(i))
	}
	if hidden := len(m.records) - (end - m.offset); hidden > 0 {
		items = append(items, lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Render(fmt.Sprintf(" %d of %d shown", end-m.offset, len(m.records))))
	}
	return strings.Join(items, "\n")
}

func (m Model) renderItem(i int) string {
	r := m.records[i]
	selected := i == m.cursor
	inner := max(m.width-4, 20)

	role := runewidth.Truncate(r.Role, inner/3, "…")
	name := runewidth.Truncate(r.FullName(), inner-runewidth.StringWidth(role)-1, "…")
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	top := nameStyle.Render(name) +
		strings.Repeat(" ", max(inner-runewidth.StringWidth(name)-runewidth.StringWidth(role), 1)) +
		lipgloss.NewStyle().Foreground(styles.BorderHighlightFocusColor).Render(role)

	details := []string{r.Email}
	for _, extra := range []string{r.BirthDate, r.Contact, r.Phone} {
		if strings.TrimSpace(extra) != "" {
			details = append(details, extra)
		}
	}
	info := runewidth.Truncate(strings.Join(details, " · "), inner-len(deleteLabel)-1, "…")

	button := styles.DangerButtonStyle.Padding(0)
	if selected && m.focused {
		button = styles.DangerButtonFocusedStyle.Padding(0)
	}
	bottom := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Render(info) +
		strings.Repeat(" ", max(inner-runewidth.StringWidth(info)-len(deleteLabel), 1)) +
		zone.Mark(DeleteZoneID(r.Email), button.Render(deleteLabel))

	border := styles.BorderDefaultColor
	if selected {
		border = styles.BorderHighlightFocusColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(inner + 2).
		Render(top + "\n" + bottom)
}
