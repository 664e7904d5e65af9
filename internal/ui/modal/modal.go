// Package modal provides the blocking dialogs used by the registration
// screen: a yes/no confirmation and a single-button alert.
package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/roster/internal/ui/overlay"
	"github.com/zjrosen/roster/internal/ui/styles"
)

// Kind selects the buttons a modal shows.
type Kind int

const (
	// KindConfirm shows Confirm and Cancel.
	KindConfirm Kind = iota
	// KindAlert shows a single OK button.
	KindAlert
)

// ButtonVariant controls the styling of the confirm button.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonDanger
)

// Config controls modal appearance and behavior.
type Config struct {
	Kind           Kind
	Title          string
	Message        string
	ConfirmVariant ButtonVariant
	// Subject is echoed back in ConfirmMsg so the caller knows what was confirmed.
	Subject  string
	MinWidth int
}

// ConfirmMsg is sent when the user accepts a confirmation.
type ConfirmMsg struct {
	Subject string
}

// CancelMsg is sent when a confirmation is declined (Esc, n, or Cancel).
type CancelMsg struct {
	Subject string
}

// DismissMsg is sent when an alert is acknowledged.
type DismissMsg struct{}

// Field identifies which button is focused.
type Field int

const (
	FieldConfirm Field = iota
	FieldCancel
)

const defaultWidth = 44

// Model is the modal component state.
type Model struct {
	config  Config
	focused Field
	width   int
	height  int
}

// New creates a modal. Confirmations open with Cancel focused so a stray
// Enter never deletes anything.
func New(cfg Config) Model {
	m := Model{config: cfg, focused: FieldConfirm}
	if cfg.Kind == KindConfirm {
		m.focused = FieldCancel
	}
	return m
}

// NewAlert is shorthand for an alert modal.
func NewAlert(title, message string) Model {
	return New(Config{Kind: KindAlert, Title: title, Message: message})
}

// NewConfirm is shorthand for a destructive confirmation about subject.
func NewConfirm(title, message, subject string) Model {
	return New(Config{
		Kind:           KindConfirm,
		Title:          title,
		Message:        message,
		ConfirmVariant: ButtonDanger,
		Subject:        subject,
	})
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the modal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.config.Kind == KindAlert {
			switch msg.String() {
			case "enter", "esc", " ", "q":
				return m, func() tea.Msg { return DismissMsg{} }
			}
			return m, nil
		}

		switch msg.String() {
		case "tab", "right", "l", "shift+tab", "left", "h":
			if m.focused == FieldConfirm {
				m.focused = FieldCancel
			} else {
				m.focused = FieldConfirm
			}
		case "y":
			return m, m.confirm()
		case "n", "esc":
			return m, m.cancel()
		case "enter":
			if m.focused == FieldConfirm {
				return m, m.confirm()
			}
			return m, m.cancel()
		}
	}
	return m, nil
}

func (m Model) confirm() tea.Cmd {
	subject := m.config.Subject
	return func() tea.Msg { return ConfirmMsg{Subject: subject} }
}

func (m Model) cancel() tea.Cmd {
	subject := m.config.Subject
	return func() tea.Msg { return CancelMsg{Subject: subject} }
}

// View renders the modal box without the background.
func (m Model) View() string {
	width := max(defaultWidth, m.config.MinWidth, lipgloss.Width(m.config.Title))
	boxWidth := width + 2

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1).
		Render(m.config.Title)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	var body strings.Builder
	if m.config.Message != "" {
		body.WriteString(lipgloss.NewStyle().
			Foreground(m.messageColor()).
			Render(wordwrap.String(m.config.Message, width)))
		body.WriteString("\n\n")
	}
	body.WriteString(m.renderButtons())

	content := title + "\n" + divider + "\n" + lipgloss.NewStyle().Padding(1, 1).Render(body.String())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor()).
		Width(boxWidth).
		Render(content)
}

func (m Model) messageColor() lipgloss.TerminalColor {
	if m.config.Kind == KindAlert {
		return styles.StatusErrorColor
	}
	return styles.TextPrimaryColor
}

func (m Model) borderColor() lipgloss.TerminalColor {
	if m.config.Kind == KindAlert {
		return styles.StatusErrorColor
	}
	return styles.OverlayBorderColor
}

func (m Model) renderButtons() string {
	if m.config.Kind == KindAlert {
		return styles.PrimaryButtonFocusedStyle.Render("OK")
	}

	confirm := styles.PrimaryButtonStyle
	if m.config.ConfirmVariant == ButtonDanger {
		confirm = styles.DangerButtonStyle
	}
	if m.focused == FieldConfirm {
		confirm = styles.PrimaryButtonFocusedStyle
		if m.config.ConfirmVariant == ButtonDanger {
			confirm = styles.DangerButtonFocusedStyle
		}
	}

	cancel := styles.SecondaryButtonStyle
	if m.focused == FieldCancel {
		cancel = styles.SecondaryButtonFocusedStyle
	}

	return confirm.Render("Confirm") + "  " + cancel.Render("Cancel")
}

// Overlay renders the modal centered on bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize updates the viewport size used for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Kind returns the modal kind.
func (m Model) Kind() Kind {
	return m.config.Kind
}

func (m Model) Message() string {
	return m.config.Message
}

// Subject returns the subject of a confirmation.
func (m Model) Subject() string {
	return m.config.Subject
}

// Focused returns the focused button.
func (m Model) Focused() Field {
	return m.focused
}
