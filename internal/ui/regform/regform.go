// Package regform is the registration entry form: six text inputs, a role
// select and a submit button.
package regform

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/roster/internal/keys"
	"github.com/zjrosen/roster/internal/registry"
	"github.com/zjrosen/roster/internal/ui/styles"
)

// SubmitMsg carries the raw form values. Values are not trimmed here.
type SubmitMsg struct {
	Fields registry.Fields
}

// Field indexes, in display order.
const (
	FieldName = iota
	FieldSurname
	FieldBirthDate
	FieldEmail
	FieldContact
	FieldPhone
	FieldRole
	FieldSubmit
)

var labels = [...]string{
	FieldName:      "Name*",
	FieldSurname:   "Surname",
	FieldBirthDate: "Birth date",
	FieldEmail:     "Email*",
	FieldContact:   "Contact",
	FieldPhone:     "Phone",
	FieldRole:      "Role*",
}

var placeholders = [...]string{
	FieldName:      "Ana",
	FieldSurname:   "Souza",
	FieldBirthDate: "2000-01-31",
	FieldEmail:     "ana@example.com",
	FieldContact:   "preferred contact",
	FieldPhone:     "+55 11 99999-0000",
}

const labelWidth = 12

// Model is the form state.
type Model struct {
	inputs  []textinput.Model
	roles   []string
	role    int
	focus   int
	focused bool
	width   int
}

// New builds an empty form. roles are the choices of the role select; an
// empty choice always comes first.
func New(roles []string) Model {
	m := Model{
		inputs: make([]textinput.Model, FieldRole),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		m.inputs[i] = ti
	}
	m = m.SetRoles(roles).SetWidth(60)
	return m.Focus()
}

// SetRoles replaces the role choices, keeping the current choice when it is
// still offered.
func (m Model) SetRoles(roles []string) Model {
	current := m.Role()
	m.roles = append([]string{""}, roles...)
	m.role = 0
	for i, r := range m.roles {
		if r == current {
			m.role = i
			break
		}
	}
	return m
}

// SetWidth sets the outer width of the form.
func (m Model) SetWidth(width int) Model {
	m.width = width
	for i := range m.inputs {
		m.inputs[i].Width = max(width-labelWidth-6, 8)
	}
	return m
}

// Focus gives the form keyboard focus, restoring the cursor on the last
// focused field.
func (m Model) Focus() Model {
	m.focused = true
	return m.setFocus(m.focus)
}

// Blur removes keyboard focus.
func (m Model) Blur() Model {
	m.focused = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m
}

func (m Model) Focused() bool {
	return m.focused
}

// FocusedField returns the index of the field under the cursor.
func (m Model) FocusedField() int {
	return m.focus
}

// Reset clears every value and moves the cursor back to the first field.
func (m Model) Reset() Model {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.role = 0
	return m.setFocus(FieldName)
}

// SetFields fills the form. Roles that are not offered by the select are
// added to it.
func (m Model) SetFields(f registry.Fields) Model {
	values := []string{f.Name, f.Surname, f.BirthDate, f.Email, f.Contact, f.Phone}
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
	m.role = 0
	for i, r := range m.roles {
		if r == f.Role {
			m.role = i
			return m
		}
	}
	m.roles = append(m.roles, f.Role)
	m.role = len(m.roles) - 1
	return m
}

// Fields returns the current values.
func (m Model) Fields() registry.Fields {
	return registry.Fields{
		Name:      m.inputs[FieldName].Value(),
		Surname:   m.inputs[FieldSurname].Value(),
		BirthDate: m.inputs[FieldBirthDate].Value(),
		Email:     m.inputs[FieldEmail].Value(),
		Contact:   m.inputs[FieldContact].Value(),
		Phone:     m.inputs[FieldPhone].Value(),
		Role:      m.Role(),
	}
}

// Role returns the selected role; empty when nothing is chosen.
func (m Model) Role() string {
	if m.role < 0 || m.role >= len(m.roles) {
		return ""
	}
	return m.roles[m.role]
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. Keys are ignored while the form is blurred.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}
	if !m.focused {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Form.Submit):
		return m, m.submit()
	case key.Matches(keyMsg, keys.Form.Reset):
		return m.Reset(), nil
	case key.Matches(keyMsg, keys.Form.Next):
		return m.setFocus((m.focus + 1) % (FieldSubmit + 1)), nil
	case key.Matches(keyMsg, keys.Form.Prev):
		return m.setFocus((m.focus + FieldSubmit) % (FieldSubmit + 1)), nil
	case key.Matches(keyMsg, keys.Form.Activate):
		if m.focus == FieldSubmit {
			return m, m.submit()
		}
		return m.setFocus(m.focus + 1), nil
	}

	if m.focus == FieldRole {
		switch {
		case key.Matches(keyMsg, keys.Form.RoleNext), keyMsg.String() == " ":
			m.role = (m.role + 1) % len(m.roles)
		case key.Matches(keyMsg, keys.Form.RolePrev):
			m.role = (m.role + len(m.roles) - 1) % len(m.roles)
		}
		return m, nil
	}

	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	fields := m.Fields()
	return func() tea.Msg { return SubmitMsg{Fields: fields} }
}

func (m Model) setFocus(i int) Model {
	m.focus = i
	for j := range m.inputs {
		if j == i && m.focused {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m
}

// View renders the form inside a titled section.
func (m Model) View() string {
	label := lipgloss.NewStyle().Width(labelWidth).Foreground(styles.TextSecondaryColor)
	active := label.Foreground(styles.BorderHighlightFocusColor).Bold(true)

	rows := make([]string, 0, FieldSubmit+2)
	for i := range m.inputs {
		style := label
		if m.focused && m.focus == i {
			style = active
		}
		rows = append(rows, " "+style.Render(labels[i])+m.inputs[i].View())
	}

	roleStyle := label
	if m.focused && m.focus == FieldRole {
		roleStyle = active
	}
	rows = append(rows, " "+roleStyle.Render(labels[FieldRole])+m.renderRole())

	button := styles.PrimaryButtonStyle
	if m.focused && m.focus == FieldSubmit {
		button = styles.PrimaryButtonFocusedStyle
	}
	rows = append(rows, "", " "+button.Render("Register"))

	return styles.RenderFormSection(rows, "New registration", "* required", m.width, m.focused, styles.BorderHighlightFocusColor)
}

func (m Model) renderRole() string {
	value := m.Role()
	if value == "" {
		value = lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor).Render("select a role")
	}
	arrows := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	return arrows.Render("‹ ") + value + arrows.Render(" ›")
}
