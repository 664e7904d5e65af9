package regform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/roster/internal/registry"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestNew_EmptyRoleFirst(t *testing.T) {
	m := New([]string{"Aluno", "Professor"})

	require.Equal(t, "", m.Role())
	require.Equal(t, FieldName, m.FocusedField())
	require.True(t, m.Focused())
}

func TestTypingAndSubmit(t *testing.T) {
	m := New([]string{"Aluno", "Professor"})
	m = typeText(m, " Ana ")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "Souza")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, " 2000-01-31 ")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "ana@x.com")

	for m.FocusedField() != FieldRole {
		m, _ = press(m, tea.KeyTab)
	}
	m, _ = press(m, tea.KeyRight)
	m, _ = press(m, tea.KeyRight)
	require.Equal(t, "Professor", m.Role())

	m, _ = press(m, tea.KeyEnter)
	require.Equal(t, FieldSubmit, m.FocusedField())

	_, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	msg, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	require.Equal(t, registry.Fields{
		Name:      " Ana ",
		Surname:   "Souza",
		BirthDate: " 2000-01-31 ",
		Email:     "ana@x.com",
		Role:      "Professor",
	}, msg.Fields)
}

func TestCtrlSSubmitsFromAnyField(t *testing.T) {
	m := typeText(New(nil), "Ana")

	_, cmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	require.Equal(t, "Ana", cmd().(SubmitMsg).Fields.Name)
}

func TestRoleCyclesWithWrap(t *testing.T) {
	m := New([]string{"Aluno"})
	for m.FocusedField() != FieldRole {
		m, _ = press(m, tea.KeyTab)
	}

	m, _ = press(m, tea.KeyLeft)
	require.Equal(t, "Aluno", m.Role())
	m, _ = press(m, tea.KeyRight)
	require.Equal(t, "", m.Role())
}

func TestShiftTabWrapsToSubmit(t *testing.T) {
	m, _ := press(New(nil), tea.KeyShiftTab)
	require.Equal(t, FieldSubmit, m.FocusedField())
}

func TestReset(t *testing.T) {
	m := New([]string{"Aluno"}).SetFields(registry.Fields{Name: "Ana", Email: "a@x", Role: "Aluno"})
	m, _ = press(m, tea.KeyTab)

	m = m.Reset()
	require.Equal(t, registry.Fields{}, m.Fields())
	require.Equal(t, FieldName, m.FocusedField())
}

func TestSetFields_UnknownRoleAdded(t *testing.T) {
	m := New([]string{"Aluno"}).SetFields(registry.Fields{Role: "Monitor"})
	require.Equal(t, "Monitor", m.Role())
}

func TestSetRoles_KeepsChoice(t *testing.T) {
	m := New([]string{"Aluno", "Professor"}).SetFields(registry.Fields{Role: "Professor"})
	m = m.SetRoles([]string{"Professor", "Aluno", "Monitor"})
	require.Equal(t, "Professor", m.Role())
}

func TestBlurredIgnoresKeys(t *testing.T) {
	m := New(nil).Blur()
	m = typeText(m, "abc")
	_, cmd := press(m, tea.KeyCtrlS)

	require.Nil(t, cmd)
	require.Empty(t, m.Fields().Name)
}

func TestView(t *testing.T) {
	view := ansi.Strip(New([]string{"Aluno"}).View())

	for _, want := range []string{"New registration", "Name*", "Email*", "Role*", "Birth date", "select a role", "Register"} {
		require.Contains(t, view, want)
	}
}
