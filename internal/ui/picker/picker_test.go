package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/roster/internal/registry"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRoleOptions(t *testing.T) {
	opts := RoleOptions([]string{"Aluno", "Professor"}, []string{"Professor", "Monitor", ""})

	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	require.Equal(t, []string{registry.AllRoles, "Aluno", "Professor", "Monitor"}, values)
}

func TestNavigationClamps(t *testing.T) {
	m := New("Filter", RoleOptions([]string{"Aluno"}, nil))

	m, _ = m.Update(keyMsg("k"))
	require.Equal(t, registry.AllRoles, m.Selected().Value)

	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	require.Equal(t, "Aluno", m.Selected().Value)
}

func TestEnterEmitsSelect(t *testing.T) {
	m := New("Filter", RoleOptions([]string{"Aluno", "Professor"}, nil)).SetSelected("Professor")

	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	require.Equal(t, SelectMsg{Value: "Professor"}, cmd())
}

func TestEscCancels(t *testing.T) {
	_, cmd := New("Filter", nil).Update(keyMsg("esc"))
	require.Equal(t, CancelMsg{}, cmd())
}

func TestSetSelected_UnknownFallsBackToFirst(t *testing.T) {
	m := New("Filter", RoleOptions(nil, nil)).SetSelected("Nope")
	require.Equal(t, registry.AllRoles, m.Selected().Value)
}

func TestView_ShowsCursor(t *testing.T) {
	m := New("Filter by role", RoleOptions([]string{"Aluno"}, nil)).SetSelected("Aluno")
	view := ansi.Strip(m.View())

	require.Contains(t, view, "Filter by role")
	require.Contains(t, view, ">Aluno")
	require.Contains(t, view, " All roles")
}
