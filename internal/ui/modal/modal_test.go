package modal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func press(m Model, key string) (Model, tea.Msg) {
	var k tea.KeyMsg
	switch key {
	case "enter":
		k = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		k = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		k = tea.KeyMsg{Type: tea.KeyTab}
	default:
		k = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, cmd := m.Update(k)
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestConfirm_StartsOnCancel(t *testing.T) {
	m := NewConfirm("Delete", "Are you sure?", "ana@x.com")

	require.Equal(t, FieldCancel, m.Focused())
	_, msg := press(m, "enter")
	require.Equal(t, CancelMsg{Subject: "ana@x.com"}, msg)
}

func TestConfirm_TabThenEnterConfirms(t *testing.T) {
	m := NewConfirm("Delete", "Are you sure?", "ana@x.com")

	m, msg := press(m, "tab")
	require.Nil(t, msg)
	require.Equal(t, FieldConfirm, m.Focused())

	_, msg = press(m, "enter")
	require.Equal(t, ConfirmMsg{Subject: "ana@x.com"}, msg)
}

func TestConfirm_Shortcuts(t *testing.T) {
	m := NewConfirm("Delete", "Are you sure?", "b@x.com")

	_, msg := press(m, "y")
	require.Equal(t, ConfirmMsg{Subject: "b@x.com"}, msg)

	_, msg = press(m, "n")
	require.Equal(t, CancelMsg{Subject: "b@x.com"}, msg)

	_, msg = press(m, "esc")
	require.Equal(t, CancelMsg{Subject: "b@x.com"}, msg)
}

func TestAlert_AnyAckKeyDismisses(t *testing.T) {
	for _, key := range []string{"enter", "esc", "q"} {
		m := NewAlert("Error", "Invalid email!")
		_, msg := press(m, key)
		require.Equal(t, DismissMsg{}, msg, key)
	}
}

func TestAlert_IgnoresOtherKeys(t *testing.T) {
	m := NewAlert("Error", "Invalid email!")
	_, msg := press(m, "y")
	require.Nil(t, msg)
}

func TestView_WrapsMessage(t *testing.T) {
	m := NewAlert("Error", "Please fill in the required fields: Name, Email and Role.")
	view := ansi.Strip(m.View())

	require.Contains(t, view, "Error")
	require.Contains(t, view, "Please fill in the required fields")
	require.Contains(t, view, "OK")
}

func TestView_ConfirmButtons(t *testing.T) {
	view := ansi.Strip(NewConfirm("Delete", "Are you sure?", "x@y").View())

	require.Contains(t, view, "Confirm")
	require.Contains(t, view, "Cancel")
}

func TestOverlay_UsesSize(t *testing.T) {
	m := NewAlert("Error", "Invalid email!")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	out := m.Overlay("")
	require.Contains(t, ansi.Strip(out), "Invalid email!")
}
