package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestShow_VisibleWithMessage(t *testing.T) {
	m, cmd := New().Show("Registration added", StyleSuccess, time.Second)

	require.True(t, m.Visible())
	require.Equal(t, "Registration added", m.Message())
	require.NotNil(t, cmd)
	require.Contains(t, ansi.Strip(m.View()), "Registration added")
}

func TestShow_ZeroDurationHasNoTimer(t *testing.T) {
	_, cmd := New().Show("sticky", StyleInfo, 0)
	require.Nil(t, cmd)
}

func TestUpdate_StaleDismissIgnored(t *testing.T) {
	m, _ := New().Show("first", StyleSuccess, time.Second)
	m, _ = m.Show("second", StyleError, time.Second)

	m = m.Update(DismissMsg{Generation: 1})
	require.True(t, m.Visible())
	require.Equal(t, "second", m.Message())

	m = m.Update(DismissMsg{Generation: 2})
	require.False(t, m.Visible())
}

func TestView_HiddenIsEmpty(t *testing.T) {
	require.Empty(t, New().View())
	m, _ := New().Show("x", StyleSuccess, 0)
	require.Empty(t, m.Hide().View())
}

func TestOverlay_BottomOfScreen(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", 40)+"\n", 10), "\n")
	m, _ := New().Show("Removed 1", StyleInfo, 0)

	rows := strings.Split(ansi.Strip(m.Overlay(bg, 40, 10)), "\n")
	require.Len(t, rows, 10)
	require.Contains(t, rows[7], "Removed 1")
	require.Equal(t, strings.Repeat(" ", 40), rows[9])
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	require.Equal(t, "bg", New().Overlay("bg", 10, 1))
}
