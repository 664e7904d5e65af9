package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFormSection(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	tests := []struct {
		name         string
		content      []string
		title, hint  string
		width        int
		wantContains []string
	}{
		{"title only", []string{" Ana"}, "Name", "", 30, []string{"╭─ Name", "│ Ana", "╰"}},
		{"title and hint", []string{" x"}, "Email", "required", 30, []string{"╭─ Email (required)"}},
		{"no title", []string{"body"}, "", "", 10, []string{"╭────────╮", "│body    │"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ansi.Strip(RenderFormSection(tt.content, tt.title, tt.hint, tt.width, false, BorderHighlightFocusColor))
			for _, want := range tt.wantContains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRenderFormSection_LinesHaveSectionWidth(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := RenderFormSection([]string{"a", "bb"}, "Role", "", 24, true, BorderHighlightFocusColor)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 24, lipgloss.Width(line), "line %q", ansi.Strip(line))
	}
}

func TestApplyTheme(t *testing.T) {
	origMuted, origErr, origOK := TextMutedColor, StatusErrorColor, StatusSuccessColor
	t.Cleanup(func() {
		TextMutedColor, StatusErrorColor, StatusSuccessColor = origMuted, origErr, origOK
	})

	ApplyTheme("", "#FF0000", "")
	assert.Equal(t, origMuted, TextMutedColor)
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF0000"}, StatusErrorColor)
	assert.Equal(t, StatusErrorColor, ToastBorderErrorColor)
	assert.Equal(t, origOK, StatusSuccessColor)
}
