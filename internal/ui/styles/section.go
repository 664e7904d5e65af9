package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderFormSection draws content inside a rounded border with the title
// inlined in the top edge: ╭─ Title (hint) ───╮. A focused section uses
// focusColor for its border and title.
func RenderFormSection(content []string, title, hint string, width int, focused bool, focusColor lipgloss.TerminalColor) string {
	var color lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		color = focusColor
	}
	border := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	hintStyle := lipgloss.NewStyle().Foreground(TextMutedColor)

	inner := max(width-2, 1)

	var top string
	if title == "" {
		top = border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	} else {
		label := title
		if hint != "" {
			label += " (" + hint + ")"
		}
		rest := max(inner-lipgloss.Width(label)-3, 0)
		top = border.Render(borderTopLeft+borderHorizontal+" ") + titleStyle.Render(title)
		if hint != "" {
			top += " " + hintStyle.Render("("+hint+")")
		}
		top += border.Render(" " + strings.Repeat(borderHorizontal, rest) + borderTopRight)
	}

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, top)
	for _, row := range content {
		pad := max(inner-lipgloss.Width(row), 0)
		lines = append(lines, border.Render(borderVertical)+row+strings.Repeat(" ", pad)+border.Render(borderVertical))
	}
	lines = append(lines, border.Render(borderBottomLeft+strings.Repeat(borderHorizontal, inner)+borderBottomRight))

	return strings.Join(lines, "\n")
}
