// Package overlay composites a foreground box onto an already rendered
// background, keeping the styling of both.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is the anchor of the foreground box.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config describes the viewport the foreground is placed into.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadY is the distance from the top or bottom edge. Ignored for Center.
	PadY int
}

// Place draws fg over bg. Foreground lines wider than the viewport are cut
// at the right edge and the background is padded to the viewport height.
func Place(cfg Config, fg, bg string) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < cfg.Height {
		rows = append(rows, strings.Repeat(" ", max(cfg.Width, 0)))
	}

	box := strings.Split(fg, "\n")
	x, y := origin(cfg, lipgloss.Width(fg), len(box))

	for i, line := range box {
		row := y + i
		if row >= len(rows) {
			break
		}
		if cfg.Width > 0 {
			line = ansi.Truncate(line, cfg.Width-x, "")
		}
		rows[row] = splice(rows[row], line, x)
	}

	return strings.Join(rows, "\n")
}

// splice replaces the cells of row starting at column x with line.
func splice(row, line string, x int) string {
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(line)
	var right string
	if end < ansi.StringWidth(row) {
		right = ansi.TruncateLeft(row, end, "")
	}
	return left + line + right
}

func origin(cfg Config, w, h int) (x, y int) {
	x = (cfg.Width - w) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - h - cfg.PadY
	default:
		y = (cfg.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}
