// Package panel renders a bordered, titled box around pre-styled text.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	border     = lipgloss.RoundedBorder()
	titleStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
)

// Panel describes a box to draw: outer dimensions, border titles and
// pre-styled content lines. Content may contain ANSI sequences; all width
// math is ANSI-aware.
type Panel struct {
	Width  int // outer width, including borders
	Height int // outer height, including borders

	Title  string // embedded left-aligned in the top border
	Footer string // embedded right-aligned in the bottom border

	Content []string
	VertPad int // blank rows between top border and content
}

// Render draws the panel as Height newline-joined rows of exactly Width
// display columns. Content lines are centered horizontally and overlong
// lines are truncated.
func (p Panel) Render() string {
	if p.Width < 2 || p.Height < 2 {
		return ""
	}
	inner := p.Width - 2

	rows := make([]string, 0, p.Height)
	rows = append(rows, borderRow(border.TopLeft, border.Top, border.TopRight, p.Title, false, inner))

	blank := border.Left + strings.Repeat(" ", inner) + border.Right
	for range p.VertPad {
		rows = append(rows, blank)
	}

	contentRows := p.Height - 2 - p.VertPad
	for i := range contentRows {
		if i >= len(p.Content) {
			rows = append(rows, blank)
			continue
		}
		rows = append(rows, border.Left+centerLine(p.Content[i], inner)+border.Right)
	}

	rows = append(rows, borderRow(border.BottomLeft, border.Bottom, border.BottomRight, p.Footer, true, inner))
	return strings.Join(rows, "\n")
}

// Place positions the rendered panel at (x, y) inside a width x height
// viewport, padding the surroundings with blanks.
func (p Panel) Place(width, height, x, y int) string {
	box := p.Render()
	rows := make([]string, 0, height)
	for range y {
		rows = append(rows, "")
	}
	indent := strings.Repeat(" ", max(x, 0))
	for line := range strings.SplitSeq(box, "\n") {
		rows = append(rows, indent+line)
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows[:min(len(rows), height)], "\n")
}

// borderRow builds a horizontal border with an optional styled label
// embedded in it, left-aligned on top rows and right-aligned on bottom
// rows.
func borderRow(left, fill, right, label string, alignRight bool, inner int) string {
	if label == "" || inner < 4 {
		return left + strings.Repeat(fill, inner) + right
	}

	styled := titleStyle.Render(label)
	w := ansi.StringWidth(styled)
	if w > inner-2 {
		styled = ansi.Truncate(styled, inner-2, "…")
		w = ansi.StringWidth(styled)
	}
	rest := inner - w - 1
	if alignRight {
		return left + strings.Repeat(fill, rest) + styled + fill + right
	}
	return left + fill + styled + strings.Repeat(fill, rest) + right
}

func centerLine(line string, inner int) string {
	w := ansi.StringWidth(line)
	if w > inner {
		return ansi.Truncate(line, inner, "")
	}
	lead := (inner - w) / 2
	return strings.Repeat(" ", lead) + line + strings.Repeat(" ", inner-w-lead)
}
