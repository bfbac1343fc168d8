package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Glyphs are the markers drawn in front of each row
type Glyphs struct {
	Cursor    string
	Checked   string
	Unchecked string
}

// RowState is everything needed to draw one list row
type RowState struct {
	Label     string
	IsCursor  bool // keyboard cursor is on this row
	IsChecked bool // row's object is in the selection
	IsPressed bool // transient highlight of a just-activated row
}

// RowRenderer handles rendering of list rows
type RowRenderer struct {
	styles *Styles
	glyphs Glyphs
}

// NewRowRenderer creates a new row renderer
func NewRowRenderer(styles *Styles, glyphs Glyphs) *RowRenderer {
	return &RowRenderer{styles: styles, glyphs: glyphs}
}

// RenderRow renders a single row. Multi-select rows carry a check box;
// single-select rows only mark the chosen entry.
func (r *RowRenderer) RenderRow(row RowState, multi bool, width int) string {
	var parts []string

	cursor := strings.Repeat(" ", lipgloss.Width(r.glyphs.Cursor))
	if row.IsCursor {
		cursor = r.styles.Cursor.Render(r.glyphs.Cursor)
	}
	parts = append(parts, cursor)

	switch {
	case multi && row.IsChecked:
		parts = append(parts, r.styles.Checked.Render(r.glyphs.Checked))
	case multi:
		parts = append(parts, r.styles.Unchecked.Render(r.glyphs.Unchecked))
	case row.IsChecked:
		parts = append(parts, r.styles.Checked.Render("✓"))
	default:
		parts = append(parts, " ")
	}

	label := row.Label
	prefixWidth := lipgloss.Width(strings.Join(parts, " ")) + 1
	if width > 0 && prefixWidth+lipgloss.Width(label) > width {
		label = ansi.Truncate(label, max(width-prefixWidth, 1), "…")
	}

	switch {
	case row.IsPressed:
		label = r.styles.Pressed.Render(label)
	case row.IsCursor:
		label = r.styles.SelectionBg.Render(label)
	}
	parts = append(parts, label)

	return strings.Join(parts, " ")
}
