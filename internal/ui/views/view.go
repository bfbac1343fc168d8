package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Title          string
	Multi          bool
	Rows           []RowState // every row; only the viewport slice is drawn
	ViewportOffset int
	ViewportHeight int
	SelectedCount  int
	StatusMessage  string
	StatusIsError  bool
	HelpView       string // rendered bubbles/help output, empty hides it
}

// Renderer handles all view rendering
type Renderer struct {
	styles    *Styles
	rowRender *RowRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(glyphs Glyphs) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:    styles,
		rowRender: NewRowRenderer(styles, glyphs),
	}
}

// ChromeHeight is the number of lines Render draws around the list rows
const ChromeHeight = 9

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n\n")

	if len(state.Rows) == 0 {
		content.WriteString(r.styles.Dim.Render("Nothing to select."))
	} else {
		content.WriteString(r.renderList(state))
	}

	content.WriteString("\n")
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		content.WriteString("\n")
		content.WriteString(style.Render(state.StatusMessage))
	}

	if state.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	title := r.styles.Title.Render(state.Title)

	mode := "single"
	if state.Multi {
		mode = "multi"
	}
	badge := r.styles.Badge.Render(fmt.Sprintf("%d selected · %s", state.SelectedCount, mode))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	// Account for main container padding
	padding := termWidth - 4 - lipgloss.Width(title) - lipgloss.Width(badge)
	if padding < 2 {
		padding = 2
	}
	return title + strings.Repeat(" ", padding) + badge
}

// renderList renders the rows inside the viewport with scroll hints
func (r *Renderer) renderList(state ViewState) string {
	start := state.ViewportOffset
	if start < 0 || start >= len(state.Rows) {
		start = 0
	}
	end := len(state.Rows)
	if state.ViewportHeight > 0 && start+state.ViewportHeight < end {
		end = start + state.ViewportHeight
	}

	rowWidth := 0
	if state.Width > 0 {
		rowWidth = state.Width - 4
	}

	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for _, row := range state.Rows[start:end] {
		lines = append(lines, r.rowRender.RenderRow(row, state.Multi, rowWidth))
	}
	if below := len(state.Rows) - end; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more", below)))
	}

	return strings.Join(lines, "\n")
}
