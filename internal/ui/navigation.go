package ui

import "selectmenu/internal/ui/input/types"

// Navigator tracks the cursor and the scroll window over the rows
type Navigator struct {
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	count          int
}

// NewNavigator creates a navigator over count rows
func NewNavigator(count, height int) *Navigator {
	n := &Navigator{count: count}
	n.SetViewportHeight(height)
	return n
}

// SetViewportHeight updates the number of visible rows
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.ViewportHeight = height
	n.ensureVisible()
}

// Navigate moves the cursor in a direction
func (n *Navigator) Navigate(direction types.Direction) {
	switch direction {
	case types.DirectionUp:
		n.MoveTo(n.Cursor - 1)
	case types.DirectionDown:
		n.MoveTo(n.Cursor + 1)
	case types.DirectionPageUp:
		n.MoveTo(n.Cursor - n.pageSize())
	case types.DirectionPageDown:
		n.MoveTo(n.Cursor + n.pageSize())
	case types.DirectionHome:
		n.MoveTo(0)
	case types.DirectionEnd:
		n.MoveTo(n.count - 1)
	}
}

// MoveTo moves the cursor to index, clamped to the rows
func (n *Navigator) MoveTo(index int) {
	n.Cursor = n.clampIndex(index)
	n.ensureVisible()
}

func (n *Navigator) pageSize() int {
	if n.ViewportHeight > 1 {
		return n.ViewportHeight - 1
	}
	return 1
}

func (n *Navigator) clampIndex(index int) int {
	if index > n.count-1 {
		index = n.count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

func (n *Navigator) ensureVisible() {
	if n.Cursor < n.ViewportOffset {
		n.ViewportOffset = n.Cursor
	} else if n.Cursor >= n.ViewportOffset+n.ViewportHeight {
		n.ViewportOffset = n.Cursor - n.ViewportHeight + 1
	}
	// Don't leave blank rows at the bottom when the window grows
	if maxOffset := n.count - n.ViewportHeight; n.ViewportOffset > maxOffset {
		n.ViewportOffset = max(maxOffset, 0)
	}
}
