package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"selectmenu/internal/ui/input/types"
)

func TestNavigatorClampsAndScrolls(t *testing.T) {
	n := NewNavigator(10, 3)

	n.Navigate(types.DirectionUp)
	assert.Equal(t, 0, n.Cursor)

	for i := 0; i < 4; i++ {
		n.Navigate(types.DirectionDown)
	}
	assert.Equal(t, 4, n.Cursor)
	assert.Equal(t, 2, n.ViewportOffset)

	n.Navigate(types.DirectionEnd)
	assert.Equal(t, 9, n.Cursor)
	assert.Equal(t, 7, n.ViewportOffset)

	n.Navigate(types.DirectionDown)
	assert.Equal(t, 9, n.Cursor)

	n.Navigate(types.DirectionPageUp)
	assert.Equal(t, 7, n.Cursor)
	assert.Equal(t, 7, n.ViewportOffset)

	n.Navigate(types.DirectionHome)
	assert.Equal(t, 0, n.Cursor)
	assert.Equal(t, 0, n.ViewportOffset)

	n.Navigate(types.DirectionPageDown)
	assert.Equal(t, 2, n.Cursor)
}

func TestNavigatorGrowingViewport(t *testing.T) {
	n := NewNavigator(5, 2)
	n.Navigate(types.DirectionEnd)
	assert.Equal(t, 3, n.ViewportOffset)

	n.SetViewportHeight(10)
	assert.Equal(t, 0, n.ViewportOffset)
	assert.Equal(t, 4, n.Cursor)
}

func TestNavigatorEmpty(t *testing.T) {
	n := NewNavigator(0, 0)
	assert.Equal(t, 1, n.ViewportHeight)
	n.Navigate(types.DirectionDown)
	n.Navigate(types.DirectionEnd)
	assert.Equal(t, 0, n.Cursor)
	assert.Equal(t, 0, n.ViewportOffset)
}
