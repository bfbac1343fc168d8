package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"selectmenu/internal/ui/input/types"
)

// Handler turns key presses into actions
type Handler struct {
	keys KeyMap
}

// New creates a handler for the given key map
func New(keys KeyMap) *Handler {
	return &Handler{keys: keys}
}

// Keys returns the bindings the handler matches against
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// HandleKey returns the actions for msg, or nil when the key is not bound
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	k := h.keys

	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}
	}

	switch {
	case key.Matches(msg, k.Up):
		return nav(types.DirectionUp)
	case key.Matches(msg, k.Down):
		return nav(types.DirectionDown)
	case key.Matches(msg, k.PageUp):
		return nav(types.DirectionPageUp)
	case key.Matches(msg, k.PageDown):
		return nav(types.DirectionPageDown)
	case key.Matches(msg, k.Home):
		return nav(types.DirectionHome)
	case key.Matches(msg, k.End):
		return nav(types.DirectionEnd)

	case key.Matches(msg, k.Toggle):
		if ctx.TotalItems() == 0 {
			return nil
		}
		return []types.Action{types.ActivateAction{Index: ctx.CurrentIndex()}}

	case key.Matches(msg, k.Enter):
		// Enter finishes a multi-select menu; in single-select it picks the row
		if ctx.IsMulti() {
			return []types.Action{types.ConfirmAction{}}
		}
		if ctx.TotalItems() == 0 {
			return nil
		}
		return []types.Action{types.ActivateAction{Index: ctx.CurrentIndex()}}

	case key.Matches(msg, k.Confirm):
		return []types.Action{types.ConfirmAction{}}

	case key.Matches(msg, k.All):
		if !ctx.IsMulti() || ctx.TotalItems() == 0 {
			return nil
		}
		return []types.Action{types.ToggleAllAction{}}

	case key.Matches(msg, k.Preview):
		if ctx.TotalItems() == 0 {
			return nil
		}
		return []types.Action{types.PreviewAction{Index: ctx.CurrentIndex()}}

	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}

	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{}}
	}

	return nil
}

func nav(d types.Direction) []types.Action {
	return []types.Action{types.NavigateAction{Direction: d}}
}
