package types

// Direction names a cursor movement
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// Navigation actions
type NavigateAction struct {
	Direction Direction
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions
type ActivateAction struct {
	Index int
}

func (a ActivateAction) Type() string { return "activate" }

// ToggleAllAction selects every row, or clears them all when every row is
// already selected
type ToggleAllAction struct{}

func (a ToggleAllAction) Type() string { return "toggle_all" }

type PreviewAction struct {
	Index int
}

func (a PreviewAction) Type() string { return "preview" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// ConfirmAction closes the menu keeping the selection
type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for q/esc
}

func (a QuitAction) Type() string { return "quit" }
