package selection

import "fmt"

// Policy decides how many objects may be selected at once
type Policy int

const (
	// Single keeps at most one selected object; each activation replaces it
	Single Policy = iota
	// Multi toggles each activated object in or out of the selection
	Multi
)

func (p Policy) String() string {
	switch p {
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ListView is what the controller needs from the list it drives.
// Implementations only read the selection slices passed to them.
type ListView interface {
	// ObjectAt resolves a UI row index to its domain object
	ObjectAt(index int) (any, bool)
	// IsSelected reports the position of object within current, if present.
	// The equality used here defines uniqueness of the selection.
	IsSelected(object any, current []any) (int, bool)
	// Refresh re-renders the list to reflect the selection
	Refresh()
	// DismissIfRequired closes the hosting presentation when the view's
	// dismissal policy calls for it after a selection
	DismissIfRequired()
}

// RowDeselecter is implemented by views that keep a transient highlight on
// the row that was just activated.
type RowDeselecter interface {
	DeselectRow(index int)
}

// Observer is notified after each resolved activation with the activated
// object, whether it is now selected, and a copy of the whole selection.
type Observer func(object any, selected bool, snapshot []any)
