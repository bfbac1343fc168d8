package selection

import "sync"

// Controller owns the selection of one list presentation
type Controller struct {
	policy Policy

	// activate serialises whole activations so notifications follow mutation order
	activate sync.Mutex

	mu       sync.Mutex
	selected []any
	observer Observer
}

// Option configures a Controller
type Option func(*Controller)

// WithObserver registers the initial observer
func WithObserver(obs Observer) Option {
	return func(c *Controller) {
		c.observer = obs
	}
}

// NewController creates a controller with an empty selection
func NewController(policy Policy, opts ...Option) *Controller {
	c := &Controller{policy: policy}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the policy fixed at construction
func (c *Controller) Policy() Policy {
	return c.policy
}

// SetObserver replaces the registered observer. Only the most recently
// registered observer is notified; nil removes it. Use Observers to notify
// several.
func (c *Controller) SetObserver(obs Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = obs
}

// Selected returns a copy of the selection in insertion order
func (c *Controller) Selected() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Len returns the number of selected objects
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.selected)
}

// HandleRowActivated applies a row activation coming from view.
// An index the view cannot resolve is ignored.
func (c *Controller) HandleRowActivated(index int, view ListView) {
	c.activate.Lock()
	defer c.activate.Unlock()

	object, ok := view.ObjectAt(index)
	if !ok {
		return
	}

	if d, ok := view.(RowDeselecter); ok {
		d.DeselectRow(index)
	}

	c.mu.Lock()
	var selected bool
	switch c.policy {
	case Single:
		c.selected = append(c.selected[:0], object)
		selected = true
	default:
		if pos, found := view.IsSelected(object, c.current()); found && pos >= 0 && pos < len(c.selected) {
			c.selected = append(c.selected[:pos], c.selected[pos+1:]...)
		} else {
			c.selected = append(c.selected, object)
			selected = true
		}
	}
	snapshot := c.snapshot()
	observer := c.observer
	c.mu.Unlock()

	view.Refresh()

	if observer != nil {
		observer(object, selected, snapshot)
	}

	view.DismissIfRequired()
}

// AddPreselected seeds object into the selection without notifying the
// observer. Objects view already considers selected are left alone.
func (c *Controller) AddPreselected(object any, view ListView) {
	c.activate.Lock()
	defer c.activate.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := view.IsSelected(object, c.current()); found {
		return
	}
	if c.policy == Single {
		c.selected = c.selected[:0]
	}
	c.selected = append(c.selected, object)
}

// current exposes the selection to the view without letting appends reach
// the backing array. Callers hold mu.
func (c *Controller) current() []any {
	return c.selected[:len(c.selected):len(c.selected)]
}

// snapshot copies the selection. Callers hold mu.
func (c *Controller) snapshot() []any {
	out := make([]any, len(c.selected))
	copy(out, c.selected)
	return out
}
