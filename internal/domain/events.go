package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventMenuDismissed    EventType = "MenuDismissed"
	EventPreviewFailed    EventType = "PreviewFailed"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted after every resolved row activation
type SelectionChangedEvent struct {
	Object    any   // the activated domain object
	Selected  bool  // status of Object after the activation
	Selection []any // full selection after the activation, owned by the event
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// MenuDismissedEvent is emitted when the menu closes
type MenuDismissedEvent struct {
	Confirmed bool
	Keys      []string
}

func (e MenuDismissedEvent) Type() EventType { return EventMenuDismissed }

// PreviewFailedEvent is emitted when the preview pager could not be shown
type PreviewFailedEvent struct {
	Key string
	Err error
}

func (e PreviewFailedEvent) Type() EventType { return EventPreviewFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path   string // empty when defaults were used
	Policy string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
