package selection

import "selectmenu/internal/eventbus"

// Observers combines several observers into one that calls each in order.
// Every observer receives its own copy of the snapshot.
func Observers(obs ...Observer) Observer {
	var list []Observer
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	return func(object any, selected bool, snapshot []any) {
		for i, o := range list {
			s := snapshot
			if i < len(list)-1 {
				s = make([]any, len(snapshot))
				copy(s, snapshot)
			}
			o(object, selected, s)
		}
	}
}

// Publisher returns an observer that publishes each change on bus
func Publisher(bus eventbus.EventBus) Observer {
	return func(object any, selected bool, snapshot []any) {
		bus.Publish(eventbus.SelectionChangedEvent{
			Object:    object,
			Selected:  selected,
			Selection: snapshot,
		})
	}
}
