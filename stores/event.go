package stores

// Event is an emitter that carries no value: listeners can be
// registered and dispatched, nothing else. The zero value is ready to
// use, but NewEvent exists for symmetry with the other constructors.
type Event struct {
	callbacks registry[struct{}]
}

var _ Emitter = (*Event)(nil)

// NewEvent creates an empty event.
func NewEvent() *Event {
	return &Event{}
}

// Listen registers a callback that runs on every Dispatch. It is not
// run at registration time.
func (e *Event) Listen(cb func()) Unsubscribe {
	return e.callbacks.add(callback[struct{}]{listener: cb})
}

// Dispatch runs every registered callback once. Concurrent Dispatch
// calls each independently run all callbacks registered at the time of
// their snapshot.
func (e *Event) Dispatch() {
	e.callbacks.notify(struct{}{})
}
