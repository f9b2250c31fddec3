package stores

import "sync"

// callback is a registry entry. Exactly one of the two fields is set:
// a subscriber receives the value, a listener receives nothing. Keeping
// both shapes in one entry gives notify a single iteration path.
type callback[T any] struct {
	subscriber func(T)
	listener   func()
}

func (c callback[T]) invoke(value T) {
	if c.subscriber != nil {
		c.subscriber(value)
		return
	}
	c.listener()
}

// registry tracks registered callbacks keyed by a monotonically
// increasing id. Ids are never reused during the lifetime of the
// registry; removing an entry does not compact or reassign anything,
// so an old unsubscribe handle can never remove a later registration.
type registry[T any] struct {
	mu      sync.RWMutex
	next    uint64
	entries map[uint64]callback[T]
}

func (r *registry[T]) add(cb callback[T]) Unsubscribe {
	r.mu.Lock()
	if r.entries == nil {
		r.entries = map[uint64]callback[T]{}
	}
	id := r.next
	r.next++
	r.entries[id] = cb
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.entries, id)
		r.mu.Unlock()
	}
}

// snapshot copies the current entries so notify can run callbacks with
// no lock held. Callbacks registered after the snapshot is taken catch
// the next pass; callbacks removed after it may still fire once more.
func (r *registry[T]) snapshot() []callback[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.entries) == 0 {
		return nil
	}
	cbs := make([]callback[T], 0, len(r.entries))
	for _, cb := range r.entries {
		cbs = append(cbs, cb)
	}
	return cbs
}

// notify runs every registered callback once with value. Iteration
// order is unspecified. A panic inside a callback propagates to the
// caller; callbacks already invoked in this pass are not rolled back.
func (r *registry[T]) notify(value T) {
	for _, cb := range r.snapshot() {
		cb.invoke(value)
	}
}

func (r *registry[T]) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
