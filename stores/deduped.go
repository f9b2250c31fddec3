package stores

import (
	"fmt"
	"sync"
)

// Deduped wraps a readable, emitting source and suppresses redundant
// notifications: it mirrors the source's value in a shadow copy and
// notifies its own callbacks only when a pushed value actually differs
// from the shadow. Writes forward to the source when the source is
// writable; the shadow is only ever updated through the source's own
// notification path.
type Deduped[T comparable] struct {
	source    Source[T]
	mu        sync.RWMutex
	value     T
	callbacks registry[T]
}

var (
	_ Readable[int] = (*Deduped[int])(nil)
	_ Writable[int] = (*Deduped[int])(nil)
	_ Emitter       = (*Deduped[int])(nil)
)

// DedupedFrom creates a deduplicated view of source. The source's
// current value seeds the shadow copy.
func DedupedFrom[T comparable](source Source[T]) *Deduped[T] {
	d := &Deduped[T]{
		source: source,
		value:  source.Get(),
	}
	source.Subscribe(d.absorb)
	return d
}

// NewDeduped creates a standalone Deduped around a fresh internal
// Observable holding value.
func NewDeduped[T comparable](value T) *Deduped[T] {
	return DedupedFrom[T](NewObservable(value))
}

// absorb receives every source notification and drops the ones that do
// not change the shadow value.
func (d *Deduped[T]) absorb(value T) {
	d.mu.Lock()
	if d.value == value {
		d.mu.Unlock()
		return
	}
	d.value = value
	d.mu.Unlock()

	d.callbacks.notify(value)
}

// Get returns a copy of the shadow value: the source's value as
// observed through its most recent notification.
func (d *Deduped[T]) Get() T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.value
}

// Set forwards value to the wrapped source. Panics when the source is
// not writable. Deduped's own callbacks fire through the source's
// notification path, and only if the value actually changed.
func (d *Deduped[T]) Set(value T) {
	d.writable().Set(value)
}

// Update forwards updater to the wrapped source. Panics when the source
// is not writable.
func (d *Deduped[T]) Update(updater func(T) T) {
	d.writable().Update(updater)
}

func (d *Deduped[T]) writable() Writable[T] {
	w, ok := d.source.(Writable[T])
	if !ok {
		panic(fmt.Sprintf("stores: Deduped source %T is not writable", d.source))
	}
	return w
}

// Listen registers a callback that runs on every actual change of the
// source's value. It is not run at registration time.
func (d *Deduped[T]) Listen(cb func()) Unsubscribe {
	return d.callbacks.add(callback[T]{listener: cb})
}

// Subscribe registers a callback that receives the value on every
// actual change. The callback first runs once synchronously with the
// shadow value before Subscribe returns.
func (d *Deduped[T]) Subscribe(cb func(T)) Unsubscribe {
	cb(d.Get())
	return d.callbacks.add(callback[T]{subscriber: cb})
}

func (d *Deduped[T]) String() string {
	return fmt.Sprintf("Deduped{value: %v, callbacks: %d}", d.Get(), d.callbacks.len())
}
