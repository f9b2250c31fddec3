package stores

import (
	"fmt"
	"sync"
)

// Derived is a read-only reactive value computed from other emitters.
// Whenever any source emits, Derived re-runs its compute function,
// caches the result and notifies its own callbacks. Recomputation is
// eager and per-notification: two upstream writes cause two
// recomputations and two downstream notifications, never one.
type Derived[T any] struct {
	mu        sync.RWMutex
	value     T
	compute   func() T
	callbacks registry[T]
}

var (
	_ Readable[int] = (*Derived[int])(nil)
	_ Emitter       = (*Derived[int])(nil)
)

// NewDerived creates a derived value over sources. compute is evaluated
// once synchronously for the initial value; it captures whatever
// readables it needs, typically the sources themselves. Panics when
// sources is empty, since a derived value with nothing to react to is a
// programming error.
func NewDerived[T any](sources []Emitter, compute func() T) *Derived[T] {
	if len(sources) == 0 {
		panic("stores: NewDerived requires at least one source")
	}

	d := &Derived[T]{
		value:   compute(),
		compute: compute,
	}
	for _, source := range sources {
		source.Listen(d.recompute)
	}
	return d
}

func (d *Derived[T]) recompute() {
	value := d.compute()

	d.mu.Lock()
	d.value = value
	d.mu.Unlock()

	d.callbacks.notify(value)
}

// Get returns a copy of the cached value: the compute result as of the
// last upstream notification, not necessarily what compute would return
// right now.
func (d *Derived[T]) Get() T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.value
}

// Listen registers a callback that runs on every recomputation. It is
// not run at registration time.
func (d *Derived[T]) Listen(cb func()) Unsubscribe {
	return d.callbacks.add(callback[T]{listener: cb})
}

// Subscribe registers a callback that receives the value on every
// recomputation. The callback first runs once synchronously with the
// cached value before Subscribe returns.
func (d *Derived[T]) Subscribe(cb func(T)) Unsubscribe {
	cb(d.Get())
	return d.callbacks.add(callback[T]{subscriber: cb})
}

func (d *Derived[T]) String() string {
	return fmt.Sprintf("Derived{value: %v, callbacks: %d}", d.Get(), d.callbacks.len())
}
