package stores

import (
	"fmt"
	"sync"
)

// Observable is a readable and writable reactive value. The zero value
// is not usable; create one with NewObservable. All methods are safe
// for concurrent use from multiple goroutines.
type Observable[T any] struct {
	mu        sync.RWMutex
	value     T
	callbacks registry[T]
}

var (
	_ Readable[int] = (*Observable[int])(nil)
	_ Writable[int] = (*Observable[int])(nil)
	_ Emitter       = (*Observable[int])(nil)
)

// NewObservable creates an observable holding value.
func NewObservable[T any](value T) *Observable[T] {
	return &Observable[T]{value: value}
}

// Get returns a copy of the current value.
func (o *Observable[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Set replaces the current value and runs all registered callbacks with
// it, whether or not it differs from the old value. The value lock is
// released before any callback runs, so callbacks may call Get,
// Subscribe or Listen on this observable without deadlocking.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	o.value = value
	o.mu.Unlock()

	o.callbacks.notify(value)
}

// Update replaces the current value with updater(current). The read,
// the call to updater and the write happen under the value write lock,
// so concurrent Update calls serialize and none is lost.
func (o *Observable[T]) Update(updater func(T) T) {
	o.mu.Lock()
	value := updater(o.value)
	o.value = value
	o.mu.Unlock()

	o.callbacks.notify(value)
}

// Listen registers a callback that runs on every write. It is not run
// at registration time.
func (o *Observable[T]) Listen(cb func()) Unsubscribe {
	return o.callbacks.add(callback[T]{listener: cb})
}

// Subscribe registers a callback that receives the value on every
// write. The callback first runs once synchronously with the current
// value before Subscribe returns.
func (o *Observable[T]) Subscribe(cb func(T)) Unsubscribe {
	cb(o.Get())
	return o.callbacks.add(callback[T]{subscriber: cb})
}

func (o *Observable[T]) String() string {
	return fmt.Sprintf("Observable{value: %v, callbacks: %d}", o.Get(), o.callbacks.len())
}
