// Package stores provides thread-safe reactive value primitives:
// mutable observables, derived read-only values, change-deduplicating
// wrappers and valueless events. All dispatch is synchronous and runs
// inline on the goroutine that triggered it; there is no scheduler,
// no batching and no coalescing of notifications.
package stores

// Unsubscribe removes a previously registered callback. Calling it more
// than once is harmless; every call after the first is a no-op.
type Unsubscribe func()

// Emitter is the contract for subscribing to change notifications.
type Emitter interface {
	// Listen registers a callback that runs on every change. The
	// callback is not run at registration time.
	Listen(callback func()) Unsubscribe
}

// Readable is the contract for reading and subscribing to values.
type Readable[T any] interface {
	// Get returns a copy of the current value.
	Get() T

	// Subscribe registers a callback that receives the value on every
	// change. The callback also runs once synchronously with the
	// current value before Subscribe returns.
	Subscribe(callback func(T)) Unsubscribe
}

// Writable is the contract for replacing and transforming values.
// Every write triggers all registered callbacks, even when the new
// value equals the old one.
type Writable[T any] interface {
	// Set replaces the current value.
	Set(value T)

	// Update replaces the current value with updater(current). The
	// whole read-compute-write sequence is exclusive, so concurrent
	// Update calls from many goroutines never lose an update.
	Update(updater func(T) T)
}

// Source is anything Deduped can wrap: readable and emitting.
type Source[T any] interface {
	Readable[T]
	Emitter
}
