// Package notify implements the listener registries used for game and session events.
//
// Listeners are called synchronously in registration order. Dispatch works on a
// copy of the registry taken before the first listener runs, so a listener may
// add or remove listeners (itself included) without affecting the current dispatch.
package notify

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Handle identifies a registered listener. Handles are unique across all registries.
type Handle uint64

var lastHandle atomic.Uint64

type entry[T any] struct {
	handle   Handle
	listener func(T)
}

// Registry holds the listeners of one event type. The zero value is ready to use.
type Registry[T any] struct {
	mu      sync.Mutex
	entries []entry[T]
	onPanic func(recovered any)
}

// SetPanicHandler - sets the function receiving values recovered from panicking listeners.
// Without a handler such panics are swallowed.
func (that *Registry[T]) SetPanicHandler(handler func(recovered any)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onPanic = handler
}

// Add - registers listener and returns its handle.
func (that *Registry[T]) Add(listener func(T)) Handle {
	handle := Handle(lastHandle.Add(1))

	that.mu.Lock()
	defer that.mu.Unlock()

	that.entries = append(that.entries, entry[T]{handle: handle, listener: listener})

	return handle
}

// Remove - unregisters the listener with the given handle. Reports whether it was registered.
func (that *Registry[T]) Remove(handle Handle) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, e := range that.entries {
		if e.handle == handle {
			that.entries = slices.Delete(that.entries, i, i+1)

			return true
		}
	}

	return false
}

// Notify - calls every listener registered before the call with event.
func (that *Registry[T]) Notify(event T) {
	that.mu.Lock()
	snapshot := make([]entry[T], len(that.entries))
	copy(snapshot, that.entries)
	onPanic := that.onPanic
	that.mu.Unlock()

	for _, e := range snapshot {
		that.call(e.listener, event, onPanic)
	}
}

func (that *Registry[T]) call(listener func(T), event T, onPanic func(any)) {
	defer func() {
		if recovered := recover(); recovered != nil && onPanic != nil {
			onPanic(recovered)
		}
	}()

	listener(event)
}
