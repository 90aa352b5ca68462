// Package event provides a small named-event dispatcher.
//
// A Bus holds its own listeners, so independent components (and tests) do
// not share state. Listen returns a function that removes the listener.
//
//	bus := event.NewBus()
//	stop := bus.Listen("inquiry.toggled", func(p interface{}) { ... })
//	bus.Fire("inquiry.toggled", true)
//	stop()
package event

import (
	"sync"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

type listener struct {
	id uint64
	fn Handler
}

// Bus dispatches events to listeners registered by name.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[string][]listener
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: map[string][]listener{}}
}

// Listen registers handler for event and returns its unsubscribe func.
// Calling the unsubscribe func more than once is a no-op.
func (b *Bus) Listen(event string, handler Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[event] = append(b.handlers[event], listener{id: id, fn: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(event, id) })
	}
}

func (b *Bus) remove(event string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ls := b.handlers[event]
	for i, l := range ls {
		if l.id == id {
			b.handlers[event] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(b.handlers[event]) == 0 {
		delete(b.handlers, event)
	}
}

func (b *Bus) snapshot(event string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	hs := make([]Handler, len(b.handlers[event]))
	for i, l := range b.handlers[event] {
		hs[i] = l.fn
	}
	return hs
}

// Fire dispatches an event synchronously to all registered listeners.
// Listeners may unsubscribe from inside the callback.
func (b *Bus) Fire(event string, payload interface{}) {
	for _, h := range b.snapshot(event) {
		h(payload)
	}
}

// Count returns the number of listeners for event.
func (b *Bus) Count(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[event])
}
