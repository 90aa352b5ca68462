// Package inquiry holds the shared "contact modal open" flag that several
// storefront entry points (header button, product pages, footer) toggle.
package inquiry

import (
	"sync"

	"github.com/coconina/storefront/pkg/event"
)

// Toggled is fired with the new bool state on every open/close transition.
const Toggled = "inquiry.toggled"

// Modal is a shared open/closed flag with subscribe/notify semantics.
// Writes are serialized; subscribers run synchronously on the writer's
// goroutine and only when the state actually changes.
type Modal struct {
	mu   sync.Mutex
	open bool
	bus  *event.Bus
}

// NewModal returns a closed modal with its own event bus.
func NewModal() *Modal {
	return &Modal{bus: event.NewBus()}
}

// Open opens the modal.
func (m *Modal) Open() { m.set(true) }

// Close closes the modal.
func (m *Modal) Close() { m.set(false) }

// Toggle flips the state.
func (m *Modal) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transition(!m.open)
}

// IsOpen reports the current state.
func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Subscribe registers fn for state transitions and returns the unsubscribe
// func. Subscribers must not call Open, Close or Toggle themselves.
func (m *Modal) Subscribe(fn func(open bool)) func() {
	return m.bus.Listen(Toggled, func(p interface{}) {
		fn(p.(bool))
	})
}

func (m *Modal) set(open bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transition(open)
}

// transition must be called with mu held.
func (m *Modal) transition(open bool) {
	if m.open == open {
		return
	}
	m.open = open
	m.bus.Fire(Toggled, open)
}
