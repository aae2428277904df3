package inventory

import (
	"sync"

	"github.com/google/uuid"
)

// EventKind identifies a change notification
type EventKind int

const (
	// ComponentsChanged follows any committed change to component rows,
	// including reassignment and retagging by category operations.
	ComponentsChanged EventKind = iota + 1
	// CategoriesChanged follows any committed change to category rows.
	CategoriesChanged
	// ErrorOccurred reports a failed mutating operation. It is
	// informational; the error is also returned to the caller.
	ErrorOccurred
)

func (k EventKind) String() string {
	switch k {
	case ComponentsChanged:
		return "components_changed"
	case CategoriesChanged:
		return "categories_changed"
	case ErrorOccurred:
		return "error_occurred"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a mutation
type Event struct {
	Kind    EventKind
	Message string // Set for ErrorOccurred
}

// Handler receives events synchronously on the goroutine that made the change
type Handler func(Event)

// Subscription is a cancellable registration returned by Subscribe
type Subscription struct {
	id  uuid.UUID
	hub *hub
}

// ID returns the unique subscription identifier
func (s *Subscription) ID() string {
	return s.id.String()
}

// Cancel stops delivery to the handler. It is safe to call more than once.
func (s *Subscription) Cancel() {
	s.hub.remove(s.id)
}

type subscriber struct {
	id      uuid.UUID
	handler Handler
}

// hub fans events out to subscribers in registration order
type hub struct {
	mu          sync.Mutex
	subscribers []subscriber
}

func (h *hub) add(handler Handler) *Subscription {
	id := uuid.New()
	h.mu.Lock()
	h.subscribers = append(h.subscribers, subscriber{id: id, handler: handler})
	h.mu.Unlock()
	return &Subscription{id: id, hub: h}
}

func (h *hub) remove(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subscribers {
		if s.id == id {
			h.subscribers = append(h.subscribers[:i:i], h.subscribers[i+1:]...)
			return
		}
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// publish delivers ev outside the lock so handlers may subscribe, cancel or
// call back into the inventory
func (h *hub) publish(ev Event) {
	h.mu.Lock()
	snapshot := make([]subscriber, len(h.subscribers))
	copy(snapshot, h.subscribers)
	h.mu.Unlock()

	for _, s := range snapshot {
		s.handler(ev)
	}
}
