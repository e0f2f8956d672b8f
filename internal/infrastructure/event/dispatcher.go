package event

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	domainEvent "github.com/washpoint/washpoint-api/internal/domain/event"
)

// Handler consumes a published event. Handlers must not block; slow work should
// be dispatched to a goroutine or queue by the handler itself.
type Handler func(ctx context.Context, e domainEvent.Event)

// Dispatcher is an in-process publisher that fans events out to subscribers by
// event name. An empty name subscribes to every event.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewDispatcher creates an empty in-process event dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for an event name. Name "" matches all events.
func (d *Dispatcher) Subscribe(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Publish delivers the event to all handlers subscribed to its name, plus the
// wildcard subscribers. Delivery is synchronous and in registration order.
func (d *Dispatcher) Publish(ctx context.Context, e domainEvent.Event) {
	d.mu.RLock()
	named := d.handlers[e.Name()]
	wildcard := d.handlers[""]
	// Copy into a fresh slice so appending never writes into the spare
	// capacity of the subscriber list shared with concurrent Subscribes.
	handlers := make([]Handler, 0, len(named)+len(wildcard))
	handlers = append(handlers, named...)
	handlers = append(handlers, wildcard...)
	d.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, e)
	}
}

// NewAuditLogger returns a wildcard handler that writes every event to the
// process log as one JSON line.
func NewAuditLogger() Handler {
	return func(ctx context.Context, e domainEvent.Event) {
		payload, err := json.Marshal(e)
		if err != nil {
			log.Printf("event %s: %v", e.Name(), err)
			return
		}
		log.Printf("event %s %s", e.Name(), payload)
	}
}
