// Package events implements the in-process domain event bus. Domain actions
// (user registered, email/password updated, task assigned) are published
// here and picked up by the email-composition listener, decoupling request
// handling from outbound mail.
package events

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
)

// Event is one domain event occurrence: a name from the fixed set in
// domain/event.go plus its typed payload.
type Event struct {
	Name    string
	Payload any
}

// Handler processes one event occurrence. A returned error is caught and
// logged at the bus boundary; it never reaches the publisher.
type Handler func(ctx context.Context, e Event) error

// Bus is a process-wide publish/subscribe hub. It is constructed once at
// startup and injected wherever events are published or subscribed; there
// is no package-level instance. Subscribe is only called during startup
// wiring, never concurrently with Emit, so the handler map needs no lock.
type Bus struct {
	handlers map[string][]Handler
	log      zerolog.Logger
}

// NewBus creates an empty bus.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers h for events named name. Handlers run in registration
// order. Multiple handlers per name are allowed.
func (b *Bus) Subscribe(name string, h Handler) {
	b.handlers[name] = append(b.handlers[name], h)
}

// Emit invokes every handler registered for e.Name, in registration order.
// Emit is fire-and-forget from the publisher's perspective: handler errors
// and panics are caught and logged, never propagated. Emitting an event
// with no subscribers is a no-op.
func (b *Bus) Emit(ctx context.Context, e Event) {
	metrics.DomainEventsTotal.WithLabelValues(e.Name).Inc()

	for i, h := range b.handlers[e.Name] {
		if err := b.invoke(ctx, h, e); err != nil {
			metrics.SubscriberErrorsTotal.WithLabelValues(e.Name).Inc()
			b.log.Error().
				Err(err).
				Str("event", e.Name).
				Int("handler_index", i).
				Msg("event subscriber failed")
		}
	}
}

// invoke runs one handler, converting a panic into an error so a misbehaving
// subscriber cannot take down the publisher.
func (b *Bus) invoke(ctx context.Context, h Handler, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return h(ctx, e)
}
