package events

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// transactionalAttempts is the delivery budget for general transactional
// mail: a single attempt, no retry. Time-sensitive reminders use a higher
// budget at enqueue time.
const transactionalAttempts = 1

// EmailListener turns domain events into email jobs. Each event occurrence
// enqueues exactly one job; delivery itself happens in the queue worker.
type EmailListener struct {
	queue ports.EmailQueue
	log   zerolog.Logger
}

// NewEmailListener creates the listener. Call Register to attach it to a bus.
func NewEmailListener(queue ports.EmailQueue, log zerolog.Logger) *EmailListener {
	return &EmailListener{queue: queue, log: log}
}

// Register subscribes the listener to all four domain event kinds.
func (l *EmailListener) Register(bus *Bus) {
	bus.Subscribe(domain.EventUserRegistered, l.onUserRegistered)
	bus.Subscribe(domain.EventEmailUpdated, l.onEmailUpdated)
	bus.Subscribe(domain.EventPasswordUpdated, l.onPasswordUpdated)
	bus.Subscribe(domain.EventTaskAssigned, l.onTaskAssigned)
}

func (l *EmailListener) onUserRegistered(ctx context.Context, e Event) error {
	user, ok := e.Payload.(domain.UserEventPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s", e.Payload, e.Name)
	}
	return l.queue.Enqueue(ctx, domain.EmailJob{
		To:       user.Email,
		Subject:  "Bienvenido",
		Text:     fmt.Sprintf("Hola %s, ¡bienvenido a nuestra plataforma!", user.Username),
		Attempts: transactionalAttempts,
	})
}

func (l *EmailListener) onEmailUpdated(ctx context.Context, e Event) error {
	user, ok := e.Payload.(domain.UserEventPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s", e.Payload, e.Name)
	}
	return l.queue.Enqueue(ctx, domain.EmailJob{
		To:       user.Email,
		Subject:  "Actualización de correo",
		Text:     fmt.Sprintf("Hola %s, ¡haz actualizado con éxito tu correo!", user.Username),
		Attempts: transactionalAttempts,
	})
}

func (l *EmailListener) onPasswordUpdated(ctx context.Context, e Event) error {
	user, ok := e.Payload.(domain.UserEventPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s", e.Payload, e.Name)
	}
	return l.queue.Enqueue(ctx, domain.EmailJob{
		To:       user.Email,
		Subject:  "Actualización de contraseña",
		Text:     fmt.Sprintf("Hola %s, ¡haz actualizado con éxito tu contraseña!", user.Username),
		Attempts: transactionalAttempts,
	})
}

func (l *EmailListener) onTaskAssigned(ctx context.Context, e Event) error {
	assigned, ok := e.Payload.(domain.TaskAssignedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s", e.Payload, e.Name)
	}
	return l.queue.Enqueue(ctx, domain.EmailJob{
		To:      assigned.Email,
		Subject: "Asignación de tarea",
		Text: fmt.Sprintf("Hola %s, se te ha asignado una nueva tarea: %s con una fecha limite de %s",
			assigned.Username, assigned.Title, assigned.DueDate.Format("2006-01-02")),
		Attempts: transactionalAttempts,
	})
}
