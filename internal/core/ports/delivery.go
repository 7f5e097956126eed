package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// Notifier persists an in-app notification and publishes it live to the
// recipient's realtime topic. The returned record is the durable source of
// truth; live publication is best-effort.
type Notifier interface {
	Notify(ctx context.Context, userID, message string) (*domain.Notification, error)
}

// RealtimePublisher delivers a stored notification to the recipient's
// realtime topic. Delivery is at-most-once, to currently subscribed clients
// only.
type RealtimePublisher interface {
	Publish(ctx context.Context, userID string, n *domain.Notification) error
}

// EmailQueue appends an EmailJob to the durable delivery queue. Enqueue
// returns as soon as the broker has accepted the job; delivery happens
// asynchronously in the queue worker with bounded retries.
type EmailQueue interface {
	Enqueue(ctx context.Context, job domain.EmailJob) error
}

// Mailer performs one SMTP transmission. A returned error triggers the
// broker's retry policy.
type Mailer interface {
	Send(ctx context.Context, to, subject, text string) error
}
