// Package notification implements the in-app notification dispatcher:
// persist first, then publish the stored record to the recipient's realtime
// topic.
package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// Dispatcher implements ports.Notifier. Safe for concurrent use; each call
// performs its own persist-then-publish sequence and no cross-call ordering
// is promised.
type Dispatcher struct {
	repo     ports.NotificationRepository
	realtime ports.RealtimePublisher
	log      zerolog.Logger
}

func NewDispatcher(repo ports.NotificationRepository, realtime ports.RealtimePublisher, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, realtime: realtime, log: log}
}

// Notify persists the notification and publishes it live. Persistence
// failure aborts the dispatch and surfaces to the caller; the realtime
// publish is best-effort (the persisted record remains queryable), so its
// failure is only logged.
func (d *Dispatcher) Notify(ctx context.Context, userID, message string) (*domain.Notification, error) {
	stored, err := d.repo.Insert(ctx, userID, message)
	if err != nil {
		metrics.NotificationsPublishedTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("notify %s: %w: %w", userID, domain.ErrPersistence, err)
	}

	if err := d.realtime.Publish(ctx, userID, stored); err != nil {
		metrics.NotificationsPublishedTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Err(err).
			Str("user_id", userID).
			Str("notification_id", stored.ID).
			Msg("realtime publish failed, record remains queryable")
		return stored, nil
	}

	metrics.NotificationsPublishedTotal.WithLabelValues("delivered").Inc()
	return stored, nil
}
