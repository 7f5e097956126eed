package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// NotificationRepository defines the interface for in-app notification
// persistence. Insert failures surface to the dispatcher as a wrapped
// domain.ErrPersistence.
type NotificationRepository interface {
	Insert(ctx context.Context, userID, message string) (*domain.Notification, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	FindOne(ctx context.Context, userID, notificationID string) (*domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}
