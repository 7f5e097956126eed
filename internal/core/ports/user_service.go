package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// UserService covers profile updates and the recipient's durable
// notification query path.
type UserService interface {
	UpdateEmail(ctx context.Context, userID, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, password string) (*domain.User, error)

	Notifications(ctx context.Context, userID string) ([]domain.Notification, error)
	Notification(ctx context.Context, userID, notificationID string) (*domain.Notification, error)
}
