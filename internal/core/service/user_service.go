package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/events"
)

// UserService handles profile updates and the notification query path.
// Updating an email or password emits the matching domain event so the
// confirmation email goes out through the bus, not inline.
type UserService struct {
	users         ports.UserRepository
	notifications ports.NotificationRepository
	bus           *events.Bus
}

func NewUserService(users ports.UserRepository, notifications ports.NotificationRepository, bus *events.Bus) *UserService {
	return &UserService{users: users, notifications: notifications, bus: bus}
}

func (s *UserService) UpdateEmail(ctx context.Context, userID, email string) (*domain.User, error) {
	updated, err := s.users.UpdateEmail(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	s.bus.Emit(ctx, events.Event{
		Name:    domain.EventEmailUpdated,
		Payload: domain.UserEventPayload{Username: updated.Username, Email: updated.Email},
	})

	return updated, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID, password string) (*domain.User, error) {
	if password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdatePassword(ctx, userID, string(hash))
	if err != nil {
		return nil, err
	}

	s.bus.Emit(ctx, events.Event{
		Name:    domain.EventPasswordUpdated,
		Payload: domain.UserEventPayload{Username: updated.Username, Email: updated.Email},
	})

	return updated, nil
}

// Notifications lists the caller's stored notifications, newest first.
func (s *UserService) Notifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.notifications.FindByUser(ctx, userID)
}

// Notification fetches a single notification scoped to its recipient and
// marks it read. Reading is idempotent.
func (s *UserService) Notification(ctx context.Context, userID, notificationID string) (*domain.Notification, error) {
	n, err := s.notifications.FindOne(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}

	if !n.Read {
		if err := s.notifications.MarkRead(ctx, userID, notificationID); err != nil {
			return nil, err
		}
		n.Read = true
	}

	return n, nil
}
