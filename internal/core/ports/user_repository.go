package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByRole returns the contact projection for every user holding the
	// given role. The monitors and the critical error reporter use it to
	// address admins.
	FindByRole(ctx context.Context, role string) ([]domain.UserContact, error)

	UpdateEmail(ctx context.Context, userID, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) (*domain.User, error)
}
