package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// TaskRepository defines the interface for task and comment persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	InsertComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)

	// FindUncompletedWithAssignee returns every not-yet-completed task joined
	// with its assignee's contact details. The due-date sweep filters the
	// result by due date itself.
	FindUncompletedWithAssignee(ctx context.Context) ([]domain.DueTask, error)
}
