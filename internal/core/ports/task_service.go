package ports

import (
	"context"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// CreateTaskInput is the DTO passed from the transport layer to TaskService.
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	ProjectID   string
	DueDate     time.Time
}

// AddCommentInput carries a new comment on an existing task.
type AddCommentInput struct {
	TaskID string
	UserID string
	Text   string
}

// TaskService creates tasks and comments, dispatching the in-app
// notifications and domain events each action triggers.
type TaskService interface {
	CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	AddComment(ctx context.Context, in AddCommentInput) (*domain.Comment, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
}
