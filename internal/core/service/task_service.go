package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/events"
)

// TaskService creates tasks and comments. Each mutation persists first and
// then dispatches its side effects: an in-app notification to the affected
// user and, for assignments, a domain event that drives the email path.
// Side-effect failures are logged and do not fail the request.
type TaskService struct {
	tasks    ports.TaskRepository
	users    ports.UserRepository
	notifier ports.Notifier
	bus      *events.Bus
	log      zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	users ports.UserRepository,
	notifier ports.Notifier,
	bus *events.Bus,
	log zerolog.Logger,
) *TaskService {
	return &TaskService{tasks: tasks, users: users, notifier: notifier, bus: bus, log: log}
}

func (s *TaskService) CreateTask(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	assignee, err := s.users.FindByID(ctx, in.AssignedTo)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.TaskStatusPending,
		AssignedTo:  assignee.ID,
		ProjectID:   in.ProjectID,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf(`You have been assigned a new task: "%s"`, created.Title)
	if _, err := s.notifier.Notify(ctx, assignee.ID, message); err != nil {
		s.log.Error().
			Err(err).
			Str("task_id", created.ID).
			Str("user_id", assignee.ID).
			Msg("assignment notification failed")
	}

	s.bus.Emit(ctx, events.Event{
		Name: domain.EventTaskAssigned,
		Payload: domain.TaskAssignedPayload{
			Username: assignee.Username,
			Email:    assignee.Email,
			Title:    created.Title,
			DueDate:  created.DueDate,
		},
	})

	return created, nil
}

func (s *TaskService) AddComment(ctx context.Context, in ports.AddCommentInput) (*domain.Comment, error) {
	task, err := s.tasks.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		TaskID:    task.ID,
		UserID:    author.ID,
		Text:      in.Text,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.tasks.InsertComment(ctx, comment)
	if err != nil {
		return nil, err
	}

	// The assignee hears about every comment, including their own.
	message := fmt.Sprintf("%s added a comment to the task %s", author.Username, task.Title)
	if _, err := s.notifier.Notify(ctx, task.AssignedTo, message); err != nil {
		s.log.Error().
			Err(err).
			Str("task_id", task.ID).
			Str("user_id", task.AssignedTo).
			Msg("comment notification failed")
	}

	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}
