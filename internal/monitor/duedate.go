// Package monitor implements the scheduled sweeps: the daily due-date
// reminder and the periodic resource-pressure check. Sweep logic is separated
// from the scheduler so each can run directly with a synthetic clock or
// sample in tests.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// dueWindow is how close a due date must be before the assignee is
// reminded. Overdue tasks also qualify.
const dueWindow = 24 * time.Hour

// reminderAttempts is the delivery budget for time-sensitive reminders.
const reminderAttempts = 3

// DueDateSweep emails every assignee whose uncompleted task is due within
// the window. Re-running within the same day re-notifies; there is no dedup
// store.
type DueDateSweep struct {
	tasks ports.TaskRepository
	queue ports.EmailQueue
	log   zerolog.Logger
}

func NewDueDateSweep(tasks ports.TaskRepository, queue ports.EmailQueue, log zerolog.Logger) *DueDateSweep {
	return &DueDateSweep{tasks: tasks, queue: queue, log: log}
}

// Run performs one sweep relative to now.
func (s *DueDateSweep) Run(ctx context.Context, now time.Time) error {
	rows, err := s.tasks.FindUncompletedWithAssignee(ctx)
	if err != nil {
		return fmt.Errorf("due-date sweep: %w", err)
	}

	for _, task := range rows {
		if task.DueDate.Sub(now) > dueWindow {
			continue
		}

		metrics.MonitorTriggersTotal.WithLabelValues("due_soon").Inc()
		job := domain.EmailJob{
			To:       task.Email,
			Subject:  "El tiempo limite de tu tarea asignada esta por vencer",
			Text:     fmt.Sprintf("Hola %s, tu tarea: %s, esta por vencer", task.Username, task.Title),
			Attempts: reminderAttempts,
		}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			s.log.Error().
				Err(err).
				Str("to", task.Email).
				Str("task", task.Title).
				Msg("failed to enqueue due-date reminder")
		}
	}
	return nil
}
