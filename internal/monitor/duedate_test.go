package monitor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type stubTaskRepo struct {
	dueTasks []domain.DueTask
	findErr  error
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	return t, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, _ string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) InsertComment(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	return c, nil
}

func (r *stubTaskRepo) FindUncompletedWithAssignee(_ context.Context) ([]domain.DueTask, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.dueTasks, nil
}

type recordingQueue struct {
	jobs       []domain.EmailJob
	enqueueErr error
}

func (q *recordingQueue) Enqueue(_ context.Context, job domain.EmailJob) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func TestDueDateSweep_DueWithinOneDay(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	repo := &stubTaskRepo{dueTasks: []domain.DueTask{
		{Email: "ana@example.com", Username: "ana", Title: "Ship v2", DueDate: now.Add(12 * time.Hour)},
	}}
	queue := &recordingQueue{}
	sweep := NewDueDateSweep(repo, queue, zerolog.Nop())

	if err := sweep.Run(context.Background(), now); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(queue.jobs) != 1 {
		t.Fatalf("expected exactly one reminder, got %d", len(queue.jobs))
	}
	job := queue.jobs[0]
	if job.To != "ana@example.com" {
		t.Fatalf("unexpected recipient: %s", job.To)
	}
	if job.Attempts != 3 {
		t.Fatalf("reminders must carry a budget of 3 attempts, got %d", job.Attempts)
	}
	if !strings.Contains(job.Text, "Ship v2") {
		t.Fatalf("unexpected text: %s", job.Text)
	}
}

func TestDueDateSweep_DueInTwoDays(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	repo := &stubTaskRepo{dueTasks: []domain.DueTask{
		{Email: "ana@example.com", Username: "ana", Title: "Ship v2", DueDate: now.Add(48 * time.Hour)},
	}}
	queue := &recordingQueue{}
	sweep := NewDueDateSweep(repo, queue, zerolog.Nop())

	if err := sweep.Run(context.Background(), now); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("expected no reminders for a task due in 48h, got %d", len(queue.jobs))
	}
}

func TestDueDateSweep_OverdueStillNotifies(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	repo := &stubTaskRepo{dueTasks: []domain.DueTask{
		{Email: "ana@example.com", Username: "ana", Title: "Ship v2", DueDate: now.Add(-6 * time.Hour)},
	}}
	queue := &recordingQueue{}
	sweep := NewDueDateSweep(repo, queue, zerolog.Nop())

	if err := sweep.Run(context.Background(), now); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(queue.jobs) != 1 {
		t.Fatalf("overdue tasks still get a reminder, got %d jobs", len(queue.jobs))
	}
}

func TestDueDateSweep_MixedTasks(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	repo := &stubTaskRepo{dueTasks: []domain.DueTask{
		{Email: "a@example.com", Username: "a", Title: "soon", DueDate: now.Add(2 * time.Hour)},
		{Email: "b@example.com", Username: "b", Title: "later", DueDate: now.Add(72 * time.Hour)},
		{Email: "c@example.com", Username: "c", Title: "boundary", DueDate: now.Add(24 * time.Hour)},
	}}
	queue := &recordingQueue{}
	sweep := NewDueDateSweep(repo, queue, zerolog.Nop())

	if err := sweep.Run(context.Background(), now); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(queue.jobs) != 2 {
		t.Fatalf("expected reminders for the 2h and 24h tasks only, got %d", len(queue.jobs))
	}
}

func TestDueDateSweep_QueryFailure(t *testing.T) {
	repo := &stubTaskRepo{findErr: errors.New("db down")}
	queue := &recordingQueue{}
	sweep := NewDueDateSweep(repo, queue, zerolog.Nop())

	if err := sweep.Run(context.Background(), time.Now()); err == nil {
		t.Fatalf("expected error when the task query fails")
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("no jobs expected on query failure")
	}
}
