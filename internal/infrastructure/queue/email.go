// Package queue implements the durable email delivery queue on asynq, a
// Redis-backed task broker with per-job retry budgets. Enqueued jobs are
// consumed by the worker in worker.go; delivery is at-least-once, so
// duplicate sends under redelivery are an accepted trade-off.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

const (
	// TypeEmailSend is the asynq task type for one outbound email.
	TypeEmailSend = "email:send"

	// emailQueueName isolates email jobs from any future job kinds.
	emailQueueName = "email"
)

// EmailQueue implements ports.EmailQueue on an asynq client.
type EmailQueue struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewEmailQueue(client *asynq.Client, log zerolog.Logger) ports.EmailQueue {
	return &EmailQueue{client: client, log: log}
}

// Enqueue appends the job to the durable queue and returns as soon as the
// broker accepts it. The job's Attempts is the total delivery budget; the
// broker owns the attempt counter from here on.
func (q *EmailQueue) Enqueue(ctx context.Context, job domain.EmailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	task := asynq.NewTask(TypeEmailSend, payload)
	info, err := q.client.EnqueueContext(ctx, task,
		asynq.Queue(emailQueueName),
		asynq.MaxRetry(maxRetryFor(job.Attempts)),
	)
	if err != nil {
		return fmt.Errorf("enqueue email job: %w", err)
	}

	metrics.EmailsEnqueuedTotal.WithLabelValues(jobKind(job)).Inc()
	q.log.Debug().
		Str("task_id", info.ID).
		Str("to", job.To).
		Str("subject", job.Subject).
		Int("attempts", job.Attempts).
		Msg("email job enqueued")
	return nil
}

// maxRetryFor converts a total-attempts budget into asynq's retry count,
// which excludes the first attempt. A budget below one collapses to a
// single attempt.
func maxRetryFor(attempts int) int {
	if attempts <= 1 {
		return 0
	}
	return attempts - 1
}

// jobKind classifies a job for metrics. Reminders carry a retry budget;
// everything else is single-attempt transactional mail.
func jobKind(job domain.EmailJob) string {
	if job.Attempts > 1 {
		return "reminder"
	}
	return "transactional"
}
