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

// Worker is the single long-lived consumption loop for the email queue.
// The broker manages concurrency across logical workers and owns each job's
// attempt counter; the handler only performs the SMTP transmission.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    zerolog.Logger
}

// NewWorker builds the asynq server and registers the delivery handler.
func NewWorker(redisOpt asynq.RedisClientOpt, mailer ports.Mailer, concurrency int, log zerolog.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 4
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{emailQueueName: 1},
		Logger:      asynqLogger{log: log},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			handleDeliveryError(ctx, task, err, log)
		}),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailSend, deliveryHandler(mailer, log))

	return &Worker{server: server, mux: mux, log: log}
}

// Start launches the consumption loop without blocking.
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start email worker: %w", err)
	}
	return nil
}

// Shutdown stops the loop, waiting for in-flight deliveries.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// deliveryHandler performs one SMTP transmission per invocation. A returned
// error makes the broker re-attempt the job until its retry budget is spent.
func deliveryHandler(mailer ports.Mailer, log zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var job domain.EmailJob
		if err := json.Unmarshal(task.Payload(), &job); err != nil {
			// Corrupt payload can never succeed: skip retries entirely.
			return fmt.Errorf("unmarshal email job: %w: %w", err, asynq.SkipRetry)
		}

		if err := mailer.Send(ctx, job.To, job.Subject, job.Text); err != nil {
			metrics.EmailSendFailuresTotal.Inc()
			return fmt.Errorf("send email to %s: %w", job.To, err)
		}

		metrics.EmailsDeliveredTotal.Inc()
		log.Info().
			Str("to", job.To).
			Str("subject", job.Subject).
			Msg("email delivered")
		return nil
	}
}

// handleDeliveryError logs every failed attempt and surfaces terminal
// failures: once the final attempt is spent the job is exhausted, which is
// observable here and in the exhausted-jobs metric rather than vanishing.
func handleDeliveryError(ctx context.Context, task *asynq.Task, err error, log zerolog.Logger) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	if !exhausted(retried, maxRetry) {
		log.Warn().
			Err(err).
			Int("attempt", retried+1).
			Int("budget", maxRetry+1).
			Msg("email delivery attempt failed, will retry")
		return
	}

	metrics.EmailsExhaustedTotal.Inc()
	log.Error().
		Err(fmt.Errorf("%w: %w", domain.ErrDeliveryExhausted, err)).
		Int("attempts", maxRetry+1).
		Str("task_type", task.Type()).
		Msg("email job exhausted all delivery attempts")
}

// exhausted reports whether the attempt that just failed was the job's last.
// retried counts completed re-attempts; maxRetry is the budget beyond the
// first attempt.
func exhausted(retried, maxRetry int) bool {
	return retried >= maxRetry
}

// asynqLogger adapts zerolog to asynq's Logger interface.
type asynqLogger struct {
	log zerolog.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
