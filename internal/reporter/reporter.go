// Package reporter implements the critical error reporter: the last line of
// defense for uncaught failures. It surfaces the failure to humans — durable
// log entry, in-app notification and email to every admin — and never lets
// its own errors escape.
package reporter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// Reporter fans one uncaught error out to the durable log sink and to every
// admin through both delivery channels. It does not attempt to recover
// process state; termination decisions belong to the process supervisor.
type Reporter struct {
	users    ports.UserRepository
	notifier ports.Notifier
	queue    ports.EmailQueue

	// errlog is the append-only durable sink; log is the regular process
	// logger used for best-effort reporting of the reporter's own failures.
	errlog zerolog.Logger
	log    zerolog.Logger
}

func New(
	users ports.UserRepository,
	notifier ports.Notifier,
	queue ports.EmailQueue,
	errlog zerolog.Logger,
	log zerolog.Logger,
) *Reporter {
	return &Reporter{
		users:    users,
		notifier: notifier,
		queue:    queue,
		errlog:   errlog,
		log:      log,
	}
}

// Report handles one uncaught failure. Every internal error is swallowed
// and logged at best effort; Report itself never panics.
func (r *Reporter) Report(ctx context.Context, cause error, stack []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Interface("panic", rec).Msg("critical error reporter panicked")
		}
	}()

	metrics.CriticalErrorsTotal.Inc()

	r.errlog.Error().
		Err(cause).
		Str("stack", string(stack)).
		Msg("critical error")

	admins, err := r.users.FindByRole(ctx, domain.RoleAdmin)
	if err != nil {
		r.log.Error().Err(err).Msg("critical error reporter: failed to fetch admins")
		return
	}

	for _, admin := range admins {
		if _, err := r.notifier.Notify(ctx, admin.UserID, "A critical error was detected in the application"); err != nil {
			r.log.Error().
				Err(err).
				Str("user_id", admin.UserID).
				Msg("critical error reporter: notification dispatch failed")
		}

		job := domain.EmailJob{
			To:       admin.Email,
			Subject:  "Error crítico encontrado en la aplicación",
			Text:     fmt.Sprintf("Hola %s, Se ha encontrado un error crítico en la aplicación", admin.Username),
			Attempts: 1,
		}
		if err := r.queue.Enqueue(ctx, job); err != nil {
			r.log.Error().
				Err(err).
				Str("to", admin.Email).
				Msg("critical error reporter: email enqueue failed")
		}
	}
}
