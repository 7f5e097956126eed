package monitor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// freeMemoryThreshold is the free-memory ratio below which admins are
// alerted.
const freeMemoryThreshold = 0.20

// Sample is one point-in-time reading of system pressure. Transient: taken
// fresh on every tick, never persisted.
type Sample struct {
	FreeMemoryRatio float64
	LoadAverage1m   float64
	CPUCount        int
}

// Sampler abstracts the system-resource reading so the sweep can run with
// synthetic samples in tests.
type Sampler interface {
	Sample(ctx context.Context) (Sample, error)
}

// ResourceSweep alerts every admin, in-app and by email, when memory runs
// low or load exceeds the processor count. Both conditions are evaluated
// independently and can fire in the same tick.
type ResourceSweep struct {
	sampler  Sampler
	users    ports.UserRepository
	notifier ports.Notifier
	queue    ports.EmailQueue
	log      zerolog.Logger
}

func NewResourceSweep(
	sampler Sampler,
	users ports.UserRepository,
	notifier ports.Notifier,
	queue ports.EmailQueue,
	log zerolog.Logger,
) *ResourceSweep {
	return &ResourceSweep{
		sampler:  sampler,
		users:    users,
		notifier: notifier,
		queue:    queue,
		log:      log,
	}
}

// Run takes one sample and dispatches alerts for each triggered condition.
func (s *ResourceSweep) Run(ctx context.Context) error {
	sample, err := s.sampler.Sample(ctx)
	if err != nil {
		return fmt.Errorf("resource sweep: sample: %w", err)
	}

	lowMemory := sample.FreeMemoryRatio < freeMemoryThreshold
	highLoad := sample.LoadAverage1m > float64(sample.CPUCount)
	if !lowMemory && !highLoad {
		return nil
	}

	admins, err := s.users.FindByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("resource sweep: fetch admins: %w", err)
	}

	if lowMemory {
		metrics.MonitorTriggersTotal.WithLabelValues("low_memory").Inc()
		s.log.Warn().
			Float64("free_memory_ratio", sample.FreeMemoryRatio).
			Msg("low available memory detected")
		s.alertAdmins(ctx, admins,
			"Low available memory detected on the server",
			"Poca memoria disponible en el servidor",
			"Hola %s, hemos detectado una baja cantidad de memoria disponible",
		)
	}

	if highLoad {
		metrics.MonitorTriggersTotal.WithLabelValues("high_load").Inc()
		s.log.Warn().
			Float64("load_average_1m", sample.LoadAverage1m).
			Int("cpu_count", sample.CPUCount).
			Msg("load average above processor count")
		s.alertAdmins(ctx, admins,
			"Load average exceeded the available CPU cores",
			"Carga promedio superior al número de núcleos disponibles",
			"Hola %s, hemos detectado una carga superior al número de núcleos disponibles",
		)
	}

	return nil
}

// alertAdmins sends one in-app notification and one email per admin for a
// single triggered condition. Individual failures are logged and do not stop
// the remaining admins from being alerted.
func (s *ResourceSweep) alertAdmins(ctx context.Context, admins []domain.UserContact, message, subject, textFormat string) {
	for _, admin := range admins {
		if _, err := s.notifier.Notify(ctx, admin.UserID, message); err != nil {
			s.log.Error().
				Err(err).
				Str("user_id", admin.UserID).
				Msg("failed to dispatch resource alert notification")
		}

		job := domain.EmailJob{
			To:       admin.Email,
			Subject:  subject,
			Text:     fmt.Sprintf(textFormat, admin.Username),
			Attempts: 1,
		}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			s.log.Error().
				Err(err).
				Str("to", admin.Email).
				Msg("failed to enqueue resource alert email")
		}
	}
}
