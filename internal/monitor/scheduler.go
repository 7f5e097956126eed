package monitor

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// CrashReporter receives panics escaping a scheduled job.
type CrashReporter interface {
	Report(ctx context.Context, cause error, stack []byte)
}

// Scheduler drives the sweeps on cron specs. It is a thin wrapper over
// robfig/cron: the sweeps themselves know nothing about time triggers and
// are tested by calling Run directly.
type Scheduler struct {
	cron     *cron.Cron
	reporter CrashReporter
	log      zerolog.Logger
}

func NewScheduler(reporter CrashReporter, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		reporter: reporter,
		log:      log,
	}
}

// Add registers job under a 5-field cron spec. The job runs with a
// background context; a panic is recovered and routed to the crash reporter
// so one bad tick cannot take down the scheduler.
func (s *Scheduler) Add(spec, name string, job func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx := context.Background()
		defer func() {
			if r := recover(); r != nil {
				cause, ok := r.(error)
				if !ok {
					cause = fmt.Errorf("%v", r)
				}
				s.reporter.Report(ctx, fmt.Errorf("scheduled job %s: %w", name, cause), debug.Stack())
			}
		}()

		s.log.Debug().Str("job", name).Msg("scheduled job started")
		if err := job(ctx); err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("scheduled job failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
