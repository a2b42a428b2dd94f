package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"covidboard/internal/epidemic"
)

// fetchTimeout bounds one refresh; a hung upstream must fail closed to the
// fallback data, never hang the job.
const fetchTimeout = 30 * time.Second

// Scheduler periodically warms the service caches so request paths rarely
// wait on the upstream API.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *epidemic.Service
	interval  time.Duration
	log       zerolog.Logger
}

// New creates a new Scheduler.
func New(interval time.Duration, service *epidemic.Service, log zerolog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic refresh, runs it once immediately, and
// starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().StartImmediately().Do(func() {
		s.log.Debug().Msg("running data refresh job")

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		s.service.Refresh(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
