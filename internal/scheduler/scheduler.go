// Package scheduler runs periodic background maintenance.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/xivind/gas-gauge/internal/app"
)

// Scheduler periodically purges expired sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	auth      *app.AuthService
	interval  time.Duration
}

// New creates a Scheduler purging sessions through the given auth service.
func New(auth *app.AuthService, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		auth:      auth,
		interval:  interval,
	}
}

// Start schedules the purge job and starts the underlying scheduler without
// blocking.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.auth.PurgeExpiredSessions(ctx); err != nil {
			log.Printf("scheduler: session purge failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
