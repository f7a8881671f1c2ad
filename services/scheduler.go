package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

const defaultRunSchedule = "@daily"

// Scheduler triggers the expiry notification run on a cron cadence. It shares
// one notifier with the operator HTTP entrypoint, so overlapping invocations
// serialize on the notifier's run lock.
type Scheduler struct {
	cron     *cron.Cron
	notifier *ExpiryNotifier
	spec     string
}

func NewScheduler(notifier *ExpiryNotifier, spec string) *Scheduler {
	if spec == "" {
		spec = defaultRunSchedule
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.DiscardLogger)),
		notifier: notifier,
		spec:     spec,
	}
}

// Start registers the run job and launches the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for a running job to complete.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runOnce() {
	summary, err := s.notifier.Run()
	if err != nil {
		log.Printf("scheduled notification run failed: %v", err)
		return
	}
	log.Printf("scheduled notification run: sent=%d failed=%d total=%d",
		summary.Sent, summary.Failed, summary.Total)
}
