package sweeper

import (
	"context"
	"time"

	"bookd/internal/hotel/repository"
	"bookd/pkg/logger"
)

const sweepBudget = 10 * time.Second

// LockSweeper is the correctness backstop for failed compensations: any
// HELD lock past its expires_at is flipped to EXPIRED within one sweep
// interval, freeing its interval. It also purges terminal locks past the
// retention window.
type LockSweeper struct {
	locks     repository.LockRepository
	interval  time.Duration
	retention time.Duration
	log       *logger.Logger
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func New(locks repository.LockRepository, interval, retention time.Duration, log *logger.Logger) *LockSweeper {
	return &LockSweeper{
		locks:     locks,
		interval:  interval,
		retention: retention,
		log:       log,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

func (s *LockSweeper) Start() {
	s.log.Info("Lock sweeper started", "interval", s.interval, "retention", s.retention)
	go s.run()
}

func (s *LockSweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.log.Info("Lock sweeper stopped")
}

func (s *LockSweeper) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopCh:
			return
		}
	}
}

// Sweep runs one pass. Exported so tests and operator tooling can trigger
// it directly.
func (s *LockSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepBudget)
	defer cancel()

	now := time.Now().UTC()

	expired, err := s.locks.ExpireOverdue(ctx, now)
	if err != nil {
		s.log.Error("Failed to expire overdue locks", "error", err)
	} else if expired > 0 {
		s.log.Info("Expired overdue locks", "count", expired)
	}

	purged, err := s.locks.PurgeTerminal(ctx, now.Add(-s.retention))
	if err != nil {
		s.log.Error("Failed to purge terminal locks", "error", err)
	} else if purged > 0 {
		s.log.Info("Purged terminal locks", "count", purged)
	}
}
