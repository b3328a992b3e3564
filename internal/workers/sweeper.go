// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-record-keeper/internal/config"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/store"
)

const (
	defaultSweepInterval    = time.Hour
	defaultAttemptRetention = 24 * time.Hour
)

// AttemptSweeper periodically deletes attempt-state rows whose lockout
// expired more than a retention window ago. Lockout expiry itself is
// evaluated lazily at verification time; the sweeper is storage hygiene
// only and never changes the outcome of a passcode attempt.
type AttemptSweeper struct {
	attempts  store.AttemptStateRepository
	interval  time.Duration
	retention time.Duration
	logger    *logger.Logger

	done chan struct{}
}

// NewAttemptSweeper builds a sweeper from the workers configuration,
// falling back to hourly sweeps and a one-day retention when unset.
func NewAttemptSweeper(attempts store.AttemptStateRepository, cfg config.Workers, logger *logger.Logger) *AttemptSweeper {
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	retention := cfg.AttemptRetention
	if retention <= 0 {
		retention = defaultAttemptRetention
	}

	return &AttemptSweeper{
		attempts:  attempts,
		interval:  interval,
		retention: retention,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Run blocks, sweeping once per interval until Stop is called.
func (s *AttemptSweeper) Run() {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("retention", s.retention).
		Msg("attempt-state sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			s.logger.Info().Msg("attempt-state sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(context.Background())
		}
	}
}

// Stop signals Run to return. Safe to call once.
func (s *AttemptSweeper) Stop() {
	close(s.done)
}

func (s *AttemptSweeper) sweep(ctx context.Context) {
	before := time.Now().Add(-s.retention)

	removed, err := s.attempts.DeleteExpired(ctx, before)
	if err != nil {
		s.logger.Err(err).Msg("attempt-state sweep failed")
		return
	}

	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Msg("swept expired attempt states")
	}
}
