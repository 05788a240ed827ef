package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper periodically drops expired sessions from a MemoryStore. Redis
// expires keys on its own and needs no sweeper.
type Sweeper struct {
	store    *MemoryStore
	interval time.Duration
	logger   zerolog.Logger
}

func NewSweeper(store *MemoryStore, interval time.Duration, logger zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "session_sweeper").Logger(),
	}
}

// Run blocks until context cancellation.
func (s *Sweeper) Run(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			live := s.store.Len()
			s.logger.Debug().Int("live_sessions", live).Msg("expired sessions swept")
		}
	}
}
