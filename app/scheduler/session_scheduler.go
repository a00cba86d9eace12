// Package scheduler runs periodic background maintenance jobs
package scheduler

import (
	"context"
	"time"

	"github.com/tannermartz/breakline/logx"
	"github.com/tannermartz/breakline/repository"
)

// SessionCleanupScheduler periodically purges expired player sessions
type SessionCleanupScheduler struct {
	sessionRepo repository.PlayerSessionRepository
	interval    time.Duration
}

// NewSessionCleanupScheduler creates a session cleanup scheduler
func NewSessionCleanupScheduler(sessionRepo repository.PlayerSessionRepository, interval time.Duration) *SessionCleanupScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionCleanupScheduler{
		sessionRepo: sessionRepo,
		interval:    interval,
	}
}

// Start launches the cleanup loop in a background goroutine and returns a stop function
func (s *SessionCleanupScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *SessionCleanupScheduler) runOnce(ctx context.Context) {
	if err := s.sessionRepo.CleanupExpiredSessions(ctx); err != nil {
		logx.Warn("session cleanup failed", "error", err)
		return
	}
	logx.Debug("expired sessions cleaned up")
}
