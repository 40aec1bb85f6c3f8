package service

import (
	"context"
	"sync"
	"time"

	"github.com/Leadpulse/leadpulse/pkg/logger"
)

// FollowUpSweeper drives the periodic follow-up sweep
type FollowUpSweeper struct {
	followUps   *FollowUpService
	logger      logger.Logger
	interval    time.Duration
	stopChan    chan struct{}
	stoppedChan chan struct{}
	mu          sync.Mutex
	running     bool
}

// NewFollowUpSweeper creates a new follow-up sweeper
func NewFollowUpSweeper(followUps *FollowUpService, log logger.Logger, interval time.Duration) *FollowUpSweeper {
	return &FollowUpSweeper{
		followUps:   followUps,
		logger:      log,
		interval:    interval,
		stopChan:    make(chan struct{}),
		stoppedChan: make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (s *FollowUpSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Follow-up sweeper already running")
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.WithField("interval", s.interval).
		Info("Starting follow-up sweeper")

	go s.run(ctx)
}

// Stop gracefully stops the sweeper
func (s *FollowUpSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping follow-up sweeper...")
	close(s.stopChan)

	select {
	case <-s.stoppedChan:
		s.logger.Info("Follow-up sweeper stopped successfully")
	case <-time.After(5 * time.Second):
		s.logger.Warn("Follow-up sweeper stop timeout exceeded")
	}
}

func (s *FollowUpSweeper) run(ctx context.Context) {
	defer close(s.stoppedChan)
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Sweep immediately on start
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Follow-up sweeper context cancelled")
			return
		case <-s.stopChan:
			s.logger.Info("Follow-up sweeper received stop signal")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *FollowUpSweeper) sweep(ctx context.Context) {
	startTime := time.Now()

	processed, err := s.followUps.ProcessPendingFollowUps(ctx)
	elapsed := time.Since(startTime)

	if err != nil {
		s.logger.WithField("error", err.Error()).
			WithField("elapsed", elapsed).
			Error("Failed to process due follow-ups")
	} else if processed > 0 {
		s.logger.WithField("processed", processed).
			WithField("elapsed", elapsed).
			Info("Processed due follow-ups")
	}
}

// IsRunning returns whether the sweeper is currently running
func (s *FollowUpSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
