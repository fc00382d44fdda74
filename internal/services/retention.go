package services

import (
	"time"

	"github.com/reviewlens/backend/internal/config"
	"github.com/reviewlens/backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RetentionService periodically deletes reviews older than the configured
// retention window. Disabled when Days <= 0.
type RetentionService struct {
	store *ReviewStore
	cfg   *config.RetentionConfig
	cron  *cron.Cron
}

func NewRetentionService(store *ReviewStore, cfg *config.RetentionConfig) *RetentionService {
	return &RetentionService{
		store: store,
		cfg:   cfg,
		cron:  cron.New(),
	}
}

// Start registers the cleanup job and begins the scheduler. Returns without
// scheduling anything when retention is disabled.
func (s *RetentionService) Start() error {
	if s.cfg.Days <= 0 {
		logger.Info().Msg("retention job disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Schedule, s.runCleanup)
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().
		Int("days", s.cfg.Days).
		Str("schedule", s.cfg.Schedule).
		Msg("retention job scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running cleanup to finish.
func (s *RetentionService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *RetentionService) runCleanup() {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.Days)

	deleted, err := s.store.DeleteOlderThan(cutoff)
	if err != nil {
		logger.Error().Err(err).Msg("retention cleanup failed")
		return
	}

	logger.Info().
		Int64("deleted", deleted).
		Time("cutoff", cutoff).
		Msg("retention cleanup completed")
}
