package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/syncer"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Syncer --filename syncer.go

// Syncer runs synchronizations.
type Syncer interface {
	RunFull(ctx context.Context) (syncer.FullResult, error)
	RunDelta(ctx context.Context, days uint) (syncer.DeltaResult, error)
	Cleanup(ctx context.Context) (int64, error)
}

// Schedule defines when synchronizations run.
type Schedule struct {
	// DeltaInterval is interval of delta synchronizations, zero disables them.
	DeltaInterval time.Duration
	// DeltaDays is changes window of delta synchronization.
	DeltaDays uint
	// FullSpec is cron spec of full synchronizations, empty disables them.
	FullSpec string
}

// Scheduler runs synchronizations periodically.
type Scheduler struct {
	syncer Syncer
	logger *zerolog.Logger
}

// NewScheduler returns new Scheduler.
func NewScheduler(syncer Syncer, logger *zerolog.Logger) *Scheduler {
	return &Scheduler{
		syncer: syncer,
		logger: logger,
	}
}

// Run runs synchronizations according to schedule until ctx is done.
// It waits for running synchronization before returning.
func (s *Scheduler) Run(ctx context.Context, schedule Schedule) error {
	cronLogger := cron.PrintfLogger(s.logger)
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	if schedule.DeltaInterval > 0 {
		spec := fmt.Sprintf("@every %s", schedule.DeltaInterval)
		if _, err := c.AddFunc(spec, func() { s.runDelta(ctx, schedule.DeltaDays) }); err != nil {
			return fmt.Errorf("can't schedule delta synchronization: %w", err)
		}
	}

	if schedule.FullSpec != "" {
		if _, err := c.AddFunc(schedule.FullSpec, func() { s.runFull(ctx) }); err != nil {
			return fmt.Errorf("can't schedule full synchronization: %w", err)
		}
	}

	s.logger.Info().
		Dur("deltaInterval", schedule.DeltaInterval).
		Uint("deltaDays", schedule.DeltaDays).
		Str("fullSpec", schedule.FullSpec).
		Msg("scheduler started")

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	s.logger.Info().Msg("scheduler stopped")

	return nil
}

func (s *Scheduler) runFull(ctx context.Context) {
	result, err := s.syncer.RunFull(ctx)
	if s.logResult(err, models.RunFull) {
		s.logger.Info().
			Int("categoriesSynced", result.CategoriesSynced).
			Int("productsSynced", result.ProductsSynced).
			Int("errors", len(result.Errors)).
			Msg("scheduled full synchronization finished")
	}

	s.cleanup(ctx)
}

func (s *Scheduler) runDelta(ctx context.Context, days uint) {
	result, err := s.syncer.RunDelta(ctx, days)
	if s.logResult(err, models.RunDelta) {
		s.logger.Info().
			Int("productsUpdated", result.ProductsUpdated).
			Int("productsCreated", result.ProductsCreated).
			Int("errors", len(result.Errors)).
			Msg("scheduled delta synchronization finished")
	}

	s.cleanup(ctx)
}

// logResult logs failed synchronization and reports whether it succeeded.
func (s *Scheduler) logResult(err error, runType models.RunType) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, platform.ErrAlreadyRunning):
		s.logger.Info().Str("type", string(runType)).Msg("synchronization already running, skipped")
	default:
		s.logger.Error().Err(err).Str("type", string(runType)).Msg("scheduled synchronization failed")
	}
	return false
}

func (s *Scheduler) cleanup(ctx context.Context) {
	if _, err := s.syncer.Cleanup(ctx); err != nil {
		s.logger.Error().Err(err).Msg("can't cleanup run log")
	}
}
