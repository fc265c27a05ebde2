package syncer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MichalMitros/pim-sync/internal/category"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/product"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Client --filename client.go
//go:generate mockery --name CategorySyncer --filename category_syncer.go
//go:generate mockery --name ProductSyncer --filename product_syncer.go
//go:generate mockery --name Storage --filename storage.go

const (
	defaultRetention  = 30 * 24 * time.Hour
	defaultStaleAfter = 6 * time.Hour

	// maxErrorDetails limits number of entity errors stored in run log.
	maxErrorDetails = 100
)

// Client is PIM session.
type Client interface {
	Authenticate(ctx context.Context) error
	TestConnection(ctx context.Context) bool
}

// CategorySyncer synchronizes categories of catalog.
type CategorySyncer interface {
	Sync(ctx context.Context, catalogUID string) (category.Report, error)
}

// ProductSyncer synchronizes products of catalog.
type ProductSyncer interface {
	SyncAll(ctx context.Context, catalogUID string) (product.Report, error)
	SyncChanged(ctx context.Context, catalogUID string, days uint) (product.Report, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Storage is run log storage.
type Storage interface {
	// StartRun creates new run if there is no other run running.
	StartRun(ctx context.Context, runType models.RunType) (*models.Run, error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
	// LastRuns returns up to limit most recent runs.
	LastRuns(ctx context.Context, limit int) ([]models.Run, error)
	// CleanupRuns deletes finished runs started before provided time.
	CleanupRuns(ctx context.Context, before time.Time) (int64, error)
	// FailStaleRuns marks runs running since before provided time as failed.
	FailStaleRuns(ctx context.Context, before time.Time) (int64, error)
	// CountMappings returns number of mappings per entity type and status.
	CountMappings(ctx context.Context) ([]models.MappingCount, error)
	// LatestRun returns most recent run in status or nil.
	LatestRun(ctx context.Context, status models.RunStatus) (*models.Run, error)
	// GetRun returns run by id.
	GetRun(ctx context.Context, id int) (*models.Run, error)
	// ErrorMappings returns mappings in error status last synchronized within time window.
	ErrorMappings(ctx context.Context, from, to time.Time, limit int) ([]models.Mapping, error)
}

// FullResult is result of full synchronization.
type FullResult struct {
	CategoriesSynced int
	ProductsSynced   int
	Errors           []models.EntityError
}

// DeltaResult is result of delta synchronization.
type DeltaResult struct {
	// ProductsUpdated counts products which were already mapped.
	ProductsUpdated int
	// ProductsCreated counts products first seen in the changes window.
	ProductsCreated int
	Errors          []models.EntityError
}

// Option is custom configuration of Syncer.
type Option func(s *Syncer)

// Syncer runs synchronizations and keeps their log.
type Syncer struct {
	client     Client
	categories CategorySyncer
	products   ProductSyncer
	storage    Storage
	catalogUID string
	logger     *zerolog.Logger
	clock      Clock
	retention  time.Duration
	staleAfter time.Duration
}

// NewSyncer returns new Syncer synchronizing catalog with catalogUID.
func NewSyncer(
	client Client,
	categories CategorySyncer,
	products ProductSyncer,
	storage Storage,
	catalogUID string,
	logger *zerolog.Logger,
	ops ...Option,
) *Syncer {
	s := &Syncer{
		client:     client,
		categories: categories,
		products:   products,
		storage:    storage,
		catalogUID: catalogUID,
		logger:     logger,
		clock:      systemClock{},
		retention:  defaultRetention,
		staleAfter: defaultStaleAfter,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// RunFull synchronizes categories and then all products of the catalog.
// It returns error wrapping ErrAlreadyRunning when other run is not finished.
func (s *Syncer) RunFull(ctx context.Context) (FullResult, error) {
	run, err := s.startRun(ctx, models.RunFull)
	if err != nil {
		return FullResult{}, err
	}

	result := FullResult{}

	if err := s.client.Authenticate(ctx); err != nil {
		return result, s.finishRun(ctx, run, nil, fmt.Errorf("can't authenticate: %w", err))
	}

	// categories first, so that products find their categories mapped.
	categories, err := s.categories.Sync(ctx, s.catalogUID)
	result.CategoriesSynced = categories.Synced
	result.Errors = append(result.Errors, categories.Errors...)
	run.AffectedCategories = lo.ToPtr(int32(categories.Synced))

	if err != nil {
		return result, s.finishRun(ctx, run, result.Errors, fmt.Errorf("can't synchronize categories: %w", err))
	}

	products, err := s.products.SyncAll(ctx, s.catalogUID)
	result.ProductsSynced = products.Synced()
	result.Errors = append(result.Errors, products.Errors...)
	run.AffectedProducts = lo.ToPtr(int32(products.Synced()))

	if err != nil {
		return result, s.finishRun(ctx, run, result.Errors, fmt.Errorf("can't synchronize products: %w", err))
	}

	return result, s.finishRun(ctx, run, result.Errors, nil)
}

// RunDelta synchronizes products of the catalog changed within last days.
// It returns error wrapping ErrAlreadyRunning when other run is not finished.
func (s *Syncer) RunDelta(ctx context.Context, days uint) (DeltaResult, error) {
	run, err := s.startRun(ctx, models.RunDelta)
	if err != nil {
		return DeltaResult{}, err
	}

	result := DeltaResult{}

	if err := s.client.Authenticate(ctx); err != nil {
		return result, s.finishRun(ctx, run, nil, fmt.Errorf("can't authenticate: %w", err))
	}

	products, err := s.products.SyncChanged(ctx, s.catalogUID, days)
	result.ProductsUpdated = products.Updated
	result.ProductsCreated = products.Created
	result.Errors = products.Errors
	run.AffectedProducts = lo.ToPtr(int32(products.Synced()))

	if err != nil {
		return result, s.finishRun(ctx, run, result.Errors, fmt.Errorf("can't synchronize changed products: %w", err))
	}

	return result, s.finishRun(ctx, run, result.Errors, nil)
}

// Cleanup deletes finished runs older than retention period and returns number of deleted runs.
func (s *Syncer) Cleanup(ctx context.Context) (int64, error) {
	deleted, err := s.storage.CleanupRuns(ctx, s.clock.Now().Add(-s.retention))
	if err != nil {
		return 0, fmt.Errorf("can't cleanup run log: %w", err)
	}

	s.logger.Info().Int64("deleted", deleted).Msg("run log cleaned up")

	return deleted, nil
}

// LastRuns returns up to limit most recent runs.
func (s *Syncer) LastRuns(ctx context.Context, limit int) ([]models.Run, error) {
	runs, err := s.storage.LastRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("can't get run log: %w", err)
	}

	return runs, nil
}

// Stats returns mapping counts with last completed and currently running run.
func (s *Syncer) Stats(ctx context.Context) (models.Stats, error) {
	counts, err := s.storage.CountMappings(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("can't get statistics: %w", err)
	}

	completed, err := s.storage.LatestRun(ctx, models.RunCompleted)
	if err != nil {
		return models.Stats{}, fmt.Errorf("can't get statistics: %w", err)
	}

	running, err := s.storage.LatestRun(ctx, models.RunRunning)
	if err != nil {
		return models.Stats{}, fmt.Errorf("can't get statistics: %w", err)
	}

	return models.Stats{
		Mappings:      counts,
		LastCompleted: completed,
		Running:       running,
	}, nil
}

// RunErrors returns run with up to limit entities which failed while it was running.
// Window of unfinished run ends now.
func (s *Syncer) RunErrors(ctx context.Context, runID, limit int) (*models.Run, []models.Mapping, error) {
	run, err := s.storage.GetRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}

	to := *s.clock.Now()
	if run.CompletedAt != nil {
		to = *run.CompletedAt
	}

	mappings, err := s.storage.ErrorMappings(ctx, run.StartedAt, to, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("can't get errors of run %d: %w", runID, err)
	}

	return run, mappings, nil
}

// TestConnection reports whether PIM accepts configured credentials.
func (s *Syncer) TestConnection(ctx context.Context) bool {
	return s.client.TestConnection(ctx)
}

func (s *Syncer) startRun(ctx context.Context, runType models.RunType) (*models.Run, error) {
	if s.staleAfter > 0 {
		failed, err := s.storage.FailStaleRuns(ctx, s.clock.Now().Add(-s.staleAfter))
		if err != nil {
			return nil, fmt.Errorf("can't start synchronization: %w", err)
		}
		if failed > 0 {
			s.logger.Warn().Int64("runs", failed).Msg("stale runs marked as failed")
		}
	}

	run, err := s.storage.StartRun(ctx, runType)
	if err != nil {
		return nil, fmt.Errorf("can't start synchronization: %w", err)
	}

	s.logger.Info().
		Int("runId", run.ID).
		Str("type", string(runType)).
		Msg("synchronization started")

	return run, nil
}

// finishRun stores run's outcome. Run is stored even when ctx is already canceled.
func (s *Syncer) finishRun(ctx context.Context, run *models.Run, entityErrors []models.EntityError, status error) error {
	run.Status = lo.Ternary(status == nil, models.RunCompleted, models.RunFailed)
	run.CompletedAt = s.clock.Now()
	run.FailedEntities = lo.ToPtr(int32(len(entityErrors)))
	if details := errorDetails(status, entityErrors); details != "" {
		run.ErrorDetails = &details
	}

	event := s.logger.Info()
	if status != nil {
		event = s.logger.Error().Err(status)
	}
	event.
		Int("runId", run.ID).
		Str("type", string(run.Type)).
		Str("status", string(run.Status)).
		Int32("categories", lo.FromPtr(run.AffectedCategories)).
		Int32("products", lo.FromPtr(run.AffectedProducts)).
		Int32("failedEntities", *run.FailedEntities).
		Msg("synchronization finished")

	err := s.storage.FinishRun(context.WithoutCancel(ctx), run)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish synchronization: %w", err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed synchronization: %w (fail reason: %w)", err, status)
	}

	return status
}

// errorDetails returns run error followed by entity errors, one per line.
func errorDetails(status error, entityErrors []models.EntityError) string {
	lines := make([]string, 0, min(len(entityErrors), maxErrorDetails)+2)
	if status != nil {
		lines = append(lines, status.Error())
	}

	for ix, entityErr := range entityErrors {
		if ix == maxErrorDetails {
			lines = append(lines, fmt.Sprintf("... and %d more", len(entityErrors)-maxErrorDetails))
			break
		}
		lines = append(lines, entityErr.Error())
	}

	return strings.Join(lines, "\n")
}

// WithClock sets Syncer's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Syncer) {
		s.clock = c
	}
}

// WithRetention sets how long finished runs are kept in run log.
func WithRetention(retention time.Duration) Option {
	return func(s *Syncer) {
		s.retention = retention
	}
}

// WithStaleAfter sets after how long running run is considered abandoned.
// Zero disables failing stale runs.
func WithStaleAfter(staleAfter time.Duration) Option {
	return func(s *Syncer) {
		s.staleAfter = staleAfter
	}
}
