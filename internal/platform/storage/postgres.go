package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/table"
	"github.com/lib/pq"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

const uniqueViolation = pq.ErrorCode("23505")

// Postgres is storage for entity mappings, run log and local catalog.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// StartRun creates new running run in database and returns it.
// It returns ErrAlreadyRunning if other run is not finished yet.
func (p Postgres) StartRun(ctx context.Context, runType models.RunType) (*models.Run, error) {
	run := &models.Run{
		Type:      runType,
		Status:    models.RunRunning,
		StartedAt: time.Now().UTC(),
	}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		runningRun, err := getLatestRun(ctx, tx, models.RunRunning)
		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get running run from database: %w", err)
		}

		if runningRun != nil {
			return platform.ErrAlreadyRunning
		}

		newRun := toDBRun(run)
		err = table.SyncRun.INSERT(
			table.SyncRun.SyncType,
			table.SyncRun.Status,
			table.SyncRun.StartedAt,
		).
			MODEL(newRun).
			RETURNING(table.SyncRun.ID).
			QueryContext(ctx, tx, newRun)
		if isUniqueViolation(err) {
			return platform.ErrAlreadyRunning
		}
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run.ID = int(newRun.ID)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't add run: %w", err)
	}

	return run, nil
}

// FinishRun sets run's status, completion time and statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	columnList := table.SyncRun.MutableColumns.Except(table.SyncRun.SyncType, table.SyncRun.StartedAt)

	result, err := table.SyncRun.UPDATE(columnList).
		MODEL(toDBRun(run)).
		WHERE(table.SyncRun.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update run %d: %w", run.ID, lo.Ternary(err != nil, err, platform.ErrNotFound))
	}

	return nil
}

// LastRuns returns up to limit most recent runs, newest first.
func (p Postgres) LastRuns(ctx context.Context, limit int) ([]models.Run, error) {
	var runs []pgmodels.SyncRun
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		ORDER_BY(table.SyncRun.StartedAt.DESC(), table.SyncRun.ID.DESC()).
		LIMIT(int64(limit)).
		QueryContext(ctx, p.db, &runs)
	if err != nil {
		return nil, fmt.Errorf("can't get runs: %w", err)
	}

	return lo.Map(runs, func(run pgmodels.SyncRun, _ int) models.Run {
		return ToAppRun(&run)
	}), nil
}

// CleanupRuns deletes finished runs started before provided time.
// Running runs are never deleted. It returns number of deleted runs.
func (p Postgres) CleanupRuns(ctx context.Context, before time.Time) (int64, error) {
	result, err := table.SyncRun.DELETE().
		WHERE(pg.AND(
			table.SyncRun.StartedAt.LT(pg.TimestampzT(before)),
			table.SyncRun.Status.NOT_EQ(pg.String(string(models.RunRunning))),
		)).
		ExecContext(ctx, p.db)
	if err != nil {
		return 0, fmt.Errorf("can't delete old runs: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("can't count deleted runs: %w", err)
	}

	return deleted, nil
}

// FailStaleRuns marks runs still running since before provided time as failed,
// so that run abandoned by crashed process doesn't block next runs.
// It returns number of failed runs.
func (p Postgres) FailStaleRuns(ctx context.Context, before time.Time) (int64, error) {
	result, err := table.SyncRun.UPDATE(
		table.SyncRun.Status,
		table.SyncRun.CompletedAt,
		table.SyncRun.ErrorDetails,
	).
		SET(
			pg.String(string(models.RunFailed)),
			pg.TimestampzT(time.Now().UTC()),
			pg.String(models.StaleRunDetails),
		).
		WHERE(pg.AND(
			table.SyncRun.Status.EQ(pg.String(string(models.RunRunning))),
			table.SyncRun.StartedAt.LT(pg.TimestampzT(before)),
		)).
		ExecContext(ctx, p.db)
	if err != nil {
		return 0, fmt.Errorf("can't fail stale runs: %w", err)
	}

	failed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("can't count failed runs: %w", err)
	}

	return failed, nil
}

func getLatestRun(ctx context.Context, db qrm.DB, status models.RunStatus) (*pgmodels.SyncRun, error) {
	var run pgmodels.SyncRun
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		WHERE(table.SyncRun.Status.EQ(pg.String(string(status)))).
		ORDER_BY(table.SyncRun.StartedAt.DESC(), table.SyncRun.ID.DESC()).
		LIMIT(1).
		QueryContext(ctx, db, &run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
