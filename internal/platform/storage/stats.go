package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type mappingCount struct {
	EntityType string `alias:"entity_mapping.entity_type"`
	SyncStatus string `alias:"entity_mapping.sync_status"`
	Count      int64  `alias:"mapping_count"`
}

// CountMappings returns number of mappings per entity type and status.
func (p Postgres) CountMappings(ctx context.Context) ([]models.MappingCount, error) {
	var counts []mappingCount
	err := table.EntityMapping.SELECT(
		table.EntityMapping.EntityType,
		table.EntityMapping.SyncStatus,
		pg.COUNT(pg.STAR).AS("mapping_count"),
	).
		GROUP_BY(table.EntityMapping.EntityType, table.EntityMapping.SyncStatus).
		ORDER_BY(table.EntityMapping.EntityType, table.EntityMapping.SyncStatus).
		QueryContext(ctx, p.db, &counts)
	if err != nil {
		return nil, fmt.Errorf("can't count mappings: %w", err)
	}

	return lo.Map(counts, func(count mappingCount, _ int) models.MappingCount {
		return models.MappingCount{
			EntityType: models.EntityType(count.EntityType),
			Status:     models.SyncStatus(count.SyncStatus),
			Count:      count.Count,
		}
	}), nil
}

// LatestRun returns most recent run in status or nil when there is none.
func (p Postgres) LatestRun(ctx context.Context, status models.RunStatus) (*models.Run, error) {
	run, err := getLatestRun(ctx, p.db, status)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't get latest %s run: %w", status, err)
	}

	appRun := ToAppRun(run)
	return &appRun, nil
}

// GetRun returns run by id. It returns ErrNotFound when run doesn't exist.
func (p Postgres) GetRun(ctx context.Context, id int) (*models.Run, error) {
	var run pgmodels.SyncRun
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		WHERE(table.SyncRun.ID.EQ(pg.Int(int64(id)))).
		QueryContext(ctx, p.db, &run)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, platform.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("can't get run %d: %w", id, err)
	}

	appRun := ToAppRun(&run)
	return &appRun, nil
}

// ErrorMappings returns up to limit mappings in error status last synchronized within [from, to].
func (p Postgres) ErrorMappings(ctx context.Context, from, to time.Time, limit int) ([]models.Mapping, error) {
	var mappings []pgmodels.EntityMapping
	err := table.EntityMapping.SELECT(table.EntityMapping.AllColumns).
		WHERE(pg.AND(
			table.EntityMapping.SyncStatus.EQ(pg.String(string(models.StatusError))),
			table.EntityMapping.LastSync.GT_EQ(pg.TimestampzT(from)),
			table.EntityMapping.LastSync.LT_EQ(pg.TimestampzT(to)),
		)).
		ORDER_BY(table.EntityMapping.LastSync.ASC(), table.EntityMapping.ID.ASC()).
		LIMIT(int64(limit)).
		QueryContext(ctx, p.db, &mappings)
	if err != nil {
		return nil, fmt.Errorf("can't get error mappings: %w", err)
	}

	return lo.Map(mappings, func(mapping pgmodels.EntityMapping, _ int) models.Mapping {
		return toAppMapping(&mapping)
	}), nil
}
