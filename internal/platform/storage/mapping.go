package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// GetLocalID returns local id mapped to remote entity.
// Mapping with local id equal to 0 is reported as absent.
func (p Postgres) GetLocalID(ctx context.Context, entityType models.EntityType, uid string) (int64, bool, error) {
	var mapping pgmodels.EntityMapping
	err := table.EntityMapping.SELECT(table.EntityMapping.LocalID).
		WHERE(pg.AND(
			table.EntityMapping.EntityType.EQ(pg.String(string(entityType))),
			table.EntityMapping.ExternalUID.EQ(pg.String(uid)),
		)).
		QueryContext(ctx, p.db, &mapping)
	if errors.Is(err, qrm.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("can't get %s %s mapping: %w", entityType, uid, err)
	}

	return mapping.LocalID, mapping.LocalID != 0, nil
}

// SaveMapping inserts or overwrites mapping of remote entity.
func (p Postgres) SaveMapping(ctx context.Context, mapping models.Mapping) error {
	if mapping.LastSync.IsZero() {
		mapping.LastSync = time.Now().UTC()
	}

	_, err := table.EntityMapping.INSERT(table.EntityMapping.MutableColumns).
		MODEL(toDBMapping(&mapping)).
		ON_CONFLICT(table.EntityMapping.EntityType, table.EntityMapping.ExternalUID).
		DO_UPDATE(
			pg.SET(
				table.EntityMapping.LocalID.SET(table.EntityMapping.EXCLUDED.LocalID),
				table.EntityMapping.SyncStatus.SET(table.EntityMapping.EXCLUDED.SyncStatus),
				table.EntityMapping.LastSync.SET(table.EntityMapping.EXCLUDED.LastSync),
			),
		).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't save %s %s mapping: %w", mapping.EntityType, mapping.ExternalUID, err)
	}

	return nil
}
