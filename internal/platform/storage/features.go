package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// GetFeature returns local characteristic by id or ErrNotFound.
func (p Postgres) GetFeature(ctx context.Context, id int64) (*models.LocalFeature, error) {
	var feature pgmodels.Feature
	err := table.Feature.SELECT(table.Feature.AllColumns).
		WHERE(table.Feature.ID.EQ(pg.Int64(id))).
		QueryContext(ctx, p.db, &feature)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("feature %d: %w", id, platform.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("can't get feature %d: %w", id, err)
	}

	return toAppFeature(&feature), nil
}

// CreateFeature inserts local characteristic and returns its id.
func (p Postgres) CreateFeature(ctx context.Context, feature *models.LocalFeature) (int64, error) {
	dbFeature, err := toDBFeature(feature)
	if err != nil {
		return 0, fmt.Errorf("can't convert feature: %w", err)
	}

	err = table.Feature.INSERT(table.Feature.MutableColumns).
		MODEL(dbFeature).
		RETURNING(table.Feature.ID).
		QueryContext(ctx, p.db, dbFeature)
	if err != nil {
		return 0, fmt.Errorf("can't insert feature: %w", err)
	}

	return dbFeature.ID, nil
}

// FindVariant returns id of characteristic's variant with provided value.
func (p Postgres) FindVariant(ctx context.Context, featureID int64, value string) (int64, bool, error) {
	var variant pgmodels.FeatureVariant
	err := table.FeatureVariant.SELECT(table.FeatureVariant.ID).
		WHERE(pg.AND(
			table.FeatureVariant.FeatureID.EQ(pg.Int64(featureID)),
			table.FeatureVariant.Variant.EQ(pg.String(value)),
		)).
		QueryContext(ctx, p.db, &variant)
	if errors.Is(err, qrm.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("can't get variant of feature %d: %w", featureID, err)
	}

	return variant.ID, true, nil
}

// CreateVariant inserts characteristic's variant and returns its id.
// Existing variant with the same value is returned instead of duplicate.
func (p Postgres) CreateVariant(ctx context.Context, featureID int64, value string) (int64, error) {
	variant := pgmodels.FeatureVariant{
		FeatureID: featureID,
		Variant:   value,
	}

	err := table.FeatureVariant.INSERT(table.FeatureVariant.MutableColumns).
		MODEL(variant).
		ON_CONFLICT(table.FeatureVariant.FeatureID, table.FeatureVariant.Variant).
		DO_UPDATE(
			pg.SET(table.FeatureVariant.Variant.SET(table.FeatureVariant.EXCLUDED.Variant)),
		).
		RETURNING(table.FeatureVariant.ID).
		QueryContext(ctx, p.db, &variant)
	if err != nil {
		return 0, fmt.Errorf("can't insert variant of feature %d: %w", featureID, err)
	}

	return variant.ID, nil
}

// DeleteFeatureValues deletes all characteristic values of the product.
func (p Postgres) DeleteFeatureValues(ctx context.Context, productID int64) error {
	_, err := table.FeatureValue.DELETE().
		WHERE(table.FeatureValue.ProductID.EQ(pg.Int64(productID))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't delete feature values of product %d: %w", productID, err)
	}

	return nil
}

// InsertFeatureValue inserts single characteristic value of the product.
func (p Postgres) InsertFeatureValue(ctx context.Context, value models.FeatureValue) error {
	_, err := table.FeatureValue.INSERT(table.FeatureValue.MutableColumns).
		MODEL(toDBFeatureValue(&value)).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't insert value of feature %d: %w", value.FeatureID, err)
	}

	return nil
}
