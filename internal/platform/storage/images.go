package storage

import (
	"context"
	"fmt"

	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/table"

	pg "github.com/go-jet/jet/v2/postgres"
)

// DeleteProductImages deletes all image associations of the product.
func (p Postgres) DeleteProductImages(ctx context.Context, productID int64) error {
	_, err := table.ProductImage.DELETE().
		WHERE(table.ProductImage.ProductID.EQ(pg.Int64(productID))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't delete images of product %d: %w", productID, err)
	}

	return nil
}

// InsertProductImages inserts image associations.
func (p Postgres) InsertProductImages(ctx context.Context, images []models.ProductImage) error {
	if len(images) == 0 {
		return nil
	}

	_, err := table.ProductImage.INSERT(table.ProductImage.MutableColumns).
		MODELS(ToDBProductImages(images)).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't insert product images: %w", err)
	}

	return nil
}
