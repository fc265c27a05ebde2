package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/table"

	pg "github.com/go-jet/jet/v2/postgres"
)

// UpsertCategory updates category when its id is known and row exists, otherwise it inserts new one.
// It returns local id of the category.
func (p Postgres) UpsertCategory(ctx context.Context, category *models.LocalCategory) (int64, error) {
	dbCategory, err := toDBCategory(category)
	if err != nil {
		return 0, fmt.Errorf("can't convert category: %w", err)
	}

	if category.ID > 0 {
		result, err := table.Category.UPDATE(table.Category.MutableColumns).
			MODEL(dbCategory).
			WHERE(table.Category.ID.EQ(pg.Int64(category.ID))).
			ExecContext(ctx, p.db)
		if err != nil {
			return 0, fmt.Errorf("can't update category %d: %w", category.ID, err)
		}
		if updated(result) {
			return category.ID, nil
		}
	}

	err = table.Category.INSERT(table.Category.MutableColumns).
		MODEL(dbCategory).
		RETURNING(table.Category.ID).
		QueryContext(ctx, p.db, dbCategory)
	if err != nil {
		return 0, fmt.Errorf("can't insert category: %w", err)
	}

	return dbCategory.ID, nil
}

// UpsertProduct updates product when its id is known and row exists, otherwise it inserts new one.
// It returns local id of the product.
func (p Postgres) UpsertProduct(ctx context.Context, product *models.LocalProduct) (int64, error) {
	dbProduct, err := toDBProduct(product)
	if err != nil {
		return 0, fmt.Errorf("can't convert product: %w", err)
	}

	if product.ID > 0 {
		result, err := table.Product.UPDATE(table.Product.MutableColumns).
			MODEL(dbProduct).
			WHERE(table.Product.ID.EQ(pg.Int64(product.ID))).
			ExecContext(ctx, p.db)
		if err != nil {
			return 0, fmt.Errorf("can't update product %d: %w", product.ID, err)
		}
		if updated(result) {
			return product.ID, nil
		}
	}

	err = table.Product.INSERT(table.Product.MutableColumns).
		MODEL(dbProduct).
		RETURNING(table.Product.ID).
		QueryContext(ctx, p.db, dbProduct)
	if err != nil {
		return 0, fmt.Errorf("can't insert product: %w", err)
	}

	return dbProduct.ID, nil
}

// updated reports whether statement changed any row.
func updated(result sql.Result) bool {
	rowsAffected, err := result.RowsAffected()
	return err == nil && rowsAffected > 0
}
