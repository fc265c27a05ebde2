package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	"github.com/MichalMitros/pim-sync/internal/platform/storage"
	pgmodels "github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB and applies migrations.
// Test is skipped when DATABASE_URL is not set.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	if _, err := storage.Migrate(db); err != nil {
		t.Fatalf("can't migrate database: %s", err)
	}

	return db
}

// InsertRuns is a helper test function to insert runs. Ids are assigned by database.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.SyncRun) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	toInsert := make([]pgmodels.SyncRun, 0, len(runs))
	toInsert = append(toInsert, runs...)

	_, err := table.SyncRun.INSERT(table.SyncRun.MutableColumns).MODELS(toInsert).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// InsertMappings is a helper test function to insert entity mappings.
func InsertMappings(t *testing.T, exc qrm.Executable, mappings ...pgmodels.EntityMapping) {
	t.Helper()

	if len(mappings) == 0 {
		return
	}

	_, err := table.EntityMapping.INSERT(table.EntityMapping.MutableColumns).MODELS(mappings).Exec(exc)
	if err != nil {
		t.Fatal("can't insert mappings", err)
	}
}

// GetRuns is a helper test function to get all runs ordered by id.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.SyncRun {
	t.Helper()

	runs := []pgmodels.SyncRun{}
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		WHERE(table.SyncRun.ID.IS_NOT_NULL()).
		ORDER_BY(table.SyncRun.ID.ASC()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// GetMappings is a helper test function to get all mappings of entity type.
func GetMappings(t *testing.T, queryable qrm.Queryable, entityType string) []pgmodels.EntityMapping {
	t.Helper()

	mappings := []pgmodels.EntityMapping{}
	err := table.EntityMapping.SELECT(table.EntityMapping.AllColumns).
		WHERE(table.EntityMapping.EntityType.EQ(pg.String(entityType))).
		ORDER_BY(table.EntityMapping.ID.ASC()).
		Query(queryable, &mappings)
	if err != nil {
		t.Fatal("can't get mappings", err)
	}

	return mappings
}

// GetCategories is a helper test function to get all categories ordered by id.
func GetCategories(t *testing.T, queryable qrm.Queryable) []pgmodels.Category {
	t.Helper()

	categories := []pgmodels.Category{}
	err := table.Category.SELECT(table.Category.AllColumns).
		WHERE(table.Category.ID.IS_NOT_NULL()).
		ORDER_BY(table.Category.ID.ASC()).
		Query(queryable, &categories)
	if err != nil {
		t.Fatal("can't get categories", err)
	}

	return categories
}

// GetProducts is a helper test function to get all products ordered by id.
func GetProducts(t *testing.T, queryable qrm.Queryable) []pgmodels.Product {
	t.Helper()

	products := []pgmodels.Product{}
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(table.Product.ID.IS_NOT_NULL()).
		ORDER_BY(table.Product.ID.ASC()).
		Query(queryable, &products)
	if err != nil {
		t.Fatal("can't get products", err)
	}

	return products
}

// GetVariants is a helper test function to get all variants of characteristic.
func GetVariants(t *testing.T, queryable qrm.Queryable, featureID int64) []pgmodels.FeatureVariant {
	t.Helper()

	variants := []pgmodels.FeatureVariant{}
	err := table.FeatureVariant.SELECT(table.FeatureVariant.AllColumns).
		WHERE(table.FeatureVariant.FeatureID.EQ(pg.Int64(featureID))).
		ORDER_BY(table.FeatureVariant.ID.ASC()).
		Query(queryable, &variants)
	if err != nil {
		t.Fatal("can't get variants", err)
	}

	return variants
}

// GetFeatureValues is a helper test function to get characteristic values of product.
func GetFeatureValues(t *testing.T, queryable qrm.Queryable, productID int64) []pgmodels.FeatureValue {
	t.Helper()

	values := []pgmodels.FeatureValue{}
	err := table.FeatureValue.SELECT(table.FeatureValue.AllColumns).
		WHERE(table.FeatureValue.ProductID.EQ(pg.Int64(productID))).
		ORDER_BY(table.FeatureValue.ID.ASC()).
		Query(queryable, &values)
	if err != nil {
		t.Fatal("can't get feature values", err)
	}

	return values
}

// GetProductImages is a helper test function to get image associations of product.
func GetProductImages(t *testing.T, queryable qrm.Queryable, productID int64) []pgmodels.ProductImage {
	t.Helper()

	images := []pgmodels.ProductImage{}
	err := table.ProductImage.SELECT(table.ProductImage.AllColumns).
		WHERE(table.ProductImage.ProductID.EQ(pg.Int64(productID))).
		ORDER_BY(table.ProductImage.Position.ASC()).
		Query(queryable, &images)
	if err != nil {
		t.Fatal("can't get product images", err)
	}

	return images
}

// CleanupData deletes all rows from all tables.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	tables := []struct {
		name string
		stmt pg.Statement
	}{
		{"feature values", table.FeatureValue.DELETE().WHERE(table.FeatureValue.ID.IS_NOT_NULL())},
		{"variants", table.FeatureVariant.DELETE().WHERE(table.FeatureVariant.ID.IS_NOT_NULL())},
		{"features", table.Feature.DELETE().WHERE(table.Feature.ID.IS_NOT_NULL())},
		{"product images", table.ProductImage.DELETE().WHERE(table.ProductImage.ID.IS_NOT_NULL())},
		{"products", table.Product.DELETE().WHERE(table.Product.ID.IS_NOT_NULL())},
		{"categories", table.Category.DELETE().WHERE(table.Category.ID.IS_NOT_NULL())},
		{"runs", table.SyncRun.DELETE().WHERE(table.SyncRun.ID.IS_NOT_NULL())},
		{"mappings", table.EntityMapping.DELETE().WHERE(table.EntityMapping.ID.IS_NOT_NULL())},
	}

	for _, tbl := range tables {
		if _, err := tbl.stmt.Exec(exc); err != nil {
			t.Fatalf("can't delete %s data: %s", tbl.name, err)
		}
	}
}
