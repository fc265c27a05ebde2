package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/models/modelstesting"
	"github.com/MichalMitros/pim-sync/internal/platform/storage"
	pgmodels "github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/storagetesting"
	"github.com/go-faker/faker/v4"
	_ "github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var loc = func() *time.Location {
	loc, err := time.LoadLocation("Etc/UTC")
	if err != nil {
		panic(err)
	}
	return loc
}()

func TestPostgresIntegration(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}

type PostgresTestSuite struct {
	suite.Suite
	DB *sql.DB
}

func (s *PostgresTestSuite) SetupSuite() {
	s.DB = storagetesting.Open(s.T())
	storagetesting.CleanupData(s.T(), s.DB)
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.DB == nil {
		return
	}
	storagetesting.CleanupData(s.T(), s.DB)
	if err := s.DB.Close(); err != nil {
		s.FailNow("close DB", err)
	}
}

func (s *PostgresTestSuite) TestIntegrationStartRun() {
	startedAt := time.Date(2025, time.June, 1, 1, 1, 1, 0, loc)

	tests := map[string]struct {
		storedRuns []pgmodels.SyncRun
		runType    models.RunType
		wantErr    error
	}{
		"first run": {
			runType: models.RunFull,
		},
		"after completed run": {
			storedRuns: []pgmodels.SyncRun{
				{SyncType: "full", Status: "completed", StartedAt: startedAt},
			},
			runType: models.RunDelta,
		},
		"after failed run": {
			storedRuns: []pgmodels.SyncRun{
				{SyncType: "delta", Status: "failed", StartedAt: startedAt},
			},
			runType: models.RunDelta,
		},
		"already running error": {
			storedRuns: []pgmodels.SyncRun{
				{SyncType: "full", Status: "completed", StartedAt: startedAt},
				{SyncType: "delta", Status: "running", StartedAt: startedAt},
			},
			runType: models.RunFull,
			wantErr: platform.ErrAlreadyRunning,
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			defer storagetesting.CleanupData(s.T(), s.DB)

			storagetesting.InsertRuns(s.T(), s.DB, tt.storedRuns...)

			post := storage.NewPostgres(s.DB)

			run, err := post.StartRun(context.TODO(), tt.runType)

			if tt.wantErr != nil {
				s.Require().ErrorIs(err, tt.wantErr, "should return correct error")
				s.Len(storagetesting.GetRuns(s.T(), s.DB), len(tt.storedRuns), "shouldn't add run")
				return
			}

			s.Require().NoError(err, "shouldn't return any error")
			s.Equal(tt.runType, run.Type, "should return run with correct type")
			s.Equal(models.RunRunning, run.Status, "should return running run")

			runs := storagetesting.GetRuns(s.T(), s.DB)
			s.Require().Len(runs, len(tt.storedRuns)+1, "should add run")
			s.Equal(int32(run.ID), runs[len(runs)-1].ID, "should return id of added run")
			s.Equal("running", runs[len(runs)-1].Status, "should store running status")
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationFinishRun() {
	defer storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)
	run, err := post.StartRun(context.TODO(), models.RunFull)
	s.Require().NoError(err, "shouldn't return any error")

	completedAt := time.Date(2025, time.June, 1, 2, 0, 0, 0, loc)
	run.Status = models.RunFailed
	run.CompletedAt = &completedAt
	run.AffectedCategories = lo.ToPtr(int32(3))
	run.AffectedProducts = lo.ToPtr(int32(10))
	run.FailedEntities = lo.ToPtr(int32(2))
	run.ErrorDetails = lo.ToPtr("product p-1: entity validation failed")

	s.Require().NoError(post.FinishRun(context.TODO(), run), "shouldn't return any error")

	runs := storagetesting.GetRuns(s.T(), s.DB)
	s.Require().Len(runs, 1)
	s.Equal("failed", runs[0].Status)
	s.Equal("full", runs[0].SyncType, "shouldn't change run type")
	s.True(completedAt.Equal(*runs[0].CompletedAt), "should store completion time")
	s.Equal(run.AffectedCategories, runs[0].AffectedCategories)
	s.Equal(run.AffectedProducts, runs[0].AffectedProducts)
	s.Equal(run.FailedEntities, runs[0].FailedEntities)
	s.Equal(run.ErrorDetails, runs[0].ErrorDetails)

	// finished run doesn't block the next one
	_, err = post.StartRun(context.TODO(), models.RunDelta)
	s.NoError(err, "should start next run")

	err = post.FinishRun(context.TODO(), &models.Run{ID: 1000, Status: models.RunCompleted})
	s.ErrorIs(err, platform.ErrNotFound, "should fail for not existing run")
}

func (s *PostgresTestSuite) TestIntegrationLastAndCleanupRuns() {
	defer storagetesting.CleanupData(s.T(), s.DB)

	now := time.Now().In(loc)
	storagetesting.InsertRuns(s.T(), s.DB,
		pgmodels.SyncRun{SyncType: "full", Status: "completed", StartedAt: now.Add(-60 * 24 * time.Hour)},
		pgmodels.SyncRun{SyncType: "delta", Status: "running", StartedAt: now.Add(-40 * 24 * time.Hour)},
		pgmodels.SyncRun{SyncType: "delta", Status: "failed", StartedAt: now.Add(-31 * 24 * time.Hour)},
		pgmodels.SyncRun{SyncType: "full", Status: "completed", StartedAt: now.Add(-time.Hour)},
	)

	post := storage.NewPostgres(s.DB)

	last, err := post.LastRuns(context.TODO(), 2)
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal([]models.RunStatus{models.RunCompleted, models.RunFailed},
		lo.Map(last, func(run models.Run, _ int) models.RunStatus { return run.Status }),
		"should return newest runs first",
	)

	deleted, err := post.CleanupRuns(context.TODO(), now.Add(-30*24*time.Hour))
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(int64(2), deleted, "should delete old finished runs")

	kept := lo.Map(storagetesting.GetRuns(s.T(), s.DB), func(run pgmodels.SyncRun, _ int) string {
		return run.SyncType + "/" + run.Status
	})
	s.Equal([]string{"delta/running", "full/completed"}, kept, "should keep running and recent runs")
}

func (s *PostgresTestSuite) TestIntegrationStats() {
	defer storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)

	counts, err := post.CountMappings(context.TODO())
	s.Require().NoError(err, "shouldn't return any error")
	s.Empty(counts, "shouldn't count anything without mappings")

	running, err := post.LatestRun(context.TODO(), models.RunRunning)
	s.Require().NoError(err, "shouldn't return any error")
	s.Nil(running, "should return nil without runs")

	lastSync := time.Date(2025, time.June, 1, 3, 0, 0, 0, loc)
	storagetesting.InsertMappings(s.T(), s.DB,
		pgmodels.EntityMapping{EntityType: "category", ExternalUID: "c1", LocalID: 1, SyncStatus: "synced", LastSync: lastSync},
		pgmodels.EntityMapping{EntityType: "category", ExternalUID: "c2", LocalID: 2, SyncStatus: "synced", LastSync: lastSync},
		pgmodels.EntityMapping{EntityType: "product", ExternalUID: "p1", LocalID: 3, SyncStatus: "synced", LastSync: lastSync},
		pgmodels.EntityMapping{EntityType: "product", ExternalUID: "p2", SyncStatus: "pending", LastSync: lastSync},
		pgmodels.EntityMapping{EntityType: "product", ExternalUID: "p3", SyncStatus: "error", LastSync: lastSync},
	)
	storagetesting.InsertRuns(s.T(), s.DB,
		pgmodels.SyncRun{SyncType: "full", Status: "completed", StartedAt: lastSync.Add(-2 * time.Hour), CompletedAt: lo.ToPtr(lastSync.Add(-time.Hour))},
		pgmodels.SyncRun{SyncType: "delta", Status: "completed", StartedAt: lastSync.Add(-time.Minute), CompletedAt: lo.ToPtr(lastSync)},
		pgmodels.SyncRun{SyncType: "delta", Status: "running", StartedAt: lastSync.Add(time.Hour)},
	)

	counts, err = post.CountMappings(context.TODO())
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal([]models.MappingCount{
		{EntityType: models.EntityCategory, Status: models.StatusSynced, Count: 2},
		{EntityType: models.EntityProduct, Status: models.StatusError, Count: 1},
		{EntityType: models.EntityProduct, Status: models.StatusPending, Count: 1},
		{EntityType: models.EntityProduct, Status: models.StatusSynced, Count: 1},
	}, counts, "should count mappings per type and status")

	completed, err := post.LatestRun(context.TODO(), models.RunCompleted)
	s.Require().NoError(err, "shouldn't return any error")
	s.Require().NotNil(completed)
	s.Equal(models.RunDelta, completed.Type, "should return latest completed run")

	running, err = post.LatestRun(context.TODO(), models.RunRunning)
	s.Require().NoError(err, "shouldn't return any error")
	s.Require().NotNil(running)
	s.Equal(models.RunRunning, running.Status)
}

func (s *PostgresTestSuite) TestIntegrationRunErrors() {
	defer storagetesting.CleanupData(s.T(), s.DB)

	startedAt := time.Date(2025, time.June, 1, 3, 0, 0, 0, loc)
	completedAt := startedAt.Add(10 * time.Minute)
	storagetesting.InsertRuns(s.T(), s.DB,
		pgmodels.SyncRun{SyncType: "full", Status: "failed", StartedAt: startedAt, CompletedAt: &completedAt},
	)
	storagetesting.InsertMappings(s.T(), s.DB,
		pgmodels.EntityMapping{EntityType: "product", ExternalUID: "before", SyncStatus: "error", LastSync: startedAt.Add(-time.Minute)},
		pgmodels.EntityMapping{EntityType: "product", ExternalUID: "p1", SyncStatus: "error", LastSync: startedAt.Add(time.Minute)},
		pgmodels.EntityMapping{EntityType: "category", ExternalUID: "c1", SyncStatus: "error", LastSync: startedAt.Add(2 * time.Minute)},
		pgmodels.EntityMapping{EntityType: "product", ExternalUID: "synced", LocalID: 1, SyncStatus: "synced", LastSync: startedAt.Add(time.Minute)},
		pgmodels.EntityMapping{EntityType: "product", ExternalUID: "after", SyncStatus: "error", LastSync: completedAt.Add(time.Minute)},
	)

	post := storage.NewPostgres(s.DB)
	runID := int(storagetesting.GetRuns(s.T(), s.DB)[0].ID)

	run, err := post.GetRun(context.TODO(), runID)
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(models.RunFailed, run.Status)

	mappings, err := post.ErrorMappings(context.TODO(), run.StartedAt, *run.CompletedAt, 50)
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal([]string{"p1", "c1"}, lo.Map(mappings, func(mapping models.Mapping, _ int) string {
		return mapping.ExternalUID
	}), "should return error mappings within run window")
	s.Equal(models.StatusError, mappings[0].Status)

	_, err = post.GetRun(context.TODO(), runID+1)
	s.Require().ErrorIs(err, platform.ErrNotFound, "should return not found error")
}

func (s *PostgresTestSuite) TestIntegrationFailStaleRuns() {
	defer storagetesting.CleanupData(s.T(), s.DB)

	now := time.Now().In(loc)
	post := storage.NewPostgres(s.DB)

	storagetesting.InsertRuns(s.T(), s.DB,
		pgmodels.SyncRun{SyncType: "full", Status: "completed", StartedAt: now.Add(-48 * time.Hour)},
		pgmodels.SyncRun{SyncType: "delta", Status: "running", StartedAt: now.Add(-2 * time.Hour)},
	)

	failed, err := post.FailStaleRuns(context.TODO(), now.Add(-6*time.Hour))
	s.Require().NoError(err, "shouldn't return any error")
	s.Zero(failed, "shouldn't fail recent run")

	failed, err = post.FailStaleRuns(context.TODO(), now.Add(-time.Hour))
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(int64(1), failed, "should fail stale run")

	runs := storagetesting.GetRuns(s.T(), s.DB)
	s.Require().Len(runs, 2)
	s.Equal("completed", runs[0].Status, "shouldn't touch finished run")
	s.Equal("failed", runs[1].Status)
	s.NotNil(runs[1].CompletedAt)
	s.Equal(lo.ToPtr(models.StaleRunDetails), runs[1].ErrorDetails)

	_, err = post.StartRun(context.TODO(), models.RunFull)
	s.NoError(err, "should start run after stale one failed")
}

func (s *PostgresTestSuite) TestIntegrationMappings() {
	defer storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)
	uid := faker.UUIDHyphenated()

	_, found, err := post.GetLocalID(context.TODO(), models.EntityProduct, uid)
	s.Require().NoError(err, "shouldn't return any error")
	s.False(found, "should report missing mapping")

	s.Require().NoError(post.SaveMapping(context.TODO(), models.Mapping{
		EntityType:  models.EntityProduct,
		ExternalUID: uid,
		LocalID:     42,
		Status:      models.StatusSynced,
	}))

	id, found, err := post.GetLocalID(context.TODO(), models.EntityProduct, uid)
	s.Require().NoError(err, "shouldn't return any error")
	s.True(found, "should find mapping")
	s.Equal(int64(42), id, "should return mapped id")

	_, found, err = post.GetLocalID(context.TODO(), models.EntityCategory, uid)
	s.Require().NoError(err, "shouldn't return any error")
	s.False(found, "should scope mapping by entity type")

	// failed sync with no local record overwrites mapping in place
	s.Require().NoError(post.SaveMapping(context.TODO(), models.Mapping{
		EntityType:  models.EntityProduct,
		ExternalUID: uid,
		Status:      models.StatusError,
	}))

	_, found, err = post.GetLocalID(context.TODO(), models.EntityProduct, uid)
	s.Require().NoError(err, "shouldn't return any error")
	s.False(found, "should treat local id 0 as absent")

	mappings := storagetesting.GetMappings(s.T(), s.DB, string(models.EntityProduct))
	s.Require().Len(mappings, 1, "should keep single mapping row")
	s.Equal("error", mappings[0].SyncStatus)
}

func (s *PostgresTestSuite) TestIntegrationUpsertCategory() {
	defer storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)

	root := models.LocalCategory{Name: "Tools", Status: models.ItemActive, Position: 1, PageTitle: "Tools"}
	rootID, err := post.UpsertCategory(context.TODO(), &root)
	s.Require().NoError(err, "shouldn't return any error")

	child := models.LocalCategory{ParentID: rootID, Name: "Drills", Status: models.ItemDisabled}
	childID, err := post.UpsertCategory(context.TODO(), &child)
	s.Require().NoError(err, "shouldn't return any error")

	child.ID = childID
	child.Name = "Hammer drills"
	updatedID, err := post.UpsertCategory(context.TODO(), &child)
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(childID, updatedID, "should update existing category")

	// stale id inserts new row
	stale := models.LocalCategory{ID: childID + 1000, Name: "Saws", Status: models.ItemActive}
	staleID, err := post.UpsertCategory(context.TODO(), &stale)
	s.Require().NoError(err, "shouldn't return any error")
	s.NotEqual(stale.ID, staleID, "should insert category with new id")

	categories := storagetesting.GetCategories(s.T(), s.DB)
	s.Require().Len(categories, 3)
	s.Equal(models.LocalCategory{
		ID:       childID,
		ParentID: rootID,
		Name:     "Hammer drills",
		Status:   models.ItemDisabled,
	}, storage.ToAppCategory(&categories[1]), "should update category fields")
	s.Equal("D", categories[1].Status, "should store status code")
}

func (s *PostgresTestSuite) TestIntegrationUpsertProduct() {
	defer storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)

	product := modelstesting.FakeLocalProduct(func(p *models.LocalProduct) {
		p.ID = 0
		p.Status = models.ItemHidden
	})
	id, err := post.UpsertProduct(context.TODO(), &product)
	s.Require().NoError(err, "shouldn't return any error")

	product.ID = id
	product.Price = 99.5
	updatedID, err := post.UpsertProduct(context.TODO(), &product)
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(id, updatedID, "should update existing product")

	products := storagetesting.GetProducts(s.T(), s.DB)
	s.Require().Len(products, 1)
	s.Equal("H", products[0].Status, "should store status code")

	stored, err := storage.ToAppProduct(&products[0])
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(product, stored, "should store all product fields")
}

func (s *PostgresTestSuite) TestIntegrationFeatures() {
	defer storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)
	ctx := context.TODO()

	feature := models.LocalFeature{
		Name:             "Color",
		Type:             models.LocalSelect,
		Position:         3,
		DisplayOnProduct: true,
		Comparison:       true,
		Filterable:       true,
	}
	featureID, err := post.CreateFeature(ctx, &feature)
	s.Require().NoError(err, "shouldn't return any error")

	stored, err := post.GetFeature(ctx, featureID)
	s.Require().NoError(err, "shouldn't return any error")
	feature.ID = featureID
	s.Equal(&feature, stored, "should store feature")

	_, err = post.GetFeature(ctx, featureID+1000)
	s.ErrorIs(err, platform.ErrNotFound, "should return not found error")

	_, found, err := post.FindVariant(ctx, featureID, "red")
	s.Require().NoError(err, "shouldn't return any error")
	s.False(found, "shouldn't find missing variant")

	redID, err := post.CreateVariant(ctx, featureID, "red")
	s.Require().NoError(err, "shouldn't return any error")
	againID, err := post.CreateVariant(ctx, featureID, "red")
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(redID, againID, "should return existing variant")

	foundID, found, err := post.FindVariant(ctx, featureID, "red")
	s.Require().NoError(err, "shouldn't return any error")
	s.True(found, "should find variant")
	s.Equal(redID, foundID)
	s.Len(storagetesting.GetVariants(s.T(), s.DB, featureID), 1, "shouldn't duplicate variants")

	product := modelstesting.FakeLocalProduct(func(p *models.LocalProduct) { p.ID = 0 })
	productID, err := post.UpsertProduct(ctx, &product)
	s.Require().NoError(err, "shouldn't return any error")

	s.Require().NoError(post.InsertFeatureValue(ctx, models.FeatureValue{
		ProductID: productID, FeatureID: featureID, VariantID: redID,
	}))
	s.Require().NoError(post.InsertFeatureValue(ctx, models.FeatureValue{
		ProductID: productID, FeatureID: featureID, Value: "12", ValueNum: lo.ToPtr(12.0),
	}))

	values := storagetesting.GetFeatureValues(s.T(), s.DB, productID)
	s.Require().Len(values, 2)
	s.Equal(&redID, values[0].VariantID, "should store variant reference")
	s.Nil(values[1].VariantID, "should store null variant")
	s.Equal(lo.ToPtr(12.0), values[1].ValueNum, "should store numeric value")

	s.Require().NoError(post.DeleteFeatureValues(ctx, productID))
	s.Empty(storagetesting.GetFeatureValues(s.T(), s.DB, productID), "should delete product values")
}

func (s *PostgresTestSuite) TestIntegrationProductImages() {
	defer storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)
	ctx := context.TODO()

	product := modelstesting.FakeLocalProduct(func(p *models.LocalProduct) { p.ID = 0 })
	productID, err := post.UpsertProduct(ctx, &product)
	s.Require().NoError(err, "shouldn't return any error")

	images := []models.ProductImage{
		{ProductID: productID, Role: models.ImageMain, Position: 0, Path: "products/1/a.jpg", Width: 10, Height: 20},
		{ProductID: productID, Role: models.ImageAdditional, Position: 1, Path: "products/1/b.jpg", Width: 30, Height: 40},
	}
	s.Require().NoError(post.InsertProductImages(ctx, images))
	s.Require().NoError(post.InsertProductImages(ctx, nil), "should ignore empty images")

	stored := storagetesting.GetProductImages(s.T(), s.DB, productID)
	s.Require().Len(stored, 2)
	assert.Equal(s.T(), "main", stored[0].Role)
	assert.Equal(s.T(), "products/1/b.jpg", stored[1].Path)
	assert.Equal(s.T(), int32(40), stored[1].Height)

	s.Require().NoError(post.DeleteProductImages(ctx, productID))
	s.Empty(storagetesting.GetProductImages(s.T(), s.DB, productID), "should delete product images")
}
