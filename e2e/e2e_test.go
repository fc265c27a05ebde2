package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MichalMitros/pim-sync/e2e/helpers"
	"github.com/MichalMitros/pim-sync/internal/category"
	"github.com/MichalMitros/pim-sync/internal/handler"
	"github.com/MichalMitros/pim-sync/internal/pim"
	"github.com/MichalMitros/pim-sync/internal/platform/media"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/rabbitmq"
	"github.com/MichalMitros/pim-sync/internal/platform/storage"
	pgmodels "github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/storagetesting"
	"github.com/MichalMitros/pim-sync/internal/product"
	"github.com/MichalMitros/pim-sync/internal/syncer"
	"github.com/MichalMitros/pim-sync/pkg/v1/commander"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

const (
	catalogUID = "catalog-e2e"
	exchange   = "pim-sync-e2e"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	os.Exit(m.Run())
}

func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

type E2ETestSuite struct {
	suite.Suite
	db     *sql.DB
	pim    *helpers.FakePIM
	syncer *syncer.Syncer
	logs   *bytes.Buffer
}

func (s *E2ETestSuite) SetupSuite() {
	s.db = storagetesting.Open(s.T())
}

func (s *E2ETestSuite) TearDownSuite() {
	if s.db == nil {
		return
	}
	storagetesting.CleanupData(s.T(), s.db)
	if err := s.db.Close(); err != nil {
		s.FailNow("can't close Postgres connection", err)
	}
}

func (s *E2ETestSuite) SetupTest() {
	storagetesting.CleanupData(s.T(), s.db)

	categories := []pim.Category{
		// child first, parent must be created before it anyway
		{SyncUID: "cat-drills", ParentUID: "cat-tools", Header: "Drills", Position: 2, Enabled: true, Catalogs: []string{catalogUID}},
		{SyncUID: "cat-tools", Header: "Tools", Position: 1, Enabled: true, Catalogs: []string{catalogUID}},
		{SyncUID: "cat-other", Header: "Other catalog", Enabled: true, Catalogs: []string{"catalog-other"}},
	}
	features := []pim.Feature{
		{SyncUID: "color", Header: "Color", Type: "ENUM", Filter: true},
		{SyncUID: "power", Header: "Power", Type: "DECIMAL", Unit: "W"},
	}
	products := []map[string]any{
		helpers.FakeProduct("p1", "Drill 500", "cat-drills", map[string][]any{"color": {"red"}, "power": {"500,5"}}),
		helpers.FakeProduct("p2", "Drill 700", "cat-drills", map[string][]any{"color": {"red"}}),
		helpers.FakeProduct("p3", "Hammer", "cat-tools", map[string][]any{"color": {"blue"}}),
	}

	s.pim = helpers.NewFakePIM(s.T(), categories, products, features, 2)

	s.logs = &bytes.Buffer{}
	logger := zerolog.New(s.logs).Level(zerolog.DebugLevel)

	dir := s.T().TempDir()
	pg := storage.NewPostgres(s.db)
	client := pim.NewClient(s.pim.Server.Client(), s.pim.Server.URL, "login", "password", &logger)

	s.syncer = syncer.NewSyncer(
		client,
		category.NewSynchronizer(client, pg, &logger),
		product.NewSynchronizer(
			client,
			pg,
			media.NewLibrary(pg, filepath.Join(dir, "media"), &logger),
			&logger,
			product.WithTempDir(filepath.Join(dir, "tmp")),
			product.WithStagingDir(filepath.Join(dir, "staging")),
		),
		pg,
		catalogUID,
		&logger,
	)
}

func (s *E2ETestSuite) TestFullSynchronization() {
	ctx := context.Background()

	result, err := s.syncer.RunFull(ctx)
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(2, result.CategoriesSynced, "should synchronize categories of catalog only")
	s.Equal(3, result.ProductsSynced, "should synchronize all products")
	s.Empty(result.Errors, "shouldn't report any entity errors")

	// parent before child
	categories := storagetesting.GetCategories(s.T(), s.db)
	s.Require().Len(categories, 2)
	tools, drills := categories[0], categories[1]
	s.Equal("Tools", tools.Name)
	s.Equal(int64(0), tools.ParentID)
	s.Equal("Drills", drills.Name)
	s.Equal(tools.ID, drills.ParentID, "child should reference local id of parent")

	products := storagetesting.GetProducts(s.T(), s.db)
	s.Require().Len(products, 3)
	s.Equal(drills.ID, products[0].CategoryID)
	s.Equal(tools.ID, products[2].CategoryID)
	s.InDelta(1500.0, products[0].Weight, 0.001, "weight should be converted to grams")
	s.InDelta(20.0, products[0].Width, 0.001, "dimensions should be converted to centimeters")
	s.InDelta(19.99, products[0].Price, 0.001)

	s.Len(storagetesting.GetMappings(s.T(), s.db, string(models.EntityCategory)), 2)
	s.Len(storagetesting.GetMappings(s.T(), s.db, string(models.EntityProduct)), 3)

	features := storagetesting.GetMappings(s.T(), s.db, string(models.EntityFeature))
	color, found := lo.Find(features, func(m pgmodels.EntityMapping) bool { return m.ExternalUID == "color" })
	s.Require().True(found, "color feature should be mapped")
	s.Len(storagetesting.GetVariants(s.T(), s.db, color.LocalID), 2, "red variant should be created once")
	s.Len(storagetesting.GetProductImages(s.T(), s.db, products[0].ID), 1)

	runs := storagetesting.GetRuns(s.T(), s.db)
	s.Require().Len(runs, 1)
	s.Equal(string(models.RunCompleted), runs[0].Status)
	s.Equal(int32(2), *runs[0].AffectedCategories)
	s.Equal(int32(3), *runs[0].AffectedProducts)
	s.Equal(int32(0), *runs[0].FailedEntities)
	s.Contains(s.logs.String(), "synchronization finished")

	// second run doesn't create anything new
	result, err = s.syncer.RunFull(ctx)
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(3, result.ProductsSynced)
	s.Len(storagetesting.GetCategories(s.T(), s.db), 2)
	s.Len(storagetesting.GetProducts(s.T(), s.db), 3)
	s.Len(storagetesting.GetMappings(s.T(), s.db, string(models.EntityProduct)), 3)
	s.Len(storagetesting.GetVariants(s.T(), s.db, color.LocalID), 2)
	s.Len(storagetesting.GetProductImages(s.T(), s.db, products[0].ID), 1, "images should be replaced")
}

func (s *E2ETestSuite) TestDeltaSynchronization() {
	ctx := context.Background()

	_, err := s.syncer.RunFull(ctx)
	s.Require().NoError(err, "shouldn't return any error")

	s.pim.SetProducts([]map[string]any{
		helpers.FakeProduct("p2", "Drill 750", "cat-drills", nil),
		helpers.FakeProduct("p4", "Saw", "cat-unknown", nil),
	})

	result, err := s.syncer.RunDelta(ctx, 3)
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(1, result.ProductsUpdated)
	s.Equal(0, result.ProductsCreated, "delta should count only mapped products as updated")
	s.Require().Len(result.Errors, 1, "product of unmapped category should be rejected")
	s.Equal("p4", result.Errors[0].UID)

	scrolls := s.pim.Scrolls()
	s.Equal("3", scrolls[len(scrolls)-1].Get("day"), "delta should filter changes window")

	products := storagetesting.GetProducts(s.T(), s.db)
	s.Require().Len(products, 3)
	s.Equal("Drill 750", products[1].Name)

	runs := storagetesting.GetRuns(s.T(), s.db)
	s.Require().Len(runs, 2)
	s.Equal(string(models.RunDelta), runs[1].SyncType)
	s.Equal(int32(1), *runs[1].FailedEntities)
	s.Contains(*runs[1].ErrorDetails, "p4")
}

func (s *E2ETestSuite) TestSyncCommands() {
	rmqURL := os.Getenv("RABBITMQ_URL")
	if rmqURL == "" {
		s.T().Skip("please provide RabbitMQ URL via RABBITMQ_URL environment variable")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connection, err := amqp.Dial(rmqURL)
	s.Require().NoError(err, "can't open RabbitMQ connection")
	defer connection.Close()

	queue := fmt.Sprintf("pim-sync-e2e-test-%d", rand.Int63n(100000))
	routingKey := fmt.Sprintf("pim-sync.e2e.%d", rand.Int63n(100000))

	rmq, err := rabbitmq.NewRabbitMQ(connection, exchange)
	s.Require().NoError(err, "can't create RabbitMQ client")
	s.Require().NoError(rmq.DeclareQueue(queue, routingKey), "can't declare queue")

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	han := handler.NewHandler(rmq, s.syncer, 1, &logger)
	s.Require().NoError(han.Start(ctx, queue), "handler shouldn't return any error")

	cmdr := commander.NewSyncCommander(commander.NewRabbitMQSender(rmq, routingKey))

	s.Require().NoError(cmdr.SendFullSync(ctx), "can't publish sync command")
	fullRun := helpers.WaitForRunToBeFinished(s.T(), s.db, 0)

	s.Require().NoError(cmdr.SendDeltaSync(ctx, 2), "can't publish sync command")
	deltaRun := helpers.WaitForRunToBeFinished(s.T(), s.db, 1)

	cancel()
	select {
	case <-rmq.Done():
	case <-time.After(10 * time.Second):
		s.FailNow("consumer wasn't stopped")
	}

	s.Equal(string(models.RunFull), fullRun.SyncType)
	s.Equal(string(models.RunCompleted), fullRun.Status)
	s.Equal(string(models.RunDelta), deltaRun.SyncType)
	s.Equal(string(models.RunCompleted), deltaRun.Status)
	scrolls := s.pim.Scrolls()
	s.Equal("2", scrolls[len(scrolls)-1].Get("day"))
}
