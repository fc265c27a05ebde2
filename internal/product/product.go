package product

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/MichalMitros/pim-sync/internal/feature"
	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/media"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Client --filename client.go
//go:generate mockery --name Media --filename media.go
//go:generate mockery --name FeatureSyncer --filename feature_syncer.go

const defaultStagingDir = "var/import/pim"

// Client provides PIM products and their images.
type Client interface {
	feature.Client
	ScrollProducts(ctx context.Context, cursor string, filter models.ScrollFilter) (*models.ProductPage, error)
	DownloadImage(ctx context.Context, name, dst string) error
}

// Store is entity mapping and local catalog storage.
type Store interface {
	feature.Store
	UpsertProduct(ctx context.Context, product *models.LocalProduct) (int64, error)
}

// Media attaches image files to local products.
type Media interface {
	DeleteProductImages(ctx context.Context, productID int64) error
	AttachImages(ctx context.Context, productID int64, images []models.StagedImage) (int, error)
}

// FeatureSyncer assigns characteristics to local products.
type FeatureSyncer interface {
	SyncProductFeatures(ctx context.Context, productID int64, params []models.Param) (feature.Stats, error)
}

// Report is result of products scan.
type Report struct {
	Created        int
	Updated        int
	Rejected       int
	ImagesAttached int
	Pages          int
	Features       feature.Stats
	Errors         []models.EntityError
}

// Synced returns number of created and updated products.
func (r Report) Synced() int {
	return r.Created + r.Updated
}

// Option is Synchronizer option.
type Option func(s *Synchronizer)

// Synchronizer scrolls PIM products and mirrors them into local products.
type Synchronizer struct {
	client Client
	store  Store
	media  Media
	logger *zerolog.Logger

	newFeatureSyncer func() FeatureSyncer
	tmpDir           string
	stagingDir       string
	manufacturerUID  string
}

// NewSynchronizer returns new Synchronizer.
func NewSynchronizer(
	client Client,
	store Store,
	media Media,
	logger *zerolog.Logger,
	opts ...Option,
) *Synchronizer {
	s := &Synchronizer{
		client:     client,
		store:      store,
		media:      media,
		logger:     logger,
		tmpDir:     os.TempDir(),
		stagingDir: defaultStagingDir,
	}
	s.newFeatureSyncer = func() FeatureSyncer {
		return feature.NewSynchronizer(client, store, logger)
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SyncAll synchronizes all products of the catalog.
func (s *Synchronizer) SyncAll(ctx context.Context, catalogUID string) (Report, error) {
	return s.scan(ctx, models.ScrollFilter{
		CatalogUID:      catalogUID,
		ManufacturerUID: s.manufacturerUID,
	})
}

// SyncChanged synchronizes products of the catalog changed within last days.
func (s *Synchronizer) SyncChanged(ctx context.Context, catalogUID string, days uint) (Report, error) {
	if days == 0 {
		return Report{}, fmt.Errorf("%w: days must be positive", platform.ErrValidation)
	}

	return s.scan(ctx, models.ScrollFilter{
		CatalogUID:      catalogUID,
		Days:            days,
		ManufacturerUID: s.manufacturerUID,
	})
}

// scan processes products page by page until page is empty or cursor is absent.
// Report of already processed pages is returned together with page fetch error.
func (s *Synchronizer) scan(ctx context.Context, filter models.ScrollFilter) (Report, error) {
	features := s.newFeatureSyncer()
	report := Report{}

	s.logger.Info().
		Str("catalogUid", filter.CatalogUID).
		Uint("days", filter.Days).
		Str("manufacturerUid", filter.ManufacturerUID).
		Msg("products scan started")

	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		page, err := s.client.ScrollProducts(ctx, cursor, filter)
		if err != nil {
			return report, fmt.Errorf("can't get products page %d: %w", report.Pages+1, err)
		}
		if len(page.Products) == 0 && len(page.Malformed) == 0 {
			break
		}

		report.Pages++
		for _, malformed := range page.Malformed {
			s.fail(ctx, &models.Product{SyncUID: malformed.UID}, malformed.Err, &report)
		}
		s.processBatch(ctx, page.Products, features, &report)

		s.logger.Info().
			Int("page", report.Pages).
			Int("products", len(page.Products)+len(page.Malformed)).
			Int("synced", report.Synced()).
			Int("rejected", report.Rejected).
			Msg("products page processed")

		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	s.logger.Info().
		Str("catalogUid", filter.CatalogUID).
		Int("pages", report.Pages).
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("rejected", report.Rejected).
		Int("imagesAttached", report.ImagesAttached).
		Int("featuresCreated", report.Features.FeaturesCreated).
		Int("variantsCreated", report.Features.VariantsCreated).
		Msg("products scan finished")

	return report, nil
}

func (s *Synchronizer) processBatch(ctx context.Context, products []models.Product, features FeatureSyncer, report *Report) {
	for ix := range products {
		if err := s.syncProduct(ctx, &products[ix], features, report); err != nil {
			s.fail(ctx, &products[ix], err, report)
		}
	}
}

func (s *Synchronizer) syncProduct(ctx context.Context, product *models.Product, features FeatureSyncer, report *Report) error {
	switch {
	case product.SyncUID == "":
		return fmt.Errorf("%w: missing sync uid", platform.ErrValidation)
	case product.Header == "":
		return fmt.Errorf("%w: missing header", platform.ErrValidation)
	case product.CatalogUID == "":
		return fmt.Errorf("%w: missing category", platform.ErrValidation)
	}

	categoryID, found, err := s.store.GetLocalID(ctx, models.EntityCategory, product.CatalogUID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("category %s: %w", product.CatalogUID, platform.ErrDependencyNotReady)
	}

	localID, found, err := s.store.GetLocalID(ctx, models.EntityProduct, product.SyncUID)
	if err != nil {
		return err
	}

	local := toLocalProduct(product, localID, categoryID)
	id, err := s.store.UpsertProduct(ctx, &local)
	if err != nil {
		return fmt.Errorf("can't upsert product: %w", err)
	}

	report.ImagesAttached += s.syncImages(ctx, id, product)

	stats, err := features.SyncProductFeatures(ctx, id, slices.Concat(product.Params, manufacturerParams(product.Manufacturer)))
	if err != nil {
		s.logger.Error().Err(err).
			Str("syncUid", product.SyncUID).
			Int64("productId", id).
			Msg("can't synchronize product features")
	}
	report.Features.Add(stats)

	err = s.store.SaveMapping(ctx, models.Mapping{
		EntityType:  models.EntityProduct,
		ExternalUID: product.SyncUID,
		LocalID:     id,
		Status:      models.StatusSynced,
	})
	if err != nil {
		return err
	}

	if found && id == localID {
		report.Updated++
	} else {
		report.Created++
	}

	s.logger.Debug().
		Str("syncUid", product.SyncUID).
		Int64("productId", id).
		Msg("product synchronized")

	return nil
}

// fail reports product failure and records it in entity mapping.
func (s *Synchronizer) fail(ctx context.Context, product *models.Product, err error, report *Report) {
	report.Rejected++
	report.Errors = append(report.Errors, models.EntityError{
		Type: models.EntityProduct,
		UID:  product.SyncUID,
		Err:  err,
	})

	s.logger.Warn().
		Err(err).
		Str("syncUid", product.SyncUID).
		Str("catalogUid", product.CatalogUID).
		Msg("can't synchronize product")

	if product.SyncUID == "" {
		return
	}

	localID, _, lookupErr := s.store.GetLocalID(ctx, models.EntityProduct, product.SyncUID)
	if lookupErr != nil {
		return
	}

	if err := s.store.SaveMapping(ctx, models.Mapping{
		EntityType:  models.EntityProduct,
		ExternalUID: product.SyncUID,
		LocalID:     localID,
		Status:      models.StatusError,
	}); err != nil {
		s.logger.Error().
			Err(err).
			Str("syncUid", product.SyncUID).
			Msg("can't save failed product mapping")
	}
}

// syncImages replaces images of the product and returns number of attached ones.
// Failure of single image is logged and doesn't stop the rest.
func (s *Synchronizer) syncImages(ctx context.Context, productID int64, product *models.Product) int {
	logger := s.logger.With().
		Str("syncUid", product.SyncUID).
		Int64("productId", productID).
		Logger()

	if err := s.media.DeleteProductImages(ctx, productID); err != nil {
		logger.Error().Err(err).Msg("can't delete product images")
		return 0
	}

	attached := 0
	for position, image := range productImages(product) {
		image.Position = position

		n, err := s.syncImage(ctx, productID, image)
		attached += n
		if err != nil {
			logger.Warn().Err(err).
				Str("image", image.Name).
				Msg("can't synchronize image")
		}
	}

	return attached
}

// syncImage downloads image to temporary directory, copies it to staging directory
// and attaches it. Both temporary files are removed afterwards.
func (s *Synchronizer) syncImage(ctx context.Context, productID int64, image models.StagedImage) (int, error) {
	fileName := uuid.NewString() + ".jpg"
	tmpPath := filepath.Join(s.tmpDir, fileName)
	stagingPath := filepath.Join(s.stagingDir, fileName)

	defer func() {
		for _, path := range []string{tmpPath, stagingPath} {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				s.logger.Warn().Err(err).Str("path", path).Msg("can't remove temporary image")
			}
		}
	}()

	if err := s.client.DownloadImage(ctx, image.Name, tmpPath); err != nil {
		return 0, fmt.Errorf("can't download image: %w", err)
	}

	if err := os.MkdirAll(s.stagingDir, 0o755); err != nil {
		return 0, fmt.Errorf("can't create staging directory: %w", err)
	}
	if err := media.CopyFile(tmpPath, stagingPath); err != nil {
		return 0, fmt.Errorf("can't stage image: %w", err)
	}

	image.Path = stagingPath
	return s.media.AttachImages(ctx, productID, []models.StagedImage{image})
}

// productImages returns main image followed by additional ones without duplicates.
func productImages(product *models.Product) []models.StagedImage {
	var images []models.StagedImage
	if product.Picture != "" {
		images = append(images, models.StagedImage{Name: product.Picture, Role: models.ImageMain})
	}

	additional := lo.Uniq(lo.Reject(product.Pictures, func(name string, _ int) bool {
		return name == "" || name == product.Picture
	}))
	for _, name := range additional {
		images = append(images, models.StagedImage{Name: name, Role: models.ImageAdditional})
	}

	return images
}

var (
	brandFeature = models.FeatureDefinition{
		SyncUID:    "manufacturer-brand",
		Header:     "Brand",
		Filterable: true,
		LocalType:  models.LocalExtendedSelect,
	}
	seriesFeature = models.FeatureDefinition{
		SyncUID:    "manufacturer-series",
		Header:     "Series",
		Filterable: true,
		LocalType:  models.LocalSelect,
	}
	siteFeature = models.FeatureDefinition{
		SyncUID:   "manufacturer-site",
		Header:    "Website",
		LocalType: models.LocalText,
	}
)

// manufacturerParams returns manufacturer fields as characteristic assignments.
func manufacturerParams(manufacturer models.Manufacturer) []models.Param {
	fields := []struct {
		value      string
		definition *models.FeatureDefinition
	}{
		{manufacturer.Brand, &brandFeature},
		{manufacturer.Series, &seriesFeature},
		{manufacturer.Site, &siteFeature},
	}

	var params []models.Param
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			continue
		}
		definition := *field.definition
		params = append(params, models.Param{
			ParamUID:   definition.SyncUID,
			Values:     []string{field.value},
			Definition: &definition,
		})
	}

	return params
}

func toLocalProduct(product *models.Product, localID, categoryID int64) models.LocalProduct {
	return models.LocalProduct{
		ID:              localID,
		CategoryID:      categoryID,
		Name:            product.Header,
		Code:            productCode(product),
		Barcode:         product.Barcode,
		Price:           product.Price,
		Weight:          product.Weight * 1000,
		Width:           product.Width / 10,
		Height:          product.Height / 10,
		Length:          product.Length / 10,
		Status:          productStatus(product),
		FullDescription: strings.Join(lo.Compact([]string{product.FullHeader, product.Content}), "\n\n"),
		ShippingParams: models.ShippingParams{
			BoxWidth:   product.Box.Width / 10,
			BoxHeight:  product.Box.Height / 10,
			BoxLength:  product.Box.Length / 10,
			BoxWeight:  product.Box.Weight * 1000,
			ItemsInBox: product.Box.Quantity,
		},
	}
}

func productCode(product *models.Product) string {
	code, _ := lo.Coalesce(append([]string{product.Code}, product.Codes...)...)
	return code
}

func productStatus(product *models.Product) models.ItemStatus {
	switch product.Status {
	case models.ProductStatusActive:
		return models.ItemActive
	case models.ProductStatusDisabled:
		return models.ItemDisabled
	case models.ProductStatusHidden:
		return models.ItemHidden
	case "":
		if product.Enabled != nil && !*product.Enabled {
			return models.ItemDisabled
		}
		return models.ItemActive
	default:
		return models.ItemDisabled
	}
}

// WithTempDir sets directory for downloaded images.
func WithTempDir(dir string) Option {
	return func(s *Synchronizer) {
		s.tmpDir = dir
	}
}

// WithStagingDir sets directory images are staged in before attaching.
func WithStagingDir(dir string) Option {
	return func(s *Synchronizer) {
		s.stagingDir = dir
	}
}

// WithManufacturerUID limits scans to products of single manufacturer.
func WithManufacturerUID(uid string) Option {
	return func(s *Synchronizer) {
		s.manufacturerUID = uid
	}
}

// WithFeatureSyncer sets factory of FeatureSyncer used by each scan.
func WithFeatureSyncer(newFeatureSyncer func() FeatureSyncer) Option {
	return func(s *Synchronizer) {
		s.newFeatureSyncer = newFeatureSyncer
	}
}
