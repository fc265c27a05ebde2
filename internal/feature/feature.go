package feature

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

//go:generate mockery --name Client --filename client.go

// Client provides PIM characteristic definitions.
type Client interface {
	GetFeatureByUID(ctx context.Context, uid string) (*models.FeatureDefinition, error)
}

// Store is entity mapping and local characteristics storage.
type Store interface {
	GetLocalID(ctx context.Context, entityType models.EntityType, uid string) (id int64, found bool, err error)
	SaveMapping(ctx context.Context, mapping models.Mapping) error
	GetFeature(ctx context.Context, id int64) (*models.LocalFeature, error)
	CreateFeature(ctx context.Context, feature *models.LocalFeature) (int64, error)
	FindVariant(ctx context.Context, featureID int64, value string) (id int64, found bool, err error)
	CreateVariant(ctx context.Context, featureID int64, value string) (int64, error)
	DeleteFeatureValues(ctx context.Context, productID int64) error
	InsertFeatureValue(ctx context.Context, value models.FeatureValue) error
}

var typeTable = map[models.FeatureType]models.LocalFeatureType{
	models.FeatureString:    models.LocalText,
	models.FeatureNumber:    models.LocalNumber,
	models.FeatureBoolean:   models.LocalCheckbox,
	models.FeatureEnum:      models.LocalSelect,
	models.FeatureMultiEnum: models.LocalMultiSelect,
	models.FeatureDate:      models.LocalText,
	models.FeatureDecimal:   models.LocalNumberWithUnit,
}

// trueTokens are case folded checkbox values meaning true.
var trueTokens = []string{"true", "1", "да"}

const (
	checked   = "Y"
	unchecked = "N"
)

// Stats holds feature synchronization counters.
type Stats struct {
	FeaturesCreated int
	FeaturesUpdated int
	VariantsCreated int
	ParamsProcessed int
}

// Add adds other counters to s.
func (s *Stats) Add(other Stats) {
	s.FeaturesCreated += other.FeaturesCreated
	s.FeaturesUpdated += other.FeaturesUpdated
	s.VariantsCreated += other.VariantsCreated
	s.ParamsProcessed += other.ParamsProcessed
}

type variantKey struct {
	featureID int64
	hash      uint64
}

type cachedVariant struct {
	value string
	id    int64
}

// Synchronizer assigns PIM characteristics to local products.
// It caches resolved characteristics and variants, so single instance
// should serve only one synchronization run. It is not safe for concurrent use.
type Synchronizer struct {
	client Client
	store  Store
	logger *zerolog.Logger
	fold   cases.Caser

	features map[string]models.LocalFeature
	variants map[variantKey]cachedVariant
}

// NewSynchronizer returns new Synchronizer with empty caches.
func NewSynchronizer(client Client, store Store, logger *zerolog.Logger) *Synchronizer {
	return &Synchronizer{
		client:   client,
		store:    store,
		logger:   logger,
		fold:     cases.Fold(),
		features: map[string]models.LocalFeature{},
		variants: map[variantKey]cachedVariant{},
	}
}

// SyncProductFeatures replaces all characteristic values of the product with params.
// Invalid params and values which can't be stored are logged and skipped.
// Error is returned only when existing values can't be deleted.
func (s *Synchronizer) SyncProductFeatures(ctx context.Context, productID int64, params []models.Param) (Stats, error) {
	stats := Stats{}
	if len(params) == 0 {
		return stats, nil
	}

	if err := s.store.DeleteFeatureValues(ctx, productID); err != nil {
		return stats, fmt.Errorf("can't delete values of product %d: %w", productID, err)
	}

	for _, param := range params {
		logger := s.logger.With().
			Int64("productId", productID).
			Str("paramUid", param.ParamUID).
			Logger()

		if param.ParamUID == "" || len(param.Values) == 0 {
			logger.Warn().Msg("invalid param skipped")
			continue
		}
		stats.ParamsProcessed++

		feature, err := s.syncFeature(ctx, &param, &stats)
		if err != nil {
			logger.Error().Err(err).Msg("can't synchronize feature")
			continue
		}

		for _, value := range param.Values {
			if err := s.addValue(ctx, productID, feature, value, &stats); err != nil {
				logger.Error().Err(err).
					Int64("featureId", feature.ID).
					Str("value", value).
					Msg("can't add feature value")
			}
		}
	}

	return stats, nil
}

// syncFeature resolves local characteristic of param, creating it when it doesn't exist.
func (s *Synchronizer) syncFeature(ctx context.Context, param *models.Param, stats *Stats) (models.LocalFeature, error) {
	if feature, ok := s.features[param.ParamUID]; ok {
		return feature, nil
	}

	localID, found, err := s.store.GetLocalID(ctx, models.EntityFeature, param.ParamUID)
	if err != nil {
		return models.LocalFeature{}, err
	}

	if found {
		feature, err := s.store.GetFeature(ctx, localID)
		switch {
		case err == nil:
			stats.FeaturesUpdated++
			s.features[param.ParamUID] = *feature
			return *feature, nil
		case !errors.Is(err, platform.ErrNotFound):
			return models.LocalFeature{}, fmt.Errorf("can't get feature %d: %w", localID, err)
		}
		s.logger.Warn().
			Str("paramUid", param.ParamUID).
			Int64("featureId", localID).
			Msg("mapped feature doesn't exist, creating new one")
	}

	definition := param.Definition
	if definition == nil {
		definition, err = s.client.GetFeatureByUID(ctx, param.ParamUID)
		if err != nil {
			return models.LocalFeature{}, fmt.Errorf("can't get feature definition: %w", err)
		}
	}

	feature := toLocalFeature(definition)
	feature.ID, err = s.store.CreateFeature(ctx, &feature)
	if err != nil {
		return models.LocalFeature{}, fmt.Errorf("can't create feature: %w", err)
	}
	stats.FeaturesCreated++

	err = s.store.SaveMapping(ctx, models.Mapping{
		EntityType:  models.EntityFeature,
		ExternalUID: param.ParamUID,
		LocalID:     feature.ID,
		Status:      models.StatusSynced,
	})
	if err != nil {
		return models.LocalFeature{}, fmt.Errorf("can't save feature mapping: %w", err)
	}

	s.logger.Debug().
		Str("paramUid", param.ParamUID).
		Int64("featureId", feature.ID).
		Str("type", string(feature.Type)).
		Msg("feature created")

	s.features[param.ParamUID] = feature
	return feature, nil
}

// addValue stores single value of the characteristic in representation of its type.
func (s *Synchronizer) addValue(
	ctx context.Context,
	productID int64,
	feature models.LocalFeature,
	value string,
	stats *Stats,
) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	row := models.FeatureValue{
		ProductID: productID,
		FeatureID: feature.ID,
		Value:     value,
	}

	switch {
	case feature.Type.IsNumeric():
		number, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", platform.ErrValidation, value)
		}
		if feature.Type == models.LocalNumber {
			number = math.Trunc(number)
		}
		row.ValueNum = &number
	case feature.Type.HasVariants():
		variantID, err := s.variantID(ctx, feature.ID, value, stats)
		if err != nil {
			return err
		}
		row.VariantID = variantID
	case feature.Type == models.LocalCheckbox:
		row.Value = lo.Ternary(lo.Contains(trueTokens, s.fold.String(value)), checked, unchecked)
	}

	if err := s.store.InsertFeatureValue(ctx, row); err != nil {
		return fmt.Errorf("can't insert feature value: %w", err)
	}

	return nil
}

// variantID returns id of the variant with value, creating it when it doesn't exist.
func (s *Synchronizer) variantID(ctx context.Context, featureID int64, value string, stats *Stats) (int64, error) {
	key := variantKey{featureID: featureID, hash: xxhash.Sum64String(value)}
	if cached, ok := s.variants[key]; ok && cached.value == value {
		return cached.id, nil
	}

	id, found, err := s.store.FindVariant(ctx, featureID, value)
	if err != nil {
		return 0, fmt.Errorf("can't find variant: %w", err)
	}

	if !found {
		if id, err = s.store.CreateVariant(ctx, featureID, value); err != nil {
			return 0, fmt.Errorf("can't create variant: %w", err)
		}
		stats.VariantsCreated++
	}

	s.variants[key] = cachedVariant{value: value, id: id}
	return id, nil
}

func toLocalFeature(definition *models.FeatureDefinition) models.LocalFeature {
	featureType := definition.LocalType
	if featureType == "" {
		featureType = lo.ValueOr(typeTable, definition.Type, models.LocalText)
	}

	return models.LocalFeature{
		Name:             definition.Header,
		Type:             featureType,
		Position:         definition.Position,
		Suffix:           definition.Unit,
		DisplayOnProduct: true,
		Comparison:       definition.Filterable,
		Filterable:       definition.Filterable,
	}
}
