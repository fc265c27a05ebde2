package feature_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/pim-sync/internal/feature"
	"github.com/MichalMitros/pim-sync/internal/feature/mocks"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/models/modelstesting"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/storagetesting"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = zerolog.Nop()

type value struct {
	Value    string
	ValueNum *float64
	Variant  string
}

func TestUnitSyncProductFeaturesByType(t *testing.T) {
	tests := map[string]struct {
		featureType models.FeatureType
		values      []string
		wantType    models.LocalFeatureType
		wantValues  []value
	}{
		"string as text": {
			featureType: models.FeatureString,
			values:      []string{"red", " blue "},
			wantType:    models.LocalText,
			wantValues:  []value{{Value: "red"}, {Value: "blue"}},
		},
		"date as text": {
			featureType: models.FeatureDate,
			values:      []string{"2025-06-30"},
			wantType:    models.LocalText,
			wantValues:  []value{{Value: "2025-06-30"}},
		},
		"unknown type as text": {
			featureType: models.FeatureType("COLOR"),
			values:      []string{"#fff"},
			wantType:    models.LocalText,
			wantValues:  []value{{Value: "#fff"}},
		},
		"number truncated to integer": {
			featureType: models.FeatureNumber,
			values:      []string{"12,7", "abc", "3"},
			wantType:    models.LocalNumber,
			wantValues: []value{
				{Value: "12,7", ValueNum: lo.ToPtr(12.0)},
				{Value: "3", ValueNum: lo.ToPtr(3.0)},
			},
		},
		"decimal keeps fraction": {
			featureType: models.FeatureDecimal,
			values:      []string{"2.5"},
			wantType:    models.LocalNumberWithUnit,
			wantValues:  []value{{Value: "2.5", ValueNum: lo.ToPtr(2.5)}},
		},
		"boolean as checkbox": {
			featureType: models.FeatureBoolean,
			values:      []string{"Да", "false", "TRUE", "1", "нет"},
			wantType:    models.LocalCheckbox,
			wantValues:  []value{{Value: "Y"}, {Value: "N"}, {Value: "Y"}, {Value: "Y"}, {Value: "N"}},
		},
		"enum as select": {
			featureType: models.FeatureEnum,
			values:      []string{"steel", "wood", "steel"},
			wantType:    models.LocalSelect,
			wantValues:  []value{{Value: "steel", Variant: "steel"}, {Value: "wood", Variant: "wood"}, {Value: "steel", Variant: "steel"}},
		},
		"multi enum as multi select": {
			featureType: models.FeatureMultiEnum,
			values:      []string{"a", "", "b"},
			wantType:    models.LocalMultiSelect,
			wantValues:  []value{{Value: "a", Variant: "a"}, {Value: "b", Variant: "b"}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			client := mocks.NewClient(t)
			client.On("GetFeatureByUID", mock.Anything, "param-1").Return(&models.FeatureDefinition{
				SyncUID:    "param-1",
				Header:     "Material",
				Type:       tt.featureType,
				Filterable: true,
				Position:   3,
				Unit:       "kg",
			}, nil).Once()

			store := storagetesting.NewMemory()
			synchronizer := feature.NewSynchronizer(client, store, &logger)

			stats, err := synchronizer.SyncProductFeatures(context.TODO(), 10, []models.Param{
				{ParamUID: "param-1", Values: tt.values},
			})

			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, 1, stats.FeaturesCreated)
			assert.Equal(t, 1, stats.ParamsProcessed)

			features := store.Features()
			require.Len(t, features, 1, "should create single feature")
			assert.Equal(t, models.LocalFeature{
				ID:               features[0].ID,
				Name:             "Material",
				Type:             tt.wantType,
				Position:         3,
				Suffix:           "kg",
				DisplayOnProduct: true,
				Comparison:       true,
				Filterable:       true,
			}, features[0])

			assert.Equal(t, tt.wantValues, storedValues(store, 10), "should store values in representation of feature type")

			mapping, ok := store.Mapping(models.EntityFeature, "param-1")
			require.True(t, ok, "should map feature")
			assert.Equal(t, features[0].ID, mapping.LocalID)
		})
	}
}

func TestUnitVariantsAreNotDuplicated(t *testing.T) {
	client := mocks.NewClient(t)
	client.On("GetFeatureByUID", mock.Anything, "color").Return(&models.FeatureDefinition{
		SyncUID: "color",
		Header:  "Color",
		Type:    models.FeatureEnum,
	}, nil).Once()

	store := storagetesting.NewMemory()
	params := []models.Param{{ParamUID: "color", Values: []string{"red", "green"}}}

	// same run, two products
	synchronizer := feature.NewSynchronizer(client, store, &logger)
	first, err := synchronizer.SyncProductFeatures(context.TODO(), 1, params)
	require.NoError(t, err, "shouldn't return any error")
	second, err := synchronizer.SyncProductFeatures(context.TODO(), 2, params)
	require.NoError(t, err, "shouldn't return any error")

	// next run
	third, err := feature.NewSynchronizer(client, store, &logger).SyncProductFeatures(context.TODO(), 3, params)
	require.NoError(t, err, "shouldn't return any error")

	assert.Equal(t, feature.Stats{FeaturesCreated: 1, VariantsCreated: 2, ParamsProcessed: 1}, first)
	assert.Equal(t, feature.Stats{ParamsProcessed: 1}, second, "should reuse cached feature and variants")
	assert.Equal(t, feature.Stats{FeaturesUpdated: 1, ParamsProcessed: 1}, third, "should reuse stored feature and variants")

	featureID := store.Features()[0].ID
	assert.Equal(t, []string{"green", "red"}, store.Variants(featureID), "should keep single variant per value")

	variantIDs := func(productID int64) []int64 {
		return lo.Map(store.FeatureValues(productID), func(v models.FeatureValue, _ int) int64 { return v.VariantID })
	}
	assert.Equal(t, variantIDs(1), variantIDs(2))
	assert.Equal(t, variantIDs(1), variantIDs(3))
}

func TestUnitSyncFeatureUsesMapping(t *testing.T) {
	store := storagetesting.NewMemory()
	featureID, err := store.CreateFeature(context.TODO(), &models.LocalFeature{Name: "Power", Type: models.LocalNumber})
	require.NoError(t, err)
	require.NoError(t, store.SaveMapping(context.TODO(), models.Mapping{
		EntityType:  models.EntityFeature,
		ExternalUID: "power",
		LocalID:     featureID,
		Status:      models.StatusSynced,
	}))

	// no remote calls expected
	client := mocks.NewClient(t)
	synchronizer := feature.NewSynchronizer(client, store, &logger)

	first, err := synchronizer.SyncProductFeatures(context.TODO(), 1, []models.Param{{ParamUID: "power", Values: []string{"750"}}})
	require.NoError(t, err, "shouldn't return any error")
	second, err := synchronizer.SyncProductFeatures(context.TODO(), 2, []models.Param{{ParamUID: "power", Values: []string{"900"}}})
	require.NoError(t, err, "shouldn't return any error")

	assert.Equal(t, 1, first.FeaturesUpdated, "should count mapped feature")
	assert.Zero(t, second.FeaturesUpdated, "should count mapped feature once per run")
	assert.Len(t, store.Features(), 1, "shouldn't create feature")
	assert.Equal(t, []value{{Value: "900", ValueNum: lo.ToPtr(900.0)}}, storedValues(store, 2))
}

func TestUnitSyncFeatureRecreatesMissingFeature(t *testing.T) {
	store := storagetesting.NewMemory()
	require.NoError(t, store.SaveMapping(context.TODO(), models.Mapping{
		EntityType:  models.EntityFeature,
		ExternalUID: "size",
		LocalID:     99,
		Status:      models.StatusSynced,
	}))

	client := mocks.NewClient(t)
	client.On("GetFeatureByUID", mock.Anything, "size").Return(&models.FeatureDefinition{
		SyncUID: "size",
		Header:  "Size",
		Type:    models.FeatureString,
	}, nil).Once()

	stats, err := feature.NewSynchronizer(client, store, &logger).
		SyncProductFeatures(context.TODO(), 1, []models.Param{{ParamUID: "size", Values: []string{"XL"}}})

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, 1, stats.FeaturesCreated, "should create feature again")

	mapping, _ := store.Mapping(models.EntityFeature, "size")
	assert.Equal(t, store.Features()[0].ID, mapping.LocalID, "should remap feature")
}

func TestUnitSyncProductFeaturesIsolatesParams(t *testing.T) {
	client := mocks.NewClient(t)
	client.On("GetFeatureByUID", mock.Anything, "broken").Return(nil, assert.AnError).Once()
	client.On("GetFeatureByUID", mock.Anything, "ok").Return(&models.FeatureDefinition{
		SyncUID: "ok",
		Header:  "Ok",
		Type:    models.FeatureString,
	}, nil).Once()

	store := storagetesting.NewMemory()
	stats, err := feature.NewSynchronizer(client, store, &logger).SyncProductFeatures(context.TODO(), 1, []models.Param{
		{ParamUID: "", Values: []string{"no uid"}},
		{ParamUID: "empty", Values: nil},
		{ParamUID: "broken", Values: []string{"x"}},
		{ParamUID: "ok", Values: []string{"fine"}},
	})

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, feature.Stats{FeaturesCreated: 1, ParamsProcessed: 2}, stats)
	assert.Equal(t, []value{{Value: "fine"}}, storedValues(store, 1), "should store values of valid params")
}

func TestUnitSyncProductFeaturesReplacesValues(t *testing.T) {
	client := mocks.NewClient(t)
	client.On("GetFeatureByUID", mock.Anything, mock.Anything).Return(func(_ context.Context, uid string) (*models.FeatureDefinition, error) {
		return &models.FeatureDefinition{SyncUID: uid, Header: uid, Type: models.FeatureString}, nil
	})

	store := storagetesting.NewMemory()
	synchronizer := feature.NewSynchronizer(client, store, &logger)

	_, err := synchronizer.SyncProductFeatures(context.TODO(), 1, []models.Param{
		modelstesting.FakeParam(func(p *models.Param) { p.Values = []string{"old"} }),
	})
	require.NoError(t, err, "shouldn't return any error")

	_, err = synchronizer.SyncProductFeatures(context.TODO(), 1, []models.Param{
		modelstesting.FakeParam(func(p *models.Param) { p.Values = []string{"new"} }),
	})
	require.NoError(t, err, "shouldn't return any error")

	assert.Equal(t, []value{{Value: "new"}}, storedValues(store, 1), "should replace previous values")

	_, err = synchronizer.SyncProductFeatures(context.TODO(), 1, nil)
	require.NoError(t, err, "shouldn't return any error")
	assert.Len(t, store.FeatureValues(1), 1, "should keep values when product has no params")
}

func TestUnitSyncProductFeaturesInlineDefinition(t *testing.T) {
	client := mocks.NewClient(t)
	store := storagetesting.NewMemory()

	stats, err := feature.NewSynchronizer(client, store, &logger).SyncProductFeatures(context.TODO(), 1, []models.Param{{
		ParamUID: "manufacturer-brand",
		Values:   []string{"Bosch"},
		Definition: &models.FeatureDefinition{
			SyncUID:   "manufacturer-brand",
			Header:    "Brand",
			LocalType: models.LocalExtendedSelect,
		},
	}})

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, feature.Stats{FeaturesCreated: 1, VariantsCreated: 1, ParamsProcessed: 1}, stats)
	require.Len(t, store.Features(), 1)
	assert.Equal(t, models.LocalExtendedSelect, store.Features()[0].Type, "should use inline type")
	assert.Equal(t, []value{{Value: "Bosch", Variant: "Bosch"}}, storedValues(store, 1))
}

type failingStore struct {
	*storagetesting.Memory
}

func (failingStore) DeleteFeatureValues(context.Context, int64) error {
	return assert.AnError
}

func TestUnitSyncProductFeaturesDeleteError(t *testing.T) {
	store := failingStore{storagetesting.NewMemory()}

	_, err := feature.NewSynchronizer(mocks.NewClient(t), store, &logger).
		SyncProductFeatures(context.TODO(), 1, []models.Param{modelstesting.FakeParam()})

	require.ErrorIs(t, err, assert.AnError, "should return delete error")
	assert.Empty(t, store.Features(), "shouldn't process params")
}

func TestUnitStatsAdd(t *testing.T) {
	stats := feature.Stats{FeaturesCreated: 1, VariantsCreated: 2}
	stats.Add(feature.Stats{FeaturesCreated: 1, FeaturesUpdated: 3, ParamsProcessed: 4})

	assert.Equal(t, feature.Stats{FeaturesCreated: 2, FeaturesUpdated: 3, VariantsCreated: 2, ParamsProcessed: 4}, stats)
}

// storedValues returns values of the product with variant ids resolved to variant values.
func storedValues(store *storagetesting.Memory, productID int64) []value {
	variants := map[int64]string{}
	for _, f := range store.Features() {
		for _, v := range store.Variants(f.ID) {
			id, _, _ := store.FindVariant(context.TODO(), f.ID, v)
			variants[id] = v
		}
	}

	return lo.Map(store.FeatureValues(productID), func(v models.FeatureValue, _ int) value {
		return value{Value: v.Value, ValueNum: v.ValueNum, Variant: variants[v.VariantID]}
	})
}
