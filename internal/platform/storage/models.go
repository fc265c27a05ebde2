package storage

import (
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/model"
)

//go:generate jet -dsn=${DATABASE_URL} -schema=public -path=./gen -ignore-tables=schema_migrations

// Store keeps statuses and feature types as single letter codes.
var (
	statusCodes = map[models.ItemStatus]string{
		models.ItemActive:   "A",
		models.ItemDisabled: "D",
		models.ItemHidden:   "H",
	}
	featureTypeCodes = map[models.LocalFeatureType]string{
		models.LocalText:           "T",
		models.LocalNumber:         "O",
		models.LocalCheckbox:       "C",
		models.LocalSelect:         "S",
		models.LocalMultiSelect:    "M",
		models.LocalExtendedSelect: "E",
		models.LocalNumberWithUnit: "N",
	}
)

func toDBStatus(status models.ItemStatus) (string, error) {
	code, ok := statusCodes[status]
	if !ok {
		return "", fmt.Errorf("unknown status %q", status)
	}
	return code, nil
}

func fromDBStatus(code string) models.ItemStatus {
	status, ok := lo.Invert(statusCodes)[code]
	if !ok {
		return models.ItemDisabled
	}
	return status
}

func toDBFeatureType(featureType models.LocalFeatureType) (string, error) {
	code, ok := featureTypeCodes[featureType]
	if !ok {
		return "", fmt.Errorf("unknown feature type %q", featureType)
	}
	return code, nil
}

func fromDBFeatureType(code string) models.LocalFeatureType {
	featureType, ok := lo.Invert(featureTypeCodes)[code]
	if !ok {
		return models.LocalText
	}
	return featureType
}

func toDBMapping(mapping *models.Mapping) *pgmodels.EntityMapping {
	return &pgmodels.EntityMapping{
		EntityType:  string(mapping.EntityType),
		ExternalUID: mapping.ExternalUID,
		LocalID:     mapping.LocalID,
		SyncStatus:  string(mapping.Status),
		LastSync:    mapping.LastSync,
	}
}

func toAppMapping(mapping *pgmodels.EntityMapping) models.Mapping {
	return models.Mapping{
		EntityType:  models.EntityType(mapping.EntityType),
		ExternalUID: mapping.ExternalUID,
		LocalID:     mapping.LocalID,
		Status:      models.SyncStatus(mapping.SyncStatus),
		LastSync:    mapping.LastSync,
	}
}

func toDBRun(run *models.Run) *pgmodels.SyncRun {
	return &pgmodels.SyncRun{
		ID:                 int32(run.ID),
		SyncType:           string(run.Type),
		Status:             string(run.Status),
		StartedAt:          run.StartedAt,
		CompletedAt:        run.CompletedAt,
		AffectedCategories: run.AffectedCategories,
		AffectedProducts:   run.AffectedProducts,
		FailedEntities:     run.FailedEntities,
		ErrorDetails:       run.ErrorDetails,
	}
}

// ToAppRun converts postgres run model into models.Run.
func ToAppRun(run *pgmodels.SyncRun) models.Run {
	return models.Run{
		ID:                 int(run.ID),
		Type:               models.RunType(run.SyncType),
		Status:             models.RunStatus(run.Status),
		StartedAt:          run.StartedAt,
		CompletedAt:        run.CompletedAt,
		AffectedCategories: run.AffectedCategories,
		AffectedProducts:   run.AffectedProducts,
		FailedEntities:     run.FailedEntities,
		ErrorDetails:       run.ErrorDetails,
	}
}

func toDBCategory(category *models.LocalCategory) (*pgmodels.Category, error) {
	status, err := toDBStatus(category.Status)
	if err != nil {
		return nil, err
	}

	return &pgmodels.Category{
		ID:        category.ID,
		ParentID:  category.ParentID,
		Name:      category.Name,
		Position:  int32(category.Position),
		Status:    status,
		PageTitle: category.PageTitle,
	}, nil
}

// ToAppCategory converts postgres category model into models.LocalCategory.
func ToAppCategory(category *pgmodels.Category) models.LocalCategory {
	return models.LocalCategory{
		ID:        category.ID,
		ParentID:  category.ParentID,
		Name:      category.Name,
		Position:  int(category.Position),
		Status:    fromDBStatus(category.Status),
		PageTitle: category.PageTitle,
	}
}

func toDBProduct(product *models.LocalProduct) (*pgmodels.Product, error) {
	status, err := toDBStatus(product.Status)
	if err != nil {
		return nil, err
	}

	shipping, err := json.Marshal(product.ShippingParams)
	if err != nil {
		return nil, fmt.Errorf("can't encode shipping params: %w", err)
	}

	return &pgmodels.Product{
		ID:              product.ID,
		CategoryID:      product.CategoryID,
		Name:            product.Name,
		Code:            product.Code,
		Barcode:         product.Barcode,
		Price:           product.Price,
		Weight:          product.Weight,
		Width:           product.Width,
		Height:          product.Height,
		Length:          product.Length,
		Status:          status,
		FullDescription: product.FullDescription,
		ShippingParams:  string(shipping),
	}, nil
}

// ToAppProduct converts postgres product model into models.LocalProduct.
func ToAppProduct(product *pgmodels.Product) (models.LocalProduct, error) {
	var shipping models.ShippingParams
	if product.ShippingParams != "" {
		if err := json.Unmarshal([]byte(product.ShippingParams), &shipping); err != nil {
			return models.LocalProduct{}, fmt.Errorf("can't decode shipping params: %w", err)
		}
	}

	return models.LocalProduct{
		ID:              product.ID,
		CategoryID:      product.CategoryID,
		Name:            product.Name,
		Code:            product.Code,
		Barcode:         product.Barcode,
		Price:           product.Price,
		Weight:          product.Weight,
		Width:           product.Width,
		Height:          product.Height,
		Length:          product.Length,
		Status:          fromDBStatus(product.Status),
		FullDescription: product.FullDescription,
		ShippingParams:  shipping,
	}, nil
}

func toDBFeature(feature *models.LocalFeature) (*pgmodels.Feature, error) {
	featureType, err := toDBFeatureType(feature.Type)
	if err != nil {
		return nil, err
	}

	return &pgmodels.Feature{
		ID:               feature.ID,
		ParentID:         feature.ParentID,
		Name:             feature.Name,
		Type:             featureType,
		Position:         int32(feature.Position),
		Suffix:           feature.Suffix,
		DisplayOnProduct: feature.DisplayOnProduct,
		Comparison:       feature.Comparison,
		Filterable:       feature.Filterable,
	}, nil
}

func toAppFeature(feature *pgmodels.Feature) *models.LocalFeature {
	return &models.LocalFeature{
		ID:               feature.ID,
		ParentID:         feature.ParentID,
		Name:             feature.Name,
		Type:             fromDBFeatureType(feature.Type),
		Position:         int(feature.Position),
		Suffix:           feature.Suffix,
		DisplayOnProduct: feature.DisplayOnProduct,
		Comparison:       feature.Comparison,
		Filterable:       feature.Filterable,
	}
}

func toDBFeatureValue(value *models.FeatureValue) *pgmodels.FeatureValue {
	dbValue := pgmodels.FeatureValue{
		ProductID: value.ProductID,
		FeatureID: value.FeatureID,
		Value:     value.Value,
		ValueNum:  value.ValueNum,
	}

	if value.VariantID > 0 {
		dbValue.VariantID = lo.ToPtr(value.VariantID)
	}

	return &dbValue
}

// ToDBProductImages converts product images into postgres product image models.
func ToDBProductImages(images []models.ProductImage) []pgmodels.ProductImage {
	return lo.Map(images, func(image models.ProductImage, _ int) pgmodels.ProductImage {
		return pgmodels.ProductImage{
			ID:        image.ID,
			ProductID: image.ProductID,
			Role:      string(image.Role),
			Position:  int32(image.Position),
			Path:      image.Path,
			Width:     int32(image.Width),
			Height:    int32(image.Height),
		}
	})
}
