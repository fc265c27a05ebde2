package models

// ItemStatus is local category or product status.
type ItemStatus string

const (
	ItemActive   ItemStatus = "active"
	ItemDisabled ItemStatus = "disabled"
	ItemHidden   ItemStatus = "hidden"
)

// LocalCategory is store category.
type LocalCategory struct {
	ID        int64
	ParentID  int64
	Name      string
	Position  int
	Status    ItemStatus
	PageTitle string
}

// LocalProduct is store product.
type LocalProduct struct {
	ID              int64
	CategoryID      int64
	Name            string
	Code            string
	Barcode         string
	Price           float64
	Weight          float64 // g
	Width           float64 // cm
	Height          float64 // cm
	Length          float64 // cm
	Status          ItemStatus
	FullDescription string
	ShippingParams  ShippingParams
}

// ShippingParams holds product shipping box metadata.
type ShippingParams struct {
	BoxWidth   float64 `json:"box_width"`
	BoxHeight  float64 `json:"box_height"`
	BoxLength  float64 `json:"box_length"`
	BoxWeight  float64 `json:"box_weight,omitempty"`
	ItemsInBox int     `json:"items_in_box,omitempty"`
}

// LocalFeatureType is store characteristic type.
type LocalFeatureType string

const (
	LocalText           LocalFeatureType = "text"
	LocalNumber         LocalFeatureType = "number"
	LocalCheckbox       LocalFeatureType = "checkbox"
	LocalSelect         LocalFeatureType = "select"
	LocalMultiSelect    LocalFeatureType = "multi-select"
	LocalExtendedSelect LocalFeatureType = "extended-select"
	LocalNumberWithUnit LocalFeatureType = "number-with-unit"
)

// IsNumeric reports whether values of type are stored as numbers.
func (t LocalFeatureType) IsNumeric() bool {
	return t == LocalNumber || t == LocalNumberWithUnit
}

// HasVariants reports whether values of type are stored as variants.
func (t LocalFeatureType) HasVariants() bool {
	return t == LocalSelect || t == LocalMultiSelect || t == LocalExtendedSelect
}

// LocalFeature is store characteristic.
type LocalFeature struct {
	ID               int64
	ParentID         int64
	Name             string
	Type             LocalFeatureType
	Position         int
	Suffix           string
	DisplayOnProduct bool
	Comparison       bool
	Filterable       bool
}

// FeatureValue is product characteristic value row.
type FeatureValue struct {
	ProductID int64
	FeatureID int64
	VariantID int64
	Value     string
	ValueNum  *float64
}

// ImageRole is role of product image.
type ImageRole string

const (
	ImageMain       ImageRole = "main"
	ImageAdditional ImageRole = "additional"
)

// StagedImage is downloaded image file waiting to be attached to product.
type StagedImage struct {
	Path     string
	Name     string
	Role     ImageRole
	Position int
}

// ProductImage is product image association.
type ProductImage struct {
	ID        int64
	ProductID int64
	Role      ImageRole
	Position  int
	Path      string
	Width     int
	Height    int
}
