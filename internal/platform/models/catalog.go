package models

// Category is PIM catalog tree node.
type Category struct {
	SyncUID   string
	ParentUID string
	Header    string
	Position  int
	Enabled   bool
	Catalogs  []string
}

// IsRoot reports whether category has no parent.
func (c Category) IsRoot() bool {
	return c.ParentUID == ""
}

// InCatalog reports whether category belongs to catalog with provided uid.
func (c Category) InCatalog(catalogUID string) bool {
	for _, uid := range c.Catalogs {
		if uid == catalogUID {
			return true
		}
	}
	return false
}

// ProductStatus is remote product status.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusDisabled ProductStatus = "DISABLED"
	ProductStatusHidden   ProductStatus = "HIDDEN"
)

// Product is PIM product.
type Product struct {
	SyncUID      string
	Header       string
	FullHeader   string
	Content      string
	CatalogUID   string
	Status       ProductStatus
	Enabled      *bool
	Price        float64
	Weight       float64 // kg
	Width        float64 // mm
	Height       float64 // mm
	Length       float64 // mm
	Box          Box
	Code         string
	Codes        []string
	Barcode      string
	Manufacturer Manufacturer
	Params       []Param
	Picture      string
	Pictures     []string
}

// Box is product shipping box.
type Box struct {
	Width    float64 // mm
	Height   float64 // mm
	Length   float64 // mm
	Weight   float64 // kg
	Quantity int
}

// Manufacturer holds product manufacturer fields.
type Manufacturer struct {
	UID    string
	Brand  string
	Series string
	Site   string
}

// Param is product characteristic assignment.
type Param struct {
	ParamUID string
	Values   []string
	// Definition is set for characteristics which don't exist in PIM.
	Definition *FeatureDefinition
}

// FeatureType is PIM characteristic type.
type FeatureType string

const (
	FeatureString    FeatureType = "STRING"
	FeatureNumber    FeatureType = "NUMBER"
	FeatureBoolean   FeatureType = "BOOLEAN"
	FeatureEnum      FeatureType = "ENUM"
	FeatureMultiEnum FeatureType = "MULTI_ENUM"
	FeatureDate      FeatureType = "DATE"
	FeatureDecimal   FeatureType = "DECIMAL"
)

// FeatureDefinition is PIM characteristic definition.
type FeatureDefinition struct {
	SyncUID    string
	Header     string
	Type       FeatureType
	Filterable bool
	Position   int
	Unit       string
	// LocalType overrides type mapping for synthetic characteristics.
	LocalType LocalFeatureType
}

// ScrollFilter holds product scroll filters.
type ScrollFilter struct {
	CatalogUID      string
	Days            uint
	ManufacturerUID string
}

// ProductPage is single page of product scroll.
type ProductPage struct {
	Products []Product
	// Malformed holds products of the page which couldn't be decoded.
	Malformed []EntityError
	// Cursor is empty when scroll is exhausted.
	Cursor string
}
