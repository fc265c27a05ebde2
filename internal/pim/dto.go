package pim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/samber/lo"
)

// envelope is common PIM response wrapper.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Category is PIM catalog tree node.
type Category struct {
	SyncUID   string   `json:"syncUid"`
	ParentUID string   `json:"parentUid"`
	Header    string   `json:"header"`
	Position  int      `json:"pos"`
	Enabled   bool     `json:"enabled"`
	Catalogs  []string `json:"catalogs"`
}

// Product is PIM product.
type Product struct {
	SyncUID      string        `json:"syncUid"`
	Header       string        `json:"header"`
	FullHeader   string        `json:"fullHeader"`
	Content      string        `json:"content"`
	CatalogUID   string        `json:"catalogUid"`
	Status       string        `json:"status"`
	Enabled      *bool         `json:"enabled"`
	Price        flexFloat     `json:"price"`
	Weight       flexFloat     `json:"weight"`
	Width        flexFloat     `json:"width"`
	Height       flexFloat     `json:"height"`
	Length       flexFloat     `json:"length"`
	BoxWidth     flexFloat     `json:"boxWidth"`
	BoxHeight    flexFloat     `json:"boxHeight"`
	BoxLength    flexFloat     `json:"boxLength"`
	BoxWeight    flexFloat     `json:"boxWeight"`
	BoxQuantity  int           `json:"boxQuantity"`
	Code         string        `json:"code"`
	Codes        []string      `json:"codes"`
	Barcode      string        `json:"barCode"`
	Manufacturer *Manufacturer `json:"manufacturer"`
	Series       *Series       `json:"series"`
	Params       []Param       `json:"params"`
	Picture      string        `json:"picture"`
	Pictures     []string      `json:"pictures"`
}

// Manufacturer is PIM product manufacturer.
type Manufacturer struct {
	SyncUID string `json:"syncUid"`
	Header  string `json:"header"`
	Site    string `json:"site"`
}

// Series is PIM manufacturer series.
type Series struct {
	Header string `json:"header"`
}

// Param is PIM product characteristic assignment.
type Param struct {
	ParamUID string       `json:"paramUid"`
	Values   []flexString `json:"values"`
}

// Feature is PIM characteristic definition.
type Feature struct {
	SyncUID  string `json:"syncUid"`
	Header   string `json:"header"`
	Type     string `json:"type"`
	Filter   bool   `json:"filter"`
	Position int    `json:"pos"`
	Unit     string `json:"unit"`
}

type scrollData struct {
	ScrollID string            `json:"scrollId"`
	Products []json.RawMessage `json:"products"`
}

// decodeProducts decodes every product of the page separately,
// so a malformed one doesn't fail the whole page.
func decodeProducts(raw []json.RawMessage) ([]models.Product, []models.EntityError) {
	products := make([]models.Product, 0, len(raw))
	var malformed []models.EntityError

	for _, data := range raw {
		var product Product
		if err := json.Unmarshal(data, &product); err != nil {
			var ident struct {
				SyncUID string `json:"syncUid"`
			}
			_ = json.Unmarshal(data, &ident)

			malformed = append(malformed, models.EntityError{
				Type: models.EntityProduct,
				UID:  ident.SyncUID,
				Err:  fmt.Errorf("%w: %w", ErrDecode, err),
			})
			continue
		}
		products = append(products, toAppProduct(&product))
	}

	return products, malformed
}

// flexString decodes JSON strings, numbers and booleans into string.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	*s = flexString(data)
	return nil
}

// flexFloat decodes JSON numbers and numeric strings (also with decimal comma) into float64.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.ReplaceAll(strings.TrimSpace(str), ",", ".")
		if str == "" {
			*f = 0
			return nil
		}
		value, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(value)
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*f = flexFloat(value)
	return nil
}

func toAppCategory(category *Category) models.Category {
	return models.Category{
		SyncUID:   category.SyncUID,
		ParentUID: category.ParentUID,
		Header:    category.Header,
		Position:  category.Position,
		Enabled:   category.Enabled,
		Catalogs:  category.Catalogs,
	}
}

func toAppProduct(product *Product) models.Product {
	appProduct := models.Product{
		SyncUID:    product.SyncUID,
		Header:     product.Header,
		FullHeader: product.FullHeader,
		Content:    product.Content,
		CatalogUID: product.CatalogUID,
		Status:     models.ProductStatus(strings.ToUpper(product.Status)),
		Enabled:    product.Enabled,
		Price:      float64(product.Price),
		Weight:     float64(product.Weight),
		Width:      float64(product.Width),
		Height:     float64(product.Height),
		Length:     float64(product.Length),
		Box: models.Box{
			Width:    float64(product.BoxWidth),
			Height:   float64(product.BoxHeight),
			Length:   float64(product.BoxLength),
			Weight:   float64(product.BoxWeight),
			Quantity: product.BoxQuantity,
		},
		Code:     product.Code,
		Codes:    product.Codes,
		Barcode:  product.Barcode,
		Params:   toAppParams(product.Params),
		Picture:  product.Picture,
		Pictures: product.Pictures,
	}

	if product.Manufacturer != nil {
		appProduct.Manufacturer = models.Manufacturer{
			UID:   product.Manufacturer.SyncUID,
			Brand: product.Manufacturer.Header,
			Site:  product.Manufacturer.Site,
		}
	}
	if product.Series != nil {
		appProduct.Manufacturer.Series = product.Series.Header
	}

	return appProduct
}

func toAppParams(params []Param) []models.Param {
	if len(params) == 0 {
		return nil
	}
	return lo.Map(params, func(param Param, _ int) models.Param {
		return models.Param{
			ParamUID: param.ParamUID,
			Values: lo.FilterMap(param.Values, func(value flexString, _ int) (string, bool) {
				trimmed := strings.TrimSpace(string(value))
				return trimmed, trimmed != ""
			}),
		}
	})
}

func toAppFeature(feature *Feature) models.FeatureDefinition {
	return models.FeatureDefinition{
		SyncUID:    feature.SyncUID,
		Header:     feature.Header,
		Type:       models.FeatureType(strings.ToUpper(feature.Type)),
		Filterable: feature.Filter,
		Position:   feature.Position,
		Unit:       feature.Unit,
	}
}
