package modelstesting

import (
	"math/rand"

	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
)

// FakeCategory returns enabled root models.Category belonging to catalogUID.
func FakeCategory(catalogUID string, ops ...func(c *models.Category)) models.Category {
	category := models.Category{
		SyncUID:  faker.UUIDHyphenated(),
		Header:   faker.Word(),
		Position: rand.Intn(100),
		Enabled:  true,
		Catalogs: []string{catalogUID},
	}

	for _, op := range ops {
		op(&category)
	}

	return category
}

// FakeProduct returns active models.Product with fake data and without images, params and manufacturer.
func FakeProduct(catalogUID string, ops ...func(p *models.Product)) models.Product {
	product := models.Product{
		SyncUID:    faker.UUIDHyphenated(),
		Header:     faker.Word(),
		CatalogUID: catalogUID,
		Status:     models.ProductStatusActive,
		Price:      float64(rand.Intn(100000)) / 100,
		Weight:     float64(rand.Intn(10000)) / 1000,
		Width:      float64(rand.Intn(1000)),
		Height:     float64(rand.Intn(1000)),
		Length:     float64(rand.Intn(1000)),
		Code:       faker.Word(),
		Barcode:    faker.Word(),
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeParam returns models.Param with random number of fake values.
func FakeParam(ops ...func(p *models.Param)) models.Param {
	param := models.Param{
		ParamUID: faker.UUIDHyphenated(),
		Values:   fakeWords(1 + rand.Intn(3)),
	}

	for _, op := range ops {
		op(&param)
	}

	return param
}

// FakeLocalProduct returns models.LocalProduct with fake data.
func FakeLocalProduct(ops ...func(p *models.LocalProduct)) models.LocalProduct {
	product := models.LocalProduct{
		ID:              rand.Int63n(1000) + 1,
		CategoryID:      rand.Int63n(1000) + 1,
		Name:            faker.Word(),
		Code:            faker.Word(),
		Barcode:         faker.Word(),
		Price:           float64(rand.Intn(100000)) / 100,
		Weight:          float64(rand.Intn(10000)),
		Width:           float64(rand.Intn(100)),
		Height:          float64(rand.Intn(100)),
		Length:          float64(rand.Intn(100)),
		Status:          lo.Sample([]models.ItemStatus{models.ItemActive, models.ItemDisabled}),
		FullDescription: faker.Sentence(),
		ShippingParams: models.ShippingParams{
			BoxWidth:   float64(rand.Intn(100)),
			BoxHeight:  float64(rand.Intn(100)),
			BoxLength:  float64(rand.Intn(100)),
			ItemsInBox: rand.Intn(10),
		},
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

func fakeWords(n int) []string {
	words := make([]string, 0, n)
	for range n {
		words = append(words, faker.Word())
	}

	return words
}
