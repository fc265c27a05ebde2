package pim

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/samber/lo"
)

// GetCatalogTree returns full category forest.
func (c *Client) GetCatalogTree(ctx context.Context) ([]models.Category, error) {
	var resp envelope[[]Category]
	if err := c.request(ctx, http.MethodGet, "/catalog", nil, true, &resp); err != nil {
		return nil, fmt.Errorf("can't get catalog tree: %w", err)
	}

	return lo.Map(resp.Data, func(category Category, _ int) models.Category {
		return toAppCategory(&category)
	}), nil
}

// GetCatalog returns single category by uid.
func (c *Client) GetCatalog(ctx context.Context, uid string) (*models.Category, error) {
	var resp envelope[Category]
	if err := c.request(ctx, http.MethodGet, "/catalog/"+url.PathEscape(uid), nil, true, &resp); err != nil {
		return nil, fmt.Errorf("can't get catalog %s: %w", uid, err)
	}

	category := toAppCategory(&resp.Data)
	return &category, nil
}

// ScrollProducts returns page of products and cursor of the next page.
// Empty cursor starts new scroll.
func (c *Client) ScrollProducts(ctx context.Context, cursor string, filter models.ScrollFilter) (*models.ProductPage, error) {
	query := url.Values{}
	if cursor != "" {
		query.Set("scrollId", cursor)
	}
	if filter.CatalogUID != "" {
		query.Set("catalogId", filter.CatalogUID)
	}
	if filter.Days > 0 {
		query.Set("day", strconv.FormatUint(uint64(filter.Days), 10))
	}
	if filter.ManufacturerUID != "" {
		query.Set("manufacturerId", filter.ManufacturerUID)
	}

	endpoint := "/product/scroll"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var resp envelope[scrollData]
	if err := c.request(ctx, http.MethodGet, endpoint, nil, true, &resp); err != nil {
		return nil, fmt.Errorf("can't scroll products: %w", err)
	}

	products, malformed := decodeProducts(resp.Data.Products)

	return &models.ProductPage{
		Products:  products,
		Malformed: malformed,
		Cursor:    resp.Data.ScrollID,
	}, nil
}

// GetProductByUID returns single product by uid.
func (c *Client) GetProductByUID(ctx context.Context, uid string) (*models.Product, error) {
	var resp envelope[Product]
	if err := c.request(ctx, http.MethodGet, "/product/uid/"+url.PathEscape(uid), nil, true, &resp); err != nil {
		return nil, fmt.Errorf("can't get product %s: %w", uid, err)
	}

	product := toAppProduct(&resp.Data)
	return &product, nil
}

// GetFeatureByUID returns characteristic definition by uid.
func (c *Client) GetFeatureByUID(ctx context.Context, uid string) (*models.FeatureDefinition, error) {
	var resp envelope[Feature]
	if err := c.request(ctx, http.MethodGet, "/feature/uid/"+url.PathEscape(uid), nil, true, &resp); err != nil {
		return nil, fmt.Errorf("can't get feature %s: %w", uid, err)
	}

	feature := toAppFeature(&resp.Data)
	if feature.SyncUID == "" {
		feature.SyncUID = uid
	}
	return &feature, nil
}
