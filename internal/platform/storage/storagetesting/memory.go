package storagetesting

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/samber/lo"
)

type mappingKey struct {
	entityType models.EntityType
	uid        string
}

type variantKey struct {
	featureID int64
	value     string
}

// Memory is in-memory storage behaving like Postgres storage.
// It is safe for concurrent use.
type Memory struct {
	// OnUpsertCategory is called before category upsert, returned error aborts the upsert.
	OnUpsertCategory func(category *models.LocalCategory) error
	// OnUpsertProduct is called before product upsert, returned error aborts the upsert.
	OnUpsertProduct func(product *models.LocalProduct) error

	mu sync.Mutex

	lastID     int64
	mappings   map[mappingKey]models.Mapping
	runs       []models.Run
	categories map[int64]models.LocalCategory
	products   map[int64]models.LocalProduct
	features   map[int64]models.LocalFeature
	variants   map[variantKey]int64
	values     []models.FeatureValue
	images     []models.ProductImage
}

// NewMemory returns new empty Memory.
func NewMemory() *Memory {
	return &Memory{
		mappings:   map[mappingKey]models.Mapping{},
		categories: map[int64]models.LocalCategory{},
		products:   map[int64]models.LocalProduct{},
		features:   map[int64]models.LocalFeature{},
		variants:   map[variantKey]int64{},
	}
}

func (m *Memory) nextID() int64 {
	m.lastID++
	return m.lastID
}

// GetLocalID returns local id mapped to remote entity.
func (m *Memory) GetLocalID(_ context.Context, entityType models.EntityType, uid string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mapping, ok := m.mappings[mappingKey{entityType, uid}]
	if !ok || mapping.LocalID == 0 {
		return 0, false, nil
	}
	return mapping.LocalID, true, nil
}

// SaveMapping inserts or overwrites mapping.
func (m *Memory) SaveMapping(_ context.Context, mapping models.Mapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mapping.LastSync.IsZero() {
		mapping.LastSync = time.Now().UTC()
	}
	m.mappings[mappingKey{mapping.EntityType, mapping.ExternalUID}] = mapping
	return nil
}

// Mapping returns stored mapping of remote entity.
func (m *Memory) Mapping(entityType models.EntityType, uid string) (models.Mapping, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mapping, ok := m.mappings[mappingKey{entityType, uid}]
	return mapping, ok
}

// Mappings returns all mappings of entity type ordered by uid.
func (m *Memory) Mappings(entityType models.EntityType) []models.Mapping {
	m.mu.Lock()
	defer m.mu.Unlock()

	mappings := lo.Filter(lo.Values(m.mappings), func(mapping models.Mapping, _ int) bool {
		return mapping.EntityType == entityType
	})
	slices.SortFunc(mappings, func(a, b models.Mapping) int {
		return cmp.Compare(a.ExternalUID, b.ExternalUID)
	})
	return mappings
}

// StartRun adds running run or returns ErrAlreadyRunning.
func (m *Memory) StartRun(_ context.Context, runType models.RunType) (*models.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lo.ContainsBy(m.runs, func(run models.Run) bool { return run.Status == models.RunRunning }) {
		return nil, fmt.Errorf("can't add run: %w", platform.ErrAlreadyRunning)
	}

	run := models.Run{
		ID:        len(m.runs) + 1,
		Type:      runType,
		Status:    models.RunRunning,
		StartedAt: time.Now().UTC(),
	}
	m.runs = append(m.runs, run)

	return &run, nil
}

// FinishRun overwrites stored run.
func (m *Memory) FinishRun(_ context.Context, run *models.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for ix := range m.runs {
		if m.runs[ix].ID == run.ID {
			m.runs[ix] = *run
			return nil
		}
	}
	return fmt.Errorf("can't update run %d: %w", run.ID, platform.ErrNotFound)
}

// LastRuns returns up to limit most recent runs.
func (m *Memory) LastRuns(_ context.Context, limit int) ([]models.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	runs := slices.Clone(m.runs)
	slices.Reverse(runs)
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// CleanupRuns deletes finished runs started before provided time.
func (m *Memory) CleanupRuns(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := lo.Filter(m.runs, func(run models.Run, _ int) bool {
		return run.Status == models.RunRunning || !run.StartedAt.Before(before)
	})
	deleted := int64(len(m.runs) - len(kept))
	m.runs = kept

	return deleted, nil
}

// FailStaleRuns marks runs still running since before provided time as failed.
func (m *Memory) FailStaleRuns(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var failed int64
	for ix := range m.runs {
		run := &m.runs[ix]
		if run.Status != models.RunRunning || !run.StartedAt.Before(before) {
			continue
		}
		now := time.Now().UTC()
		run.Status = models.RunFailed
		run.CompletedAt = &now
		run.ErrorDetails = lo.ToPtr(models.StaleRunDetails)
		failed++
	}

	return failed, nil
}

// Runs returns all runs in start order.
func (m *Memory) Runs() []models.Run {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.runs)
}

// AddRun stores run as is.
func (m *Memory) AddRun(run models.Run) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run.ID = len(m.runs) + 1
	m.runs = append(m.runs, run)
}

// UpsertCategory updates known category or inserts new one.
func (m *Memory) UpsertCategory(_ context.Context, category *models.LocalCategory) (int64, error) {
	if m.OnUpsertCategory != nil {
		if err := m.OnUpsertCategory(category); err != nil {
			return 0, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *category
	if _, ok := m.categories[stored.ID]; !ok || stored.ID == 0 {
		stored.ID = m.nextID()
	}
	m.categories[stored.ID] = stored

	return stored.ID, nil
}

// Categories returns all categories ordered by id.
func (m *Memory) Categories() []models.LocalCategory {
	m.mu.Lock()
	defer m.mu.Unlock()

	return sortedByID(lo.Values(m.categories), func(c models.LocalCategory) int64 { return c.ID })
}

// UpsertProduct updates known product or inserts new one.
func (m *Memory) UpsertProduct(_ context.Context, product *models.LocalProduct) (int64, error) {
	if m.OnUpsertProduct != nil {
		if err := m.OnUpsertProduct(product); err != nil {
			return 0, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *product
	if _, ok := m.products[stored.ID]; !ok || stored.ID == 0 {
		stored.ID = m.nextID()
	}
	m.products[stored.ID] = stored

	return stored.ID, nil
}

// Products returns all products ordered by id.
func (m *Memory) Products() []models.LocalProduct {
	m.mu.Lock()
	defer m.mu.Unlock()

	return sortedByID(lo.Values(m.products), func(p models.LocalProduct) int64 { return p.ID })
}

// GetFeature returns characteristic by id or ErrNotFound.
func (m *Memory) GetFeature(_ context.Context, id int64) (*models.LocalFeature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	feature, ok := m.features[id]
	if !ok {
		return nil, fmt.Errorf("feature %d: %w", id, platform.ErrNotFound)
	}
	return &feature, nil
}

// CreateFeature inserts characteristic.
func (m *Memory) CreateFeature(_ context.Context, feature *models.LocalFeature) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *feature
	stored.ID = m.nextID()
	m.features[stored.ID] = stored

	return stored.ID, nil
}

// Features returns all characteristics ordered by id.
func (m *Memory) Features() []models.LocalFeature {
	m.mu.Lock()
	defer m.mu.Unlock()

	return sortedByID(lo.Values(m.features), func(f models.LocalFeature) int64 { return f.ID })
}

// FindVariant returns id of variant with provided value.
func (m *Memory) FindVariant(_ context.Context, featureID int64, value string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.variants[variantKey{featureID, value}]
	return id, ok, nil
}

// CreateVariant inserts variant or returns existing one with the same value.
func (m *Memory) CreateVariant(_ context.Context, featureID int64, value string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := variantKey{featureID, value}
	if id, ok := m.variants[key]; ok {
		return id, nil
	}
	id := m.nextID()
	m.variants[key] = id

	return id, nil
}

// Variants returns values of all variants of characteristic, sorted.
func (m *Memory) Variants(featureID int64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	values := lo.FilterMap(lo.Keys(m.variants), func(key variantKey, _ int) (string, bool) {
		return key.value, key.featureID == featureID
	})
	slices.Sort(values)
	return values
}

// DeleteFeatureValues deletes all values of the product.
func (m *Memory) DeleteFeatureValues(_ context.Context, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = lo.Reject(m.values, func(value models.FeatureValue, _ int) bool {
		return value.ProductID == productID
	})
	return nil
}

// InsertFeatureValue inserts single value.
func (m *Memory) InsertFeatureValue(_ context.Context, value models.FeatureValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = append(m.values, value)
	return nil
}

// FeatureValues returns values of the product in insertion order.
func (m *Memory) FeatureValues(productID int64) []models.FeatureValue {
	m.mu.Lock()
	defer m.mu.Unlock()

	return lo.Filter(m.values, func(value models.FeatureValue, _ int) bool {
		return value.ProductID == productID
	})
}

// DeleteProductImages deletes all images of the product.
func (m *Memory) DeleteProductImages(_ context.Context, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.images = lo.Reject(m.images, func(image models.ProductImage, _ int) bool {
		return image.ProductID == productID
	})
	return nil
}

// InsertProductImages inserts image associations.
func (m *Memory) InsertProductImages(_ context.Context, images []models.ProductImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, image := range images {
		image.ID = m.nextID()
		m.images = append(m.images, image)
	}
	return nil
}

// ProductImages returns images of the product in insertion order.
func (m *Memory) ProductImages(productID int64) []models.ProductImage {
	m.mu.Lock()
	defer m.mu.Unlock()

	return lo.Filter(m.images, func(image models.ProductImage, _ int) bool {
		return image.ProductID == productID
	})
}

func sortedByID[T any](items []T, id func(T) int64) []T {
	slices.SortFunc(items, func(a, b T) int {
		return cmp.Compare(id(a), id(b))
	})
	return items
}
