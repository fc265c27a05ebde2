package category

import (
	"context"
	"fmt"

	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Client --filename client.go

// Client provides PIM catalog tree.
type Client interface {
	GetCatalogTree(ctx context.Context) ([]models.Category, error)
}

// Store is entity mapping and local categories storage.
type Store interface {
	// GetLocalID returns local id of remote entity, found is false when entity isn't mapped.
	GetLocalID(ctx context.Context, entityType models.EntityType, uid string) (id int64, found bool, err error)
	// SaveMapping inserts or overwrites entity mapping.
	SaveMapping(ctx context.Context, mapping models.Mapping) error
	// UpsertCategory updates or inserts local category and returns its id.
	UpsertCategory(ctx context.Context, category *models.LocalCategory) (int64, error)
}

// Report is result of categories synchronization.
type Report struct {
	Synced  int
	Created int
	Updated int
	// Skipped categories are also reported in Errors.
	Skipped int
	Errors  []models.EntityError
}

// Synchronizer mirrors PIM category tree into local categories.
type Synchronizer struct {
	client Client
	store  Store
	logger *zerolog.Logger
}

// NewSynchronizer returns new Synchronizer.
func NewSynchronizer(client Client, store Store, logger *zerolog.Logger) *Synchronizer {
	return &Synchronizer{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Sync synchronizes categories of catalog, every parent before its children.
// Failure of single category doesn't stop the synchronization. Error is returned only
// when category tree can't be fetched.
func (s *Synchronizer) Sync(ctx context.Context, catalogUID string) (Report, error) {
	tree, err := s.client.GetCatalogTree(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("can't get catalog tree: %w", err)
	}

	categories := lo.UniqBy(
		lo.Filter(tree, func(category models.Category, _ int) bool {
			return category.SyncUID != "" && category.InCatalog(catalogUID)
		}),
		func(category models.Category) string { return category.SyncUID },
	)

	s.logger.Info().
		Str("catalogUid", catalogUID).
		Int("categories", len(categories)).
		Msg("categories synchronization started")

	report := Report{}
	ordered, unreachable := topologicalOrder(categories)

	for ix := range ordered {
		s.syncCategory(ctx, &ordered[ix], &report)
	}

	for ix := range unreachable {
		s.fail(ctx, &unreachable[ix], fmt.Errorf("parent %s: %w", unreachable[ix].ParentUID, platform.ErrCategoryCycle), &report)
	}

	s.logger.Info().
		Str("catalogUid", catalogUID).
		Int("synced", report.Synced).
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("skipped", report.Skipped).
		Int("errors", len(report.Errors)).
		Msg("categories synchronization finished")

	return report, nil
}

// topologicalOrder returns categories ordered so that every parent precedes its children.
// Categories whose parent is not in the set are treated as roots. Categories which can't be
// reached from any root are part of or descend from a parent cycle and are returned separately.
func topologicalOrder(categories []models.Category) (ordered, unreachable []models.Category) {
	index := lo.KeyBy(categories, func(category models.Category) string { return category.SyncUID })

	var roots []string
	children := make(map[string][]string, len(categories))
	for _, category := range categories {
		if _, ok := index[category.ParentUID]; category.IsRoot() || !ok {
			roots = append(roots, category.SyncUID)
			continue
		}
		children[category.ParentUID] = append(children[category.ParentUID], category.SyncUID)
	}

	ordered = make([]models.Category, 0, len(categories))
	visited := make(map[string]bool, len(categories))

	// iterative depth-first traversal, siblings keep their input order
	stack := lo.Reverse(roots)
	for len(stack) > 0 {
		uid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[uid] {
			continue
		}
		visited[uid] = true
		ordered = append(ordered, index[uid])

		kids := children[uid]
		for ix := len(kids) - 1; ix >= 0; ix-- {
			stack = append(stack, kids[ix])
		}
	}

	unreachable = lo.Filter(categories, func(category models.Category, _ int) bool {
		return !visited[category.SyncUID]
	})

	return ordered, unreachable
}

func (s *Synchronizer) syncCategory(ctx context.Context, category *models.Category, report *Report) {
	localID, found, err := s.store.GetLocalID(ctx, models.EntityCategory, category.SyncUID)
	if err != nil {
		s.fail(ctx, category, err, report)
		return
	}

	if category.Header == "" {
		s.fail(ctx, category, fmt.Errorf("%w: missing header", platform.ErrValidation), report)
		return
	}

	var parentID int64
	if !category.IsRoot() {
		var parentFound bool
		parentID, parentFound, err = s.store.GetLocalID(ctx, models.EntityCategory, category.ParentUID)
		if err != nil {
			s.fail(ctx, category, err, report)
			return
		}
		if !parentFound {
			report.Skipped++
			s.fail(ctx, category, fmt.Errorf("parent %s: %w", category.ParentUID, platform.ErrDependencyNotReady), report)
			return
		}
	}

	local := toLocalCategory(category, localID, parentID)
	id, err := s.store.UpsertCategory(ctx, &local)
	if err != nil {
		s.fail(ctx, category, fmt.Errorf("can't upsert category: %w", err), report)
		return
	}

	err = s.store.SaveMapping(ctx, models.Mapping{
		EntityType:  models.EntityCategory,
		ExternalUID: category.SyncUID,
		LocalID:     id,
		Status:      models.StatusSynced,
	})
	if err != nil {
		s.fail(ctx, category, err, report)
		return
	}

	report.Synced++
	if found && id == localID {
		report.Updated++
	} else {
		report.Created++
	}

	s.logger.Debug().
		Str("syncUid", category.SyncUID).
		Int64("categoryId", id).
		Msg("category synchronized")
}

// fail reports category failure and records it in entity mapping.
// Known local id stays mapped, so next synchronization updates the same category.
func (s *Synchronizer) fail(ctx context.Context, category *models.Category, err error, report *Report) {
	entityErr := models.EntityError{
		Type: models.EntityCategory,
		UID:  category.SyncUID,
		Err:  err,
	}
	report.Errors = append(report.Errors, entityErr)

	s.logger.Warn().
		Err(err).
		Str("syncUid", category.SyncUID).
		Str("parentUid", category.ParentUID).
		Msg("can't synchronize category")

	localID, _, lookupErr := s.store.GetLocalID(ctx, models.EntityCategory, category.SyncUID)
	if lookupErr != nil {
		return
	}

	if err := s.store.SaveMapping(ctx, models.Mapping{
		EntityType:  models.EntityCategory,
		ExternalUID: category.SyncUID,
		LocalID:     localID,
		Status:      models.StatusError,
	}); err != nil {
		s.logger.Error().
			Err(err).
			Str("syncUid", category.SyncUID).
			Msg("can't save failed category mapping")
	}
}

func toLocalCategory(category *models.Category, localID, parentID int64) models.LocalCategory {
	return models.LocalCategory{
		ID:        localID,
		ParentID:  parentID,
		Name:      category.Header,
		Position:  category.Position,
		Status:    lo.Ternary(category.Enabled, models.ItemActive, models.ItemDisabled),
		PageTitle: category.Header,
	}
}
