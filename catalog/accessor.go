package catalog

import (
	"context"
	"fmt"
	"sync"

	"cafe-pos/models"

	"golang.org/x/sync/errgroup"
)

// Store is the storage boundary the catalog reads from.
type Store interface {
	ActiveCategories(ctx context.Context) ([]models.Category, error)
	AvailableMenuItems(ctx context.Context) ([]models.MenuItem, error)
	SearchMenuItems(ctx context.Context, query string) ([]models.MenuItem, error)
}

// Catalog is the combined set of categories and menu items available
// for ordering.
type Catalog struct {
	Categories []models.Category `json:"categories"`
	Items      []models.MenuItem `json:"items"`
}

// Accessor fetches catalog data from the store. Search calls are
// sequence-tagged so a slow response to an old query can never
// overwrite the result of a newer one.
type Accessor struct {
	store Store

	mu        sync.Mutex
	searchSeq uint64
}

func NewAccessor(store Store) *Accessor {
	return &Accessor{store: store}
}

// Load fetches categories and menu items concurrently. Both must
// succeed before the catalog is considered ready; either failing yields
// one combined error and no partial catalog.
func (a *Accessor) Load(ctx context.Context) (*Catalog, error) {
	var cat Catalog
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := a.store.ActiveCategories(ctx)
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		cat.Categories = categories
		return nil
	})
	g.Go(func() error {
		items, err := a.store.AvailableMenuItems(ctx)
		if err != nil {
			return fmt.Errorf("menu items: %w", err)
		}
		cat.Items = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("catalog load failed: %w", err)
	}
	return &cat, nil
}

// Search runs a remote menu search. The second return value reports
// whether the response is still the latest one; stale responses are
// discarded with latest == false and must not be rendered.
func (a *Accessor) Search(ctx context.Context, query string) (items []models.MenuItem, latest bool, err error) {
	a.mu.Lock()
	a.searchSeq++
	seq := a.searchSeq
	a.mu.Unlock()

	items, err = a.store.SearchMenuItems(ctx, query)

	a.mu.Lock()
	latest = seq == a.searchSeq
	a.mu.Unlock()
	if !latest {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, fmt.Errorf("menu search failed: %w", err)
	}
	return items, true, nil
}
