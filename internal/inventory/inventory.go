package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/electrabase/internal/storage"
	"github.com/dshills/electrabase/pkg/types"
)

// Options configures Open
type Options struct {
	// DBPath is the SQLite file; ":memory:" opens a private in-memory database
	DBPath string
	// EnableSampleData seeds demonstration components into an empty inventory
	EnableSampleData bool
}

// Stats summarizes the inventory for a low-stock threshold
type Stats struct {
	Components int `json:"components"`
	Categories int `json:"categories"`
	LowStock   int `json:"low_stock"`
	Threshold  int `json:"threshold"`
}

// Inventory is the single entry point to persisted categories and
// components. It validates input before any write and notifies
// subscribers after every committed mutation.
type Inventory struct {
	mu     sync.RWMutex
	store  *storage.SQLiteStorage
	closed bool

	events *hub
	log    *zap.SugaredLogger
}

// Open initializes storage at opts.DBPath and optionally seeds sample data
func Open(ctx context.Context, opts Options) (*Inventory, error) {
	if strings.TrimSpace(opts.DBPath) == "" {
		return nil, fmt.Errorf("%w: database path is required", types.ErrConnection)
	}

	store, err := storage.NewSQLiteStorageContext(ctx, opts.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	log := zap.S().Named("inventory")
	inserted, err := store.SeedSampleData(ctx, opts.EnableSampleData)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed sample data: %w", err)
	}

	log.Infow("inventory opened", "path", opts.DBPath, "build_mode", storage.BuildMode, "sample_components", inserted)
	return &Inventory{
		store:  store,
		events: &hub{},
		log:    log,
	}, nil
}

// Close releases the database. Operations after Close return ErrConnection.
func (inv *Inventory) Close() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if inv.closed {
		return nil
	}
	inv.closed = true
	return inv.store.Close()
}

// Subscribe registers handler for change notifications
func (inv *Inventory) Subscribe(handler Handler) *Subscription {
	return inv.events.add(handler)
}

// withStore runs fn while holding the inventory open
func withStore[T any](inv *Inventory, fn func(*storage.SQLiteStorage) (T, error)) (T, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	if inv.closed {
		var zero T
		return zero, fmt.Errorf("%w: inventory is closed", types.ErrConnection)
	}
	return fn(inv.store)
}

// withStoreExclusive is withStore for mutations. Writers are serialized so
// a component write cannot interleave with a delete or rename of the
// category it resolved.
func withStoreExclusive[T any](inv *Inventory, fn func(*storage.SQLiteStorage) (T, error)) (T, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if inv.closed {
		var zero T
		return zero, fmt.Errorf("%w: inventory is closed", types.ErrConnection)
	}
	return fn(inv.store)
}

// mutated publishes change events after a commit
func (inv *Inventory) mutated(kinds ...EventKind) {
	for _, k := range kinds {
		inv.events.publish(Event{Kind: k})
	}
}

// failed reports a mutating operation error on the error channel and
// returns it unchanged
func (inv *Inventory) failed(op string, err error) error {
	inv.log.Warnw("operation failed", "op", op, "error", err)
	inv.events.publish(Event{Kind: ErrorOccurred, Message: fmt.Sprintf("%s: %v", op, err)})
	return err
}

// found converts ErrNotFound into an absent result
func found[T any](v T, err error) (T, bool, error) {
	if errors.Is(err, types.ErrNotFound) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// Category operations

// ListCategories returns all categories ordered by id
func (inv *Inventory) ListCategories(ctx context.Context) ([]types.Category, error) {
	return withStore(inv, func(s *storage.SQLiteStorage) ([]types.Category, error) {
		return s.Categories().ListAll(ctx)
	})
}

// GetCategory returns the category with id; ok is false when absent
func (inv *Inventory) GetCategory(ctx context.Context, id int64) (types.Category, bool, error) {
	return found(withStore(inv, func(s *storage.SQLiteStorage) (types.Category, error) {
		return s.Categories().GetByID(ctx, id)
	}))
}

// GetCategoryByName returns the category named exactly name
func (inv *Inventory) GetCategoryByName(ctx context.Context, name string) (types.Category, bool, error) {
	return found(withStore(inv, func(s *storage.SQLiteStorage) (types.Category, error) {
		return s.Categories().GetByName(ctx, name)
	}))
}

// AddCategory creates a user category and returns its id
func (inv *Inventory) AddCategory(ctx context.Context, c types.Category) (int64, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := types.ValidateNewCategory(c); err != nil {
		return 0, inv.failed("add category", err)
	}

	id, err := withStoreExclusive(inv, func(s *storage.SQLiteStorage) (int64, error) {
		return s.Categories().Add(ctx, c)
	})
	if err != nil {
		return 0, inv.failed("add category", err)
	}

	inv.mutated(CategoriesChanged)
	return id, nil
}

// UpdateCategory replaces the name, flags and unit of an existing category
func (inv *Inventory) UpdateCategory(ctx context.Context, c types.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if err := types.ValidateCategory(c); err != nil {
		return inv.failed("update category", err)
	}

	retagged, err := withStoreExclusive(inv, func(s *storage.SQLiteStorage) (int, error) {
		return s.Categories().Update(ctx, c)
	})
	if err != nil {
		return inv.failed("update category", err)
	}

	inv.mutated(CategoriesChanged)
	if retagged > 0 {
		inv.mutated(ComponentsChanged)
	}
	return nil
}

// DeleteCategory removes a user category and moves its components to
// "Other", returning how many were moved. Components are only reported as
// changed when some were moved.
func (inv *Inventory) DeleteCategory(ctx context.Context, id int64) (int, error) {
	moved, err := withStoreExclusive(inv, func(s *storage.SQLiteStorage) (int, error) {
		return s.Categories().Delete(ctx, id)
	})
	if err != nil {
		return 0, inv.failed("delete category", err)
	}

	inv.mutated(CategoriesChanged)
	if moved > 0 {
		inv.mutated(ComponentsChanged)
	}
	return moved, nil
}

// CanDeleteCategory reports whether id is an existing non-system category
func (inv *Inventory) CanDeleteCategory(ctx context.Context, id int64) (bool, error) {
	return withStore(inv, func(s *storage.SQLiteStorage) (bool, error) {
		return s.Categories().CanDelete(ctx, id)
	})
}

// ComponentCountForCategory counts the components tagged with name
func (inv *Inventory) ComponentCountForCategory(ctx context.Context, name string) (int, error) {
	return withStore(inv, func(s *storage.SQLiteStorage) (int, error) {
		return s.Categories().CountComponentsByName(ctx, name)
	})
}

// ComponentCountForCategoryID counts the components of category id
func (inv *Inventory) ComponentCountForCategoryID(ctx context.Context, id int64) (int, error) {
	return withStore(inv, func(s *storage.SQLiteStorage) (int, error) {
		return s.Categories().CountComponentsByID(ctx, id)
	})
}

// Component operations

// validateComponent resolves the component's category and checks c against it
func (inv *Inventory) validateComponent(ctx context.Context, s *storage.SQLiteStorage, c types.Component) error {
	category, err := s.Categories().GetByName(ctx, c.Category)
	if errors.Is(err, types.ErrNotFound) {
		return types.NewValidationError("category", fmt.Sprintf("unknown category %q", c.Category))
	}
	if err != nil {
		return err
	}
	return types.ValidateComponent(c, category)
}

// AddComponent validates and stores c, returning the assigned id
func (inv *Inventory) AddComponent(ctx context.Context, c types.Component) (int64, error) {
	id, err := withStoreExclusive(inv, func(s *storage.SQLiteStorage) (int64, error) {
		if err := inv.validateComponent(ctx, s, c); err != nil {
			return 0, err
		}
		return s.Components().Add(ctx, c)
	})
	if err != nil {
		return 0, inv.failed("add component", err)
	}

	inv.mutated(ComponentsChanged)
	return id, nil
}

// UpdateComponent validates c and replaces the stored component with c.ID
func (inv *Inventory) UpdateComponent(ctx context.Context, c types.Component) error {
	_, err := withStoreExclusive(inv, func(s *storage.SQLiteStorage) (struct{}, error) {
		if err := inv.validateComponent(ctx, s, c); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.Components().Update(ctx, c)
	})
	if err != nil {
		return inv.failed("update component", err)
	}

	inv.mutated(ComponentsChanged)
	return nil
}

// DeleteComponent removes the component with id
func (inv *Inventory) DeleteComponent(ctx context.Context, id int64) error {
	_, err := withStoreExclusive(inv, func(s *storage.SQLiteStorage) (struct{}, error) {
		return struct{}{}, s.Components().Delete(ctx, id)
	})
	if err != nil {
		return inv.failed("delete component", err)
	}

	inv.mutated(ComponentsChanged)
	return nil
}

// GetComponent returns the component with id; ok is false when absent
func (inv *Inventory) GetComponent(ctx context.Context, id int64) (types.Component, bool, error) {
	return found(withStore(inv, func(s *storage.SQLiteStorage) (types.Component, error) {
		return s.Components().GetByID(ctx, id)
	}))
}

// ListComponents returns every component ordered by name
func (inv *Inventory) ListComponents(ctx context.Context) ([]types.Component, error) {
	return withStore(inv, func(s *storage.SQLiteStorage) ([]types.Component, error) {
		return s.Components().ListAll(ctx)
	})
}

// ListByCategory returns the components of category name ordered by name
func (inv *Inventory) ListByCategory(ctx context.Context, name string) ([]types.Component, error) {
	return withStore(inv, func(s *storage.SQLiteStorage) ([]types.Component, error) {
		return s.Components().ListByCategory(ctx, name)
	})
}

// ListLowStock returns the components with quantity below threshold,
// lowest first
func (inv *Inventory) ListLowStock(ctx context.Context, threshold int) ([]types.Component, error) {
	return withStore(inv, func(s *storage.SQLiteStorage) ([]types.Component, error) {
		return s.Components().ListLowStock(ctx, threshold)
	})
}

// SearchByName returns the components whose name contains term, ignoring case
func (inv *Inventory) SearchByName(ctx context.Context, term string) ([]types.Component, error) {
	return withStore(inv, func(s *storage.SQLiteStorage) ([]types.Component, error) {
		return s.Components().SearchByName(ctx, term)
	})
}

// Query returns the components matching arbitrary list options
func (inv *Inventory) Query(ctx context.Context, opts ...storage.ListOption) ([]types.Component, error) {
	return withStore(inv, func(s *storage.SQLiteStorage) ([]types.Component, error) {
		return s.Components().List(ctx, opts...)
	})
}

// Stats counts components, categories and low-stock components
func (inv *Inventory) Stats(ctx context.Context, threshold int) (Stats, error) {
	return withStore(inv, func(s *storage.SQLiteStorage) (Stats, error) {
		st := Stats{Threshold: threshold}
		var err error
		if st.Components, err = s.Components().Count(ctx); err != nil {
			return Stats{}, err
		}
		if st.LowStock, err = s.Components().Count(ctx, storage.BelowQuantity(threshold)); err != nil {
			return Stats{}, err
		}
		categories, err := s.Categories().ListAll(ctx)
		if err != nil {
			return Stats{}, err
		}
		st.Categories = len(categories)
		return st, nil
	})
}
