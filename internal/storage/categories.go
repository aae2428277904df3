package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/electrabase/pkg/types"
)

// CategoryStore persists categories and protects the system rows
type CategoryStore struct {
	conn *database
}

// NewCategoryStore creates a category store on conn
func NewCategoryStore(conn *database) *CategoryStore {
	return &CategoryStore{conn: conn}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCategory(row rowScanner) (types.Category, error) {
	var c types.Category
	var unit sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.IsPassive, &c.IsActive, &unit, &c.IsSystem)
	if err != nil {
		return types.Category{}, err
	}
	c.DefaultUnit = unit.String
	return c, nil
}

// ListAll returns every category ordered by creation id
func (s *CategoryStore) ListAll(ctx context.Context) ([]types.Category, error) {
	rows, err := s.conn.querier().QueryContext(ctx, queryListCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", classifyError(err))
	}
	defer rows.Close()

	var categories []types.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", classifyError(err))
	}
	return categories, nil
}

// getByIDWithQuerier is the internal implementation that uses a querier
func (s *CategoryStore) getByIDWithQuerier(ctx context.Context, q querier, id int64) (types.Category, error) {
	c, err := scanCategory(q.QueryRowContext(ctx, queryGetCategoryByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Category{}, types.ErrNotFound
	}
	if err != nil {
		return types.Category{}, fmt.Errorf("failed to get category %d: %w", id, classifyError(err))
	}
	return c, nil
}

// GetByID returns the category with id or ErrNotFound
func (s *CategoryStore) GetByID(ctx context.Context, id int64) (types.Category, error) {
	return s.getByIDWithQuerier(ctx, s.conn.querier(), id)
}

// getByNameWithQuerier is the internal implementation that uses a querier
func (s *CategoryStore) getByNameWithQuerier(ctx context.Context, q querier, name string) (types.Category, error) {
	c, err := scanCategory(q.QueryRowContext(ctx, queryGetCategoryByName, name))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Category{}, types.ErrNotFound
	}
	if err != nil {
		return types.Category{}, fmt.Errorf("failed to get category %q: %w", name, classifyError(err))
	}
	return c, nil
}

// GetByName returns the category whose name matches exactly, or ErrNotFound
func (s *CategoryStore) GetByName(ctx context.Context, name string) (types.Category, error) {
	return s.getByNameWithQuerier(ctx, s.conn.querier(), name)
}

// nameTaken reports whether another category already uses name, ignoring case
func (s *CategoryStore) nameTaken(ctx context.Context, q querier, name string, exceptID int64) (bool, error) {
	var count int
	if err := q.QueryRowContext(ctx, queryCountCategoryNameConflicts, name, exceptID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check category name: %w", classifyError(err))
	}
	return count > 0, nil
}

// Add inserts a user category and returns its id. The system flag is
// always stored false.
func (s *CategoryStore) Add(ctx context.Context, c types.Category) (int64, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := types.ValidateNewCategory(c); err != nil {
		return 0, err
	}

	var id int64
	err := s.conn.withTx(ctx, func(q querier) error {
		taken, err := s.nameTaken(ctx, q, c.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: category %q already exists", types.ErrConstraint, c.Name)
		}

		result, err := q.ExecContext(ctx, queryInsertCategory,
			c.Name, c.IsPassive, c.IsActive, c.DefaultUnit, false)
		if err != nil {
			return fmt.Errorf("failed to add category: %w", classifyError(err))
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update replaces the mutable fields of an existing category. System rows
// keep their name; renaming any other category retags its components in
// the same transaction. Returns the number of components retagged.
func (s *CategoryStore) Update(ctx context.Context, c types.Category) (int, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := types.ValidateCategory(c); err != nil {
		return 0, err
	}

	var retagged int
	err := s.conn.withTx(ctx, func(q querier) error {
		existing, err := s.getByIDWithQuerier(ctx, q, c.ID)
		if err != nil {
			return err
		}
		if c.IsSystem != existing.IsSystem {
			return types.NewValidationError("is_system", "the system flag cannot be changed")
		}

		renamed := c.Name != existing.Name
		if renamed && existing.IsSystem {
			return fmt.Errorf("%w: system category %q cannot be renamed", types.ErrProtected, existing.Name)
		}

		taken, err := s.nameTaken(ctx, q, c.Name, c.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: category %q already exists", types.ErrConstraint, c.Name)
		}

		if _, err := q.ExecContext(ctx, queryUpdateCategory,
			c.Name, c.IsPassive, c.IsActive, c.DefaultUnit, c.ID); err != nil {
			return fmt.Errorf("failed to update category: %w", classifyError(err))
		}

		if renamed {
			result, err := q.ExecContext(ctx, queryRetagComponents, c.Name, existing.Name)
			if err != nil {
				return fmt.Errorf("failed to retag components: %w", classifyError(err))
			}
			n, err := result.RowsAffected()
			if err != nil {
				return err
			}
			retagged = int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return retagged, nil
}

// Delete removes a non-system category, moving its components to the
// fallback category in the same transaction. Returns the number of
// components moved.
func (s *CategoryStore) Delete(ctx context.Context, id int64) (int, error) {
	var moved int
	err := s.conn.withTx(ctx, func(q querier) error {
		c, err := s.getByIDWithQuerier(ctx, q, id)
		if err != nil {
			return err
		}
		if c.IsSystem {
			return fmt.Errorf("%w: system category %q cannot be deleted", types.ErrProtected, c.Name)
		}

		result, err := q.ExecContext(ctx, queryRetagComponents, types.FallbackCategory, c.Name)
		if err != nil {
			return fmt.Errorf("failed to reassign components: %w", classifyError(err))
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		moved = int(n)

		if _, err := q.ExecContext(ctx, queryDeleteCategory, id); err != nil {
			return fmt.Errorf("failed to delete category: %w", classifyError(err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	zap.S().Named("storage").Infow("category deleted", "id", id, "reassigned", moved)
	return moved, nil
}

// CanDelete reports whether id names an existing non-system category
func (s *CategoryStore) CanDelete(ctx context.Context, id int64) (bool, error) {
	c, err := s.GetByID(ctx, id)
	if errors.Is(err, types.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !c.IsSystem, nil
}

// CountComponentsByName counts the components tagged with name
func (s *CategoryStore) CountComponentsByName(ctx context.Context, name string) (int, error) {
	var count int
	err := s.conn.querier().QueryRowContext(ctx, queryCountComponentsByType, name).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count components: %w", classifyError(err))
	}
	return count, nil
}

// CountComponentsByID counts the components of category id; 0 when the
// category does not exist
func (s *CategoryStore) CountComponentsByID(ctx context.Context, id int64) (int, error) {
	var count int
	err := s.conn.querier().QueryRowContext(ctx, queryCountComponentsByCategoryID, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count components: %w", classifyError(err))
	}
	return count, nil
}
