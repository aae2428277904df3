package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/dshills/electrabase/pkg/types"
)

// ComponentStore persists components and hydrates them through the
// category of each row
type ComponentStore struct {
	conn       *database
	categories *CategoryStore
}

// NewComponentStore creates a component store on conn
func NewComponentStore(conn *database, categories *CategoryStore) *ComponentStore {
	return &ComponentStore{conn: conn, categories: categories}
}

// addWithQuerier is the internal implementation that uses a querier
func (s *ComponentStore) addWithQuerier(ctx context.Context, q querier, c types.Component) (int64, error) {
	row := c.ToRow()
	result, err := q.ExecContext(ctx, queryInsertComponent,
		row.Name, row.Manufacturer, row.Type, row.Quantity, row.Param1, row.Param2, row.Extra)
	if err != nil {
		return 0, fmt.Errorf("failed to add component: %w", classifyError(err))
	}
	return result.LastInsertId()
}

// Add inserts c and returns the assigned id. The id on c is ignored.
func (s *ComponentStore) Add(ctx context.Context, c types.Component) (int64, error) {
	return s.addWithQuerier(ctx, s.conn.querier(), c)
}

// Update replaces every field of the component with c.ID
func (s *ComponentStore) Update(ctx context.Context, c types.Component) error {
	row := c.ToRow()
	result, err := s.conn.querier().ExecContext(ctx, queryUpdateComponent,
		row.Name, row.Manufacturer, row.Type, row.Quantity, row.Param1, row.Param2, row.Extra, row.ID)
	if err != nil {
		return fmt.Errorf("failed to update component: %w", classifyError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("component %d: %w", c.ID, types.ErrNotFound)
	}
	return nil
}

// Delete removes the component with id
func (s *ComponentStore) Delete(ctx context.Context, id int64) error {
	result, err := s.conn.querier().ExecContext(ctx, queryDeleteComponent, id)
	if err != nil {
		return fmt.Errorf("failed to delete component: %w", classifyError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("component %d: %w", id, types.ErrNotFound)
	}
	return nil
}

// GetByID returns the hydrated component with id or ErrNotFound
func (s *ComponentStore) GetByID(ctx context.Context, id int64) (types.Component, error) {
	components, err := s.List(ctx, ByID(id))
	if err != nil {
		return types.Component{}, err
	}
	if len(components) == 0 {
		return types.Component{}, fmt.Errorf("component %d: %w", id, types.ErrNotFound)
	}
	return components[0], nil
}

// List returns the hydrated components matching opts
func (s *ComponentStore) List(ctx context.Context, opts ...ListOption) ([]types.Component, error) {
	builder := sq.Select(componentColumns...).From("inventory")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	q := s.conn.querier()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", classifyError(err))
	}

	var raw []types.Row
	for rows.Next() {
		row, err := scanComponentRow(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan component: %w", err)
		}
		raw = append(raw, row)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to list components: %w", classifyError(err))
	}
	// Release the single connection before category lookups
	_ = rows.Close()

	h := newHydrator(s.categories, q)
	components := make([]types.Component, 0, len(raw))
	for _, row := range raw {
		c, err := h.hydrate(ctx, row)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, nil
}

// Count returns the number of components matching opts
func (s *ComponentStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("inventory")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.conn.querier().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count components: %w", classifyError(err))
	}
	return count, nil
}

// ListAll returns every component ordered by name
func (s *ComponentStore) ListAll(ctx context.Context) ([]types.Component, error) {
	return s.List(ctx, OrderByName())
}

// ListByCategory returns the components tagged with category, ordered by name
func (s *ComponentStore) ListByCategory(ctx context.Context, category string) ([]types.Component, error) {
	return s.List(ctx, ByCategory(category), OrderByName())
}

// ListLowStock returns the components with quantity below threshold,
// lowest quantity first
func (s *ComponentStore) ListLowStock(ctx context.Context, threshold int) ([]types.Component, error) {
	return s.List(ctx, BelowQuantity(threshold), OrderByQuantity())
}

// SearchByName returns the components whose name contains term, ignoring
// case, ordered by name
func (s *ComponentStore) SearchByName(ctx context.Context, term string) ([]types.Component, error) {
	return s.List(ctx, NameContains(term), OrderByName())
}

func scanComponentRow(row rowScanner) (types.Row, error) {
	var r types.Row
	var manufacturer, param2, extra sql.NullString
	var quantity sql.NullInt64
	var param1 sql.NullFloat64
	err := row.Scan(&r.ID, &r.Name, &manufacturer, &r.Type, &quantity, &param1, &param2, &extra)
	if err != nil {
		return types.Row{}, err
	}
	r.Manufacturer = manufacturer.String
	r.Quantity = int(quantity.Int64)
	r.Param1 = param1.Float64
	r.Param2 = param2.String
	r.Extra = extra.String
	return r, nil
}

// hydrator resolves row categories for a single list call
type hydrator struct {
	categories *CategoryStore
	q          querier
	seen       map[string]categoryLookup
	log        *zap.SugaredLogger
}

type categoryLookup struct {
	category types.Category
	found    bool
}

func newHydrator(categories *CategoryStore, q querier) *hydrator {
	return &hydrator{
		categories: categories,
		q:          q,
		seen:       make(map[string]categoryLookup),
		log:        zap.S().Named("storage"),
	}
}

func (h *hydrator) hydrate(ctx context.Context, row types.Row) (types.Component, error) {
	lookup, ok := h.seen[row.Type]
	if !ok {
		c, err := h.categories.getByNameWithQuerier(ctx, h.q, row.Type)
		switch {
		case err == nil:
			lookup = categoryLookup{category: c, found: true}
		case errors.Is(err, types.ErrNotFound):
			lookup = categoryLookup{}
		default:
			return types.Component{}, err
		}
		h.seen[row.Type] = lookup
	}

	c, fallback := types.Hydrate(row, lookup.category, lookup.found)
	// Flagless system categories (Connector, Other) are passive by definition
	if fallback && !(lookup.found && lookup.category.IsSystem) {
		h.log.Warnw("component hydrated as passive by fallback",
			"id", row.ID, "name", row.Name, "category", row.Type, "category_found", lookup.found)
	}
	return c, nil
}

// ListOption narrows or orders a component query
type ListOption func(sq.SelectBuilder) sq.SelectBuilder

// ByID matches a single component
func ByID(id int64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"id": id})
	}
}

// ByCategory matches components tagged with the exact category name
func ByCategory(name string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"type": name})
	}
}

// BelowQuantity matches components with quantity < threshold
func BelowQuantity(threshold int) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Lt{"quantity": threshold})
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NameContains matches names containing term; LIKE ignores ASCII case in SQLite
func NameContains(term string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if term == "" {
			return b
		}
		return b.Where(sq.Expr(`name LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(term)+"%"))
	}
}

// OrderByName sorts by name, then id
func OrderByName() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("name ASC", "id ASC")
	}
}

// OrderByQuantity sorts by quantity, ties broken by name
func OrderByQuantity() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("quantity ASC", "name ASC")
	}
}

// WithLimit caps the number of rows returned
func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}
