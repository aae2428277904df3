package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRawDB(t *testing.T) *sql.DB {
	db, err := sql.Open(DriverName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, ApplyMigrations(ctx, db), "run %d", i)
		require.NoError(t, seedSystemCategories(ctx, db), "run %d", i)
	}

	var version string
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count))
	assert.Equal(t, 8, count, "system categories are seeded once")
}

func TestApplyMigrations_CreatesIndexes(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()
	require.NoError(t, ApplyMigrations(ctx, db))

	rows, err := db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='index' AND tbl_name='inventory' AND name LIKE 'idx_%' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"idx_inventory_name", "idx_inventory_quantity", "idx_inventory_type"}, names)
}

func TestSeedSystemCategories_KeepsUserEdits(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()
	require.NoError(t, ApplyMigrations(ctx, db))
	require.NoError(t, seedSystemCategories(ctx, db))

	_, err := db.ExecContext(ctx, "UPDATE categories SET default_unit = 'kΩ' WHERE name = 'Resistor'")
	require.NoError(t, err)

	require.NoError(t, seedSystemCategories(ctx, db))

	var unit string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT default_unit FROM categories WHERE name = 'Resistor'").Scan(&unit))
	assert.Equal(t, "kΩ", unit)
}

func TestRollbackMigration(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()
	require.NoError(t, ApplyMigrations(ctx, db))

	require.NoError(t, RollbackMigration(ctx, db))

	var name string
	err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='inventory'").Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Schema can be recreated after a rollback
	require.NoError(t, ApplyMigrations(ctx, db))
}
