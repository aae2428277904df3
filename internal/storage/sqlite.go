package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dshills/electrabase/pkg/types"
)

// SQLiteStorage owns the inventory database and the stores built on it
type SQLiteStorage struct {
	conn       *database
	categories *CategoryStore
	components *ComponentStore
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // Single writer; also keeps :memory: databases alive
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage opens dbPath, creates the schema if missing and seeds
// the system categories on first run.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	return NewSQLiteStorageContext(context.Background(), dbPath)
}

// NewSQLiteStorageContext is NewSQLiteStorage with a caller supplied context
// for schema initialization.
func NewSQLiteStorageContext(ctx context.Context, dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", types.ErrConnection, err)
	}

	// Apply migrations
	if err := ApplyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	if err := seedSystemCategories(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed system categories: %w", err)
	}

	conn := &database{db: db}
	categories := NewCategoryStore(conn)
	return &SQLiteStorage{
		conn:       conn,
		categories: categories,
		components: NewComponentStore(conn, categories),
	}, nil
}

// Categories returns the category store
func (s *SQLiteStorage) Categories() *CategoryStore {
	return s.categories
}

// Components returns the component store
func (s *SQLiteStorage) Components() *ComponentStore {
	return s.components
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.conn.db.Close()
}
