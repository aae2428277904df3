// Package storage provides SQLite-based persistence for the component
// inventory.
//
// The storage layer manages:
//   - Categories, including the eight protected system categories
//   - Components, stored as flat rows and hydrated per category
//   - The optional demonstration data set
//
// # Database Schema
//
// Tables:
//   - categories: name, passive/active flags, default unit, system flag
//   - inventory: common component fields plus param_1, param_2, extra_data
//   - schema_version: applied migrations (semver)
//
// Indexes cover inventory name, type and quantity.
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("inventory.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	id, err := db.Components().Add(ctx, types.NewPassive(
//	    "RES-4K7-0805", "Panasonic", 75, "Resistor", 4700, "Ω", "0805"))
//
//	low, err := db.Components().ListLowStock(ctx, 10)
//
// # Hydration
//
// A row's type column holds its category name. On read the category is
// resolved and decides the variant:
//
//	is_passive          -> passive (value, unit, package)
//	is_active           -> active (voltage, pin count, datasheet)
//	neither / not found -> passive, with a warning logged
//
// Category lookups are memoized for the duration of one list call only.
//
// # Query Options
//
// Component queries compose squirrel builders:
//
//	components, err := db.Components().List(ctx,
//	    storage.ByCategory("Capacitor"),
//	    storage.BelowQuantity(10),
//	    storage.OrderByQuantity(),
//	    storage.WithLimit(5),
//	)
//
// # Transactions
//
// Category add, update and delete run in a single transaction each.
// Deleting a category moves its components to "Other" and removes the row
// atomically; renaming one retags its components the same way.
//
// # Build Tags
//
// Pure Go build (default):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build ./...
//
// CGO build (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires C compiler
//
//     CGO_ENABLED=1 go build -tags "sqlite_cgo" ./...
package storage
