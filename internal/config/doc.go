// Package config loads the inventory configuration.
//
// # Configuration Structure
//
//	Configuration
//	├── Database  - inventory file location
//	├── UI        - low-stock threshold and warnings
//	├── Features  - optional behavior
//	└── Log       - logging level and format
//
//	┌───────────────────────────┬────────────────┬──────────────────────────────────┐
//	│ Key                       │ Default        │ Description                      │
//	├───────────────────────────┼────────────────┼──────────────────────────────────┤
//	│ database.path             │ "inventory.db" │ SQLite database file             │
//	│ ui.lowStockThreshold      │ 10             │ Quantity below which stock is low│
//	│ ui.showLowStockWarnings   │ true           │ Highlight low stock in listings  │
//	│ features.enableSampleData │ true           │ Seed demo data into an empty DB  │
//	│ log.level                 │ "info"         │ debug, info, warn, error         │
//	│ log.format                │ "console"      │ console or json                  │
//	└───────────────────────────┴────────────────┴──────────────────────────────────┘
//
// Values are resolved in the usual viper order: bound command flags,
// environment (ELECTRABASE_DATABASE_PATH, ELECTRABASE_UI_LOWSTOCKTHRESHOLD,
// ...), the JSON config file, then the defaults above. A missing config
// file is not an error.
package config
