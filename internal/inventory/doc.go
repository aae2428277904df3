// Package inventory is the persistence facade used by the CLI and the MCP
// server.
//
// Open initializes the database (schema and system categories), seeds the
// demonstration data when enabled, and returns an Inventory that owns the
// connection until Close:
//
//	inv, err := inventory.Open(ctx, inventory.Options{
//	    DBPath:           cfg.Database.Path,
//	    EnableSampleData: cfg.Features.EnableSampleData,
//	})
//	if err != nil {
//	    return err
//	}
//	defer inv.Close()
//
// Input is validated here, before any store call. Lookups return an ok
// flag instead of a not-found error.
//
// # Notifications
//
// Subscribers receive ComponentsChanged and CategoriesChanged after each
// committed mutation, and ErrorOccurred when a mutation fails:
//
//	sub := inv.Subscribe(func(ev inventory.Event) {
//	    if ev.Kind == inventory.ErrorOccurred {
//	        log.Println(ev.Message)
//	    }
//	})
//	defer sub.Cancel()
//
// Deleting a category always reports CategoriesChanged and reports
// ComponentsChanged only when components were moved to "Other".
package inventory
