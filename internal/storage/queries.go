package storage

// Category queries
const (
	queryListCategories = `
		SELECT id, name, is_passive, is_active, default_unit, is_system
		FROM categories ORDER BY id`

	queryGetCategoryByID = `
		SELECT id, name, is_passive, is_active, default_unit, is_system
		FROM categories WHERE id = ?`

	queryGetCategoryByName = `
		SELECT id, name, is_passive, is_active, default_unit, is_system
		FROM categories WHERE name = ?`

	queryCountCategories = `SELECT COUNT(*) FROM categories`

	queryCountCategoryNameConflicts = `
		SELECT COUNT(*) FROM categories
		WHERE name = ? COLLATE NOCASE AND id != ?`

	queryInsertCategory = `
		INSERT INTO categories (name, is_passive, is_active, default_unit, is_system)
		VALUES (?, ?, ?, ?, ?)`

	queryUpdateCategory = `
		UPDATE categories
		SET name = ?, is_passive = ?, is_active = ?, default_unit = ?
		WHERE id = ?`

	queryDeleteCategory = `DELETE FROM categories WHERE id = ?`
)

// Inventory queries that move components between categories
const (
	queryRetagComponents = `UPDATE inventory SET type = ? WHERE type = ?`

	queryCountComponentsByType = `SELECT COUNT(*) FROM inventory WHERE type = ?`

	queryCountComponentsByCategoryID = `
		SELECT COUNT(*) FROM inventory
		WHERE type = (SELECT name FROM categories WHERE id = ?)`
)

// Component queries
const (
	queryInsertComponent = `
		INSERT INTO inventory (name, manufacturer, type, quantity, param_1, param_2, extra_data)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	queryUpdateComponent = `
		UPDATE inventory
		SET name = ?, manufacturer = ?, type = ?, quantity = ?,
		    param_1 = ?, param_2 = ?, extra_data = ?
		WHERE id = ?`

	queryDeleteComponent = `DELETE FROM inventory WHERE id = ?`
)

// componentColumns is the select list scanned by scanComponentRow
var componentColumns = []string{
	"id", "name", "manufacturer", "type", "quantity", "param_1", "param_2", "extra_data",
}
