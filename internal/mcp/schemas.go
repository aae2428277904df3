package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func idProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"minimum":     1,
	}
}

// categoryFieldProperties are shared by add_category and update_category
func categoryFieldProperties() map[string]interface{} {
	return map[string]interface{}{
		"name": map[string]interface{}{
			"type":        "string",
			"description": "Category name, unique ignoring case",
		},
		"is_passive": map[string]interface{}{
			"type":        "boolean",
			"description": "Components carry value, unit and package (takes precedence over is_active)",
		},
		"is_active": map[string]interface{}{
			"type":        "boolean",
			"description": "Components carry operating voltage, pin count and datasheet link",
		},
		"default_unit": map[string]interface{}{
			"type":        "string",
			"description": "Unit suggested for new passive components (e.g. Ω, F, H)",
		},
	}
}

// componentFieldProperties are shared by add_component and update_component
func componentFieldProperties() map[string]interface{} {
	return map[string]interface{}{
		"name": map[string]interface{}{
			"type":        "string",
			"description": "Part name or number (e.g. RES-4K7-0805)",
		},
		"manufacturer": map[string]interface{}{
			"type":        "string",
			"description": "Manufacturer name",
		},
		"quantity": map[string]interface{}{
			"type":        "integer",
			"description": "Units in stock",
			"minimum":     0,
		},
		"category": map[string]interface{}{
			"type":        "string",
			"description": "Existing category name; decides which parameters apply",
		},
		"value": map[string]interface{}{
			"type":        "number",
			"description": "Passive: value in SI base units (ohms, farads, henries)",
		},
		"unit": map[string]interface{}{
			"type":        "string",
			"description": "Passive: unit symbol; defaults to the category's default unit",
		},
		"package": map[string]interface{}{
			"type":        "string",
			"description": "Passive: package (e.g. 0805, Radial)",
		},
		"operating_voltage": map[string]interface{}{
			"type":        "number",
			"description": "Active: operating voltage in volts",
		},
		"pin_count": map[string]interface{}{
			"type":        "integer",
			"description": "Active: number of pins",
		},
		"datasheet_link": map[string]interface{}{
			"type":        "string",
			"description": "Active: datasheet URL",
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// listCategoriesTool returns the tool definition for list_categories
func listCategoriesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_categories",
		Description: "List all component categories in creation order",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// addCategoryTool returns the tool definition for add_category
func addCategoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "add_category",
		Description: "Create a user category. Built-in category names are reserved.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: categoryFieldProperties(),
			Required:   []string{"name"},
		},
	}
}

// updateCategoryTool returns the tool definition for update_category
func updateCategoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "update_category",
		Description: "Update a category. Omitted fields keep their value. System categories cannot be renamed; renaming a user category retags its components.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: withProperties(categoryFieldProperties(), map[string]interface{}{
				"id": idProperty("Category id"),
			}),
			Required: []string{"id"},
		},
	}
}

// deleteCategoryTool returns the tool definition for delete_category
func deleteCategoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "delete_category",
		Description: "Delete a user category. Its components are moved to the \"Other\" category.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Category id"),
			},
			Required: []string{"id"},
		},
	}
}

// categoryUsageTool returns the tool definition for category_usage
func categoryUsageTool() mcp.Tool {
	return mcp.Tool{
		Name:        "category_usage",
		Description: "Count the components of a category and report whether it can be deleted",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Category id (takes precedence over name)"),
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Category name",
				},
			},
		},
	}
}

// listComponentsTool returns the tool definition for list_components
func listComponentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_components",
		Description: "List components ordered by name, optionally restricted to one category",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Exact category name",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results (0 for all)",
					"default":     0,
					"minimum":     0,
				},
			},
		},
	}
}

// getComponentTool returns the tool definition for get_component
func getComponentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component",
		Description: "Get one component by id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Component id"),
			},
			Required: []string{"id"},
		},
	}
}

// addComponentTool returns the tool definition for add_component
func addComponentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "add_component",
		Description: "Add a component. Passive categories need value and package; active categories need operating_voltage and pin_count.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: componentFieldProperties(),
			Required:   []string{"name", "category"},
		},
	}
}

// updateComponentTool returns the tool definition for update_component
func updateComponentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "update_component",
		Description: "Update a component. Omitted fields keep their value.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: withProperties(componentFieldProperties(), map[string]interface{}{
				"id": idProperty("Component id"),
			}),
			Required: []string{"id"},
		},
	}
}

// deleteComponentTool returns the tool definition for delete_component
func deleteComponentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "delete_component",
		Description: "Delete a component by id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Component id"),
			},
			Required: []string{"id"},
		},
	}
}

// lowStockTool returns the tool definition for low_stock
func lowStockTool() mcp.Tool {
	return mcp.Tool{
		Name:        "low_stock",
		Description: "List components with quantity below the threshold, lowest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"threshold": map[string]interface{}{
					"type":        "integer",
					"description": "Quantity threshold; defaults to the configured ui.lowStockThreshold",
					"minimum":     0,
				},
			},
		},
	}
}

// searchComponentsTool returns the tool definition for search_components
func searchComponentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_components",
		Description: "Find components whose name contains the query, ignoring case",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Substring to match",
				},
			},
			Required: []string{"query"},
		},
	}
}

// inventoryStatsTool returns the tool definition for inventory_stats
func inventoryStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "inventory_stats",
		Description: "Count components, categories and low-stock components",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"threshold": map[string]interface{}{
					"type":        "integer",
					"description": "Quantity threshold; defaults to the configured ui.lowStockThreshold",
					"minimum":     0,
				},
			},
		},
	}
}
