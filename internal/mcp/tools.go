package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/electrabase/internal/storage"
	"github.com/dshills/electrabase/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeNotFound      = -32001 // Category or component does not exist
	ErrorCodeConstraint    = -32002 // Duplicate name or missing required column
	ErrorCodeProtected     = -32003 // System category cannot be deleted or renamed
	ErrorCodeUnavailable   = -32004 // Database cannot be used
)

// Category tools

// handleListCategories handles the list_categories tool invocation
func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := s.inventory.ListCategories(ctx)
	if err != nil {
		return nil, toolError("failed to list categories", err)
	}

	views := make([]map[string]interface{}, 0, len(categories))
	for _, c := range categories {
		views = append(views, categoryView(c))
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"categories": views,
		"count":      len(views),
	})), nil
}

// handleAddCategory handles the add_category tool invocation
func (s *Server) handleAddCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}

	c := types.Category{
		Name:        name,
		IsPassive:   getBoolDefault(args, "is_passive", false),
		IsActive:    getBoolDefault(args, "is_active", false),
		DefaultUnit: getStringDefault(args, "default_unit", ""),
	}
	id, err := s.inventory.AddCategory(ctx, c)
	if err != nil {
		return nil, toolError("failed to add category", err)
	}

	c.ID = id
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"created":  true,
		"category": categoryView(c),
	})), nil
}

// handleUpdateCategory handles the update_category tool invocation
func (s *Server) handleUpdateCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, err := requireID(args, "id")
	if err != nil {
		return nil, err
	}

	c, ok, err := s.inventory.GetCategory(ctx, id)
	if err != nil {
		return nil, toolError("failed to get category", err)
	}
	if !ok {
		return nil, notFound("category", id)
	}

	c.Name = getStringDefault(args, "name", c.Name)
	c.IsPassive = getBoolDefault(args, "is_passive", c.IsPassive)
	c.IsActive = getBoolDefault(args, "is_active", c.IsActive)
	c.DefaultUnit = getStringDefault(args, "default_unit", c.DefaultUnit)

	if err := s.inventory.UpdateCategory(ctx, c); err != nil {
		return nil, toolError("failed to update category", err)
	}

	updated, _, err := s.inventory.GetCategory(ctx, id)
	if err != nil {
		return nil, toolError("failed to get category", err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"updated":  true,
		"category": categoryView(updated),
	})), nil
}

// handleDeleteCategory handles the delete_category tool invocation
func (s *Server) handleDeleteCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, err := requireID(args, "id")
	if err != nil {
		return nil, err
	}

	moved, err := s.inventory.DeleteCategory(ctx, id)
	if err != nil {
		return nil, toolError("failed to delete category", err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"deleted":       true,
		"reassigned":    moved,
		"reassigned_to": types.FallbackCategory,
	})), nil
}

// handleCategoryUsage handles the category_usage tool invocation
func (s *Server) handleCategoryUsage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, hasID, err := getInt64(args, "id")
	if err != nil {
		return nil, err
	}

	var c types.Category
	var ok bool
	if hasID {
		c, ok, err = s.inventory.GetCategory(ctx, id)
	} else if name := getStringDefault(args, "name", ""); name != "" {
		c, ok, err = s.inventory.GetCategoryByName(ctx, name)
	} else {
		return nil, newMCPError(ErrorCodeInvalidParams, "id or name parameter is required", map[string]interface{}{
			"param":  "id",
			"reason": "missing",
		})
	}
	if err != nil {
		return nil, toolError("failed to get category", err)
	}
	if !ok {
		return nil, newMCPError(ErrorCodeNotFound, "category not found", nil)
	}

	count, err := s.inventory.ComponentCountForCategory(ctx, c.Name)
	if err != nil {
		return nil, toolError("failed to count components", err)
	}
	canDelete, err := s.inventory.CanDeleteCategory(ctx, c.ID)
	if err != nil {
		return nil, toolError("failed to check category", err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"category":   categoryView(c),
		"components": count,
		"can_delete": canDelete,
	})), nil
}

// Component tools

// handleListComponents handles the list_components tool invocation
func (s *Server) handleListComponents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	limit, err := getIntDefault(args, "limit", 0)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must not be negative", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	opts := []storage.ListOption{storage.OrderByName()}
	if category := getStringDefault(args, "category", ""); category != "" {
		opts = append(opts, storage.ByCategory(category))
	}
	if limit > 0 {
		opts = append(opts, storage.WithLimit(uint64(limit)))
	}

	components, err := s.inventory.Query(ctx, opts...)
	if err != nil {
		return nil, toolError("failed to list components", err)
	}
	return mcp.NewToolResultText(formatJSON(s.componentList(components))), nil
}

// handleGetComponent handles the get_component tool invocation
func (s *Server) handleGetComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, err := requireID(args, "id")
	if err != nil {
		return nil, err
	}

	c, ok, err := s.inventory.GetComponent(ctx, id)
	if err != nil {
		return nil, toolError("failed to get component", err)
	}
	if !ok {
		return nil, notFound("component", id)
	}
	return mcp.NewToolResultText(formatJSON(s.componentView(c))), nil
}

// handleAddComponent handles the add_component tool invocation
func (s *Server) handleAddComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	categoryName, err := requireString(args, "category")
	if err != nil {
		return nil, err
	}

	category, ok, err := s.inventory.GetCategoryByName(ctx, categoryName)
	if err != nil {
		return nil, toolError("failed to get category", err)
	}
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "unknown category", map[string]interface{}{
			"param": "category",
			"value": categoryName,
		})
	}

	base := types.Component{ID: types.UnsavedID, Name: name, Kind: category.Kind()}
	c, err := applyComponentArgs(base, category, args)
	if err != nil {
		return nil, err
	}

	id, err := s.inventory.AddComponent(ctx, c)
	if err != nil {
		return nil, toolError("failed to add component", err)
	}

	c.ID = id
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"created":   true,
		"component": s.componentView(c),
	})), nil
}

// handleUpdateComponent handles the update_component tool invocation
func (s *Server) handleUpdateComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, err := requireID(args, "id")
	if err != nil {
		return nil, err
	}

	existing, ok, err := s.inventory.GetComponent(ctx, id)
	if err != nil {
		return nil, toolError("failed to get component", err)
	}
	if !ok {
		return nil, notFound("component", id)
	}

	categoryName := getStringDefault(args, "category", existing.Category)
	category, ok, err := s.inventory.GetCategoryByName(ctx, categoryName)
	if err != nil {
		return nil, toolError("failed to get category", err)
	}
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "unknown category", map[string]interface{}{
			"param": "category",
			"value": categoryName,
		})
	}

	c, err := applyComponentArgs(existing, category, args)
	if err != nil {
		return nil, err
	}
	if err := s.inventory.UpdateComponent(ctx, c); err != nil {
		return nil, toolError("failed to update component", err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"updated":   true,
		"component": s.componentView(c),
	})), nil
}

// handleDeleteComponent handles the delete_component tool invocation
func (s *Server) handleDeleteComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, err := requireID(args, "id")
	if err != nil {
		return nil, err
	}

	if err := s.inventory.DeleteComponent(ctx, id); err != nil {
		return nil, toolError("failed to delete component", err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"deleted": true,
		"id":      id,
	})), nil
}

// Query tools

// handleLowStock handles the low_stock tool invocation
func (s *Server) handleLowStock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	threshold, err := s.thresholdArg(args)
	if err != nil {
		return nil, err
	}

	components, err := s.inventory.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, toolError("failed to list low stock", err)
	}

	response := s.componentList(components)
	response["threshold"] = threshold
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearchComponents handles the search_components tool invocation
func (s *Server) handleSearchComponents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	query, err := requireString(args, "query")
	if err != nil {
		return nil, err
	}

	components, err := s.inventory.SearchByName(ctx, query)
	if err != nil {
		return nil, toolError("search failed", err)
	}

	response := s.componentList(components)
	response["query"] = query
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleInventoryStats handles the inventory_stats tool invocation
func (s *Server) handleInventoryStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	threshold, err := s.thresholdArg(args)
	if err != nil {
		return nil, err
	}

	stats, err := s.inventory.Stats(ctx, threshold)
	if err != nil {
		return nil, toolError("failed to compute statistics", err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"components": stats.Components,
		"categories": stats.Categories,
		"low_stock":  stats.LowStock,
		"threshold":  stats.Threshold,
	})), nil
}

// Views

func categoryView(c types.Category) map[string]interface{} {
	return map[string]interface{}{
		"id":           c.ID,
		"name":         c.Name,
		"is_passive":   c.IsPassive,
		"is_active":    c.IsActive,
		"default_unit": c.DefaultUnit,
		"is_system":    c.IsSystem,
		"kind":         string(c.Kind()),
	}
}

func (s *Server) componentView(c types.Component) map[string]interface{} {
	view := map[string]interface{}{
		"id":           c.ID,
		"name":         c.Name,
		"manufacturer": c.Manufacturer,
		"quantity":     c.Quantity,
		"category":     c.Category,
		"kind":         string(c.Kind),
		"value":        c.DisplayValue(),
		"package":      c.DisplayPackage(),
		"details":      c.Details(),
		"low_stock":    c.IsLowStock(s.threshold),
	}
	if c.Passive != nil {
		view["passive"] = map[string]interface{}{
			"value":   c.Passive.Value,
			"unit":    c.Passive.Unit,
			"package": c.Passive.Package,
		}
	}
	if c.Active != nil {
		view["active"] = map[string]interface{}{
			"operating_voltage": c.Active.OperatingVoltage,
			"pin_count":         c.Active.PinCount,
			"datasheet_link":    c.Active.DatasheetLink,
		}
	}
	return view
}

func (s *Server) componentList(components []types.Component) map[string]interface{} {
	views := make([]map[string]interface{}, 0, len(components))
	for _, c := range components {
		views = append(views, s.componentView(c))
	}
	return map[string]interface{}{
		"components": views,
		"count":      len(views),
	}
}

// applyComponentArgs overlays tool arguments on c and switches its variant
// to the kind of category. Variant fields missing from args keep the
// current value when the kind is unchanged.
func applyComponentArgs(c types.Component, category types.Category, args map[string]interface{}) (types.Component, error) {
	c = c.Clone()
	c.Name = getStringDefault(args, "name", c.Name)
	c.Manufacturer = getStringDefault(args, "manufacturer", c.Manufacturer)
	quantity, err := getIntDefault(args, "quantity", c.Quantity)
	if err != nil {
		return types.Component{}, err
	}
	c.Quantity = quantity
	c.Category = category.Name

	kind := category.Kind()
	if kind != c.Kind {
		c.Passive, c.Active = nil, nil
	}
	c.Kind = kind

	switch kind {
	case types.KindActive:
		if c.Active == nil {
			c.Active = &types.ActiveFields{}
		}
		c.Active.OperatingVoltage = getFloatDefault(args, "operating_voltage", c.Active.OperatingVoltage)
		pins, err := getIntDefault(args, "pin_count", c.Active.PinCount)
		if err != nil {
			return types.Component{}, err
		}
		c.Active.PinCount = pins
		c.Active.DatasheetLink = getStringDefault(args, "datasheet_link", c.Active.DatasheetLink)
	default:
		if c.Passive == nil {
			c.Passive = &types.PassiveFields{Unit: category.DefaultUnit}
		}
		c.Passive.Value = getFloatDefault(args, "value", c.Passive.Value)
		c.Passive.Unit = getStringDefault(args, "unit", c.Passive.Unit)
		c.Passive.Package = getStringDefault(args, "package", c.Passive.Package)
	}
	return c, nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// toolError maps an inventory error onto an MCP error code
func toolError(message string, err error) error {
	code := ErrorCodeInternalError
	switch {
	case errors.Is(err, types.ErrValidation):
		code = ErrorCodeInvalidParams
	case errors.Is(err, types.ErrNotFound):
		code = ErrorCodeNotFound
	case errors.Is(err, types.ErrConstraint):
		code = ErrorCodeConstraint
	case errors.Is(err, types.ErrProtected):
		code = ErrorCodeProtected
	case errors.Is(err, types.ErrConnection):
		code = ErrorCodeUnavailable
	}
	return newMCPError(code, message, map[string]interface{}{
		"error": err.Error(),
	})
}

func notFound(entity string, id int64) error {
	return newMCPError(ErrorCodeNotFound, entity+" not found", map[string]interface{}{
		"id": id,
	})
}

// arguments extracts the argument map; a call without arguments yields an
// empty map
func arguments(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	return args, nil
}

func requireString(args map[string]interface{}, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok || strings.TrimSpace(val) == "" {
		return "", newMCPError(ErrorCodeInvalidParams, key+" parameter is required", map[string]interface{}{
			"param":  key,
			"reason": "missing or empty",
		})
	}
	return val, nil
}

func requireID(args map[string]interface{}, key string) (int64, error) {
	id, ok, err := getInt64(args, key)
	if err != nil {
		return 0, err
	}
	if !ok || id < 1 {
		return 0, newMCPError(ErrorCodeInvalidParams, key+" parameter must be a positive integer", map[string]interface{}{
			"param":  key,
			"reason": "missing or invalid",
		})
	}
	return id, nil
}

func (s *Server) thresholdArg(args map[string]interface{}) (int, error) {
	threshold, err := getIntDefault(args, "threshold", s.threshold)
	if err != nil {
		return 0, err
	}
	if threshold < 0 {
		return 0, newMCPError(ErrorCodeInvalidParams, "threshold must not be negative", map[string]interface{}{
			"param": "threshold",
			"value": threshold,
		})
	}
	return threshold, nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value.
// JSON numbers with a fractional part are rejected, not truncated.
func getIntDefault(args map[string]interface{}, key string, defaultValue int) (int, error) {
	val, ok, err := getInt64(args, key)
	if err != nil || !ok {
		return defaultValue, err
	}
	return int(val), nil
}

// getInt64 extracts an integer parameter, reporting whether it was present
func getInt64(args map[string]interface{}, key string) (int64, bool, error) {
	switch val := args[key].(type) {
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return 0, false, newMCPError(ErrorCodeInvalidParams, key+" parameter must be an integer", map[string]interface{}{
				"param": key,
				"value": val,
			})
		}
		return int64(val), true, nil
	case int:
		return int64(val), true, nil
	case int64:
		return val, true, nil
	}
	return 0, false, nil
}

// getFloatDefault extracts a number parameter with a default value
func getFloatDefault(args map[string]interface{}, key string, defaultValue float64) float64 {
	switch val := args[key].(type) {
	case float64:
		return val
	case int:
		return float64(val)
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
