// Package mcp exposes the component inventory as a Model Context Protocol
// (MCP) server.
//
// The server speaks JSON-RPC 2.0 over stdio. Stdout is reserved for the
// protocol; logs go to stderr through zap.
//
// # Tools
//
// Categories:
//   - list_categories: all categories in creation order
//   - add_category: create a user category
//   - update_category: edit a category; renaming retags its components
//   - delete_category: delete a user category, moving its parts to "Other"
//   - category_usage: component count and whether deletion is allowed
//
// Components:
//   - list_components: components ordered by name, optionally by category
//   - get_component, add_component, update_component, delete_component
//
// Queries:
//   - low_stock: components below a quantity threshold
//   - search_components: case-insensitive name substring search
//   - inventory_stats: counts of components, categories and low-stock parts
//
// Example:
//
//	Request:
//	{
//	  "name": "add_component",
//	  "arguments": {
//	    "name": "RES-4K7-0805",
//	    "manufacturer": "Yageo",
//	    "quantity": 150,
//	    "category": "Resistor",
//	    "value": 4700,
//	    "package": "0805"
//	  }
//	}
//
//	Response:
//	{
//	  "created": true,
//	  "component": {
//	    "id": 24,
//	    "kind": "passive",
//	    "value": "4.7kΩ",
//	    "details": "4.7k Ω, Package: 0805, Qty: 150",
//	    ...
//	  }
//	}
//
// # Error Handling
//
// Errors are returned as MCPError values:
//   - -32602: invalid params, including validation failures
//   - -32603: internal error
//   - -32001: category or component not found
//   - -32002: duplicate name or other constraint violation
//   - -32003: system category cannot be deleted or renamed
//   - -32004: database unavailable
//
// # MCP Client Configuration
//
//	{
//	  "mcpServers": {
//	    "electrabase": {
//	      "command": "/usr/local/bin/electrabase",
//	      "args": ["serve", "--db", "/home/me/inventory.db"]
//	    }
//	  }
//	}
package mcp
