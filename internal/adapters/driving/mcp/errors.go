// Package mcp provides an MCP (Model Context Protocol) server adapter for
// inkmark. It lets AI assistants create, inspect and edit highlights.
package mcp

import "errors"

// ErrMissingHighlightService is returned when the highlight service is not provided.
var ErrMissingHighlightService = errors.New("mcp: highlight service is required")
