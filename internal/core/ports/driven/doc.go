// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - HighlightStore: highlight persistence (SQLite or in-memory)
//   - ConfigStore: application configuration, including geometry thresholds
//
// # Selection Source
//
// A text selection arrives from whatever renders the document. The engine
// only needs a narrow view of it:
//
//   - Selection: collapsed flag, text, start node and client rectangles
//   - RenderNode: parent, marker attributes and bounding box
//   - PageResolver: finds the page number and page host box for a node
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
