// Package domain defines the core business entities for inkmark.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Highlight: A persisted annotation on one document page
//   - ContextRange: The page, rectangles and zoom a highlight is anchored to
//   - NormalizedRect: A page-relative rectangle in [0,1] coordinates
//   - SelectionInfo: The transient result of extracting a text selection
//   - GeometrySettings: Tuned thresholds for the geometry pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
