package driven

import "github.com/custodia-labs/inkmark/internal/core/domain"

// RenderNode is one node of a live render tree, narrowed to what the
// engine needs to resolve pages and hosts.
type RenderNode interface {
	// Parent returns the enclosing node, or nil at the document root.
	Parent() RenderNode

	// Attribute returns a marker attribute such as "data-page-number".
	Attribute(name string) (string, bool)

	// BoundingBox returns the node's viewport rectangle in device pixels.
	BoundingBox() domain.PixelRect
}

// Selection is an active text selection reported by the host application.
type Selection interface {
	// IsCollapsed reports whether the selection is a caret with no extent.
	IsCollapsed() bool

	// Text returns the selected text.
	Text() string

	// StartNode returns the node the selection range starts in.
	StartNode() RenderNode

	// ClientRects returns the range's client rectangles in device pixels.
	ClientRects() []domain.PixelRect
}

// PageResolver maps a render node to the page it belongs to and to the
// box that page's coordinates are normalised against.
type PageResolver interface {
	// ResolvePageNumber returns the 1-based page containing node and the
	// page element itself. It returns (1, nil) when no page marker exists.
	ResolvePageNumber(node RenderNode) (int, RenderNode)

	// ResolveHostBounds returns the render host box for a page element,
	// falling back to the page element and then the document root. The
	// second result is false when no node could be found.
	ResolveHostBounds(pageNode, startNode RenderNode) (domain.PixelRect, bool)
}
