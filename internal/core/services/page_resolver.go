package services

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/ports/driven"
)

// Marker attributes the render tree uses to tag pages and page hosts.
const (
	AttrPageNumber = "data-page-number"
	AttrPageHost   = "data-page-host"
)

// Ensure AncestorPageResolver implements the interface.
var _ driven.PageResolver = (*AncestorPageResolver)(nil)

// AncestorPageResolver resolves pages and hosts by walking up a render tree
// looking for marker attributes.
type AncestorPageResolver struct {
	pageAttr string
	hostAttr string
}

// NewAncestorPageResolver creates a resolver using the default markers.
func NewAncestorPageResolver() *AncestorPageResolver {
	return &AncestorPageResolver{pageAttr: AttrPageNumber, hostAttr: AttrPageHost}
}

// ResolvePageNumber returns the page number of the nearest ancestor
// carrying the page marker. Without a marker it returns page 1 and a nil
// page node; an unparsable or non-positive marker also yields page 1.
func (r *AncestorPageResolver) ResolvePageNumber(node driven.RenderNode) (int, driven.RenderNode) {
	for n := node; n != nil; n = n.Parent() {
		value, ok := n.Attribute(r.pageAttr)
		if !ok {
			continue
		}
		page, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || page < 1 {
			return 1, n
		}
		return page, n
	}
	return 1, nil
}

// ResolveHostBounds returns the box of the nearest page host above the
// page element. Without a host it falls back to the page element, and
// without a page element to the document root above startNode.
func (r *AncestorPageResolver) ResolveHostBounds(pageNode, startNode driven.RenderNode) (domain.PixelRect, bool) {
	for n := pageNode; n != nil; n = n.Parent() {
		if _, ok := n.Attribute(r.hostAttr); ok {
			return n.BoundingBox(), true
		}
	}
	if pageNode != nil {
		return pageNode.BoundingBox(), true
	}

	root := startNode
	for root != nil && root.Parent() != nil {
		root = root.Parent()
	}
	if root == nil {
		return domain.PixelRect{}, false
	}
	return root.BoundingBox(), true
}
