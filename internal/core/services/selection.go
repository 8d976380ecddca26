package services

import (
	"errors"
	"strings"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/geometry"
	"github.com/custodia-labs/inkmark/internal/core/ports/driven"
	"github.com/custodia-labs/inkmark/internal/core/ports/driving"
	"github.com/custodia-labs/inkmark/internal/logger"
)

// Ensure SelectionService implements the interface.
var _ driving.SelectionService = (*SelectionService)(nil)

// SelectionService turns an active text selection into page-relative
// highlight bands.
type SelectionService struct {
	resolver   driven.PageResolver
	normalizer *geometry.Normalizer
}

// NewSelectionService creates a new selection service.
// Nil arguments fall back to AncestorPageResolver and the default normalizer.
func NewSelectionService(resolver driven.PageResolver, normalizer *geometry.Normalizer) *SelectionService {
	if resolver == nil {
		resolver = NewAncestorPageResolver()
	}
	if normalizer == nil {
		normalizer = geometry.DefaultNormalizer()
	}
	return &SelectionService{
		resolver:   resolver,
		normalizer: normalizer,
	}
}

// Extract returns nil when the selection yields nothing to highlight.
func (s *SelectionService) Extract(sel driven.Selection) *domain.SelectionInfo {
	info, err := s.ExtractStrict(sel)
	if err != nil {
		return nil
	}
	return info
}

// ExtractStrict resolves the selection's page and host, clips every client
// rect to the host box, normalises to [0,1] and runs the rect pipeline.
func (s *SelectionService) ExtractStrict(sel driven.Selection) (*domain.SelectionInfo, error) {
	if sel == nil || sel.IsCollapsed() {
		return nil, domain.ErrEmptySelection
	}
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return nil, domain.ErrEmptySelection
	}

	start := sel.StartNode()
	page, pageNode := s.resolver.ResolvePageNumber(start)

	host, ok := s.resolver.ResolveHostBounds(pageNode, start)
	if !ok || host.IsEmpty() {
		logger.Debug("selection host not laid out", "page", page)
		return nil, domain.ErrUnresolvedHost
	}

	hostBox := pixelBox(host)
	raw := make([]domain.NormalizedRect, 0)
	for _, cr := range sel.ClientRects() {
		if cr.IsEmpty() {
			continue
		}
		clipped := pixelBox(cr).Intersection(hostBox)
		if clipped.IsEmpty() {
			continue
		}
		size := clipped.Size()
		if size.X <= 0 || size.Y <= 0 {
			continue
		}
		r := geometry.ClampRect(domain.NormalizedRect{
			X:      (clipped.X.Lo - host.Left) / host.Width,
			Y:      (clipped.Y.Lo - host.Top) / host.Height,
			Width:  size.X / host.Width,
			Height: size.Y / host.Height,
		})
		if r.IsEmpty() {
			continue
		}
		raw = append(raw, r)
	}
	if len(raw) == 0 {
		return nil, domain.ErrEmptySelection
	}

	rects := s.normalizer.Normalize(raw)
	if len(rects) == 0 {
		logger.Debug("selection geometry degenerate", "page", page, "fragments", len(raw))
		return nil, domain.ErrEmptySelection
	}

	return &domain.SelectionInfo{Text: text, Page: page, Rects: rects}, nil
}

// IsNoSelection reports whether err is one of the no-op selection signals.
func IsNoSelection(err error) bool {
	return errors.Is(err, domain.ErrEmptySelection) || errors.Is(err, domain.ErrUnresolvedHost)
}

func pixelBox(r domain.PixelRect) r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: r.Left, Hi: r.Left + r.Width},
		Y: r1.Interval{Lo: r.Top, Hi: r.Top + r.Height},
	}
}
