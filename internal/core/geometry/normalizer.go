package geometry

import "github.com/custodia-labs/inkmark/internal/core/domain"

// Normalizer runs the rect pipeline with a fixed set of thresholds.
// The zero value is not usable; use NewNormalizer or DefaultNormalizer.
type Normalizer struct {
	settings domain.GeometrySettings
}

// NewNormalizer creates a normalizer. Invalid settings fall back to the
// tuned defaults.
func NewNormalizer(settings domain.GeometrySettings) *Normalizer {
	if settings.Validate() != nil {
		settings = domain.DefaultGeometrySettings()
	}
	return &Normalizer{settings: settings}
}

// DefaultNormalizer returns a normalizer using the tuned defaults.
func DefaultNormalizer() *Normalizer {
	return &Normalizer{settings: domain.DefaultGeometrySettings()}
}

// Settings returns the thresholds in use.
func (n *Normalizer) Settings() domain.GeometrySettings {
	return n.settings
}

// MergeRectsByLine collapses fragments into one rect per line segment,
// sorted top-to-bottom. Fragments too large to be a line of text are
// dropped before grouping.
func (n *Normalizer) MergeRectsByLine(rects []domain.NormalizedRect) []domain.NormalizedRect {
	fragments := dropOversized(UnionRects(rects), n.settings.MaxFragmentHeight, n.settings.MaxFragmentArea)
	return n.mergeByLine(fragments)
}

// mergeByLine groups already clamped fragments without any size filter.
func (n *Normalizer) mergeByLine(fragments []domain.NormalizedRect) []domain.NormalizedRect {
	var merged []domain.NormalizedRect
	for _, group := range GroupByLine(fragments, n.settings.YThreshold) {
		for _, sub := range SplitByHorizontalGap(group, n.settings.GapThreshold) {
			merged = append(merged, MergeLineGroup(sub))
		}
	}
	sortByPosition(merged)
	return merged
}

// Normalize turns raw layout rectangles into legibility bands. The result
// is empty when nothing survives clamping and oversize rejection.
func (n *Normalizer) Normalize(rects []domain.NormalizedRect) []domain.NormalizedRect {
	return n.shrink(n.MergeRectsByLine(rects))
}

// Renormalize re-runs the pipeline over rects that are already bands, for
// example the union of two stored highlights. Each band is expanded back to
// its line box first so repeated passes do not keep shrinking the geometry.
// Bands skip the oversize filter: a merged line box such as a wide headline
// can exceed the per-fragment limits its fragments met.
func (n *Normalizer) Renormalize(bands []domain.NormalizedRect) []domain.NormalizedRect {
	boxes := make([]domain.NormalizedRect, 0, len(bands))
	for _, b := range bands {
		boxes = append(boxes, ExpandFromLegibility(b, n.settings.TopPadRatio, n.settings.HeightRatio))
	}
	return n.shrink(n.mergeByLine(UnionRects(boxes)))
}

func (n *Normalizer) shrink(lines []domain.NormalizedRect) []domain.NormalizedRect {
	out := make([]domain.NormalizedRect, 0, len(lines))
	for _, r := range lines {
		band := ShrinkForLegibility(r, n.settings.TopPadRatio, n.settings.HeightRatio)
		if band.IsEmpty() {
			continue
		}
		out = append(out, band)
	}
	return out
}

// Overlap reports whether two rect sets overlap using the configured epsilon.
func (n *Normalizer) Overlap(a, b []domain.NormalizedRect) bool {
	return RectSetsOverlap(a, b, n.settings.OverlapEpsilon)
}

// NormalizeHighlightRects runs the pipeline with the default thresholds.
// Its input is raw layout rectangles and its output is bands, so feeding the
// output back in shrinks it again. Use Renormalize on bands; that pass is
// stable: Renormalize(NormalizeHighlightRects(x)) equals
// NormalizeHighlightRects(x).
func NormalizeHighlightRects(rects []domain.NormalizedRect) []domain.NormalizedRect {
	return DefaultNormalizer().Normalize(rects)
}
