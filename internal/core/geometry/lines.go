package geometry

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/custodia-labs/inkmark/internal/core/domain"
)

// lineGroup is a cluster of fragments on the same visual text line.
// y is the representative: the y of the fragment that started the group.
type lineGroup struct {
	y     float64
	rects []domain.NormalizedRect
}

// GroupByLine clusters rects in a single pass. Each rect joins the first
// existing group whose representative y lies within yThreshold, otherwise
// it starts a new group. The result depends on input order; callers pass
// rects sorted by (y, x) as UnionRects returns them.
func GroupByLine(rects []domain.NormalizedRect, yThreshold float64) [][]domain.NormalizedRect {
	var groups []*lineGroup
	for _, r := range rects {
		var target *lineGroup
		for _, g := range groups {
			if math.Abs(r.Y-g.y) <= yThreshold {
				target = g
				break
			}
		}
		if target == nil {
			target = &lineGroup{y: r.Y}
			groups = append(groups, target)
		}
		target.rects = append(target.rects, r)
	}

	out := make([][]domain.NormalizedRect, len(groups))
	for i, g := range groups {
		out[i] = g.rects
	}
	return out
}

// SplitByHorizontalGap breaks a line group wherever the next fragment
// starts more than gapThreshold to the right of everything seen so far.
// This keeps a selection crossing a column gutter from merging into one
// wide band.
func SplitByHorizontalGap(group []domain.NormalizedRect, gapThreshold float64) [][]domain.NormalizedRect {
	if len(group) == 0 {
		return nil
	}

	sorted := append([]domain.NormalizedRect(nil), group...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var out [][]domain.NormalizedRect
	current := []domain.NormalizedRect{sorted[0]}
	right := sorted[0].Right()
	for _, r := range sorted[1:] {
		if r.X-right > gapThreshold {
			out = append(out, current)
			current = []domain.NormalizedRect{r}
			right = r.Right()
			continue
		}
		current = append(current, r)
		right = math.Max(right, r.Right())
	}
	return append(out, current)
}

// MergeLineGroup returns the clamped bounding box of a subgroup.
func MergeLineGroup(subgroup []domain.NormalizedRect) domain.NormalizedRect {
	if len(subgroup) == 0 {
		return domain.NormalizedRect{}
	}
	box := r2.EmptyRect()
	for _, r := range subgroup {
		box = box.Union(toR2(r))
	}
	return ClampRect(fromR2(box))
}

// dropOversized removes fragments that cannot be a line of text: anything
// taller than maxHeight or covering more than maxArea of the page. These
// come from accidental drags across images or margins.
func dropOversized(rects []domain.NormalizedRect, maxHeight, maxArea float64) []domain.NormalizedRect {
	out := rects[:0:0]
	for _, r := range rects {
		if r.Height > maxHeight || r.Area() > maxArea {
			continue
		}
		out = append(out, r)
	}
	return out
}
