package geometry

import (
	"math"
	"sort"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/custodia-labs/inkmark/internal/core/domain"
)

// unitBox is the full page in normalised coordinates.
var unitBox = r2.Rect{X: r1.Interval{Lo: 0, Hi: 1}, Y: r1.Interval{Lo: 0, Hi: 1}}

func toR2(r domain.NormalizedRect) r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: r.X, Hi: r.X + r.Width},
		Y: r1.Interval{Lo: r.Y, Hi: r.Y + r.Height},
	}
}

func fromR2(r r2.Rect) domain.NormalizedRect {
	if r.IsEmpty() {
		return domain.NormalizedRect{}
	}
	return domain.NormalizedRect{
		X:      r.X.Lo,
		Y:      r.Y.Lo,
		Width:  r.X.Length(),
		Height: r.Y.Length(),
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// ClampRect forces r inside the unit page box. The result always has
// non-negative width and height; callers drop zero-area rects themselves.
func ClampRect(r domain.NormalizedRect) domain.NormalizedRect {
	x := clamp01(r.X)
	y := clamp01(r.Y)
	w := clamp01(math.Min(r.Width, 1-x))
	h := clamp01(math.Min(r.Height, 1-y))
	return domain.NormalizedRect{X: x, Y: y, Width: w, Height: h}
}

// RectsOverlap reports whether a and b intersect by more than epsilon in
// both dimensions. Edge-adjacent rectangles do not overlap.
func RectsOverlap(a, b domain.NormalizedRect, epsilon float64) bool {
	size := toR2(a).Intersection(toR2(b)).Size()
	return size.X > epsilon && size.Y > epsilon
}

// RectSetsOverlap reports whether any rect in a overlaps any rect in b.
func RectSetsOverlap(a, b []domain.NormalizedRect, epsilon float64) bool {
	for _, ra := range a {
		for _, rb := range b {
			if RectsOverlap(ra, rb, epsilon) {
				return true
			}
		}
	}
	return false
}

// UnionRects clamps every rect, drops the zero-area ones and returns the
// rest sorted top-to-bottom, then left-to-right.
func UnionRects(rects []domain.NormalizedRect) []domain.NormalizedRect {
	out := make([]domain.NormalizedRect, 0, len(rects))
	for _, r := range rects {
		c := ClampRect(r)
		if c.IsEmpty() {
			continue
		}
		out = append(out, c)
	}
	sortByPosition(out)
	return out
}

// BoundingRect returns the smallest rect containing every input rect.
// It returns the zero rect for empty input.
func BoundingRect(rects []domain.NormalizedRect) domain.NormalizedRect {
	if len(rects) == 0 {
		return domain.NormalizedRect{}
	}
	box := r2.EmptyRect()
	for _, r := range rects {
		box = box.Union(toR2(r))
	}
	return fromR2(box.Intersection(unitBox))
}

func sortByPosition(rects []domain.NormalizedRect) {
	sort.SliceStable(rects, func(i, j int) bool {
		if rects[i].Y != rects[j].Y {
			return rects[i].Y < rects[j].Y
		}
		return rects[i].X < rects[j].X
	})
}
