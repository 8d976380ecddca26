package geometry

import (
	"sort"

	"github.com/golang/geo/r2"

	"github.com/custodia-labs/inkmark/internal/core/domain"
)

// PickHighlightAtPoint returns the most recently created highlight whose
// rects contain (x, y), bounds inclusive. Newer highlights are drawn on
// top, so they win when several overlap.
func PickHighlightAtPoint(highlights []domain.Highlight, x, y float64) (domain.Highlight, bool) {
	candidates := make([]int, len(highlights))
	for i := range candidates {
		candidates[i] = i
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return highlights[candidates[i]].CreatedAt.After(highlights[candidates[j]].CreatedAt)
	})

	p := r2.Point{X: x, Y: y}
	for _, idx := range candidates {
		for _, r := range highlights[idx].ContextRange.Rects {
			if toR2(r).ContainsPoint(p) {
				return highlights[idx], true
			}
		}
	}
	return domain.Highlight{}, false
}
