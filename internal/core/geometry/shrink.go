package geometry

import "github.com/custodia-labs/inkmark/internal/core/domain"

// ShrinkForLegibility trims a line box vertically so the band hugs glyph
// ink instead of the full line height including leading.
func ShrinkForLegibility(r domain.NormalizedRect, topPadRatio, heightRatio float64) domain.NormalizedRect {
	return ClampRect(domain.NormalizedRect{
		X:      r.X,
		Y:      r.Y + r.Height*topPadRatio,
		Width:  r.Width,
		Height: r.Height * heightRatio,
	})
}

// ExpandFromLegibility is the inverse of ShrinkForLegibility. It recovers
// the line box a stored band was cut from.
func ExpandFromLegibility(r domain.NormalizedRect, topPadRatio, heightRatio float64) domain.NormalizedRect {
	if heightRatio <= 0 {
		return ClampRect(r)
	}
	height := r.Height / heightRatio
	return ClampRect(domain.NormalizedRect{
		X:      r.X,
		Y:      r.Y - height*topPadRatio,
		Width:  r.Width,
		Height: height,
	})
}
