// Package geometry turns noisy, fragmented selection rectangles into clean
// per-line highlight bands and answers overlap and hit-test questions about
// them.
//
// The pipeline, leaf-first:
//
//   - ClampRect / RectsOverlap / UnionRects: rectangle primitives
//   - GroupByLine / SplitByHorizontalGap / MergeLineGroup: line merging
//   - ShrinkForLegibility: trims line boxes down to glyph bands
//   - Normalizer: runs the whole pipeline with a set of thresholds
//   - PickHighlightAtPoint: resolves the topmost highlight under a point
//
// All coordinates are page-relative fractions in [0,1], origin top-left.
// Nothing in this package performs I/O.
package geometry
