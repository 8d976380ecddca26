package domain

// GeometrySettings holds the empirically tuned thresholds used by the
// highlight geometry pipeline. All values are fractions of the page box.
type GeometrySettings struct {
	// YThreshold is the maximum vertical distance from a line group's
	// representative y for a fragment to join that group.
	YThreshold float64

	// GapThreshold is the horizontal gap that splits a line group, keeping
	// multi-column selections apart.
	GapThreshold float64

	// TopPadRatio is the fraction of a line box's height trimmed from the top.
	TopPadRatio float64

	// HeightRatio is the fraction of a line box's height kept.
	HeightRatio float64

	// OverlapEpsilon is the minimum intersection width and height for two
	// rectangles to count as overlapping.
	OverlapEpsilon float64

	// MaxFragmentHeight drops fragments taller than this before grouping.
	MaxFragmentHeight float64

	// MaxFragmentArea drops fragments covering more of the page than this.
	MaxFragmentArea float64
}

// Default geometry thresholds.
const (
	DefaultYThreshold        = 0.012
	DefaultGapThreshold      = 0.06
	DefaultTopPadRatio       = 0.14
	DefaultHeightRatio       = 0.72
	DefaultOverlapEpsilon    = 0.0005
	DefaultMaxFragmentHeight = 0.15
	DefaultMaxFragmentArea   = 0.1
)

// DefaultGeometrySettings returns the tuned defaults.
func DefaultGeometrySettings() GeometrySettings {
	return GeometrySettings{
		YThreshold:        DefaultYThreshold,
		GapThreshold:      DefaultGapThreshold,
		TopPadRatio:       DefaultTopPadRatio,
		HeightRatio:       DefaultHeightRatio,
		OverlapEpsilon:    DefaultOverlapEpsilon,
		MaxFragmentHeight: DefaultMaxFragmentHeight,
		MaxFragmentArea:   DefaultMaxFragmentArea,
	}
}

// Validate reports whether every threshold is usable.
func (s GeometrySettings) Validate() error {
	switch {
	case s.YThreshold < 0, s.GapThreshold < 0, s.OverlapEpsilon < 0:
		return ErrInvalidInput
	case s.TopPadRatio < 0 || s.TopPadRatio >= 1:
		return ErrInvalidInput
	case s.HeightRatio <= 0 || s.HeightRatio > 1:
		return ErrInvalidInput
	case s.TopPadRatio+s.HeightRatio > 1:
		return ErrInvalidInput
	case s.MaxFragmentHeight <= 0 || s.MaxFragmentArea <= 0:
		return ErrInvalidInput
	default:
		return nil
	}
}
