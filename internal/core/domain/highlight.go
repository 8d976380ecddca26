package domain

import (
	"strings"
	"time"
)

// HighlightColor is the closed set of colours a highlight can carry.
type HighlightColor string

// Available highlight colours.
const (
	ColorYellow HighlightColor = "yellow"
	ColorRed    HighlightColor = "red"
	ColorBlue   HighlightColor = "blue"
)

// DefaultHighlightColor is used when a caller does not pick one.
const DefaultHighlightColor = ColorYellow

// HighlightColors lists every valid colour in display order.
func HighlightColors() []HighlightColor {
	return []HighlightColor{ColorYellow, ColorRed, ColorBlue}
}

// IsValid returns true if the colour is recognised.
func (c HighlightColor) IsValid() bool {
	switch c {
	case ColorYellow, ColorRed, ColorBlue:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c HighlightColor) String() string {
	return string(c)
}

// ParseHighlightColor converts user input into a HighlightColor.
// Matching is case-insensitive; unknown values return ErrInvalidInput.
func ParseHighlightColor(s string) (HighlightColor, error) {
	c := HighlightColor(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidInput
	}
	return c, nil
}

// NormalizedRect is a rectangle expressed as fractions of a page's rendered
// box, origin top-left. Values are kept inside [0,1] by clamping.
type NormalizedRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r NormalizedRect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r NormalizedRect) Bottom() float64 {
	return r.Y + r.Height
}

// Area returns width * height.
func (r NormalizedRect) Area() float64 {
	return r.Width * r.Height
}

// IsEmpty reports whether the rectangle has no positive area.
func (r NormalizedRect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// PixelRect is a device-pixel rectangle as reported by a render tree
// (viewport coordinates, origin top-left).
type PixelRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsEmpty reports whether the rectangle has no positive area.
func (r PixelRect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ContextRange anchors a highlight to one page at one rendering scale.
type ContextRange struct {
	// Page is the 1-based page number.
	Page int `json:"page"`

	// Rects are the normalised highlight bands on the page. Never empty
	// for a stored highlight.
	Rects []NormalizedRect `json:"rects"`

	// Zoom is the rendering scale the selection was made at, if known.
	Zoom *float64 `json:"zoom,omitempty"`
}

// Highlight is a persisted annotation on a single document page.
type Highlight struct {
	// ID is the unique identifier.
	ID string `json:"id"`

	// OwnerID is the document the highlight annotates.
	OwnerID string `json:"owner_id"`

	// Content is the highlighted text.
	Content string `json:"content"`

	// Color is the display colour.
	Color HighlightColor `json:"color"`

	// Note is an optional user note.
	Note *string `json:"note,omitempty"`

	// ContextRange is the geometric anchor.
	ContextRange ContextRange `json:"context_range"`

	// CreatedAt orders highlights; the oldest wins a merge.
	CreatedAt time.Time `json:"created_at"`
}

// Page is shorthand for ContextRange.Page.
func (h Highlight) Page() int {
	return h.ContextRange.Page
}

// Clone returns a deep copy so callers can mutate the result freely.
func (h Highlight) Clone() Highlight {
	out := h
	if h.Note != nil {
		note := *h.Note
		out.Note = &note
	}
	if h.ContextRange.Zoom != nil {
		zoom := *h.ContextRange.Zoom
		out.ContextRange.Zoom = &zoom
	}
	out.ContextRange.Rects = append([]NormalizedRect(nil), h.ContextRange.Rects...)
	return out
}

// SelectionInfo is the ephemeral result of extracting an active text
// selection. It is consumed immediately to build a candidate Highlight.
type SelectionInfo struct {
	Text  string           `json:"text"`
	Page  int              `json:"page"`
	Rects []NormalizedRect `json:"rects"`
}
