package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/geometry"
)

// swatchColours maps highlight colours to terminal backgrounds.
var swatchColours = map[domain.HighlightColor]lipgloss.Color{
	domain.ColorYellow: lipgloss.Color("#F9E2AF"),
	domain.ColorRed:    lipgloss.Color("#F38BA8"),
	domain.ColorBlue:   lipgloss.Color("#89B4FA"),
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colourLabel renders the colour name, as a swatch on terminals.
func colourLabel(w io.Writer, c domain.HighlightColor) string {
	if !isTerminal(w) {
		return c.String()
	}
	bg, ok := swatchColours[c]
	if !ok {
		return c.String()
	}
	return lipgloss.NewRenderer(w).NewStyle().
		Background(bg).
		Foreground(lipgloss.Color("#1E1E2E")).
		Padding(0, 1).
		Render(c.String())
}

func formatRect(r domain.NormalizedRect) string {
	return fmt.Sprintf("x=%.4f y=%.4f w=%.4f h=%.4f", r.X, r.Y, r.Width, r.Height)
}

// parseRect parses "x,y,w,h" in page-relative coordinates.
func parseRect(s string) (domain.NormalizedRect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return domain.NormalizedRect{}, fmt.Errorf("%w: rect %q must be x,y,w,h", domain.ErrInvalidInput, s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.NormalizedRect{}, fmt.Errorf("%w: rect %q: %v", domain.ErrInvalidInput, s, err)
		}
		v[i] = f
	}
	return domain.NormalizedRect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// currentNormalizer builds a normalizer from the configured thresholds.
func currentNormalizer() *geometry.Normalizer {
	if settingsService == nil {
		return geometry.DefaultNormalizer()
	}
	settings, err := settingsService.Get()
	if err != nil {
		return geometry.DefaultNormalizer()
	}
	return geometry.NewNormalizer(settings)
}

func printHighlight(cmd *cobra.Command, h *domain.Highlight) {
	cmd.Printf("  %s  page %d  %s\n", h.ID, h.Page(), colourLabel(cmd.OutOrStderr(), h.Color))
	if h.Content != "" {
		cmd.Printf("    Text:    %s\n", strings.ReplaceAll(h.Content, "\n", " / "))
	}
	if h.Note != nil {
		cmd.Printf("    Note:    %s\n", *h.Note)
	}
	if len(h.ContextRange.Rects) > 0 {
		cmd.Printf("    Box:     %s (%d rects)\n", formatRect(geometry.BoundingRect(h.ContextRange.Rects)), len(h.ContextRange.Rects))
	}
	if h.ContextRange.Zoom != nil {
		cmd.Printf("    Zoom:    %g\n", *h.ContextRange.Zoom)
	}
	cmd.Printf("    Created: %s\n", h.CreatedAt.Format("2006-01-02 15:04:05"))
}
