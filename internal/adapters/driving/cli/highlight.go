package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkmark/internal/core/domain"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Manage page highlights",
	Long:  `Add, list, pick, recolour, annotate, or remove highlights of a document.`,
}

var highlightAddCmd = &cobra.Command{
	Use:   "add [owner-id]",
	Short: "Highlight a region of a page",
	Long: `Add a highlight from raw layout fragments given in page-relative
coordinates. Fragments are merged per line and trimmed to legibility bands.
A highlight that overlaps existing ones on the page is merged into the oldest.

Example:
  inkmark highlight add report.pdf --page 3 --text "key finding" \
    --rect 0.10,0.20,0.30,0.02 --rect 0.41,0.20,0.20,0.02`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlightAdd,
}

var highlightListCmd = &cobra.Command{
	Use:   "list [owner-id]",
	Short: "List highlights of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlightList,
}

var highlightPickCmd = &cobra.Command{
	Use:   "pick [owner-id]",
	Short: "Show the topmost highlight under a point",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlightPick,
}

var highlightColorCmd = &cobra.Command{
	Use:   "color [owner-id] [highlight-id] [yellow|red|blue]",
	Short: "Change a highlight's colour",
	Args:  cobra.ExactArgs(3),
	RunE:  runHighlightColor,
}

var highlightNoteCmd = &cobra.Command{
	Use:   "note [owner-id] [highlight-id] [note]",
	Short: "Set or clear a highlight's note",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runHighlightNote,
}

var highlightRemoveCmd = &cobra.Command{
	Use:   "remove [owner-id] [highlight-id]",
	Short: "Delete a highlight",
	Args:  cobra.ExactArgs(2),
	RunE:  runHighlightRemove,
}

// Flags for highlight commands.
var (
	addPage        int
	listPage       int
	pickPage       int
	highlightRects []string
	highlightText  string
	highlightColor string
	highlightNote  string
	highlightZoom  float64
	highlightJSON  bool
	pickX, pickY   float64
	noteClear      bool
)

func init() {
	highlightAddCmd.Flags().IntVarP(&addPage, "page", "p", 1, "1-based page number")
	highlightAddCmd.Flags().StringArrayVarP(&highlightRects, "rect", "r", nil, "Layout fragment as x,y,w,h (repeatable)")
	highlightAddCmd.Flags().StringVarP(&highlightText, "text", "t", "", "Highlighted text")
	highlightAddCmd.Flags().StringVarP(&highlightColor, "color", "c", "", "Colour: yellow, red or blue")
	highlightAddCmd.Flags().StringVarP(&highlightNote, "note", "n", "", "Optional note")
	highlightAddCmd.Flags().Float64Var(&highlightZoom, "zoom", 0, "Zoom level the selection was made at")

	highlightListCmd.Flags().IntVarP(&listPage, "page", "p", 0, "Only list this page (0 = all pages)")
	highlightListCmd.Flags().BoolVar(&highlightJSON, "json", false, "Print JSON")

	highlightPickCmd.Flags().IntVarP(&pickPage, "page", "p", 1, "1-based page number")
	highlightPickCmd.Flags().Float64Var(&pickX, "x", 0, "Point x as a fraction of page width")
	highlightPickCmd.Flags().Float64Var(&pickY, "y", 0, "Point y as a fraction of page height")

	highlightNoteCmd.Flags().BoolVar(&noteClear, "clear", false, "Remove the note")

	highlightCmd.AddCommand(highlightAddCmd)
	highlightCmd.AddCommand(highlightListCmd)
	highlightCmd.AddCommand(highlightPickCmd)
	highlightCmd.AddCommand(highlightColorCmd)
	highlightCmd.AddCommand(highlightNoteCmd)
	highlightCmd.AddCommand(highlightRemoveCmd)
	rootCmd.AddCommand(highlightCmd)
}

func runHighlightAdd(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}
	if len(highlightRects) == 0 {
		return errors.New("at least one --rect is required")
	}

	raw := make([]domain.NormalizedRect, 0, len(highlightRects))
	for _, s := range highlightRects {
		r, err := parseRect(s)
		if err != nil {
			return err
		}
		raw = append(raw, r)
	}

	rects := currentNormalizer().Normalize(raw)
	if len(rects) == 0 {
		return fmt.Errorf("nothing to highlight: %w", domain.ErrEmptySelection)
	}

	candidate := domain.Highlight{
		OwnerID:      args[0],
		Content:      highlightText,
		ContextRange: domain.ContextRange{Page: addPage, Rects: rects},
	}
	if highlightColor != "" {
		c, err := domain.ParseHighlightColor(highlightColor)
		if err != nil {
			return err
		}
		candidate.Color = c
	}
	if cmd.Flags().Changed("note") {
		note := highlightNote
		candidate.Note = &note
	}
	if cmd.Flags().Changed("zoom") {
		zoom := highlightZoom
		candidate.ContextRange.Zoom = &zoom
	}

	h, err := highlightService.Add(cmd.Context(), candidate)
	if err != nil {
		return fmt.Errorf("failed to add highlight: %w", err)
	}

	cmd.Println("Saved highlight:")
	printHighlight(cmd, h)
	return nil
}

func runHighlightList(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	ownerID := args[0]
	var (
		highlights []domain.Highlight
		err        error
	)
	if listPage > 0 {
		highlights, err = highlightService.List(cmd.Context(), ownerID, listPage)
	} else {
		highlights, err = highlightService.ListAll(cmd.Context(), ownerID)
	}
	if err != nil {
		return fmt.Errorf("failed to list highlights: %w", err)
	}

	if highlightJSON {
		if highlights == nil {
			highlights = []domain.Highlight{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(highlights)
	}

	if len(highlights) == 0 {
		cmd.Printf("No highlights found for: %s\n", ownerID)
		return nil
	}

	cmd.Printf("Highlights for %s:\n\n", ownerID)
	for i := range highlights {
		printHighlight(cmd, &highlights[i])
		cmd.Println()
	}
	cmd.Printf("Total: %d highlights\n", len(highlights))
	return nil
}

func runHighlightPick(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	h, err := highlightService.PickAt(cmd.Context(), args[0], pickPage, pickX, pickY)
	if err != nil {
		return fmt.Errorf("failed to pick highlight: %w", err)
	}
	if h == nil {
		cmd.Printf("No highlight at (%g, %g) on page %d\n", pickX, pickY, pickPage)
		return nil
	}

	printHighlight(cmd, h)
	return nil
}

func runHighlightColor(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	color, err := domain.ParseHighlightColor(args[2])
	if err != nil {
		return err
	}
	if err := highlightService.SetColor(cmd.Context(), args[0], args[1], color); err != nil {
		return fmt.Errorf("failed to set colour: %w", err)
	}

	cmd.Printf("Highlight %s is now %s.\n", args[1], color)
	return nil
}

func runHighlightNote(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	var note *string
	switch {
	case noteClear && len(args) == 3:
		return errors.New("give a note or --clear, not both")
	case noteClear:
	case len(args) == 3:
		note = &args[2]
	default:
		return errors.New("a note or --clear is required")
	}

	if err := highlightService.SetNote(cmd.Context(), args[0], args[1], note); err != nil {
		return fmt.Errorf("failed to set note: %w", err)
	}

	if note == nil {
		cmd.Printf("Note cleared on highlight %s.\n", args[1])
	} else {
		cmd.Printf("Note saved on highlight %s.\n", args[1])
	}
	return nil
}

func runHighlightRemove(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	if err := highlightService.Remove(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to remove highlight: %w", err)
	}

	cmd.Printf("Highlight %s removed.\n", args[1])
	return nil
}
