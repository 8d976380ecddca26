package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkmark/internal/adapters/driven/selection/snapshot"
	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/services"
	"github.com/custodia-labs/inkmark/internal/logger"
)

var selectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Work with captured text selections",
	Long: `Turn selection snapshots (the selected text, its client rectangles and
the render tree around it, saved as JSON) into page-relative highlight bands.`,
}

var selectionExtractCmd = &cobra.Command{
	Use:   "extract [snapshot.json]",
	Short: "Extract highlight geometry from a selection snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelectionExtract,
}

var selectionWatchCmd = &cobra.Command{
	Use:   "watch [snapshot.json]",
	Short: "Extract every time a selection snapshot is rewritten",
	Long: `Watch a selection snapshot file and extract it each time the host
application rewrites it. With --add each extracted selection is stored as a
highlight. Stops on interrupt.`,
	Args: cobra.ExactArgs(1),
	RunE: runSelectionWatch,
}

// Flags for selection commands.
var (
	selectionOwner string
	selectionColor string
	selectionJSON  bool
)

func init() {
	for _, c := range []*cobra.Command{selectionExtractCmd, selectionWatchCmd} {
		c.Flags().StringVarP(&selectionOwner, "add", "a", "", "Store the selection as a highlight of this owner")
		c.Flags().StringVarP(&selectionColor, "color", "c", "", "Colour for --add: yellow, red or blue")
		c.Flags().BoolVar(&selectionJSON, "json", false, "Print JSON")
	}

	selectionCmd.AddCommand(selectionExtractCmd)
	selectionCmd.AddCommand(selectionWatchCmd)
	rootCmd.AddCommand(selectionCmd)
}

func runSelectionExtract(cmd *cobra.Command, args []string) error {
	if selectionService == nil {
		return errors.New("selection service not configured")
	}

	sel, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}
	return handleSelection(cmd, sel)
}

func runSelectionWatch(cmd *cobra.Command, args []string) error {
	if selectionService == nil {
		return errors.New("selection service not configured")
	}

	path := args[0]
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", path)
	return watchSnapshot(cmd.Context(), path, func() {
		sel, err := snapshot.Load(path)
		if err != nil {
			logger.Warn("skipping unreadable snapshot", "path", path, "err", err)
			return
		}
		if err := handleSelection(cmd, sel); err != nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	})
}

// handleSelection extracts one snapshot, prints it and optionally stores it.
func handleSelection(cmd *cobra.Command, sel *snapshot.Selection) error {
	info, err := selectionService.ExtractStrict(sel)
	if services.IsNoSelection(err) {
		cmd.Printf("No selection to highlight: %v\n", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to extract selection: %w", err)
	}

	if selectionJSON {
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(info); err != nil {
			return err
		}
	} else {
		cmd.Printf("Page %d: %q\n", info.Page, info.Text)
		for _, r := range info.Rects {
			cmd.Printf("  %s\n", formatRect(r))
		}
	}

	if selectionOwner == "" {
		return nil
	}
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	candidate := domain.Highlight{
		OwnerID:      selectionOwner,
		Content:      info.Text,
		ContextRange: domain.ContextRange{Page: info.Page, Rects: info.Rects},
	}
	if selectionColor != "" {
		c, err := domain.ParseHighlightColor(selectionColor)
		if err != nil {
			return err
		}
		candidate.Color = c
	}

	h, err := highlightService.Add(cmd.Context(), candidate)
	if err != nil {
		return fmt.Errorf("failed to add highlight: %w", err)
	}
	if !selectionJSON {
		cmd.Printf("Saved highlight %s\n", h.ID)
	}
	return nil
}

// watchSnapshot calls onChange whenever path is written or replaced, until
// ctx is cancelled. The parent directory is watched because editors and
// capture tools often replace the file instead of writing in place.
func watchSnapshot(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logger.Debug("snapshot changed", "path", abs, "op", event.Op.String())
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "path", abs, "err", err)
		}
	}
}
