// Package cli provides the cobra command tree for the inkmark binary.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkmark/internal/core/ports/driving"
	"github.com/custodia-labs/inkmark/internal/logger"
)

var (
	// version is set at build time via SetVersion.
	version = "dev"

	// verbose enables debug logging for every command.
	verbose bool

	highlightService driving.HighlightService
	selectionService driving.SelectionService
	settingsService  driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "inkmark",
	Short: "Page highlights that stay clean",
	Long: `inkmark turns text selections on rendered document pages into tidy,
page-relative highlight bands and keeps them consolidated: a new highlight
that overlaps existing ones on the same page is folded into the oldest.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Services holds the driving ports the commands call into.
type Services struct {
	Highlight driving.HighlightService
	Selection driving.SelectionService
	Settings  driving.SettingsService
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	highlightService = s.Highlight
	selectionService = s.Selection
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command; ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
