package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkmark/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage geometry settings",
	Long: `View and tune the thresholds used to merge selection fragments into
highlight bands. The defaults are calibrated against real documents; change
them only after checking the effect on your own pages.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one threshold",
	Long: `Set one threshold. Keys may be given with or without the "geometry." prefix,
for example: inkmark settings set gap_threshold 0.08`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default thresholds",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	defaults := settingsService.GetDefaults()

	values := map[string][2]float64{
		services.KeyYThreshold:        {settings.YThreshold, defaults.YThreshold},
		services.KeyGapThreshold:      {settings.GapThreshold, defaults.GapThreshold},
		services.KeyTopPadRatio:       {settings.TopPadRatio, defaults.TopPadRatio},
		services.KeyHeightRatio:       {settings.HeightRatio, defaults.HeightRatio},
		services.KeyOverlapEpsilon:    {settings.OverlapEpsilon, defaults.OverlapEpsilon},
		services.KeyMaxFragmentHeight: {settings.MaxFragmentHeight, defaults.MaxFragmentHeight},
		services.KeyMaxFragmentArea:   {settings.MaxFragmentArea, defaults.MaxFragmentArea},
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Geometry]")
	for _, key := range settingsService.Keys() {
		v, ok := values[key]
		if !ok {
			continue
		}
		name := strings.TrimPrefix(key, "geometry.")
		if v[0] == v[1] {
			cmd.Printf("  %-20s %g\n", name+":", v[0])
		} else {
			cmd.Printf("  %-20s %g (default %g)\n", name+":", v[0], v[1])
		}
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	if !strings.HasPrefix(key, "geometry.") {
		key = "geometry." + key
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[1], err)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s set to %g\n", key, value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Geometry settings restored to defaults.")
	return nil
}
