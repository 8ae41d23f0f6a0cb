package cmd

import (
	"strings"

	"github.com/mj1618/win-ctrl/internal/focus"
	"github.com/spf13/cobra"
)

var zoneCmd = &cobra.Command{
	Use:       "zone <zone>",
	Short:     "Place a window in a named screen zone",
	Long:      "Place a window in a named screen zone. Zones: " + strings.Join(focus.Zones, ", ") + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: focus.Zones,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		monitor, _ := cmd.Flags().GetString("monitor")
		return report(application.Focus.SetZone(ctx, windowID(cmd), args[0], monitor))
	},
}

var arrangeCategoryCmd = &cobra.Command{
	Use:   "arrange-category <category> <monitor>",
	Short: "Move every window of an app category to one monitor",
	Long: "Move every window of an app category to one monitor. Categories: " +
		strings.Join(focus.CategoryNames(), ", ") + ". Monitor: primary, secondary, tertiary or a 1-based index.",
	Example: "  win-ctrl arrange-category communication secondary --layout accordion",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		layout, _ := cmd.Flags().GetString("layout")
		return report(application.Focus.MoveCategory(ctx, args[0], args[1], layout))
	},
}

var fitCmd = &cobra.Command{
	Use:       "fit <content-type>",
	Short:     "Resize a window to a comfortable width for its content",
	Long:      "Resize a window to a comfortable width for its content. Content types: " + strings.Join(focus.ContentTypes, ", ") + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: focus.ContentTypes,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		maxPct, _ := cmd.Flags().GetInt("max-width-percent")
		minPct, _ := cmd.Flags().GetInt("min-width-percent")
		return report(application.Focus.ResizeOptimal(ctx, focus.OptimalOptions{
			WindowID:        windowID(cmd),
			ContentType:     args[0],
			MaxWidthPercent: maxPct,
			MinWidthPercent: minPct,
		}))
	},
}

func init() {
	rootCmd.AddCommand(zoneCmd, arrangeCategoryCmd, fitCmd)
	addWindowIDFlag(zoneCmd, fitCmd)
	zoneCmd.Flags().String("monitor", "primary", "primary, secondary or a monitor number")
	arrangeCategoryCmd.Flags().String("layout", "tiled", "Layout on the target monitor: tiled, accordion, stacked")
	fitCmd.Flags().Int("max-width-percent", 80, "Upper bound as a percentage of the primary display width")
	fitCmd.Flags().Int("min-width-percent", 40, "Lower bound as a percentage of the primary display width")
}
