package cmd

import (
	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/spf13/cobra"
)

var focusCmd = &cobra.Command{
	Use:   "focus [direction]",
	Short: "Focus a window, monitor or workspace",
	Long: `Focus a window by direction (left, right, up, down) or by --window-id.
With --monitor or --workspace, focus that monitor or switch to that workspace instead.`,
	Example: `  win-ctrl focus left
  win-ctrl focus --window-id 4242
  win-ctrl focus --monitor next
  win-ctrl focus --workspace 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	addWindowIDFlag(focusCmd)
	focusCmd.Flags().String("monitor", "", "Focus a monitor by direction, name or pattern")
	focusCmd.Flags().String("workspace", "", "Switch to a workspace")
	focusCmd.MarkFlagsMutuallyExclusive("window-id", "monitor", "workspace")
}

func runFocus(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	monitor, _ := cmd.Flags().GetString("monitor")
	workspace, _ := cmd.Flags().GetString("workspace")
	var direction string
	if len(args) == 1 {
		direction = args[0]
	}

	switch {
	case monitor != "" || workspace != "":
		if direction != "" {
			return report(nil, apperr.Invalidf(apperr.Details{"provided_direction": direction},
				"a direction cannot be combined with --monitor or --workspace"))
		}
		if monitor != "" {
			return report(application.Actions.FocusMonitor(ctx, monitor))
		}
		return report(application.Actions.FocusWorkspace(ctx, workspace))
	default:
		return report(application.Actions.FocusWindow(ctx, direction, windowID(cmd)))
	}
}
