package cmd

import (
	"strings"

	"github.com/mj1618/win-ctrl/internal/actions"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move <workspace|monitor|direction> <target>",
	Short: "Move a window to a workspace, monitor or direction",
	Example: `  win-ctrl move workspace 3
  win-ctrl move monitor next --window-id 4242
  win-ctrl move direction left`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Actions.MoveWindow(ctx, args[0], args[1], windowID(cmd)))
	},
}

var resizeCmd = &cobra.Command{
	Use:   "resize <smart|width|height> <amount>",
	Short: "Resize the focused window by pixels (+N, -N or N)",
	Example: `  win-ctrl resize width +100
  win-ctrl resize smart -- -50`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Actions.ResizeWindow(ctx, args[0], args[1]))
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close a window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Actions.CloseWindow(ctx, windowID(cmd)))
	},
}

var fullscreenCmd = &cobra.Command{
	Use:   "fullscreen",
	Short: "Toggle fullscreen for a window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Actions.FullscreenToggle(ctx, windowID(cmd)))
	},
}

var minimizeCmd = &cobra.Command{
	Use:   "minimize",
	Short: "Minimize a window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Actions.MinimizeWindow(ctx, windowID(cmd)))
	},
}

func init() {
	rootCmd.AddCommand(moveCmd, resizeCmd, closeCmd, fullscreenCmd, minimizeCmd)
	addWindowIDFlag(moveCmd, closeCmd, fullscreenCmd, minimizeCmd)

	moveCmd.ValidArgs = actions.TargetTypes
	resizeCmd.Long = "Resize the focused window. Dimension is one of " + strings.Join(actions.Dimensions, ", ") + "."
}
