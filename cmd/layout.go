package cmd

import (
	"strings"

	"github.com/mj1618/win-ctrl/internal/actions"
	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:       "layout <layout>",
	Short:     "Set the layout of the focused container",
	Long:      "Set the layout of the focused window's container. One of: " + strings.Join(aerospace.Layouts, ", ") + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: aerospace.Layouts,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Actions.SetLayout(ctx, args[0]))
	},
}

var splitCmd = &cobra.Command{
	Use:       "split <horizontal|vertical>",
	Short:     "Split the focused container",
	Args:      cobra.ExactArgs(1),
	ValidArgs: actions.Orientations,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Actions.Split(ctx, args[0]))
	},
}

var flattenCmd = &cobra.Command{
	Use:   "flatten [workspace]",
	Short: "Flatten a workspace's container tree (default: focused workspace)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		var ws string
		if len(args) == 1 {
			ws = args[0]
		}
		return report(application.Actions.Flatten(ctx, ws))
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Balance window sizes in the focused workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Actions.Balance(ctx))
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd, splitCmd, flattenCmd, balanceCmd)
}
