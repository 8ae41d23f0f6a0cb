package cmd

import (
	"strings"

	"github.com/mj1618/win-ctrl/internal/focus"
	"github.com/spf13/cobra"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Save, restore and apply focus presets",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current arrangement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		desc, _ := cmd.Flags().GetString("description")
		return report(application.Focus.Save(ctx, args[0], desc))
	},
}

var presetLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Restore a saved arrangement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		strict, _ := cmd.Flags().GetBool("strict")
		return report(application.Focus.Load(ctx, args[0], !strict))
	},
}

var presetApplyCmd = &cobra.Command{
	Use:   "apply [preset]",
	Short: "Arrange windows for focused work",
	Long: `Arrange windows for focused work. With no preset, or "auto", a built-in layout
is chosen for the current displays. Built-in presets: ` + strings.Join(focus.BuiltinPresets, ", ") + `.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		opts := focus.ApplyOptions{Preset: focus.AutoPreset, FocusWindowID: optionalInt(cmd, "focus-window-id")}
		if len(args) == 1 {
			opts.Preset = args[0]
		}
		refs, _ := cmd.Flags().GetString("reference-apps")
		opts.ReferenceApps = splitList(refs)
		opts.HideCommunication, _ = cmd.Flags().GetBool("hide-communication")
		return report(application.Focus.Apply(ctx, opts))
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Focus.List(ctx))
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Focus.Delete(ctx, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetSaveCmd, presetLoadCmd, presetApplyCmd, presetListCmd, presetDeleteCmd)

	presetSaveCmd.Flags().String("description", "", "Free-form description")
	presetLoadCmd.Flags().Bool("strict", false, "Fail when the display category changed since the preset was saved")
	presetApplyCmd.Flags().Int("focus-window-id", 0, "Window for the focus position (default: focused window)")
	presetApplyCmd.Flags().String("reference-apps", "", "Comma-separated apps to keep beside the focus window")
	presetApplyCmd.Flags().Bool("hide-communication", false, "Minimize chat and mail apps")
}
