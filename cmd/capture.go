package cmd

import (
	"strings"

	"github.com/mj1618/win-ctrl/internal/capture"
	"github.com/mj1618/win-ctrl/internal/platform"
	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a screenshot of a window or workspace",
	Long: `Capture a screenshot with macOS screencapture. The image is written to
--output, or to the capture directory when no path is given.`,
}

var captureWindowCmd = &cobra.Command{
	Use:   "window",
	Short: "Capture a single window",
	Example: `  win-ctrl capture window
  win-ctrl capture window --window-id 4242 --format jpg --scale 0.5 --label`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return report(application.Capture.Window(ctx, windowID(cmd), captureOptions(cmd)))
	},
}

var captureWorkspaceCmd = &cobra.Command{
	Use:   "workspace [workspace]",
	Short: "Capture the display showing a workspace",
	Long:  "Capture the display showing a workspace. A named workspace is switched to first.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		var ws string
		if len(args) == 1 {
			ws = args[0]
		}
		return report(application.Capture.Workspace(ctx, ws, captureOptions(cmd)))
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.AddCommand(captureWindowCmd, captureWorkspaceCmd)
	addWindowIDFlag(captureWindowCmd)
	for _, c := range []*cobra.Command{captureWindowCmd, captureWorkspaceCmd} {
		c.Flags().String("output", "", "Output file path")
		c.Flags().String("format", "png", "Image format: "+strings.Join(platform.ImageFormats, ", "))
		c.Flags().Float64("scale", 0, "Downscale factor between 0 and 1 (raster formats only)")
		c.Flags().Bool("label", false, "Draw a banner naming the window or workspace")
	}
}

func captureOptions(cmd *cobra.Command) capture.Options {
	out, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	scale, _ := cmd.Flags().GetFloat64("scale")
	label, _ := cmd.Flags().GetBool("label")
	return capture.Options{OutputPath: out, Format: format, Scale: scale, Label: label}
}
