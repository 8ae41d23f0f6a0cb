package cmd

import (
	"strconv"

	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/display"
	"github.com/spf13/cobra"
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Inspect connected displays",
}

type displayInfoResult struct {
	Success      bool `yaml:"success" json:"success"`
	display.Info `yaml:",inline"`
}

type categoryResult struct {
	Success              bool `yaml:"success" json:"success"`
	display.CategoryInfo `yaml:",inline"`
}

type displayDetailResult struct {
	Success        bool `yaml:"success" json:"success"`
	display.Detail `yaml:",inline"`
}

var displayInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show every display with resolution, scale and size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		info, err := application.Displays.Info(ctx)
		return report(displayInfoResult{Success: true, Info: info}, err)
	},
}

var displayCategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Classify the display configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		info, err := application.Displays.Category(ctx)
		return report(categoryResult{Success: true, CategoryInfo: info}, err)
	},
}

var displayShowCmd = &cobra.Command{
	Use:   "show <display-id>",
	Short: "Show one display with its workspaces",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return report(nil, apperr.Invalidf(apperr.Details{"parameter": "display_id", "provided": args[0]},
				"display id must be an integer"))
		}
		detail, err := application.Displays.ByID(ctx, id)
		return report(displayDetailResult{Success: true, Detail: detail}, err)
	},
}

func init() {
	rootCmd.AddCommand(displayCmd)
	displayCmd.AddCommand(displayInfoCmd, displayCategoryCmd, displayShowCmd)
}
