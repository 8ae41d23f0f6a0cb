package cmd

import (
	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/spf13/cobra"
)

var windowsCmd = &cobra.Command{
	Use:     "windows",
	Aliases: []string{"list"},
	Short:   "List windows",
	Long:    "List the windows AeroSpace manages with their workspace and monitor, optionally filtered.",
	RunE:    runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().String("workspace", "", "Only windows on this workspace")
	windowsCmd.Flags().String("monitor", "", "Only windows on this monitor (ID, focused, mouse)")
}

// windowEntry is one row of the windows listing.
type windowEntry struct {
	WindowID  int    `yaml:"window_id"  json:"window_id"`
	AppName   string `yaml:"app_name"   json:"app_name"`
	Title     string `yaml:"title"      json:"title"`
	Workspace string `yaml:"workspace"  json:"workspace"`
	Monitor   string `yaml:"monitor"    json:"monitor"`
	IsFocused bool   `yaml:"is_focused" json:"is_focused"`
}

type windowsResult struct {
	Success    bool          `yaml:"success"     json:"success"`
	Windows    []windowEntry `yaml:"windows"     json:"windows"`
	TotalCount int           `yaml:"total_count" json:"total_count"`
}

func runWindows(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	workspace, _ := cmd.Flags().GetString("workspace")
	monitor, _ := cmd.Flags().GetString("monitor")

	windows, err := application.WM.ListWindows(ctx, aerospace.WindowFilter{Workspace: workspace, Monitor: monitor})
	if err != nil {
		return report(nil, err)
	}
	focused, err := application.WM.FocusedWindow(ctx)
	if err != nil {
		return report(nil, err)
	}

	res := windowsResult{Success: true, Windows: make([]windowEntry, 0, len(windows))}
	for _, w := range windows {
		res.Windows = append(res.Windows, windowEntry{
			WindowID:  w.ID,
			AppName:   w.App,
			Title:     w.Title,
			Workspace: w.Workspace,
			Monitor:   w.MonitorName,
			IsFocused: focused != nil && focused.ID == w.ID,
		})
	}
	res.TotalCount = len(res.Windows)
	return report(res, nil)
}
