package focus

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/apperr"
)

// CategoryLayouts maps the relocation layout names to AeroSpace layouts.
var CategoryLayouts = map[string]string{
	"tiled":     "h_tiles",
	"accordion": "h_accordion",
	"stacked":   "v_accordion",
}

var categoryLayoutNames = []string{"tiled", "accordion", "stacked"}

// MovedWindow is a window relocated by MoveCategory.
type MovedWindow struct {
	WindowID int    `yaml:"window_id" json:"window_id"`
	AppName  string `yaml:"app_name"  json:"app_name"`
}

// RelocateResult is returned by MoveCategory.
type RelocateResult struct {
	Success       bool            `yaml:"success"         json:"success"`
	Category      string          `yaml:"category"        json:"category"`
	Monitor       string          `yaml:"monitor"         json:"monitor"`
	TargetMonitor string          `yaml:"target_monitor"  json:"target_monitor"`
	WindowsMoved  []MovedWindow   `yaml:"windows_moved"   json:"windows_moved"`
	Skipped       []SkippedWindow `yaml:"windows_skipped" json:"windows_skipped"`
	LayoutApplied string          `yaml:"layout_applied"  json:"layout_applied"`
}

// resolveMonitorName maps primary/secondary/tertiary or a 1-based index to
// a monitor name.
func resolveMonitorName(monitors []aerospace.Monitor, monitor string) (string, bool) {
	idx := -1
	switch monitor {
	case "primary":
		idx = 0
	case "secondary":
		idx = 1
	case "tertiary":
		idx = 2
	default:
		if n, err := strconv.Atoi(monitor); err == nil {
			idx = n - 1
		}
	}
	if idx < 0 || idx >= len(monitors) || monitors[idx].Name == "" {
		return "", false
	}
	return monitors[idx].Name, true
}

// MoveCategory moves every window of an application category to a monitor
// and applies a layout there. Windows that fail to move are skipped.
func (s *Service) MoveCategory(ctx context.Context, category, monitor, layout string) (RelocateResult, error) {
	if layout == "" {
		layout = "tiled"
	}
	cat, ok := lookupCategory(category)
	if !ok {
		return RelocateResult{}, apperr.Invalid("category", category, CategoryNames())
	}
	if err := aerospace.ValidateEnum("layout", layout, categoryLayoutNames); err != nil {
		return RelocateResult{}, err
	}

	monitors, err := s.wm.ListMonitors(ctx)
	if err != nil {
		return RelocateResult{}, err
	}
	if len(monitors) == 0 {
		return RelocateResult{}, apperr.New(apperr.DisplayNotFound, "No monitors found", nil)
	}
	target, ok := resolveMonitorName(monitors, monitor)
	if !ok {
		return RelocateResult{}, apperr.New(apperr.DisplayNotFound,
			fmt.Sprintf("Monitor '%s' not found", monitor),
			apperr.Details{"available_monitors": aerospace.MonitorNames(monitors)})
	}

	windows, err := s.wm.ListWindows(ctx, aerospace.WindowFilter{})
	if err != nil {
		return RelocateResult{}, err
	}
	var members []aerospace.Window
	for _, w := range windows {
		if cat.Contains(w.App) {
			members = append(members, w)
		}
	}

	moved, failed := fold(members, func(w aerospace.Window) error {
		return s.focusThen(ctx, w.ID, func() error { return s.wm.MoveToMonitor(ctx, target) })
	})

	result := RelocateResult{
		Success:       true,
		Category:      category,
		Monitor:       monitor,
		TargetMonitor: target,
		WindowsMoved:  make([]MovedWindow, 0, len(moved)),
		Skipped:       skippedWindows(failed),
		LayoutApplied: layout,
	}
	for _, w := range moved {
		result.WindowsMoved = append(result.WindowsMoved, MovedWindow{WindowID: w.ID, AppName: w.App})
	}
	s.logSkips("move category", result.Skipped)

	if len(moved) > 0 {
		err := s.focusThen(ctx, moved[0].ID, func() error {
			return s.wm.SetLayout(ctx, CategoryLayouts[layout])
		})
		if err != nil {
			s.log.Warn("move category: layout not applied", "layout", layout, "err", err)
		}
	}
	return result, nil
}
