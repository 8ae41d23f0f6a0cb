package focus

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/display"
	"github.com/mj1618/win-ctrl/internal/platform"
)

// Zone names accepted by SetZone.
var Zones = []string{
	"center_focus",
	"left_reference",
	"right_reference",
	"top_reference",
	"bottom_reference",
	"floating_pip",
}

// Zone geometry, as fractions of the screen.
const (
	centerWidth   = 0.65
	sideWidth     = 0.28
	pipFraction   = 0.25
	pipInset      = 20
	sideShrinkPct = 40
)

// Bounds is a screen rectangle in points.
type Bounds struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// ZoneResult is returned by SetZone.
type ZoneResult struct {
	Success  bool   `yaml:"success"   json:"success"`
	WindowID int    `yaml:"window_id" json:"window_id"`
	Zone     string `yaml:"zone"      json:"zone"`
	Monitor  string `yaml:"monitor"   json:"monitor"`
	Bounds   Bounds `yaml:"bounds"    json:"bounds"`
}

// ZoneBounds computes the target rectangle of zone on a screen of the
// given size.
func ZoneBounds(zone string, s platform.Size) Bounds {
	switch zone {
	case "center_focus":
		w := int(float64(s.Width) * centerWidth)
		return Bounds{X: (s.Width - w) / 2, Width: w, Height: s.Height}
	case "left_reference":
		return Bounds{Width: int(float64(s.Width) * sideWidth), Height: s.Height}
	case "right_reference":
		w := int(float64(s.Width) * sideWidth)
		return Bounds{X: s.Width - w, Width: w, Height: s.Height}
	case "top_reference":
		return Bounds{Width: s.Width, Height: s.Height / 2}
	case "bottom_reference":
		h := s.Height / 2
		return Bounds{Y: h, Width: s.Width, Height: h}
	case "floating_pip":
		w := int(float64(s.Width) * pipFraction)
		h := int(float64(s.Height) * pipFraction)
		return Bounds{X: s.Width - w - pipInset, Y: s.Height - h - pipInset, Width: w, Height: h}
	}
	return Bounds{Width: s.Width, Height: s.Height}
}

// SetZone places a window into a named zone, first moving it to the
// requested monitor: "primary" (stay), "secondary" (next monitor) or a
// 1-based monitor index.
func (s *Service) SetZone(ctx context.Context, windowID *int, zone, monitor string) (ZoneResult, error) {
	if err := aerospace.ValidateEnum("zone", zone, Zones); err != nil {
		return ZoneResult{}, err
	}
	if monitor == "" {
		monitor = "primary"
	}
	index, err := parseZoneMonitor(monitor)
	if err != nil {
		return ZoneResult{}, err
	}

	w, err := s.wm.ResolveWindow(ctx, windowID)
	if err != nil {
		return ZoneResult{}, err
	}
	displays, err := s.displays.Displays(ctx)
	if err != nil {
		return ZoneResult{}, err
	}
	if err := s.wm.FocusWindow(ctx, w.ID); err != nil {
		return ZoneResult{}, err
	}

	var target display.Descriptor
	var ok bool
	switch {
	case monitor == "primary":
		target, ok = display.Primary(displays)
	case monitor == "secondary":
		if err := s.wm.MoveToMonitor(ctx, "next"); err != nil {
			return ZoneResult{}, err
		}
		if len(displays) > 1 {
			target, ok = displays[1], true
		}
	default:
		monitors, err := s.wm.ListMonitors(ctx)
		if err != nil {
			return ZoneResult{}, err
		}
		if index > len(monitors) {
			return ZoneResult{}, apperr.New(apperr.DisplayNotFound,
				fmt.Sprintf("Monitor '%s' not found", monitor),
				apperr.Details{"available_monitors": aerospace.MonitorNames(monitors)})
		}
		if err := s.wm.MoveToMonitor(ctx, monitors[index-1].Name); err != nil {
			return ZoneResult{}, err
		}
		if index <= len(displays) {
			target, ok = displays[index-1], true
		}
	}

	size := screen(target, ok)
	if err := s.applyZone(ctx, zone, size); err != nil {
		return ZoneResult{}, err
	}
	return ZoneResult{
		Success:  true,
		WindowID: w.ID,
		Zone:     zone,
		Monitor:  monitor,
		Bounds:   ZoneBounds(zone, size),
	}, nil
}

func parseZoneMonitor(monitor string) (int, error) {
	if monitor == "primary" || monitor == "secondary" {
		return 0, nil
	}
	n, err := strconv.Atoi(monitor)
	if err != nil || n < 1 {
		return 0, apperr.Invalidf(
			apperr.Details{"parameter": "monitor", "provided": monitor, "valid_options": []string{"primary", "secondary", "<monitor index>"}},
			"Invalid monitor '%s'. Use primary, secondary or a 1-based monitor index", monitor)
	}
	return n, nil
}

// applyZone issues the layout commands for zone on the focused window.
func (s *Service) applyZone(ctx context.Context, zone string, size platform.Size) error {
	var steps [][]string
	switch zone {
	case "center_focus":
		steps = [][]string{
			{"layout", "tiling"},
			{"resize", "width", strconv.Itoa(pixels(size.Width, centerWidth*100))},
		}
	case "left_reference", "right_reference":
		dir := "left"
		if zone == "right_reference" {
			dir = "right"
		}
		steps = [][]string{
			{"layout", "h_tiles"},
			{"move", dir},
			{"resize", "width", signed(-pixels(size.Width, sideShrinkPct))},
		}
	case "top_reference":
		steps = [][]string{{"layout", "v_tiles"}, {"move", "up"}}
	case "bottom_reference":
		steps = [][]string{{"layout", "v_tiles"}, {"move", "down"}}
	case "floating_pip":
		steps = [][]string{{"layout", "floating"}}
	}
	for _, step := range steps {
		if _, err := s.wm.Run(ctx, step...); err != nil {
			return err
		}
	}
	return nil
}
