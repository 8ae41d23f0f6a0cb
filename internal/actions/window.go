package actions

import (
	"context"
	"regexp"
	"strconv"

	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/apperr"
)

// Move target kinds.
var TargetTypes = []string{"workspace", "monitor", "direction"}

// Resize dimensions.
var Dimensions = []string{"smart", "width", "height"}

// AeroSpace resizes by whole pixels, absolute or signed.
var resizeAmount = regexp.MustCompile(`^[+-]?\d+$`)

// FocusWindowResult is returned by FocusWindow.
type FocusWindowResult struct {
	Success       bool       `yaml:"success"        json:"success"`
	FocusedWindow *WindowRef `yaml:"focused_window" json:"focused_window"`
}

// FocusWindow focuses a neighbour in direction or the window with the
// given ID. Exactly one of the two must be set.
func (s *Service) FocusWindow(ctx context.Context, direction string, windowID *int) (FocusWindowResult, error) {
	details := apperr.Details{"provided_direction": nilIfEmpty(direction), "provided_window_id": windowID}
	switch {
	case direction == "" && windowID == nil:
		return FocusWindowResult{}, apperr.Invalidf(details, "Either 'direction' or 'window_id' must be provided")
	case direction != "" && windowID != nil:
		return FocusWindowResult{}, apperr.Invalidf(details, "Cannot specify both 'direction' and 'window_id'")
	}

	if direction != "" {
		if err := aerospace.ValidateDirection(direction); err != nil {
			return FocusWindowResult{}, err
		}
		if _, err := s.wm.Run(ctx, "focus", direction); err != nil {
			return FocusWindowResult{}, err
		}
	} else {
		w, err := s.wm.ResolveWindow(ctx, windowID)
		if err != nil {
			return FocusWindowResult{}, err
		}
		if err := s.wm.FocusWindow(ctx, w.ID); err != nil {
			return FocusWindowResult{}, err
		}
	}

	focused, err := s.wm.FocusedWindow(ctx)
	if err != nil {
		return FocusWindowResult{}, err
	}
	res := FocusWindowResult{Success: true}
	if focused != nil {
		r := ref(*focused)
		res.FocusedWindow = &r
	}
	return res, nil
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// MonitorRef identifies a monitor in responses. ID is nil when the focused
// monitor could not be determined after the switch.
type MonitorRef struct {
	Name string `yaml:"name" json:"name"`
	ID   *int   `yaml:"id"   json:"id"`
}

// FocusMonitorResult is returned by FocusMonitor.
type FocusMonitorResult struct {
	Success        bool       `yaml:"success"         json:"success"`
	FocusedMonitor MonitorRef `yaml:"focused_monitor" json:"focused_monitor"`
}

// FocusMonitor focuses a monitor by direction, name or pattern.
func (s *Service) FocusMonitor(ctx context.Context, target string) (FocusMonitorResult, error) {
	if target == "" {
		return FocusMonitorResult{}, apperr.Invalidf(apperr.Details{"parameter": "target"}, "'target' must not be empty")
	}
	if _, err := s.wm.Run(ctx, "focus-monitor", target); err != nil {
		return FocusMonitorResult{}, err
	}
	m, err := s.wm.FocusedMonitor(ctx)
	if err != nil {
		return FocusMonitorResult{}, err
	}
	res := FocusMonitorResult{Success: true, FocusedMonitor: MonitorRef{Name: target}}
	if m != nil {
		id := m.ID
		res.FocusedMonitor = MonitorRef{Name: m.Name, ID: &id}
	}
	return res, nil
}

// WorkspaceRef describes a workspace in responses.
type WorkspaceRef struct {
	Name        string  `yaml:"name"         json:"name"`
	WindowCount int     `yaml:"window_count" json:"window_count"`
	Monitor     *string `yaml:"monitor"      json:"monitor"`
}

// FocusWorkspaceResult is returned by FocusWorkspace.
type FocusWorkspaceResult struct {
	Success   bool         `yaml:"success"   json:"success"`
	Workspace WorkspaceRef `yaml:"workspace" json:"workspace"`
}

// FocusWorkspace switches to a workspace, creating it if AeroSpace allows.
func (s *Service) FocusWorkspace(ctx context.Context, workspace string) (FocusWorkspaceResult, error) {
	if workspace == "" {
		return FocusWorkspaceResult{}, apperr.Invalidf(apperr.Details{"parameter": "workspace"}, "'workspace' must not be empty")
	}
	if err := s.wm.SwitchWorkspace(ctx, workspace); err != nil {
		return FocusWorkspaceResult{}, err
	}
	all, err := s.wm.ListWorkspaces(ctx, aerospace.WorkspaceFilter{})
	if err != nil {
		return FocusWorkspaceResult{}, err
	}
	windows, err := s.wm.ListWindows(ctx, aerospace.WindowFilter{Workspace: workspace})
	if err != nil {
		return FocusWorkspaceResult{}, err
	}
	ref := WorkspaceRef{Name: workspace, WindowCount: len(windows)}
	for _, ws := range all {
		if ws.Name == workspace && ws.MonitorName != "" {
			name := ws.MonitorName
			ref.Monitor = &name
			break
		}
	}
	return FocusWorkspaceResult{Success: true, Workspace: ref}, nil
}

// MoveTarget is where a window was moved.
type MoveTarget struct {
	Type string `yaml:"type" json:"type"`
	Name string `yaml:"name" json:"name"`
}

// MoveResult is returned by MoveWindow.
type MoveResult struct {
	Success  bool       `yaml:"success"   json:"success"`
	WindowID int        `yaml:"window_id" json:"window_id"`
	MovedTo  MoveTarget `yaml:"moved_to"  json:"moved_to"`
}

// MoveWindow moves a window to a workspace, to a monitor, or one step in
// a direction within its tiling tree.
func (s *Service) MoveWindow(ctx context.Context, targetType, target string, windowID *int) (MoveResult, error) {
	if err := aerospace.ValidateEnum("target_type", targetType, TargetTypes); err != nil {
		return MoveResult{}, err
	}
	if targetType == "direction" {
		if err := aerospace.ValidateDirection(target); err != nil {
			return MoveResult{}, err
		}
	} else if target == "" {
		return MoveResult{}, apperr.Invalidf(apperr.Details{"parameter": "target"}, "'target' must not be empty")
	}

	w, err := s.target(ctx, windowID)
	if err != nil {
		return MoveResult{}, err
	}
	switch targetType {
	case "workspace":
		err = s.wm.MoveToWorkspace(ctx, target)
	case "monitor":
		err = s.wm.MoveToMonitor(ctx, target)
	default:
		_, err = s.wm.Run(ctx, "move", target)
	}
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{
		Success:  true,
		WindowID: w.ID,
		MovedTo:  MoveTarget{Type: targetType, Name: target},
	}, nil
}

// ResizeSpec echoes a resize request.
type ResizeSpec struct {
	Dimension string `yaml:"dimension" json:"dimension"`
	Amount    string `yaml:"amount"    json:"amount"`
}

// ResizeResult is returned by ResizeWindow.
type ResizeResult struct {
	Success  bool       `yaml:"success"   json:"success"`
	WindowID int        `yaml:"window_id" json:"window_id"`
	Resize   ResizeSpec `yaml:"resize"    json:"resize"`
}

// ResizeWindow resizes the focused window. amount is a pixel count, either
// absolute ("600") or relative ("+50", "-50").
func (s *Service) ResizeWindow(ctx context.Context, dimension, amount string) (ResizeResult, error) {
	if err := aerospace.ValidateEnum("dimension", dimension, Dimensions); err != nil {
		return ResizeResult{}, err
	}
	if !resizeAmount.MatchString(amount) {
		return ResizeResult{}, apperr.Invalidf(
			apperr.Details{"parameter": "amount", "provided": amount, "expected": "pixels, e.g. 600, +50 or -50"},
			"Invalid amount '%s'. AeroSpace resizes by pixels: use a number with an optional + or - sign", amount)
	}
	w, err := s.wm.ResolveWindow(ctx, nil)
	if err != nil {
		return ResizeResult{}, err
	}
	if err := s.wm.Resize(ctx, dimension, amount); err != nil {
		return ResizeResult{}, err
	}
	return ResizeResult{
		Success:  true,
		WindowID: w.ID,
		Resize:   ResizeSpec{Dimension: dimension, Amount: amount},
	}, nil
}

// CloseResult is returned by CloseWindow.
type CloseResult struct {
	Success      bool      `yaml:"success"       json:"success"`
	ClosedWindow WindowRef `yaml:"closed_window" json:"closed_window"`
}

// CloseWindow closes a window, the focused one by default.
func (s *Service) CloseWindow(ctx context.Context, windowID *int) (CloseResult, error) {
	w, err := s.wm.ResolveWindow(ctx, windowID)
	if err != nil {
		return CloseResult{}, err
	}
	args := []string{"close"}
	if windowID != nil {
		args = append(args, "--window-id", strconv.Itoa(w.ID))
	}
	if _, err := s.wm.Run(ctx, args...); err != nil {
		return CloseResult{}, err
	}
	return CloseResult{Success: true, ClosedWindow: ref(w)}, nil
}

// FullscreenResult is returned by FullscreenToggle. AeroSpace does not
// report fullscreen state, so Fullscreen is inferred from the toggle having
// succeeded and StateInferred is always true.
type FullscreenResult struct {
	Success       bool   `yaml:"success"        json:"success"`
	WindowID      int    `yaml:"window_id"      json:"window_id"`
	Fullscreen    bool   `yaml:"fullscreen"     json:"fullscreen"`
	StateInferred bool   `yaml:"state_inferred" json:"state_inferred"`
	Note          string `yaml:"note"           json:"note"`
}

const fullscreenNote = "Fullscreen state is not queryable; the value assumes the toggle turned fullscreen on"

// FullscreenToggle toggles AeroSpace fullscreen for a window.
func (s *Service) FullscreenToggle(ctx context.Context, windowID *int) (FullscreenResult, error) {
	w, err := s.target(ctx, windowID)
	if err != nil {
		return FullscreenResult{}, err
	}
	if err := s.wm.Fullscreen(ctx); err != nil {
		return FullscreenResult{}, err
	}
	// Still present after the toggle means it took effect.
	after, _, err := s.wm.WindowByID(ctx, w.ID)
	if err != nil {
		return FullscreenResult{}, err
	}
	return FullscreenResult{
		Success:       true,
		WindowID:      w.ID,
		Fullscreen:    after != nil,
		StateInferred: true,
		Note:          fullscreenNote,
	}, nil
}

// MinimizeResult is returned by MinimizeWindow.
type MinimizeResult struct {
	Success   bool `yaml:"success"   json:"success"`
	WindowID  int  `yaml:"window_id" json:"window_id"`
	Minimized bool `yaml:"minimized" json:"minimized"`
}

// MinimizeWindow minimizes a window with the native macOS minimize.
func (s *Service) MinimizeWindow(ctx context.Context, windowID *int) (MinimizeResult, error) {
	w, err := s.target(ctx, windowID)
	if err != nil {
		return MinimizeResult{}, err
	}
	if _, err := s.wm.Run(ctx, "macos-native-minimize"); err != nil {
		return MinimizeResult{}, err
	}
	return MinimizeResult{Success: true, WindowID: w.ID, Minimized: true}, nil
}
