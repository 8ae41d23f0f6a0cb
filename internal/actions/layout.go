package actions

import (
	"context"

	"github.com/mj1618/win-ctrl/internal/aerospace"
)

// Split orientations.
var Orientations = []string{"horizontal", "vertical"}

// LayoutResult is returned by SetLayout.
type LayoutResult struct {
	Success         bool   `yaml:"success"          json:"success"`
	Layout          string `yaml:"layout"           json:"layout"`
	AffectedWindows []int  `yaml:"affected_windows" json:"affected_windows"`
}

// SetLayout changes the layout of the focused window's container.
func (s *Service) SetLayout(ctx context.Context, layout string) (LayoutResult, error) {
	if err := aerospace.ValidateLayout(layout); err != nil {
		return LayoutResult{}, err
	}
	if err := s.wm.SetLayout(ctx, layout); err != nil {
		return LayoutResult{}, err
	}
	_, windows, err := s.focusedWorkspaceWindows(ctx)
	if err != nil {
		return LayoutResult{}, err
	}
	return LayoutResult{Success: true, Layout: layout, AffectedWindows: aerospace.WindowIDs(windows)}, nil
}

// SplitResult is returned by Split.
type SplitResult struct {
	Success          bool   `yaml:"success"           json:"success"`
	SplitOrientation string `yaml:"split_orientation" json:"split_orientation"`
}

// Split splits the focused container so the next window opens beside it.
func (s *Service) Split(ctx context.Context, orientation string) (SplitResult, error) {
	if err := aerospace.ValidateEnum("orientation", orientation, Orientations); err != nil {
		return SplitResult{}, err
	}
	if _, err := s.wm.Run(ctx, "split", orientation); err != nil {
		return SplitResult{}, err
	}
	return SplitResult{Success: true, SplitOrientation: orientation}, nil
}

// FlattenResult is returned by Flatten. AeroSpace does not report how many
// containers were removed; FlattenedContainers is 1 on success.
type FlattenResult struct {
	Success             bool   `yaml:"success"              json:"success"`
	Workspace           string `yaml:"workspace"            json:"workspace"`
	FlattenedContainers int    `yaml:"flattened_containers" json:"flattened_containers"`
}

// Flatten removes nested containers from a workspace's tree, switching to
// workspace first when one is named.
func (s *Service) Flatten(ctx context.Context, workspace string) (FlattenResult, error) {
	if workspace != "" {
		if err := s.wm.SwitchWorkspace(ctx, workspace); err != nil {
			return FlattenResult{}, err
		}
	}
	if _, err := s.wm.Run(ctx, "flatten-workspace-tree"); err != nil {
		return FlattenResult{}, err
	}
	name := workspace
	if name == "" {
		ws, err := s.wm.FocusedWorkspace(ctx)
		if err != nil {
			return FlattenResult{}, err
		}
		name = "unknown"
		if ws != nil {
			name = ws.Name
		}
	}
	return FlattenResult{Success: true, Workspace: name, FlattenedContainers: 1}, nil
}

// BalanceResult is returned by Balance.
type BalanceResult struct {
	Success         bool   `yaml:"success"          json:"success"`
	Workspace       string `yaml:"workspace"        json:"workspace"`
	BalancedWindows int    `yaml:"balanced_windows" json:"balanced_windows"`
}

// Balance equalizes window sizes in the focused workspace.
func (s *Service) Balance(ctx context.Context) (BalanceResult, error) {
	if _, err := s.wm.Run(ctx, "balance-sizes"); err != nil {
		return BalanceResult{}, err
	}
	name, windows, err := s.focusedWorkspaceWindows(ctx)
	if err != nil {
		return BalanceResult{}, err
	}
	return BalanceResult{Success: true, Workspace: name, BalancedWindows: len(windows)}, nil
}
