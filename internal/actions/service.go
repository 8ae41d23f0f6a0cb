// Package actions implements the direct window and layout operations:
// focusing, moving, resizing, closing and the workspace layout commands.
// Each operation validates its parameters, issues AeroSpace commands and
// re-queries state to shape its response.
package actions

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mj1618/win-ctrl/internal/aerospace"
)

// Service runs window and layout operations against a window manager.
type Service struct {
	wm  *aerospace.Client
	log *log.Logger
}

// New creates a Service. A nil logger discards output.
func New(wm *aerospace.Client, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{wm: wm, log: logger}
}

// WindowRef identifies a window in responses.
type WindowRef struct {
	WindowID int    `yaml:"window_id" json:"window_id"`
	AppName  string `yaml:"app_name"  json:"app_name"`
	Title    string `yaml:"title"     json:"title"`
}

func ref(w aerospace.Window) WindowRef {
	return WindowRef{WindowID: w.ID, AppName: w.App, Title: w.Title}
}

// target resolves the window an operation acts on and, when it was named
// explicitly, focuses it so that focus-relative commands reach it.
func (s *Service) target(ctx context.Context, id *int) (aerospace.Window, error) {
	w, err := s.wm.ResolveWindow(ctx, id)
	if err != nil {
		return w, err
	}
	if id != nil {
		if err := s.wm.FocusWindow(ctx, w.ID); err != nil {
			return w, err
		}
	}
	return w, nil
}

// focusedWorkspaceWindows returns the focused workspace's name and windows.
// The name is "unknown" when no workspace is focused.
func (s *Service) focusedWorkspaceWindows(ctx context.Context) (string, []aerospace.Window, error) {
	ws, err := s.wm.FocusedWorkspace(ctx)
	if err != nil {
		return "", nil, err
	}
	if ws == nil {
		return "unknown", []aerospace.Window{}, nil
	}
	windows, err := s.wm.ListWindows(ctx, aerospace.WindowFilter{Workspace: ws.Name})
	if err != nil {
		return "", nil, err
	}
	return ws.Name, windows, nil
}
