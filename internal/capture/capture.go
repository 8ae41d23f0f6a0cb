// Package capture takes window and workspace screenshots through the
// platform screenshot utility and post-processes the written file.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/platform"
)

const permissionHint = "Grant screen recording permission in System Settings > Privacy & Security"

// Service captures screenshots.
type Service struct {
	wm    *aerospace.Client
	shots platform.Screenshotter
	dir   string
	log   *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithDir sets the directory default output paths are placed in.
func WithDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Service. shots may be nil on platforms without a
// screenshot utility; every capture then fails with TOOL_UNAVAILABLE.
func New(wm *aerospace.Client, shots platform.Screenshotter, opts ...Option) *Service {
	s := &Service{
		wm:    wm,
		shots: shots,
		dir:   os.TempDir(),
		log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Options are shared by both capture kinds.
type Options struct {
	OutputPath string
	Format     string  // png (default), jpg, jpeg, pdf, tiff
	Scale      float64 // 0 or 1 keeps the native size; otherwise 0 < Scale < 1
	Inline     bool    // return the image bytes with the result
	Label      bool    // draw an identifying banner onto the image
}

// Image is an in-memory copy of a capture, returned when Options.Inline is
// set.
type Image struct {
	Data     []byte
	MIMEType string
}

// CapturedWindow lists a window visible in a workspace capture.
type CapturedWindow struct {
	WindowID int    `yaml:"window_id" json:"window_id"`
	AppName  string `yaml:"app_name"  json:"app_name"`
}

// WindowCapture describes a window screenshot.
type WindowCapture struct {
	WindowID   int        `yaml:"window_id"  json:"window_id"`
	AppName    string     `yaml:"app_name"   json:"app_name"`
	Title      string     `yaml:"title"      json:"title"`
	FilePath   string     `yaml:"file_path"  json:"file_path"`
	Format     string     `yaml:"format"     json:"format"`
	Dimensions Dimensions `yaml:"dimensions" json:"dimensions"`
}

// WindowResult is returned by Window.
type WindowResult struct {
	Success bool          `yaml:"success" json:"success"`
	Capture WindowCapture `yaml:"capture" json:"capture"`
	Image   *Image        `yaml:"-"       json:"-"`
}

// WorkspaceCapture describes a display screenshot taken for a workspace.
type WorkspaceCapture struct {
	Workspace       string           `yaml:"workspace"        json:"workspace"`
	Monitor         string           `yaml:"monitor"          json:"monitor"`
	FilePath        string           `yaml:"file_path"        json:"file_path"`
	Format          string           `yaml:"format"           json:"format"`
	Dimensions      Dimensions       `yaml:"dimensions"       json:"dimensions"`
	WindowsCaptured []CapturedWindow `yaml:"windows_captured" json:"windows_captured"`
}

// WorkspaceResult is returned by Workspace.
type WorkspaceResult struct {
	Success bool             `yaml:"success" json:"success"`
	Capture WorkspaceCapture `yaml:"capture" json:"capture"`
	Image   *Image           `yaml:"-"       json:"-"`
}

func (o Options) validate() (platform.ImageFormat, error) {
	name := o.Format
	if name == "" {
		name = string(platform.FormatPNG)
	}
	format, err := platform.ParseImageFormat(name)
	if err != nil {
		return "", apperr.Invalid("format", o.Format, platform.ImageFormats)
	}
	if o.Scale < 0 || o.Scale > 1 {
		return "", apperr.Invalidf(apperr.Details{"parameter": "scale", "provided": o.Scale},
			"Invalid scale %g. Must be greater than 0 and at most 1", o.Scale)
	}
	if !raster(format) && (o.Inline || o.Label || o.resizes()) {
		return "", apperr.Invalidf(apperr.Details{"parameter": "format", "provided": string(format)},
			"scale, inline and label are not supported for %s captures", format)
	}
	return format, nil
}

func (o Options) resizes() bool {
	return o.Scale > 0 && o.Scale < 1
}

// outputPath returns the explicit path or <dir>/<stem><ext>, creating the
// parent directory.
func (s *Service) outputPath(explicit, stem string, format platform.ImageFormat) (string, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(s.dir, stem+format.Extension())
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", apperr.Wrap(err, apperr.CaptureFailed, "Failed to create output directory",
			apperr.Details{"reason": err.Error(), "path": filepath.Dir(path)})
	}
	return path, nil
}

// Window captures a window, the focused one by default.
func (s *Service) Window(ctx context.Context, windowID *int, opts Options) (WindowResult, error) {
	format, err := opts.validate()
	if err != nil {
		return WindowResult{}, err
	}
	w, err := s.wm.ResolveWindow(ctx, windowID)
	if err != nil {
		return WindowResult{}, err
	}
	path, err := s.outputPath(opts.OutputPath, fmt.Sprintf("window_capture_%d", w.ID), format)
	if err != nil {
		return WindowResult{}, err
	}
	err = s.capture(ctx, func(ctx context.Context, sh platform.Screenshotter) error {
		return sh.CaptureWindow(ctx, platform.ScreenshotOptions{
			WindowID:   w.ID,
			Format:     format,
			OutputPath: path,
			NoShadow:   true,
		})
	})
	if err != nil {
		return WindowResult{}, err
	}
	text := fmt.Sprintf("[%d] %s", w.ID, w.App)
	if w.Title != "" {
		text += " - " + w.Title
	}
	dims, img, err := s.finish(path, format, opts, text)
	if err != nil {
		return WindowResult{}, err
	}
	return WindowResult{
		Success: true,
		Capture: WindowCapture{
			WindowID:   w.ID,
			AppName:    w.App,
			Title:      w.Title,
			FilePath:   path,
			Format:     string(format),
			Dimensions: dims,
		},
		Image: img,
	}, nil
}

// Workspace captures the display showing a workspace, the focused one by
// default. A named workspace is switched to first.
func (s *Service) Workspace(ctx context.Context, workspace string, opts Options) (WorkspaceResult, error) {
	format, err := opts.validate()
	if err != nil {
		return WorkspaceResult{}, err
	}
	if workspace != "" {
		all, err := s.wm.ListWorkspaces(ctx, aerospace.WorkspaceFilter{})
		if err != nil {
			return WorkspaceResult{}, err
		}
		names := aerospace.WorkspaceNames(all)
		if !slices.Contains(names, workspace) {
			return WorkspaceResult{}, apperr.WorkspaceMissing(workspace, names)
		}
		if err := s.wm.SwitchWorkspace(ctx, workspace); err != nil {
			return WorkspaceResult{}, err
		}
	}

	name := workspace
	if name == "" {
		ws, err := s.wm.FocusedWorkspace(ctx)
		if err != nil {
			return WorkspaceResult{}, err
		}
		name = "unknown"
		if ws != nil {
			name = ws.Name
		}
	}

	monitor, err := s.wm.FocusedMonitor(ctx)
	if err != nil {
		return WorkspaceResult{}, err
	}
	monitors, err := s.wm.ListMonitors(ctx)
	if err != nil {
		return WorkspaceResult{}, err
	}
	index, monitorName := 1, "Unknown"
	if monitor != nil {
		monitorName = monitor.Name
		for i, m := range monitors {
			if m.Name == monitor.Name {
				index = i + 1
				break
			}
		}
	}

	captured := []CapturedWindow{}
	if name != "unknown" {
		windows, err := s.wm.ListWindows(ctx, aerospace.WindowFilter{Workspace: name})
		if err != nil {
			return WorkspaceResult{}, err
		}
		for _, w := range windows {
			captured = append(captured, CapturedWindow{WindowID: w.ID, AppName: w.App})
		}
	}

	path, err := s.outputPath(opts.OutputPath, "workspace_capture_"+safeStem(name), format)
	if err != nil {
		return WorkspaceResult{}, err
	}
	err = s.capture(ctx, func(ctx context.Context, sh platform.Screenshotter) error {
		return sh.CaptureDisplay(ctx, platform.ScreenshotOptions{
			DisplayIndex: index,
			Format:       format,
			OutputPath:   path,
		})
	})
	if err != nil {
		return WorkspaceResult{}, err
	}
	dims, img, err := s.finish(path, format, opts, fmt.Sprintf("workspace %s on %s", name, monitorName))
	if err != nil {
		return WorkspaceResult{}, err
	}
	return WorkspaceResult{
		Success: true,
		Capture: WorkspaceCapture{
			Workspace:       name,
			Monitor:         monitorName,
			FilePath:        path,
			Format:          string(format),
			Dimensions:      dims,
			WindowsCaptured: captured,
		},
		Image: img,
	}, nil
}

// capture runs fn and classifies its failure.
func (s *Service) capture(ctx context.Context, fn func(context.Context, platform.Screenshotter) error) error {
	if s.shots == nil {
		return apperr.New(apperr.ToolUnavailable, "Screen capture is not supported on this platform",
			apperr.Details{"suggestion": "Run win-ctrl on macOS"})
	}
	err := fn(ctx, s.shots)
	if err == nil {
		return nil
	}
	var exitErr *platform.ExitError
	switch {
	case errors.As(err, &exitErr):
		reason := exitErr.Stderr
		if reason == "" {
			reason = "Unknown error"
		}
		return apperr.Wrap(err, apperr.CaptureFailed, "Failed to capture screenshot",
			apperr.Details{"reason": reason, "suggestion": permissionHint})
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return apperr.Wrap(err, apperr.ToolUnavailable, "screencapture utility not found",
			apperr.Details{"suggestion": "screencapture ships with macOS; check PATH or the screencapture_bin setting"})
	default:
		return apperr.Wrap(err, apperr.CaptureFailed, "Failed to capture screenshot",
			apperr.Details{"reason": err.Error(), "suggestion": permissionHint})
	}
}

// finish applies scaling and labelling to the written file and reads back
// its dimensions. Undecodable raster output is logged and reported without
// dimensions rather than failing a capture that already succeeded.
func (s *Service) finish(path string, format platform.ImageFormat, opts Options, text string) (Dimensions, *Image, error) {
	if !raster(format) {
		return Dimensions{}, nil, nil
	}
	img, err := decodeFile(path)
	if err != nil {
		s.log.Warn("capture written but not decodable", "path", path, "err", err)
		return Dimensions{}, nil, nil
	}

	changed := false
	if opts.resizes() {
		img = downscale(img, opts.Scale)
		changed = true
	}
	if opts.Label {
		img = label(img, text)
		changed = true
	}

	var data []byte
	if changed || opts.Inline {
		data, err = encode(img, format)
		if err != nil {
			return Dimensions{}, nil, apperr.Wrap(err, apperr.CaptureFailed, "Failed to process screenshot",
				apperr.Details{"reason": err.Error()})
		}
	}
	if changed {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return Dimensions{}, nil, apperr.Wrap(err, apperr.CaptureFailed, "Failed to write screenshot",
				apperr.Details{"reason": err.Error(), "path": path})
		}
		s.log.Debug("capture processed", "path", path, "scale", opts.Scale, "label", opts.Label)
	}

	var inline *Image
	if opts.Inline {
		inline = &Image{Data: data, MIMEType: format.MIMEType()}
	}
	return dimensionsOf(img.Bounds()), inline, nil
}

// safeStem keeps workspace names usable as file name parts.
func safeStem(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)
}
