package server

import (
	"context"
	"encoding/base64"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/win-ctrl/internal/actions"
	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/capture"
	"github.com/mj1618/win-ctrl/internal/display"
	"github.com/mj1618/win-ctrl/internal/focus"
	"github.com/mj1618/win-ctrl/internal/platform"
)

var windowIDParam = mcp.WithNumber("window_id",
	mcp.Description("AeroSpace window ID. Defaults to the focused window."))

func (s *Server) registerTools() {
	s.registerWindowTools()
	s.registerLayoutTools()
	s.registerCaptureTools()
	s.registerDisplayTools()
	s.registerFocusTools()
}

func (s *Server) registerWindowTools() {
	s.mcp.AddTool(
		mcp.NewTool("focus_window",
			mcp.WithDescription("Focus a window by direction or by ID. Give exactly one of direction or window_id."),
			mcp.WithString("direction", mcp.Description("Direction to move focus"), mcp.Enum(aerospace.Directions...)),
			windowIDParam,
		),
		s.handle("focus_window", func(ctx context.Context, a args) (any, error) {
			id, err := a.optionalInt("window_id")
			if err != nil {
				return nil, err
			}
			return s.app.Actions.FocusWindow(ctx, a.str("direction", ""), id)
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_monitor",
			mcp.WithDescription("Focus a monitor by direction (left, right, up, down, next, prev), name or pattern"),
			mcp.WithString("target", mcp.Required(), mcp.Description("Direction, monitor name or pattern")),
		),
		s.handle("focus_monitor", func(ctx context.Context, a args) (any, error) {
			return s.app.Actions.FocusMonitor(ctx, a.str("target", ""))
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_workspace",
			mcp.WithDescription("Switch to a workspace"),
			mcp.WithString("workspace", mcp.Required(), mcp.Description("Workspace name")),
		),
		s.handle("focus_workspace", func(ctx context.Context, a args) (any, error) {
			return s.app.Actions.FocusWorkspace(ctx, a.str("workspace", ""))
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("move_window",
			mcp.WithDescription("Move a window to a workspace, to a monitor, or one step in a direction within the tree"),
			mcp.WithString("target_type", mcp.Required(), mcp.Enum(actions.TargetTypes...)),
			mcp.WithString("target", mcp.Required(), mcp.Description("Workspace name, monitor target or direction")),
			windowIDParam,
		),
		s.handle("move_window", func(ctx context.Context, a args) (any, error) {
			id, err := a.optionalInt("window_id")
			if err != nil {
				return nil, err
			}
			return s.app.Actions.MoveWindow(ctx, a.str("target_type", ""), a.str("target", ""), id)
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("resize_window",
			mcp.WithDescription("Resize the focused window by a pixel amount, e.g. +50, -100 or 800"),
			mcp.WithString("dimension", mcp.Required(), mcp.Enum(actions.Dimensions...)),
			mcp.WithString("amount", mcp.Required(), mcp.Description("Relative (+N, -N) or absolute (N) pixels")),
		),
		s.handle("resize_window", func(ctx context.Context, a args) (any, error) {
			return s.app.Actions.ResizeWindow(ctx, a.str("dimension", ""), a.str("amount", ""))
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("close_window",
			mcp.WithDescription("Close a window"),
			mcp.WithDestructiveHintAnnotation(true),
			windowIDParam,
		),
		s.handle("close_window", func(ctx context.Context, a args) (any, error) {
			id, err := a.optionalInt("window_id")
			if err != nil {
				return nil, err
			}
			return s.app.Actions.CloseWindow(ctx, id)
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("fullscreen_toggle",
			mcp.WithDescription("Toggle fullscreen for a window. The reported state is inferred, not read back."),
			windowIDParam,
		),
		s.handle("fullscreen_toggle", func(ctx context.Context, a args) (any, error) {
			id, err := a.optionalInt("window_id")
			if err != nil {
				return nil, err
			}
			return s.app.Actions.FullscreenToggle(ctx, id)
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("minimize_window",
			mcp.WithDescription("Minimize a window"),
			windowIDParam,
		),
		s.handle("minimize_window", func(ctx context.Context, a args) (any, error) {
			id, err := a.optionalInt("window_id")
			if err != nil {
				return nil, err
			}
			return s.app.Actions.MinimizeWindow(ctx, id)
		}),
	)
}

func (s *Server) registerLayoutTools() {
	s.mcp.AddTool(
		mcp.NewTool("set_layout",
			mcp.WithDescription("Set the layout of the focused window's container"),
			mcp.WithString("layout", mcp.Required(), mcp.Enum(aerospace.Layouts...)),
		),
		s.handle("set_layout", func(ctx context.Context, a args) (any, error) {
			return s.app.Actions.SetLayout(ctx, a.str("layout", ""))
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("split_window",
			mcp.WithDescription("Split the focused window's container"),
			mcp.WithString("orientation", mcp.Required(), mcp.Enum(actions.Orientations...)),
		),
		s.handle("split_window", func(ctx context.Context, a args) (any, error) {
			return s.app.Actions.Split(ctx, a.str("orientation", ""))
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("flatten_workspace",
			mcp.WithDescription("Flatten the container tree of a workspace. Defaults to the focused workspace."),
			mcp.WithString("workspace", mcp.Description("Workspace name")),
		),
		s.handle("flatten_workspace", func(ctx context.Context, a args) (any, error) {
			return s.app.Actions.Flatten(ctx, a.str("workspace", ""))
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("balance_sizes",
			mcp.WithDescription("Give every window in the focused workspace an equal share"),
		),
		s.handle("balance_sizes", func(ctx context.Context, _ args) (any, error) {
			return s.app.Actions.Balance(ctx)
		}),
	)
}

func captureParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("output_path", mcp.Description("Where to write the image. Defaults to the capture directory.")),
		mcp.WithString("format", mcp.Description("Image format"), mcp.Enum(platform.ImageFormats...), mcp.DefaultString("png")),
		mcp.WithNumber("scale", mcp.Description("Downscale factor between 0 and 1 (raster formats only)")),
		mcp.WithBoolean("inline", mcp.Description("Also return the image as content")),
		mcp.WithBoolean("label", mcp.Description("Draw a banner naming the window or workspace onto the image")),
	}
}

func captureOptions(a args) (capture.Options, error) {
	scale, err := a.number("scale", 0)
	if err != nil {
		return capture.Options{}, err
	}
	return capture.Options{
		OutputPath: a.str("output_path", ""),
		Format:     a.str("format", "png"),
		Scale:      scale,
		Inline:     a.flag("inline", false),
		Label:      a.flag("label", false),
	}, nil
}

// captured renders a capture result, attaching the image when one was
// requested.
func (s *Server) captured(result any, img *capture.Image) *mcp.CallToolResult {
	res := mcp.NewToolResultText(s.render(result))
	if img != nil {
		res.Content = append(res.Content, mcp.ImageContent{
			Type:     "image",
			Data:     base64.StdEncoding.EncodeToString(img.Data),
			MIMEType: img.MIMEType,
		})
	}
	return res
}

func (s *Server) registerCaptureTools() {
	windowOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Screenshot a single window"),
		windowIDParam,
	}, captureParams()...)
	s.mcp.AddTool(mcp.NewTool("capture_window", windowOpts...), s.handleCaptureWindow)

	workspaceOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Screenshot the display showing a workspace. Switches to the workspace first when one is named."),
		mcp.WithString("workspace", mcp.Description("Workspace name. Defaults to the focused workspace.")),
	}, captureParams()...)
	s.mcp.AddTool(mcp.NewTool("capture_workspace", workspaceOpts...), s.handleCaptureWorkspace)
}

func (s *Server) handleCaptureWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(request.GetArguments())
	id, err := a.optionalInt("window_id")
	if err != nil {
		return s.failure("capture_window", err), nil
	}
	opts, err := captureOptions(a)
	if err != nil {
		return s.failure("capture_window", err), nil
	}
	result, err := s.app.Capture.Window(ctx, id, opts)
	if err != nil {
		return s.failure("capture_window", err), nil
	}
	return s.captured(result, result.Image), nil
}

func (s *Server) handleCaptureWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(request.GetArguments())
	opts, err := captureOptions(a)
	if err != nil {
		return s.failure("capture_workspace", err), nil
	}
	result, err := s.app.Capture.Workspace(ctx, a.str("workspace", ""), opts)
	if err != nil {
		return s.failure("capture_workspace", err), nil
	}
	return s.captured(result, result.Image), nil
}

type displayInfoResult struct {
	Success      bool `yaml:"success" json:"success"`
	display.Info `yaml:",inline"`
}

type categoryResult struct {
	Success              bool `yaml:"success" json:"success"`
	display.CategoryInfo `yaml:",inline"`
}

func (s *Server) registerDisplayTools() {
	s.mcp.AddTool(
		mcp.NewTool("get_display_info",
			mcp.WithDescription("Report every connected display with resolution, scale, size and arrangement"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handle("get_display_info", func(ctx context.Context, _ args) (any, error) {
			info, err := s.app.Displays.Info(ctx)
			if err != nil {
				return nil, err
			}
			return displayInfoResult{Success: true, Info: info}, nil
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("get_display_category",
			mcp.WithDescription("Classify the display configuration and recommend a layout strategy"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handle("get_display_category", func(ctx context.Context, _ args) (any, error) {
			info, err := s.app.Displays.Category(ctx)
			if err != nil {
				return nil, err
			}
			return categoryResult{Success: true, CategoryInfo: info}, nil
		}),
	)
}

func (s *Server) registerFocusTools() {
	s.mcp.AddTool(
		mcp.NewTool("apply_focus_preset",
			mcp.WithDescription("Arrange windows for focused work. \"auto\" picks a layout for the current displays; a saved preset name applies that preset."),
			mcp.WithString("preset", mcp.Description("auto, a built-in preset or a saved preset name"), mcp.DefaultString(focus.AutoPreset)),
			mcp.WithNumber("focus_window_id", mcp.Description("Window to put in the focus position. Defaults to the focused window.")),
			mcp.WithArray("reference_apps", mcp.Description("Apps to keep visible beside the focus window"), mcp.WithStringItems()),
			mcp.WithBoolean("hide_communication", mcp.Description("Minimize chat and mail apps"), mcp.DefaultBool(false)),
		),
		s.handle("apply_focus_preset", func(ctx context.Context, a args) (any, error) {
			id, err := a.optionalInt("focus_window_id")
			if err != nil {
				return nil, err
			}
			return s.app.Focus.Apply(ctx, focus.ApplyOptions{
				Preset:            a.str("preset", focus.AutoPreset),
				FocusWindowID:     id,
				ReferenceApps:     a.list("reference_apps"),
				HideCommunication: a.flag("hide_communication", false),
			})
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("save_focus_preset",
			mcp.WithDescription("Save the current window arrangement as a named preset"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Preset name: letters, digits, '-' and '_'")),
			mcp.WithString("description", mcp.Description("Free-form description")),
		),
		s.handle("save_focus_preset", func(ctx context.Context, a args) (any, error) {
			return s.app.Focus.Save(ctx, a.str("name", ""), a.str("description", ""))
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("load_focus_preset",
			mcp.WithDescription("Restore a saved preset"),
			mcp.WithString("name", mcp.Required()),
			mcp.WithBoolean("adapt_to_displays", mcp.Description("Proceed when the display category has changed"), mcp.DefaultBool(true)),
		),
		s.handle("load_focus_preset", func(ctx context.Context, a args) (any, error) {
			return s.app.Focus.Load(ctx, a.str("name", ""), a.flag("adapt_to_displays", true))
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("list_focus_presets",
			mcp.WithDescription("List saved presets"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handle("list_focus_presets", func(ctx context.Context, _ args) (any, error) {
			return s.app.Focus.List(ctx)
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("delete_focus_preset",
			mcp.WithDescription("Delete a saved preset. Only call this when the user explicitly asks."),
			mcp.WithDestructiveHintAnnotation(true),
			mcp.WithString("name", mcp.Required()),
		),
		s.handle("delete_focus_preset", func(ctx context.Context, a args) (any, error) {
			return s.app.Focus.Delete(ctx, a.str("name", ""))
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("resize_window_optimal",
			mcp.WithDescription("Resize a window to a comfortable width for its content"),
			windowIDParam,
			mcp.WithString("content_type", mcp.Required(), mcp.Enum(focus.ContentTypes...)),
			mcp.WithNumber("max_width_percent", mcp.DefaultNumber(80)),
			mcp.WithNumber("min_width_percent", mcp.DefaultNumber(40)),
		),
		s.handle("resize_window_optimal", func(ctx context.Context, a args) (any, error) {
			id, err := a.optionalInt("window_id")
			if err != nil {
				return nil, err
			}
			maxPct, err := a.integer("max_width_percent", 80)
			if err != nil {
				return nil, err
			}
			minPct, err := a.integer("min_width_percent", 40)
			if err != nil {
				return nil, err
			}
			return s.app.Focus.ResizeOptimal(ctx, focus.OptimalOptions{
				WindowID:        id,
				ContentType:     a.str("content_type", ""),
				MaxWidthPercent: maxPct,
				MinWidthPercent: minPct,
			})
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("set_window_zone",
			mcp.WithDescription("Place a window in a named screen zone"),
			windowIDParam,
			mcp.WithString("zone", mcp.Required(), mcp.Enum(focus.Zones...)),
			mcp.WithString("monitor", mcp.Description("primary, secondary or a monitor number"), mcp.DefaultString("primary")),
		),
		s.handle("set_window_zone", func(ctx context.Context, a args) (any, error) {
			id, err := a.optionalInt("window_id")
			if err != nil {
				return nil, err
			}
			return s.app.Focus.SetZone(ctx, id, a.str("zone", ""), a.str("monitor", "primary"))
		}),
	)

	s.mcp.AddTool(
		mcp.NewTool("move_app_category_to_monitor",
			mcp.WithDescription("Move every window of an app category to one monitor"),
			mcp.WithString("category", mcp.Required(), mcp.Enum(focus.CategoryNames()...)),
			mcp.WithString("monitor", mcp.Required(), mcp.Description("primary, secondary, tertiary or a 1-based index")),
			mcp.WithString("layout", mcp.Enum("tiled", "accordion", "stacked"), mcp.DefaultString("tiled")),
		),
		s.handle("move_app_category_to_monitor", func(ctx context.Context, a args) (any, error) {
			return s.app.Focus.MoveCategory(ctx, a.str("category", ""), a.str("monitor", ""), a.str("layout", "tiled"))
		}),
	)
}
