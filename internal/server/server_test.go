package server_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/mj1618/win-ctrl/internal/aerospace/aerospacetest"
	"github.com/mj1618/win-ctrl/internal/app"
	"github.com/mj1618/win-ctrl/internal/config"
	"github.com/mj1618/win-ctrl/internal/platform"
	"github.com/mj1618/win-ctrl/internal/platform/darwin"
	"github.com/mj1618/win-ctrl/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type content struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Data     string `json:"data"`
	MIMEType string `json:"mimeType"`
}

type toolResult struct {
	IsError bool      `json:"isError"`
	Content []content `json:"content"`
}

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newServer(t *testing.T) (*server.Server, *aerospacetest.Fake) {
	t.Helper()
	fake := aerospacetest.New()
	cfg := config.Defaults()
	cfg.PresetDir = t.TempDir()
	cfg.CaptureDir = t.TempDir()

	a, err := app.NewWithProvider(cfg, nil, &platform.Provider{
		Executor:      fake,
		Screenshotter: darwin.NewScreenshotter(fake, ""),
		Displays:      darwin.NewDisplayInventory(fake, ""),
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return server.New(a, server.Config{}), fake
}

// rpc sends one JSON-RPC request and returns the raw result.
func rpc(t *testing.T, s *server.Server, method string, params any) jsoniter.RawMessage {
	t.Helper()
	req, err := json.Marshal(map[string]any{"jsonrpc": "2.0", "id": 1, "method": method, "params": params})
	require.NoError(t, err)

	resp := s.MCP().HandleMessage(context.Background(), req)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded struct {
		Result jsoniter.RawMessage `json:"result"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Nil(t, decoded.Error, "rpc %s failed: %s", method, raw)
	return decoded.Result
}

func callTool(t *testing.T, s *server.Server, name string, args map[string]any) toolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	var res toolResult
	require.NoError(t, json.Unmarshal(rpc(t, s, "tools/call", map[string]any{"name": name, "arguments": args}), &res))
	require.NotEmpty(t, res.Content)
	return res
}

func decodeText(t *testing.T, text string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(text), v), "body: %s", text)
}

func failureOf(t *testing.T, res toolResult) envelope {
	t.Helper()
	require.True(t, res.IsError)
	var env envelope
	decodeText(t, res.Content[0].Text, &env)
	require.False(t, env.Success)
	return env
}

func readResource(t *testing.T, s *server.Server, uri string) string {
	t.Helper()
	var res struct {
		Contents []struct {
			URI      string `json:"uri"`
			MIMEType string `json:"mimeType"`
			Text     string `json:"text"`
		} `json:"contents"`
	}
	require.NoError(t, json.Unmarshal(rpc(t, s, "resources/read", map[string]any{"uri": uri}), &res))
	require.Len(t, res.Contents, 1)
	assert.Equal(t, uri, res.Contents[0].URI)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	return res.Contents[0].Text
}

func TestListTools(t *testing.T) {
	s, _ := newServer(t)

	var res struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rpc(t, s, "tools/list", map[string]any{}), &res))

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"focus_window", "focus_monitor", "focus_workspace", "move_window",
		"resize_window", "close_window", "fullscreen_toggle", "minimize_window",
		"set_layout", "split_window", "flatten_workspace", "balance_sizes",
		"capture_window", "capture_workspace",
		"get_display_info", "get_display_category",
		"apply_focus_preset", "save_focus_preset", "load_focus_preset",
		"list_focus_presets", "delete_focus_preset",
		"resize_window_optimal", "set_window_zone", "move_app_category_to_monitor",
	}, names)
}

func TestFocusWindowTool(t *testing.T) {
	s, fake := newServer(t)

	res := callTool(t, s, "focus_window", map[string]any{"window_id": 2})
	require.False(t, res.IsError, res.Content[0].Text)

	var body struct {
		Success       bool `json:"success"`
		FocusedWindow struct {
			WindowID int    `json:"window_id"`
			AppName  string `json:"app_name"`
		} `json:"focused_window"`
	}
	decodeText(t, res.Content[0].Text, &body)
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.FocusedWindow.WindowID)
	assert.Equal(t, "Safari", body.FocusedWindow.AppName)
	assert.Equal(t, 2, fake.Focused)
}

func TestToolParameterErrors(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		code string
	}{
		{"both direction and id", "focus_window", map[string]any{"direction": "left", "window_id": 1}, "INVALID_PARAMETERS"},
		{"non-integer id", "close_window", map[string]any{"window_id": "abc"}, "INVALID_PARAMETERS"},
		{"fractional id", "minimize_window", map[string]any{"window_id": 1.5}, "INVALID_PARAMETERS"},
		{"unknown window", "close_window", map[string]any{"window_id": 99}, "WINDOW_NOT_FOUND"},
		{"bad layout", "set_layout", map[string]any{"layout": "spiral"}, "INVALID_PARAMETERS"},
		{"bad scale", "capture_window", map[string]any{"scale": "big"}, "INVALID_PARAMETERS"},
		{"missing preset", "load_focus_preset", map[string]any{"name": "nope"}, "PRESET_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newServer(t)
			env := failureOf(t, callTool(t, s, tt.tool, tt.args))
			assert.Equal(t, tt.code, env.Error.Code)
			assert.NotEmpty(t, env.Error.Message)
			assert.NotNil(t, env.Error.Details)
		})
	}
}

func TestCommandFailureEnvelope(t *testing.T) {
	s, fake := newServer(t)
	fake.FailOn("aerospace layout", 2, "layout failed")

	env := failureOf(t, callTool(t, s, "set_layout", map[string]any{"layout": "tiles"}))
	assert.Equal(t, "COMMAND_FAILED", env.Error.Code)
}

func TestCaptureWindowInline(t *testing.T) {
	s, _ := newServer(t)

	res := callTool(t, s, "capture_window", map[string]any{"window_id": 2, "inline": true})
	require.False(t, res.IsError, res.Content[0].Text)
	require.Len(t, res.Content, 2)

	var body struct {
		Capture struct {
			WindowID   int    `json:"window_id"`
			FilePath   string `json:"file_path"`
			Format     string `json:"format"`
			Dimensions struct {
				Width  *int `json:"width"`
				Height *int `json:"height"`
			} `json:"dimensions"`
		} `json:"capture"`
	}
	decodeText(t, res.Content[0].Text, &body)
	assert.Equal(t, 2, body.Capture.WindowID)
	assert.Equal(t, "png", body.Capture.Format)
	require.NotNil(t, body.Capture.Dimensions.Width)
	assert.Equal(t, 64, *body.Capture.Dimensions.Width)

	img := res.Content[1]
	assert.Equal(t, "image", img.Type)
	assert.Equal(t, "image/png", img.MIMEType)
	data, err := base64.StdEncoding.DecodeString(img.Data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\x89PNG"))
}

func TestCaptureWithoutInlineHasNoImage(t *testing.T) {
	s, _ := newServer(t)

	res := callTool(t, s, "capture_workspace", map[string]any{"format": "jpg"})
	require.False(t, res.IsError, res.Content[0].Text)
	assert.Len(t, res.Content, 1)
}

func TestDisplayTools(t *testing.T) {
	s, _ := newServer(t)

	res := callTool(t, s, "get_display_info", nil)
	require.False(t, res.IsError, res.Content[0].Text)
	var info struct {
		Success     bool             `json:"success"`
		Displays    []map[string]any `json:"displays"`
		Arrangement string           `json:"arrangement"`
		Category    string           `json:"category"`
	}
	decodeText(t, res.Content[0].Text, &info)
	assert.True(t, info.Success)
	assert.Len(t, info.Displays, 2)
	assert.Equal(t, "horizontal", info.Arrangement)
	assert.Equal(t, "dual_display", info.Category)

	res = callTool(t, s, "get_display_category", nil)
	var category struct {
		Success             bool   `json:"success"`
		Category            string `json:"category"`
		RecommendedStrategy string `json:"recommended_strategy"`
	}
	decodeText(t, res.Content[0].Text, &category)
	assert.True(t, category.Success)
	assert.Equal(t, "dual_display", category.Category)
	assert.NotEmpty(t, category.RecommendedStrategy)
}

func TestPresetToolsRoundTrip(t *testing.T) {
	s, _ := newServer(t)

	res := callTool(t, s, "save_focus_preset", map[string]any{"name": "deep-work", "description": "editor left"})
	require.False(t, res.IsError, res.Content[0].Text)

	res = callTool(t, s, "list_focus_presets", nil)
	var list struct {
		Presets []struct {
			Name        string `json:"name"`
			WindowCount int    `json:"window_count"`
		} `json:"presets"`
	}
	decodeText(t, res.Content[0].Text, &list)
	require.Len(t, list.Presets, 1)
	assert.Equal(t, "deep-work", list.Presets[0].Name)
	assert.Equal(t, 4, list.Presets[0].WindowCount)

	assert.Contains(t, readResource(t, s, "aerospace://presets"), "deep-work")

	res = callTool(t, s, "delete_focus_preset", map[string]any{"name": "deep-work"})
	require.False(t, res.IsError, res.Content[0].Text)
	assert.NotContains(t, readResource(t, s, "aerospace://presets"), "deep-work")
}

func TestApplyFocusPresetAcceptsCommaSeparatedApps(t *testing.T) {
	s, _ := newServer(t)

	res := callTool(t, s, "apply_focus_preset", map[string]any{"reference_apps": "Safari, Code"})
	require.False(t, res.IsError, res.Content[0].Text)

	var body struct {
		PresetApplied string `json:"preset_applied"`
	}
	decodeText(t, res.Content[0].Text, &body)
	assert.Equal(t, "dual_monitor_focus", body.PresetApplied)
}

func TestWindowsResource(t *testing.T) {
	s, _ := newServer(t)

	var body struct {
		Windows []struct {
			WindowID    int    `json:"window_id"`
			AppBundleID string `json:"app_bundle_id"`
			Monitor     string `json:"monitor"`
			IsFocused   bool   `json:"is_focused"`
		} `json:"windows"`
		TotalCount int `json:"total_count"`
	}
	decodeText(t, readResource(t, s, "aerospace://windows"), &body)
	require.Equal(t, 4, body.TotalCount)
	require.Len(t, body.Windows, 4)
	for _, w := range body.Windows {
		assert.Equal(t, w.WindowID == 1, w.IsFocused, "window %d", w.WindowID)
	}
	assert.Equal(t, "com.mitchellh.ghostty", body.Windows[0].AppBundleID)
}

func TestWindowTemplateResource(t *testing.T) {
	s, _ := newServer(t)

	var w struct {
		WindowID int    `json:"window_id"`
		AppName  string `json:"app_name"`
	}
	decodeText(t, readResource(t, s, "aerospace://windows/3"), &w)
	assert.Equal(t, 3, w.WindowID)
	assert.Equal(t, "Slack", w.AppName)

	var env envelope
	decodeText(t, readResource(t, s, "aerospace://windows/99"), &env)
	assert.False(t, env.Success)
	assert.Equal(t, "WINDOW_NOT_FOUND", env.Error.Code)
}

func TestWorkspaceResources(t *testing.T) {
	s, _ := newServer(t)

	var list struct {
		Workspaces []struct {
			Name        string `json:"name"`
			IsFocused   bool   `json:"is_focused"`
			IsVisible   bool   `json:"is_visible"`
			WindowCount int    `json:"window_count"`
		} `json:"workspaces"`
	}
	decodeText(t, readResource(t, s, "aerospace://workspaces"), &list)
	require.Len(t, list.Workspaces, 3)
	byName := map[string]int{}
	for i, ws := range list.Workspaces {
		byName[ws.Name] = i
	}
	one := list.Workspaces[byName["1"]]
	assert.True(t, one.IsFocused)
	assert.Equal(t, 2, one.WindowCount)
	assert.True(t, list.Workspaces[byName["3"]].IsVisible)
	assert.False(t, list.Workspaces[byName["2"]].IsVisible)

	var detail struct {
		Name    string `json:"name"`
		Windows []struct {
			AppName string `json:"app_name"`
		} `json:"windows"`
	}
	decodeText(t, readResource(t, s, "aerospace://workspaces/2"), &detail)
	assert.Equal(t, "2", detail.Name)
	require.Len(t, detail.Windows, 1)
	assert.Equal(t, "Slack", detail.Windows[0].AppName)

	var env envelope
	decodeText(t, readResource(t, s, "aerospace://workspaces/9"), &env)
	assert.Equal(t, "WORKSPACE_NOT_FOUND", env.Error.Code)
}

func TestMonitorsAndFocusedResources(t *testing.T) {
	s, _ := newServer(t)

	var monitors struct {
		Monitors []struct {
			ID               int      `json:"id"`
			IsMain           bool     `json:"is_main"`
			Workspaces       []string `json:"workspaces"`
			FocusedWorkspace *string  `json:"focused_workspace"`
		} `json:"monitors"`
	}
	decodeText(t, readResource(t, s, "aerospace://monitors"), &monitors)
	require.Len(t, monitors.Monitors, 2)
	assert.True(t, monitors.Monitors[0].IsMain)
	assert.Equal(t, []string{"1", "2"}, monitors.Monitors[0].Workspaces)
	require.NotNil(t, monitors.Monitors[1].FocusedWorkspace)
	assert.Equal(t, "3", *monitors.Monitors[1].FocusedWorkspace)

	var focused struct {
		Window *struct {
			WindowID int `json:"window_id"`
		} `json:"window"`
		Workspace *struct {
			Name        string `json:"name"`
			WindowCount int    `json:"window_count"`
		} `json:"workspace"`
		Monitor *struct {
			ID int `json:"id"`
		} `json:"monitor"`
	}
	decodeText(t, readResource(t, s, "aerospace://focused"), &focused)
	require.NotNil(t, focused.Window)
	assert.Equal(t, 1, focused.Window.WindowID)
	require.NotNil(t, focused.Workspace)
	assert.Equal(t, 2, focused.Workspace.WindowCount)
	require.NotNil(t, focused.Monitor)
	assert.Equal(t, 1, focused.Monitor.ID)
}

func TestTreeResource(t *testing.T) {
	s, _ := newServer(t)

	var body struct {
		Tree struct {
			Type     string `json:"type"`
			Name     string `json:"name"`
			Children []struct {
				Type     string `json:"type"`
				WindowID int    `json:"window_id"`
			} `json:"children"`
		} `json:"tree"`
	}
	decodeText(t, readResource(t, s, "aerospace://tree"), &body)
	assert.Equal(t, "workspace", body.Tree.Type)
	assert.Equal(t, "1", body.Tree.Name)
	require.Len(t, body.Tree.Children, 2)
	assert.Equal(t, "window", body.Tree.Children[0].Type)
}

func TestDisplayResources(t *testing.T) {
	s, _ := newServer(t)

	var displays struct {
		Displays []struct {
			ID         int      `json:"id"`
			Name       string   `json:"name"`
			Workspaces []string `json:"workspaces"`
		} `json:"displays"`
		CategoryDescription string `json:"category_description"`
	}
	decodeText(t, readResource(t, s, "aerospace://displays"), &displays)
	require.Len(t, displays.Displays, 2)
	assert.Equal(t, []string{"3"}, displays.Displays[1].Workspaces)
	assert.NotEmpty(t, displays.CategoryDescription)

	var detail struct {
		ID           int    `json:"id"`
		SizeCategory string `json:"size_category"`
		WindowCount  int    `json:"window_count"`
	}
	decodeText(t, readResource(t, s, "aerospace://displays/2"), &detail)
	assert.Equal(t, 2, detail.ID)
	assert.Equal(t, 1, detail.WindowCount)

	var env envelope
	decodeText(t, readResource(t, s, "aerospace://displays/7"), &env)
	assert.Equal(t, "DISPLAY_NOT_FOUND", env.Error.Code)

	assert.Contains(t, readResource(t, s, "aerospace://display-category"), "dual_display")
}

func getPrompt(t *testing.T, s *server.Server, name string, args map[string]string) string {
	t.Helper()
	var res struct {
		Messages []struct {
			Role    string  `json:"role"`
			Content content `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rpc(t, s, "prompts/get", map[string]any{"name": name, "arguments": args}), &res))
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "user", res.Messages[0].Role)
	return res.Messages[0].Content.Text
}

func TestPrompts(t *testing.T) {
	s, _ := newServer(t)

	text := getPrompt(t, s, "organize_windows", map[string]string{"strategy": "by_app"})
	assert.True(t, strings.HasPrefix(text, "Strategy requested: by_app\n\n"), text)

	text = getPrompt(t, s, "smart_focus", map[string]string{"strategy": "balanced", "save_as": "evening"})
	assert.True(t, strings.HasPrefix(text, "Arguments:\n- strategy: balanced\n- save_as: evening\n\n"), text)
	assert.Contains(t, text, "apply_focus_preset")

	text = getPrompt(t, s, "presentation_layout", nil)
	assert.True(t, strings.HasPrefix(text, "Prepare the user's windows"), text)

	text = getPrompt(t, s, "debug_app_gui", map[string]string{"app_name": "Preview"})
	assert.Contains(t, text, "- app_name: Preview")
	assert.Contains(t, text, "capture_window")
}
