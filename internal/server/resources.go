package server

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/display"
	"github.com/mj1618/win-ctrl/internal/output"
)

const (
	uriScheme    = "aerospace://"
	jsonMIMEType = "application/json"
	yamlMIMEType = "application/yaml"
)

// WindowEntry is one window in the windows resources.
type WindowEntry struct {
	WindowID    int    `yaml:"window_id"     json:"window_id"`
	AppName     string `yaml:"app_name"      json:"app_name"`
	AppBundleID string `yaml:"app_bundle_id" json:"app_bundle_id"`
	Title       string `yaml:"title"         json:"title"`
	Workspace   string `yaml:"workspace"     json:"workspace"`
	Monitor     string `yaml:"monitor"       json:"monitor"`
	IsFocused   bool   `yaml:"is_focused"    json:"is_focused"`
}

type windowsResource struct {
	Windows    []WindowEntry `yaml:"windows"     json:"windows"`
	TotalCount int           `yaml:"total_count" json:"total_count"`
}

// WorkspaceEntry is one workspace in the workspaces resource.
type WorkspaceEntry struct {
	Name        string `yaml:"name"         json:"name"`
	Monitor     string `yaml:"monitor"      json:"monitor"`
	IsFocused   bool   `yaml:"is_focused"   json:"is_focused"`
	IsVisible   bool   `yaml:"is_visible"   json:"is_visible"`
	WindowCount int    `yaml:"window_count" json:"window_count"`
}

type workspacesResource struct {
	Workspaces []WorkspaceEntry `yaml:"workspaces"  json:"workspaces"`
	TotalCount int              `yaml:"total_count" json:"total_count"`
}

type windowSummary struct {
	WindowID int    `yaml:"window_id" json:"window_id"`
	AppName  string `yaml:"app_name"  json:"app_name"`
	Title    string `yaml:"title"     json:"title"`
}

type workspaceDetail struct {
	Name      string          `yaml:"name"       json:"name"`
	Monitor   string          `yaml:"monitor"    json:"monitor"`
	IsFocused bool            `yaml:"is_focused" json:"is_focused"`
	IsVisible bool            `yaml:"is_visible" json:"is_visible"`
	Windows   []windowSummary `yaml:"windows"    json:"windows"`
}

// MonitorEntry is one monitor in the monitors resource.
type MonitorEntry struct {
	ID               int      `yaml:"id"                json:"id"`
	Name             string   `yaml:"name"              json:"name"`
	IsMain           bool     `yaml:"is_main"           json:"is_main"`
	IsFocused        bool     `yaml:"is_focused"        json:"is_focused"`
	Workspaces       []string `yaml:"workspaces"        json:"workspaces"`
	FocusedWorkspace *string  `yaml:"focused_workspace" json:"focused_workspace"`
}

type monitorsResource struct {
	Monitors   []MonitorEntry `yaml:"monitors"    json:"monitors"`
	TotalCount int            `yaml:"total_count" json:"total_count"`
}

// TreeNode is a node of the focused workspace tree.
type TreeNode struct {
	Type     string     `yaml:"type"                json:"type"`
	Name     string     `yaml:"name,omitempty"      json:"name,omitempty"`
	WindowID int        `yaml:"window_id,omitempty" json:"window_id,omitempty"`
	AppName  string     `yaml:"app_name,omitempty"  json:"app_name,omitempty"`
	Title    string     `yaml:"title,omitempty"     json:"title,omitempty"`
	Children []TreeNode `yaml:"children,omitempty"  json:"children,omitempty"`
}

type treeResource struct {
	Tree TreeNode `yaml:"tree" json:"tree"`
}

type focusedWorkspace struct {
	Name        string `yaml:"name"         json:"name"`
	WindowCount int    `yaml:"window_count" json:"window_count"`
}

type focusedMonitor struct {
	ID   int    `yaml:"id"   json:"id"`
	Name string `yaml:"name" json:"name"`
}

type focusedResource struct {
	Window    *windowSummary    `yaml:"window"    json:"window"`
	Workspace *focusedWorkspace `yaml:"workspace" json:"workspace"`
	Monitor   *focusedMonitor   `yaml:"monitor"   json:"monitor"`
}

type displayWithWorkspaces struct {
	display.Descriptor `yaml:",inline"`
	Workspaces         []string `yaml:"workspaces" json:"workspaces"`
}

type displaysResource struct {
	Displays             []displayWithWorkspaces `yaml:"displays"               json:"displays"`
	Arrangement          string                  `yaml:"arrangement"            json:"arrangement"`
	TotalEffectivePixels int                     `yaml:"total_effective_pixels" json:"total_effective_pixels"`
	Category             display.Category        `yaml:"category"               json:"category"`
	CategoryDescription  string                  `yaml:"category_description"   json:"category_description"`
}

func (s *Server) registerResources() {
	static := []struct {
		uri, name, desc string
		read            func(context.Context) (any, error)
	}{
		{"windows", "All windows", "Every window AeroSpace manages", s.readWindows},
		{"workspaces", "All workspaces", "Workspaces with focus, visibility and window counts", s.readWorkspaces},
		{"monitors", "All monitors", "Monitors with their workspaces", s.readMonitors},
		{"tree", "Focused workspace tree", "The focused workspace and its windows", s.readTree},
		{"focused", "Focused state", "The focused window, workspace and monitor", s.readFocused},
		{"displays", "Displays", "Display hardware, arrangement and per-display workspaces", s.readDisplays},
		{"display-category", "Display category", "Display classification and recommended strategy", s.readCategory},
		{"presets", "Focus presets", "Saved focus presets", s.readPresets},
	}
	for _, r := range static {
		s.mcp.AddResource(
			mcp.NewResource(uriScheme+r.uri, r.name,
				mcp.WithResourceDescription(r.desc),
				mcp.WithMIMEType(s.mimeType()),
			),
			s.resource(r.read),
		)
	}

	templates := []struct {
		uri, prefix, name, desc string
		read                    func(context.Context, string) (any, error)
	}{
		{"windows/{window_id}", "windows/", "Window", "One window by ID", s.readWindow},
		{"workspaces/{workspace_name}", "workspaces/", "Workspace", "One workspace with its windows", s.readWorkspace},
		{"displays/{display_id}", "displays/", "Display", "One display with its workspaces", s.readDisplay},
	}
	for _, t := range templates {
		s.mcp.AddResourceTemplate(
			mcp.NewResourceTemplate(uriScheme+t.uri, t.name,
				mcp.WithTemplateDescription(t.desc),
				mcp.WithTemplateMIMEType(s.mimeType()),
			),
			s.template(uriScheme+t.prefix, t.read),
		)
	}
}

func (s *Server) mimeType() string {
	if s.format == output.FormatYAML {
		return yamlMIMEType
	}
	return jsonMIMEType
}

func (s *Server) resource(read func(context.Context) (any, error)) mcpserver.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		v, err := read(ctx)
		return s.contents(request.Params.URI, v, err), nil
	}
}

// template passes the URI segment after prefix to read.
func (s *Server) template(prefix string, read func(context.Context, string) (any, error)) mcpserver.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := request.Params.URI
		param := strings.TrimPrefix(uri, prefix)
		if unescaped, err := url.PathUnescape(param); err == nil {
			param = unescaped
		}
		v, err := read(ctx, param)
		return s.contents(uri, v, err), nil
	}
}

// contents renders a resource body. Failures are returned as the error
// envelope so clients see the same shape as tool failures.
func (s *Server) contents(uri string, v any, err error) []mcp.ResourceContents {
	s.log.Debug("resource read", "uri", uri)
	if err != nil {
		env := apperr.Envelope(err)
		s.log.Warn("resource failed", "uri", uri, "code", env.Error.Code)
		v = env
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: s.mimeType(), Text: s.render(v)},
	}
}

func (s *Server) windowEntries(ctx context.Context) ([]WindowEntry, error) {
	windows, err := s.app.WM.ListWindows(ctx, aerospace.WindowFilter{})
	if err != nil {
		return nil, err
	}
	focused, err := s.app.WM.FocusedWindow(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]WindowEntry, 0, len(windows))
	for _, w := range windows {
		entries = append(entries, WindowEntry{
			WindowID:    w.ID,
			AppName:     w.App,
			AppBundleID: w.BundleID,
			Title:       w.Title,
			Workspace:   w.Workspace,
			Monitor:     w.MonitorName,
			IsFocused:   focused != nil && focused.ID == w.ID,
		})
	}
	return entries, nil
}

func (s *Server) readWindows(ctx context.Context) (any, error) {
	entries, err := s.windowEntries(ctx)
	if err != nil {
		return nil, err
	}
	return windowsResource{Windows: entries, TotalCount: len(entries)}, nil
}

func (s *Server) readWindow(ctx context.Context, raw string) (any, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.Invalidf(apperr.Details{"parameter": "window_id", "provided": raw}, "window_id must be an integer")
	}
	entries, err := s.windowEntries(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.WindowID == id {
			return e, nil
		}
		ids = append(ids, e.WindowID)
	}
	return nil, apperr.WindowMissing(id, ids)
}

// workspaceState lists workspaces with the names of the focused and
// visible ones.
func (s *Server) workspaceState(ctx context.Context) ([]aerospace.Workspace, string, map[string]bool, error) {
	all, err := s.app.WM.ListWorkspaces(ctx, aerospace.WorkspaceFilter{})
	if err != nil {
		return nil, "", nil, err
	}
	visible, err := s.app.WM.ListWorkspaces(ctx, aerospace.WorkspaceFilter{Visible: true})
	if err != nil {
		return nil, "", nil, err
	}
	focused, err := s.app.WM.FocusedWorkspace(ctx)
	if err != nil {
		return nil, "", nil, err
	}
	isVisible := make(map[string]bool, len(visible))
	for _, ws := range visible {
		isVisible[ws.Name] = true
	}
	var focusedName string
	if focused != nil {
		focusedName = focused.Name
	}
	return all, focusedName, isVisible, nil
}

func (s *Server) readWorkspaces(ctx context.Context) (any, error) {
	all, focused, visible, err := s.workspaceState(ctx)
	if err != nil {
		return nil, err
	}
	windows, err := s.app.WM.ListWindows(ctx, aerospace.WindowFilter{})
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, w := range windows {
		counts[w.Workspace]++
	}
	entries := make([]WorkspaceEntry, 0, len(all))
	for _, ws := range all {
		entries = append(entries, WorkspaceEntry{
			Name:        ws.Name,
			Monitor:     ws.MonitorName,
			IsFocused:   ws.Name == focused,
			IsVisible:   visible[ws.Name],
			WindowCount: counts[ws.Name],
		})
	}
	return workspacesResource{Workspaces: entries, TotalCount: len(entries)}, nil
}

func (s *Server) readWorkspace(ctx context.Context, name string) (any, error) {
	all, focused, visible, err := s.workspaceState(ctx)
	if err != nil {
		return nil, err
	}
	var found *aerospace.Workspace
	for i := range all {
		if all[i].Name == name {
			found = &all[i]
			break
		}
	}
	if found == nil {
		return nil, apperr.WorkspaceMissing(name, aerospace.WorkspaceNames(all))
	}
	windows, err := s.app.WM.ListWindows(ctx, aerospace.WindowFilter{Workspace: name})
	if err != nil {
		return nil, err
	}
	return workspaceDetail{
		Name:      found.Name,
		Monitor:   found.MonitorName,
		IsFocused: found.Name == focused,
		IsVisible: visible[found.Name],
		Windows:   summarize(windows),
	}, nil
}

func summarize(windows []aerospace.Window) []windowSummary {
	out := make([]windowSummary, 0, len(windows))
	for _, w := range windows {
		out = append(out, windowSummary{WindowID: w.ID, AppName: w.App, Title: w.Title})
	}
	return out
}

func (s *Server) readMonitors(ctx context.Context) (any, error) {
	monitors, err := s.app.WM.ListMonitors(ctx)
	if err != nil {
		return nil, err
	}
	all, _, visible, err := s.workspaceState(ctx)
	if err != nil {
		return nil, err
	}
	focused, err := s.app.WM.FocusedMonitor(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]MonitorEntry, 0, len(monitors))
	for i, m := range monitors {
		e := MonitorEntry{
			ID:         m.ID,
			Name:       m.Name,
			IsMain:     i == 0,
			IsFocused:  focused != nil && focused.ID == m.ID,
			Workspaces: []string{},
		}
		for _, ws := range all {
			if ws.MonitorName != m.Name {
				continue
			}
			e.Workspaces = append(e.Workspaces, ws.Name)
			if visible[ws.Name] && e.FocusedWorkspace == nil {
				name := ws.Name
				e.FocusedWorkspace = &name
			}
		}
		entries = append(entries, e)
	}
	return monitorsResource{Monitors: entries, TotalCount: len(entries)}, nil
}

func (s *Server) readTree(ctx context.Context) (any, error) {
	ws, err := s.app.WM.FocusedWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, apperr.New(apperr.WorkspaceNotFound, "No workspace is focused", nil)
	}
	windows, err := s.app.WM.ListWindows(ctx, aerospace.WindowFilter{Workspace: ws.Name})
	if err != nil {
		return nil, err
	}
	root := TreeNode{Type: "workspace", Name: ws.Name, Children: []TreeNode{}}
	for _, w := range windows {
		root.Children = append(root.Children, TreeNode{Type: "window", WindowID: w.ID, AppName: w.App, Title: w.Title})
	}
	return treeResource{Tree: root}, nil
}

func (s *Server) readFocused(ctx context.Context) (any, error) {
	var res focusedResource

	w, err := s.app.WM.FocusedWindow(ctx)
	if err != nil {
		return nil, err
	}
	if w != nil {
		res.Window = &windowSummary{WindowID: w.ID, AppName: w.App, Title: w.Title}
	}

	ws, err := s.app.WM.FocusedWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	if ws != nil {
		windows, err := s.app.WM.ListWindows(ctx, aerospace.WindowFilter{Workspace: ws.Name})
		if err != nil {
			return nil, err
		}
		res.Workspace = &focusedWorkspace{Name: ws.Name, WindowCount: len(windows)}
	}

	m, err := s.app.WM.FocusedMonitor(ctx)
	if err != nil {
		return nil, err
	}
	if m != nil {
		res.Monitor = &focusedMonitor{ID: m.ID, Name: m.Name}
	}
	return res, nil
}

func (s *Server) readDisplays(ctx context.Context) (any, error) {
	info, err := s.app.Displays.Info(ctx)
	if err != nil {
		return nil, err
	}
	workspaces, err := s.app.WM.ListWorkspaces(ctx, aerospace.WorkspaceFilter{})
	if err != nil {
		return nil, err
	}

	res := displaysResource{
		Displays:             make([]displayWithWorkspaces, 0, len(info.Displays)),
		Arrangement:          info.Arrangement,
		TotalEffectivePixels: info.TotalEffectivePixels,
		Category:             info.Category,
	}
	_, res.CategoryDescription = display.Classify(info.Displays)
	for _, d := range info.Displays {
		entry := displayWithWorkspaces{Descriptor: d, Workspaces: []string{}}
		for _, ws := range workspaces {
			if ws.MonitorName == d.Name {
				entry.Workspaces = append(entry.Workspaces, ws.Name)
			}
		}
		res.Displays = append(res.Displays, entry)
	}
	return res, nil
}

func (s *Server) readDisplay(ctx context.Context, raw string) (any, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.Invalidf(apperr.Details{"parameter": "display_id", "provided": raw}, "display_id must be an integer")
	}
	return s.app.Displays.ByID(ctx, id)
}

func (s *Server) readCategory(ctx context.Context) (any, error) {
	return s.app.Displays.Category(ctx)
}

func (s *Server) readPresets(ctx context.Context) (any, error) {
	return s.app.Focus.List(ctx)
}
