// Package aerospacetest provides an in-memory stand-in for the AeroSpace
// CLI, screencapture and system_profiler, implementing platform.Executor.
package aerospacetest

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/mj1618/win-ctrl/internal/platform"
	"golang.org/x/image/tiff"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Window is a simulated window.
type Window struct {
	ID        int
	App       string
	Title     string
	BundleID  string
	Workspace string
	Minimized bool
}

// Monitor is a simulated monitor. Visible names the workspace it shows.
type Monitor struct {
	ID      int
	Name    string
	Visible string
}

// Workspace is a simulated workspace bound to a monitor name.
type Workspace struct {
	Name    string
	Monitor string
}

// Display is a simulated system_profiler display entry.
type Display struct {
	Name       string
	Resolution string // e.g. "2560 x 1600 Retina"
	Pixels     string // e.g. "5120 x 3200"
	Builtin    bool
	Main       bool
}

type failure struct {
	code   int
	stderr string
}

// Fake simulates a running window manager. The zero value is an empty
// desktop; use New for a small populated one.
type Fake struct {
	mu sync.Mutex

	Windows    []Window
	Workspaces []Workspace
	Monitors   []Monitor
	Displays   []Display

	// Focused is the focused window ID, 0 for none.
	Focused int
	// Current is the focused workspace name.
	Current string
	// Fullscreen tracks toggled windows.
	Fullscreen map[int]bool

	// CaptureSize is the pixel size of images screencapture writes.
	CaptureSize image.Point

	// Missing lists binaries that behave as not installed.
	Missing map[string]bool

	failures map[string]failure
	calls    [][]string
}

// New returns a fake with two monitors, three workspaces and four windows.
// Window 1 (Ghostty) is focused on workspace "1".
func New() *Fake {
	return &Fake{
		Monitors: []Monitor{
			{ID: 1, Name: "Built-in Retina Display", Visible: "1"},
			{ID: 2, Name: "DELL U2723QE", Visible: "3"},
		},
		Workspaces: []Workspace{
			{Name: "1", Monitor: "Built-in Retina Display"},
			{Name: "2", Monitor: "Built-in Retina Display"},
			{Name: "3", Monitor: "DELL U2723QE"},
		},
		Windows: []Window{
			{ID: 1, App: "Ghostty", Title: "~/src", BundleID: "com.mitchellh.ghostty", Workspace: "1"},
			{ID: 2, App: "Safari", Title: "Docs", BundleID: "com.apple.Safari", Workspace: "1"},
			{ID: 3, App: "Slack", Title: "general", BundleID: "com.tinyspeck.slackmacgap", Workspace: "2"},
			{ID: 4, App: "Code", Title: "main.go", BundleID: "com.microsoft.VSCode", Workspace: "3"},
		},
		Displays: []Display{
			{Name: "Color LCD", Resolution: "1728 x 1117 @ 120.00Hz", Pixels: "3456 x 2234", Builtin: true, Main: true},
			{Name: "DELL U2723QE", Resolution: "2560 x 1440 @ 60.00Hz", Pixels: "3840 x 2160"},
		},
		Focused: 1,
		Current: "1",
	}
}

// FailOn makes every command whose argv (binary name included, space
// joined) starts with prefix exit with code and stderr.
func (f *Fake) FailOn(prefix string, code int, stderr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures == nil {
		f.failures = map[string]failure{}
	}
	f.failures[prefix] = failure{code: code, stderr: stderr}
}

// Calls returns every command run so far, binary name first.
func (f *Fake) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the argv (without binary) of commands whose first
// argument is sub.
func (f *Fake) CallsTo(sub string) [][]string {
	var out [][]string
	for _, c := range f.Calls() {
		if len(c) > 1 && c[1] == sub {
			out = append(out, c[1:])
		}
	}
	return out
}

// Window returns a copy of the window with the given ID.
func (f *Fake) Window(id int) (Window, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w := f.window(id); w != nil {
		return *w, true
	}
	return Window{}, false
}

// Run implements platform.Executor.
func (f *Fake) Run(_ context.Context, name string, args ...string) (platform.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	argv := append([]string{name}, args...)
	f.calls = append(f.calls, argv)

	if f.Missing[name] {
		return platform.Result{}, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	joined := strings.Join(argv, " ")
	for prefix, fail := range f.failures {
		if strings.HasPrefix(joined, prefix) {
			return platform.Result{ExitCode: fail.code, Stderr: fail.stderr}, nil
		}
	}

	base := name[strings.LastIndex(name, "/")+1:]
	switch base {
	case "aerospace":
		return f.aerospace(args)
	case "screencapture":
		return f.screencapture(args)
	case "system_profiler":
		return f.systemProfiler()
	}
	return platform.Result{}, &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func ok(stdout string) (platform.Result, error) {
	return platform.Result{Stdout: stdout}, nil
}

func fail(code int, format string, args ...any) (platform.Result, error) {
	return platform.Result{ExitCode: code, Stderr: fmt.Sprintf(format, args...)}, nil
}

func encode(v any) (platform.Result, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return platform.Result{}, err
	}
	return ok(string(data))
}

// flags splits args into boolean flags, valued flags and positionals.
func flags(args []string, valued ...string) (map[string]string, []string) {
	isValued := map[string]bool{}
	for _, v := range valued {
		isValued[v] = true
	}
	set := map[string]string{}
	var pos []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case isValued[a] && i+1 < len(args):
			set[a] = args[i+1]
			i++
		case strings.HasPrefix(a, "--"):
			set[a] = ""
		default:
			pos = append(pos, a)
		}
	}
	return set, pos
}

func has(set map[string]string, key string) bool {
	_, found := set[key]
	return found
}

func (f *Fake) aerospace(args []string) (platform.Result, error) {
	if len(args) == 0 {
		return fail(2, "missing command")
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list-windows":
		return f.listWindows(rest)
	case "list-workspaces":
		return f.listWorkspaces(rest)
	case "list-monitors":
		return f.listMonitors(rest)
	case "focus":
		return f.focus(rest)
	case "focus-monitor":
		return f.focusMonitor(rest)
	case "workspace":
		if len(rest) != 1 {
			return fail(2, "workspace: expected one argument")
		}
		f.switchWorkspace(rest[0])
		return ok("")
	case "move-node-to-workspace":
		return f.moveToWorkspace(rest)
	case "move-node-to-monitor":
		return f.moveToMonitor(rest)
	case "close":
		return f.close(rest)
	case "fullscreen":
		return f.withFocus(rest, func(w *Window) {
			if f.Fullscreen == nil {
				f.Fullscreen = map[int]bool{}
			}
			f.Fullscreen[w.ID] = !f.Fullscreen[w.ID]
		})
	case "macos-native-minimize":
		return f.withFocus(rest, func(w *Window) { w.Minimized = true })
	case "move", "layout", "resize", "split":
		if len(rest) == 0 {
			return fail(2, "%s: missing argument", cmd)
		}
		return f.withFocus(nil, func(*Window) {})
	case "flatten-workspace-tree", "balance-sizes":
		return ok("")
	}
	return fail(2, "Unknown command '%s'", cmd)
}

func (f *Fake) window(id int) *Window {
	for i := range f.Windows {
		if f.Windows[i].ID == id {
			return &f.Windows[i]
		}
	}
	return nil
}

func (f *Fake) workspace(name string) *Workspace {
	for i := range f.Workspaces {
		if f.Workspaces[i].Name == name {
			return &f.Workspaces[i]
		}
	}
	return nil
}

func (f *Fake) monitorByName(name string) (int, *Monitor) {
	for i := range f.Monitors {
		if f.Monitors[i].Name == name {
			return i, &f.Monitors[i]
		}
	}
	return -1, nil
}

// currentMonitor is the index of the monitor showing the focused workspace.
func (f *Fake) currentMonitor() int {
	if ws := f.workspace(f.Current); ws != nil {
		if i, _ := f.monitorByName(ws.Monitor); i >= 0 {
			return i
		}
	}
	return 0
}

func (f *Fake) ensureWorkspace(name string) *Workspace {
	if ws := f.workspace(name); ws != nil {
		return ws
	}
	monitor := ""
	if len(f.Monitors) > 0 {
		monitor = f.Monitors[f.currentMonitor()].Name
	}
	f.Workspaces = append(f.Workspaces, Workspace{Name: name, Monitor: monitor})
	return &f.Workspaces[len(f.Workspaces)-1]
}

func (f *Fake) switchWorkspace(name string) {
	ws := f.ensureWorkspace(name)
	f.Current = name
	if _, m := f.monitorByName(ws.Monitor); m != nil {
		m.Visible = name
	}
	f.Focused = 0
	for _, w := range f.Windows {
		if w.Workspace == name {
			f.Focused = w.ID
			break
		}
	}
}

type windowJSON struct {
	ID          int    `json:"window-id"`
	App         string `json:"app-name"`
	Title       string `json:"window-title"`
	BundleID    string `json:"app-bundle-id"`
	Workspace   string `json:"workspace"`
	MonitorID   int    `json:"monitor-id"`
	MonitorName string `json:"monitor-name"`
}

func (f *Fake) windowJSON(w Window) windowJSON {
	out := windowJSON{ID: w.ID, App: w.App, Title: w.Title, BundleID: w.BundleID, Workspace: w.Workspace}
	if ws := f.workspace(w.Workspace); ws != nil {
		if _, m := f.monitorByName(ws.Monitor); m != nil {
			out.MonitorID, out.MonitorName = m.ID, m.Name
		}
	}
	return out
}

func (f *Fake) listWindows(args []string) (platform.Result, error) {
	set, _ := flags(args, "--workspace", "--monitor", "--format")
	if !has(set, "--all") && !has(set, "--focused") && !has(set, "--workspace") && !has(set, "--monitor") {
		return fail(2, "Mandatory option is not specified (--all|--focused|--monitor|--workspace)")
	}
	if has(set, "--all") && (has(set, "--workspace") || has(set, "--monitor")) {
		return fail(2, "--all conflicts with --workspace and --monitor")
	}
	out := []windowJSON{}
	for _, w := range f.Windows {
		j := f.windowJSON(w)
		switch {
		case has(set, "--focused") && w.ID != f.Focused:
			continue
		case has(set, "--workspace") && w.Workspace != set["--workspace"]:
			continue
		case has(set, "--monitor") && !monitorMatches(set["--monitor"], j.MonitorID, j.MonitorName):
			continue
		}
		out = append(out, j)
	}
	if has(set, "--focused") && len(out) == 0 {
		return fail(1, "No window is focused")
	}
	return encode(out)
}

func monitorMatches(filter string, id int, name string) bool {
	return filter == "all" || filter == name || filter == strconv.Itoa(id)
}

type workspaceJSON struct {
	Name        string `json:"workspace"`
	MonitorID   int    `json:"monitor-id"`
	MonitorName string `json:"monitor-name"`
}

func (f *Fake) listWorkspaces(args []string) (platform.Result, error) {
	set, _ := flags(args, "--monitor", "--format")
	if !has(set, "--all") && !has(set, "--focused") && !has(set, "--monitor") {
		return fail(2, "Mandatory option is not specified (--all|--focused|--monitor)")
	}
	visible := map[string]bool{}
	for _, m := range f.Monitors {
		visible[m.Visible] = true
	}
	out := []workspaceJSON{}
	for _, ws := range f.Workspaces {
		j := workspaceJSON{Name: ws.Name, MonitorName: ws.Monitor}
		if _, m := f.monitorByName(ws.Monitor); m != nil {
			j.MonitorID = m.ID
		}
		switch {
		case has(set, "--focused") && ws.Name != f.Current:
			continue
		case has(set, "--monitor") && !monitorMatches(set["--monitor"], j.MonitorID, j.MonitorName):
			continue
		case has(set, "--visible") && !visible[ws.Name]:
			continue
		}
		out = append(out, j)
	}
	return encode(out)
}

type monitorJSON struct {
	ID   int    `json:"monitor-id"`
	Name string `json:"monitor-name"`
}

func (f *Fake) listMonitors(args []string) (platform.Result, error) {
	set, _ := flags(args)
	out := []monitorJSON{}
	current := f.currentMonitor()
	for i, m := range f.Monitors {
		if has(set, "--focused") && i != current {
			continue
		}
		out = append(out, monitorJSON{ID: m.ID, Name: m.Name})
	}
	return encode(out)
}

func (f *Fake) focus(args []string) (platform.Result, error) {
	set, pos := flags(args, "--window-id")
	if id, found := set["--window-id"]; found {
		n, err := strconv.Atoi(id)
		w := f.window(n)
		if err != nil || w == nil {
			return fail(1, "Invalid <window-id> %s", id)
		}
		f.Focused = w.ID
		f.Current = w.Workspace
		if ws := f.workspace(w.Workspace); ws != nil {
			if _, m := f.monitorByName(ws.Monitor); m != nil {
				m.Visible = ws.Name
			}
		}
		return ok("")
	}
	if len(pos) != 1 {
		return fail(2, "focus: expected a direction or --window-id")
	}
	var peers []int
	for _, w := range f.Windows {
		if w.Workspace == f.Current {
			peers = append(peers, w.ID)
		}
	}
	idx := -1
	for i, id := range peers {
		if id == f.Focused {
			idx = i
		}
	}
	if idx < 0 {
		return fail(1, "No window is focused")
	}
	switch pos[0] {
	case "left", "up":
		idx--
	case "right", "down":
		idx++
	default:
		return fail(2, "Unknown direction '%s'", pos[0])
	}
	if idx >= 0 && idx < len(peers) {
		f.Focused = peers[idx]
	}
	return ok("")
}

// resolveMonitor maps next/prev/name targets to a monitor index.
func (f *Fake) resolveMonitor(target string) int {
	n := len(f.Monitors)
	if n == 0 {
		return -1
	}
	current := f.currentMonitor()
	switch target {
	case "next", "right", "down":
		return (current + 1) % n
	case "prev", "left", "up":
		return (current - 1 + n) % n
	}
	for i, m := range f.Monitors {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(target)) || strconv.Itoa(m.ID) == target {
			return i
		}
	}
	return -1
}

func (f *Fake) focusMonitor(args []string) (platform.Result, error) {
	if len(args) != 1 {
		return fail(2, "focus-monitor: expected one argument")
	}
	i := f.resolveMonitor(args[0])
	if i < 0 {
		return fail(1, "Can't find monitor '%s'", args[0])
	}
	f.switchWorkspace(f.Monitors[i].Visible)
	return ok("")
}

func (f *Fake) focusedWindow(args []string) (*Window, error) {
	set, _ := flags(args, "--window-id")
	if id, found := set["--window-id"]; found {
		n, _ := strconv.Atoi(id)
		if w := f.window(n); w != nil {
			return w, nil
		}
		return nil, fmt.Errorf("Invalid <window-id> %s", id)
	}
	if w := f.window(f.Focused); w != nil {
		return w, nil
	}
	return nil, fmt.Errorf("No window is focused")
}

func (f *Fake) withFocus(args []string, fn func(*Window)) (platform.Result, error) {
	w, err := f.focusedWindow(args)
	if err != nil {
		return fail(1, "%s", err)
	}
	fn(w)
	return ok("")
}

func (f *Fake) moveToWorkspace(args []string) (platform.Result, error) {
	_, pos := flags(args, "--window-id")
	if len(pos) != 1 {
		return fail(2, "move-node-to-workspace: expected one argument")
	}
	w, err := f.focusedWindow(args)
	if err != nil {
		return fail(1, "%s", err)
	}
	f.ensureWorkspace(pos[0])
	w.Workspace = pos[0]
	return ok("")
}

func (f *Fake) moveToMonitor(args []string) (platform.Result, error) {
	_, pos := flags(args, "--window-id")
	if len(pos) != 1 {
		return fail(2, "move-node-to-monitor: expected one argument")
	}
	w, err := f.focusedWindow(args)
	if err != nil {
		return fail(1, "%s", err)
	}
	i := f.resolveMonitor(pos[0])
	if i < 0 {
		return fail(1, "Can't find monitor '%s'", pos[0])
	}
	w.Workspace = f.Monitors[i].Visible
	return ok("")
}

func (f *Fake) close(args []string) (platform.Result, error) {
	w, err := f.focusedWindow(args)
	if err != nil {
		return fail(1, "%s", err)
	}
	id := w.ID
	for i := range f.Windows {
		if f.Windows[i].ID == id {
			f.Windows = append(f.Windows[:i], f.Windows[i+1:]...)
			break
		}
	}
	if f.Focused == id {
		f.Focused = 0
	}
	return ok("")
}

func (f *Fake) screencapture(args []string) (platform.Result, error) {
	set, pos := flags(args, "-l", "-D", "-t")
	if len(pos) == 0 {
		return fail(1, "screencapture: missing output path")
	}
	path := pos[len(pos)-1]
	if id, found := set["-l"]; found {
		n, _ := strconv.Atoi(id)
		if f.window(n) == nil {
			return fail(1, "could not create image from window")
		}
	}
	if d, found := set["-D"]; found {
		n, _ := strconv.Atoi(d)
		if n < 1 || n > len(f.Monitors) {
			return fail(1, "Invalid display specified")
		}
	}
	data, err := f.image(set["-t"])
	if err != nil {
		return platform.Result{}, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fail(1, "%s", err)
	}
	return ok("")
}

func (f *Fake) image(format string) ([]byte, error) {
	size := f.CaptureSize
	if size == (image.Point{}) {
		size = image.Pt(64, 32)
	}
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	var err error
	switch format {
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "tiff":
		err = tiff.Encode(&buf, img, nil)
	case "pdf":
		buf.WriteString("%PDF-1.4\n%%EOF\n")
	default:
		err = png.Encode(&buf, img)
	}
	return buf.Bytes(), err
}

type profilerDisplay struct {
	Name       string `json:"_name"`
	Resolution string `json:"_spdisplays_resolution,omitempty"`
	Pixels     string `json:"_spdisplays_pixels,omitempty"`
	Builtin    string `json:"spdisplays_builtin,omitempty"`
	Main       string `json:"spdisplays_main,omitempty"`
}

func yes(b bool) string {
	if b {
		return "spdisplays_yes"
	}
	return ""
}

func (f *Fake) systemProfiler() (platform.Result, error) {
	drivers := []profilerDisplay{}
	for _, d := range f.Displays {
		drivers = append(drivers, profilerDisplay{
			Name:       d.Name,
			Resolution: d.Resolution,
			Pixels:     d.Pixels,
			Builtin:    yes(d.Builtin),
			Main:       yes(d.Main),
		})
	}
	return encode(map[string]any{
		"SPDisplaysDataType": []map[string]any{{"spdisplays_ndrvs": drivers}},
	})
}
