package aerospace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/platform"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBinary is the AeroSpace CLI executable name.
const DefaultBinary = "aerospace"

// notFoundExitCode is the shell's "command not found" status.
const notFoundExitCode = 127

// Client runs AeroSpace CLI commands.
type Client struct {
	exec platform.Executor
	bin  string
	log  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the aerospace executable path.
func WithBinary(bin string) Option {
	return func(c *Client) {
		if bin != "" {
			c.bin = bin
		}
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Client on top of exec.
func New(exec platform.Executor, opts ...Option) *Client {
	c := &Client{
		exec: exec,
		bin:  DefaultBinary,
		log:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CommandOptions controls a single invocation.
type CommandOptions struct {
	JSON    bool // append --json
	NoCheck bool // return non-zero exits instead of failing
}

// Run executes an aerospace sub-command and fails with COMMAND_FAILED on a
// non-zero exit.
func (c *Client) Run(ctx context.Context, args ...string) (platform.Result, error) {
	return c.Command(ctx, CommandOptions{}, args...)
}

// Command executes an aerospace sub-command with explicit options.
func (c *Client) Command(ctx context.Context, opts CommandOptions, args ...string) (platform.Result, error) {
	argv := append([]string{}, args...)
	if opts.JSON {
		argv = append(argv, "--json")
	}
	cmdline := append([]string{c.bin}, argv...)

	res, err := c.exec.Run(ctx, c.bin, argv...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return res, notInstalled(err)
		}
		return res, apperr.Wrap(err, apperr.CommandFailed,
			fmt.Sprintf("AeroSpace command failed: %v", err),
			apperr.Details{"command": cmdline})
	}
	c.log.Debug("aerospace", "args", argv, "exit", res.ExitCode)

	if opts.NoCheck || res.ExitCode == 0 {
		return res, nil
	}
	if res.ExitCode == notFoundExitCode {
		return res, notInstalled(nil)
	}
	if strings.Contains(res.Stderr, "Can't connect to AeroSpace server") {
		return res, apperr.New(apperr.ToolUnavailable,
			"AeroSpace daemon is not running. Please start it first.",
			apperr.Details{"suggestion": "Launch AeroSpace from Applications", "stderr": res.Stderr})
	}
	msg := res.Stderr
	if msg == "" {
		msg = res.Stdout
	}
	return res, apperr.New(apperr.CommandFailed,
		"AeroSpace command failed: "+msg,
		apperr.Details{"command": cmdline, "return_code": res.ExitCode, "stderr": res.Stderr})
}

func notInstalled(cause error) *apperr.Error {
	return apperr.Wrap(cause, apperr.ToolUnavailable,
		"AeroSpace CLI not found. Please ensure AeroSpace is installed and in PATH.",
		apperr.Details{"suggestion": "Install AeroSpace from https://nikitabobko.github.io/AeroSpace/"})
}

// query runs a JSON listing command and decodes its output into out.
// It reports false when the command exited non-zero with NoCheck set, or
// produced no output.
func (c *Client) query(ctx context.Context, check bool, out any, args ...string) (bool, error) {
	res, err := c.Command(ctx, CommandOptions{JSON: true, NoCheck: !check}, args...)
	if err != nil {
		return false, err
	}
	if res.ExitCode != 0 || res.Stdout == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(res.Stdout), out); err != nil {
		return false, apperr.Wrap(err, apperr.CommandFailed,
			fmt.Sprintf("failed to parse aerospace %s output: %v", args[0], err),
			apperr.Details{"command": append([]string{c.bin}, args...)})
	}
	return true, nil
}

// WindowFilter narrows list-windows. The zero value lists every window.
// Monitor takes an AeroSpace monitor ID or one of focused, mouse, all.
type WindowFilter struct {
	Workspace string
	Monitor   string
}

// ListWindows lists windows, all of them unless filtered.
func (c *Client) ListWindows(ctx context.Context, f WindowFilter) ([]Window, error) {
	args := []string{"list-windows"}
	switch {
	case f.Workspace != "":
		args = append(args, "--workspace", f.Workspace)
	case f.Monitor != "":
		args = append(args, "--monitor", f.Monitor)
	default:
		args = append(args, "--all")
	}
	if f.Workspace != "" && f.Monitor != "" {
		args = append(args, "--monitor", f.Monitor)
	}
	args = append(args, "--format", windowFormat)

	var windows []Window
	if _, err := c.query(ctx, true, &windows, args...); err != nil {
		return nil, err
	}
	if windows == nil {
		windows = []Window{}
	}
	return windows, nil
}

// WorkspaceFilter narrows list-workspaces. The zero value lists all.
// Monitor takes the same values as WindowFilter.Monitor.
type WorkspaceFilter struct {
	Monitor string
	Visible bool
	Focused bool
}

// ListWorkspaces lists workspaces.
func (c *Client) ListWorkspaces(ctx context.Context, f WorkspaceFilter) ([]Workspace, error) {
	args := []string{"list-workspaces"}
	switch {
	case f.Focused:
		args = append(args, "--focused")
	case f.Monitor != "":
		args = append(args, "--monitor", f.Monitor)
	case f.Visible:
		args = append(args, "--monitor", "all")
	default:
		args = append(args, "--all")
	}
	if f.Visible && !f.Focused {
		args = append(args, "--visible")
	}
	args = append(args, "--format", workspaceFormat)

	var workspaces []Workspace
	if _, err := c.query(ctx, true, &workspaces, args...); err != nil {
		return nil, err
	}
	if workspaces == nil {
		workspaces = []Workspace{}
	}
	return workspaces, nil
}

// ListMonitors lists monitors in AeroSpace order.
func (c *Client) ListMonitors(ctx context.Context) ([]Monitor, error) {
	var monitors []Monitor
	if _, err := c.query(ctx, true, &monitors, "list-monitors"); err != nil {
		return nil, err
	}
	if monitors == nil {
		monitors = []Monitor{}
	}
	return monitors, nil
}

// FocusedWindow returns the focused window, or nil when nothing is focused.
func (c *Client) FocusedWindow(ctx context.Context) (*Window, error) {
	var windows []Window
	ok, err := c.query(ctx, false, &windows, "list-windows", "--focused", "--format", windowFormat)
	if err != nil || !ok || len(windows) == 0 {
		return nil, err
	}
	return &windows[0], nil
}

// FocusedWorkspace returns the focused workspace, or nil.
func (c *Client) FocusedWorkspace(ctx context.Context) (*Workspace, error) {
	var workspaces []Workspace
	ok, err := c.query(ctx, false, &workspaces, "list-workspaces", "--focused", "--format", workspaceFormat)
	if err != nil || !ok || len(workspaces) == 0 {
		return nil, err
	}
	return &workspaces[0], nil
}

// FocusedMonitor returns the focused monitor, or nil.
func (c *Client) FocusedMonitor(ctx context.Context) (*Monitor, error) {
	var monitors []Monitor
	ok, err := c.query(ctx, false, &monitors, "list-monitors", "--focused")
	if err != nil || !ok || len(monitors) == 0 {
		return nil, err
	}
	return &monitors[0], nil
}

// WindowByID looks a window up among all windows. It returns nil (and the
// full listing, for diagnostics) when no window has that ID.
func (c *Client) WindowByID(ctx context.Context, id int) (*Window, []Window, error) {
	windows, err := c.ListWindows(ctx, WindowFilter{})
	if err != nil {
		return nil, nil, err
	}
	for i := range windows {
		if windows[i].ID == id {
			return &windows[i], windows, nil
		}
	}
	return nil, windows, nil
}

// ResolveWindow returns the window an operation should target: the window
// with the given ID when id is non-nil, otherwise the focused window.
func (c *Client) ResolveWindow(ctx context.Context, id *int) (Window, error) {
	if id != nil {
		w, all, err := c.WindowByID(ctx, *id)
		if err != nil {
			return Window{}, err
		}
		if w == nil {
			return Window{}, apperr.WindowMissing(*id, WindowIDs(all))
		}
		return *w, nil
	}
	w, err := c.FocusedWindow(ctx)
	if err != nil {
		return Window{}, err
	}
	if w == nil {
		return Window{}, apperr.NoFocus()
	}
	return *w, nil
}

// FocusWindow focuses a window by ID.
func (c *Client) FocusWindow(ctx context.Context, id int) error {
	_, err := c.Run(ctx, "focus", "--window-id", strconv.Itoa(id))
	return err
}

// MoveToWorkspace moves the focused window to a workspace.
func (c *Client) MoveToWorkspace(ctx context.Context, workspace string) error {
	_, err := c.Run(ctx, "move-node-to-workspace", workspace)
	return err
}

// MoveToMonitor moves the focused window to a monitor ("next", "prev", a
// direction, or a monitor name pattern).
func (c *Client) MoveToMonitor(ctx context.Context, target string) error {
	_, err := c.Run(ctx, "move-node-to-monitor", target)
	return err
}

// SetLayout changes the layout of the focused window's container.
func (c *Client) SetLayout(ctx context.Context, layout string) error {
	_, err := c.Run(ctx, "layout", layout)
	return err
}

// Resize resizes the focused window.
func (c *Client) Resize(ctx context.Context, dimension, amount string) error {
	_, err := c.Run(ctx, "resize", dimension, amount)
	return err
}

// Fullscreen toggles AeroSpace fullscreen for the focused window.
func (c *Client) Fullscreen(ctx context.Context) error {
	_, err := c.Run(ctx, "fullscreen")
	return err
}

// SwitchWorkspace focuses a workspace, creating it if needed.
func (c *Client) SwitchWorkspace(ctx context.Context, workspace string) error {
	_, err := c.Run(ctx, "workspace", workspace)
	return err
}
