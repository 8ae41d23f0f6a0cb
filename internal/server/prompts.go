package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

type promptArg struct {
	name, desc string
}

type promptDef struct {
	name, desc string
	args       []promptArg
	body       string
	// header renders the supplied arguments; nil lists them one per line.
	header func(map[string]string) string
}

var prompts = []promptDef{
	{
		name: "organize_windows",
		desc: "Organize the open windows efficiently based on the running apps",
		args: []promptArg{{"strategy", "Organization strategy: by_app, by_task or minimal"}},
		body: organizeWindowsPrompt,
		header: func(a map[string]string) string {
			if a["strategy"] == "" {
				return ""
			}
			return "Strategy requested: " + a["strategy"]
		},
	},
	{
		name: "smart_focus",
		desc: "Arrange windows for focused work, adapted to the connected displays",
		args: []promptArg{
			{"strategy", "auto, maximize, balanced or minimal (default auto)"},
			{"keep_visible", "Comma-separated apps to keep visible"},
			{"reference_monitor", "Monitor for reference windows"},
			{"save_as", "Save the resulting arrangement under this preset name"},
			{"undo", "Restore the previous arrangement"},
		},
		body: smartFocusPrompt,
	},
	{
		name: "presentation_layout",
		desc: "Arrange windows for presenting or screen sharing",
		args: []promptArg{
			{"presenter_app", "App to present (detected when omitted)"},
			{"notes_app", "App holding presenter notes"},
		},
		body: presentationLayoutPrompt,
	},
	{
		name: "debug_app_gui",
		desc: "Debug the GUI of an app under development with window captures",
		args: []promptArg{
			{"app_name", "App to debug (defaults to the focused window's app)"},
			{"baseline", "Path to an image of the expected appearance"},
		},
		body: debugAppGUIPrompt,
	},
}

func (s *Server) registerPrompts() {
	for _, p := range prompts {
		opts := []mcp.PromptOption{mcp.WithPromptDescription(p.desc)}
		for _, a := range p.args {
			opts = append(opts, mcp.WithArgument(a.name, mcp.ArgumentDescription(a.desc)))
		}
		s.mcp.AddPrompt(mcp.NewPrompt(p.name, opts...), s.prompt(p))
	}
}

func (s *Server) prompt(p promptDef) mcpserver.PromptHandlerFunc {
	return func(_ context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		s.log.Debug("prompt", "name", p.name)
		text := p.render(request.Params.Arguments)
		return mcp.NewGetPromptResult(p.desc, []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		}), nil
	}
}

// render prefixes the template with the arguments the client supplied.
func (p promptDef) render(supplied map[string]string) string {
	var header string
	if p.header != nil {
		header = p.header(supplied)
	} else {
		var lines []string
		for _, a := range p.args {
			if v := supplied[a.name]; v != "" {
				lines = append(lines, fmt.Sprintf("- %s: %s", a.name, v))
			}
		}
		if len(lines) > 0 {
			header = "Arguments:\n" + strings.Join(lines, "\n")
		}
	}
	if header == "" {
		return p.body
	}
	return header + "\n\n" + p.body
}

const organizeWindowsPrompt = `Help the user organize their open windows.

Start by reading the aerospace://windows resource to see every open window, then look at aerospace://workspaces and aerospace://monitors to see where they live. Propose an arrangement that fits how the user works.

Useful groupings:
- development: editors, terminals, documentation
- communication: mail, chat, video calls
- reference: browsers, notes
- media

Strategies:
- by_app: one workspace per kind of app
- by_task: group windows by the project or task they belong to
- minimal: keep only the current task visible

Describe the plan and wait for the user to confirm before changing anything. Then carry it out with move_window, set_layout, focus_workspace and focus_window.

Explain your reasoning for each move.`

const smartFocusPrompt = `Set up a focused working arrangement that suits the user's displays.

Steps:
1. Read aerospace://displays (or call get_display_category) to learn the display category.
2. Read aerospace://focused to find the window the user is working in.
3. Read aerospace://windows for everything else that is open.
4. Sort windows into focus, reference, communication and other.
5. Arrange them for the display category:
   - small_single: focus window fullscreen, everything else on another workspace
   - medium_single: 70/30 split with reference apps in an accordion beside the focus window
   - large_single: focus window centered at about 60% with reference on either side
   - dual_display: focus window on the primary display, reference tiled on the secondary
   - triple_plus: focus on primary, reference on secondary, communication on the third display
6. apply_focus_preset performs most of this in one call. Use set_window_zone and move_app_category_to_monitor for adjustments.
7. Call capture_workspace to confirm the result.
8. Offer to keep the arrangement with save_focus_preset.

If undo was requested, restore the previous arrangement with load_focus_preset instead.

Tell the user which display category you detected and which strategy you applied.`

const presentationLayoutPrompt = `Prepare the user's windows for a presentation or screen share.

1. Read aerospace://windows to see what is open.
2. Pick the app to present: slides, a demo or a browser. Ask if there is more than one candidate.
3. Arrange:
   - the presented app fullscreen on the primary display (focus_window, then fullscreen_toggle)
   - chat and mail moved to another monitor or workspace with move_window, or minimized with minimize_window
   - presenter notes reachable but off the shared screen

Warn about apps likely to pop up notifications, and suggest keeping a terminal handy for live demos. Offer to save the current layout first with save_focus_preset so it can be restored afterwards.

Confirm the setup with the user before they start sharing.`

const debugAppGUIPrompt = `Help debug the user interface of an app by capturing and inspecting it.

1. Capture the app with capture_window (pass inline=true to see the image directly). Use capture_workspace when the problem spans several windows.
2. If a baseline image was given, compare the capture with it.
3. Otherwise ask the user what they expected and compare against that description.
4. List the visual differences you find and likely causes, such as disabled states, theme or style problems, and layout constraints.
5. After the user changes something, capture again and compare with the previous capture.

Work through the problem methodically and keep iterating until the user is satisfied.`
