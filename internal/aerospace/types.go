package aerospace

// Window is one entry of `aerospace list-windows --json`.
type Window struct {
	ID          int    `json:"window-id"`
	App         string `json:"app-name"`
	Title       string `json:"window-title"`
	BundleID    string `json:"app-bundle-id,omitempty"`
	Workspace   string `json:"workspace,omitempty"`
	MonitorID   int    `json:"monitor-id,omitempty"`
	MonitorName string `json:"monitor-name,omitempty"`
}

// Workspace is one entry of `aerospace list-workspaces --json`.
type Workspace struct {
	Name        string `json:"workspace"`
	MonitorID   int    `json:"monitor-id,omitempty"`
	MonitorName string `json:"monitor-name,omitempty"`
}

// Monitor is one entry of `aerospace list-monitors --json`.
type Monitor struct {
	ID   int    `json:"monitor-id"`
	Name string `json:"monitor-name"`
}

// Output format strings passed with --json so the listing carries the
// fields the tools need.
const (
	windowFormat    = "%{window-id}%{app-name}%{window-title}%{app-bundle-id}%{workspace}%{monitor-id}%{monitor-name}"
	workspaceFormat = "%{workspace}%{monitor-id}%{monitor-name}"
)

// WindowIDs returns the IDs of windows in order.
func WindowIDs(windows []Window) []int {
	ids := make([]int, 0, len(windows))
	for _, w := range windows {
		ids = append(ids, w.ID)
	}
	return ids
}

// WorkspaceNames returns the names of workspaces in order.
func WorkspaceNames(workspaces []Workspace) []string {
	names := make([]string, 0, len(workspaces))
	for _, ws := range workspaces {
		names = append(names, ws.Name)
	}
	return names
}

// MonitorNames returns the names of monitors in order.
func MonitorNames(monitors []Monitor) []string {
	names := make([]string, 0, len(monitors))
	for _, m := range monitors {
		names = append(names, m.Name)
	}
	return names
}
