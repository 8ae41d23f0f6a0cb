package darwin

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/mj1618/win-ctrl/internal/platform"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultSystemProfilerBin is the macOS hardware inventory utility.
const DefaultSystemProfilerBin = "system_profiler"

const spYes = "spdisplays_yes"

// profilerReport is the subset of `system_profiler SPDisplaysDataType -json`
// that describes attached displays. Each GPU lists its displays under
// spdisplays_ndrvs.
type profilerReport struct {
	Displays []struct {
		Drivers []profilerDisplay `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

type profilerDisplay struct {
	Name       string `json:"_name"`
	Resolution string `json:"_spdisplays_resolution"`
	Pixels     string `json:"_spdisplays_pixels"`
	Builtin    string `json:"spdisplays_builtin"`
	Main       string `json:"spdisplays_main"`
}

// ProfilerInventory implements platform.DisplayInventory with system_profiler.
type ProfilerInventory struct {
	exec platform.Executor
	bin  string
}

// NewDisplayInventory creates an inventory. An empty bin selects
// DefaultSystemProfilerBin.
func NewDisplayInventory(exec platform.Executor, bin string) *ProfilerInventory {
	if bin == "" {
		bin = DefaultSystemProfilerBin
	}
	return &ProfilerInventory{exec: exec, bin: bin}
}

// Displays returns the attached displays. A failing or unparseable
// system_profiler run yields an empty list, not an error; only a failure
// to start the process is returned.
func (p *ProfilerInventory) Displays(ctx context.Context) ([]platform.SystemDisplay, error) {
	res, err := p.exec.Run(ctx, p.bin, "SPDisplaysDataType", "-json")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return []platform.SystemDisplay{}, nil
	}
	return ParseProfilerJSON([]byte(res.Stdout)), nil
}

// ParseProfilerJSON extracts displays from system_profiler JSON output.
func ParseProfilerJSON(data []byte) []platform.SystemDisplay {
	var report profilerReport
	if err := json.Unmarshal(data, &report); err != nil {
		return []platform.SystemDisplay{}
	}
	displays := []platform.SystemDisplay{}
	for _, gpu := range report.Displays {
		for _, d := range gpu.Drivers {
			sd := platform.SystemDisplay{
				Name:      d.Name,
				IsBuiltin: d.Builtin == spYes,
				IsMain:    d.Main == spYes,
			}
			if sd.Name == "" {
				sd.Name = "Unknown"
			}
			sd.Resolution, _ = platform.ParseSize(d.Resolution)
			if native, ok := platform.ParseSize(d.Pixels); ok {
				sd.Native = &native
			}
			displays = append(displays, sd)
		}
	}
	return displays
}
