package darwin

import (
	"context"
	"testing"

	"github.com/mj1618/win-ctrl/internal/platform"
)

const profilerSample = `{
  "SPDisplaysDataType" : [
    {
      "_name" : "Apple M2 Pro",
      "spdisplays_ndrvs" : [
        {
          "_name" : "Color LCD",
          "_spdisplays_pixels" : "3456 x 2234",
          "_spdisplays_resolution" : "1728 x 1117 @ 120.00Hz",
          "spdisplays_builtin" : "spdisplays_yes",
          "spdisplays_main" : "spdisplays_yes"
        },
        {
          "_name" : "DELL U2723QE",
          "_spdisplays_pixels" : "3840 x 2160",
          "_spdisplays_resolution" : "2560 x 1440 @ 60.00Hz"
        }
      ]
    }
  ]
}`

func TestParseProfilerJSON(t *testing.T) {
	displays := ParseProfilerJSON([]byte(profilerSample))
	if len(displays) != 2 {
		t.Fatalf("expected 2 displays, got %d", len(displays))
	}

	builtin := displays[0]
	if builtin.Name != "Color LCD" || !builtin.IsBuiltin || !builtin.IsMain {
		t.Errorf("unexpected built-in display: %+v", builtin)
	}
	if builtin.Resolution != (platform.Size{Width: 1728, Height: 1117}) {
		t.Errorf("resolution = %+v", builtin.Resolution)
	}
	if builtin.Native == nil || *builtin.Native != (platform.Size{Width: 3456, Height: 2234}) {
		t.Errorf("native = %+v", builtin.Native)
	}

	external := displays[1]
	if external.IsBuiltin || external.IsMain {
		t.Errorf("external display flagged built-in or main: %+v", external)
	}
}

func TestParseProfilerJSONInvalid(t *testing.T) {
	for _, input := range []string{"", "not json", `{"SPDisplaysDataType": 3}`} {
		if got := ParseProfilerJSON([]byte(input)); len(got) != 0 {
			t.Errorf("ParseProfilerJSON(%q) = %v, want empty", input, got)
		}
	}
}

func TestParseProfilerJSONUnparseableResolution(t *testing.T) {
	displays := ParseProfilerJSON([]byte(`{"SPDisplaysDataType":[{"spdisplays_ndrvs":[{"_spdisplays_resolution":"unknown"}]}]}`))
	if len(displays) != 1 {
		t.Fatalf("expected 1 display, got %d", len(displays))
	}
	if displays[0].Name != "Unknown" || displays[0].Resolution.Pixels() != 0 || displays[0].Native != nil {
		t.Errorf("unexpected display: %+v", displays[0])
	}
}

func TestDisplaysNonZeroExitIsEmpty(t *testing.T) {
	inv := NewDisplayInventory(&recordingExecutor{result: platform.Result{ExitCode: 1}}, "")
	displays, err := inv.Displays(context.Background())
	if err != nil {
		t.Fatalf("Displays: %v", err)
	}
	if len(displays) != 0 {
		t.Errorf("expected no displays, got %v", displays)
	}
}

func TestDisplaysRunsProfiler(t *testing.T) {
	exec := &recordingExecutor{result: platform.Result{Stdout: profilerSample}}
	inv := NewDisplayInventory(exec, "")
	displays, err := inv.Displays(context.Background())
	if err != nil {
		t.Fatalf("Displays: %v", err)
	}
	if exec.name != DefaultSystemProfilerBin || len(exec.args) != 2 || exec.args[0] != "SPDisplaysDataType" || exec.args[1] != "-json" {
		t.Errorf("unexpected invocation: %s %v", exec.name, exec.args)
	}
	if len(displays) != 2 {
		t.Errorf("expected 2 displays, got %d", len(displays))
	}
}
