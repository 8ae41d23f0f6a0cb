package cmd

import (
	"errors"
	"io"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/output"
	"github.com/spf13/cobra"
)

// captureStdout runs fn and returns what it wrote to stdout.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	runErr := fn()
	w.Close()
	os.Stdout = old
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(data), runErr
}

func TestReport_Success(t *testing.T) {
	output.OutputFormat = output.FormatJSON
	defer func() { output.OutputFormat = output.FormatYAML }()

	out, err := captureStdout(t, func() error {
		return report(struct {
			Success bool `json:"success"`
		}{true}, nil)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"success":true`) {
		t.Errorf("expected success payload, got %q", out)
	}
}

func TestReport_FailurePrintsEnvelope(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return report(nil, apperr.WindowMissing(9, []int{1, 2}))
	})
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	for _, want := range []string{"success: false", "code: WINDOW_NOT_FOUND", "requested_window_id: 9"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestReport_UnclassifiedError(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return report(nil, errors.New("boom"))
	})
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(out, "UNKNOWN_ERROR") {
		t.Errorf("expected UNKNOWN_ERROR, got:\n%s", out)
	}
}

func TestOptionalInt(t *testing.T) {
	c := &cobra.Command{Use: "x"}
	c.Flags().Int("window-id", 0, "")

	if got := windowID(c); got != nil {
		t.Errorf("unset flag: expected nil, got %d", *got)
	}
	if err := c.Flags().Set("window-id", "0"); err != nil {
		t.Fatal(err)
	}
	got := windowID(c)
	if got == nil || *got != 0 {
		t.Errorf("explicit 0: expected pointer to 0, got %v", got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Safari", []string{"Safari"}},
		{"Safari, Notes ,,Code", []string{"Safari", "Notes", "Code"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
