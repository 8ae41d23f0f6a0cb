package output

import (
	"bytes"
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	Success bool     `yaml:"success"          json:"success"`
	App     string   `yaml:"app,omitempty"    json:"app,omitempty"`
	IDs     []int    `yaml:"ids"              json:"ids"`
	Tags    []string `yaml:"tags,omitempty"   json:"tags,omitempty"`
}

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestPrintYAML(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintYAML(sample{Success: true, App: "Safari", IDs: []int{1, 2}})
	})

	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	var decoded sample
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.App != "Safari" || len(decoded.IDs) != 2 {
		t.Errorf("unexpected decode: %+v", decoded)
	}
}

func TestPrintJSON_Compact(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintJSON(sample{Success: true, IDs: []int{3}})
	})

	if bytes.Count([]byte(out), []byte("\n")) > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}
	var decoded sample
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !decoded.Success {
		t.Error("success should round-trip")
	}
}

func TestPrintPrettyJSON(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintPrettyJSON(sample{Success: true, IDs: []int{3}})
	})
	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", out)
	}
}

func TestPrint_UsesOutputFormat(t *testing.T) {
	defer func() { OutputFormat = FormatYAML }()

	OutputFormat = FormatJSON
	out := captureStdout(t, func() error { return Print(sample{IDs: []int{}}) })
	if out[0] != '{' {
		t.Errorf("expected JSON output, got %q", out)
	}

	OutputFormat = FormatYAML
	out = captureStdout(t, func() error { return Print(sample{IDs: []int{}}) })
	if out[0] == '{' {
		t.Errorf("expected YAML output, got %q", out)
	}

	OutputFormat = "xml"
	if err := Print(sample{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(sample{Success: true, IDs: []int{1}}, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.HasSuffix(data, []byte("\n")) {
		t.Error("Marshal should trim the trailing newline")
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["app"]; ok {
		t.Error("empty app should be omitted")
	}

	data, err = Marshal(sample{Success: true}, FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[:8]) != "success:" {
		t.Errorf("unexpected YAML: %s", data)
	}

	if _, err := Marshal(sample{}, "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range Formats {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Error("expected error for toml")
	}
}
