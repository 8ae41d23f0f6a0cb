package output

import (
	"bytes"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the accepted format names.
var Formats = []string{string(FormatYAML), string(FormatJSON)}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q (expected yaml or json)", s)
	}
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return writeJSON(w, v, PrettyOutput)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	return writeJSON(os.Stdout, v, false)
}

// PrintPrettyJSON serializes v to stdout as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	return writeJSON(os.Stdout, v, true)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	return writeYAML(os.Stdout, v)
}

// Marshal renders v in the given format without a trailing newline. JSON
// output is indented.
func Marshal(v interface{}, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJSON:
		err = writeJSON(&buf, v, true)
	case FormatYAML:
		err = writeYAML(&buf, v)
	default:
		err = fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
