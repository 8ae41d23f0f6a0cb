// Package preset persists named focus presets. A preset is a snapshot of
// which application sits on which workspace; stores hold one record per
// name and the last write wins.
package preset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotFound is returned when no preset has the requested name.
var ErrNotFound = errors.New("preset not found")

// WindowEntry records where one application window was.
type WindowEntry struct {
	AppName   string `yaml:"app_name"   json:"app_name"`
	Workspace string `yaml:"workspace"  json:"workspace"`
	IsFocused bool   `yaml:"is_focused" json:"is_focused"`
}

// Preset is a saved arrangement. Windows are identified by application
// name only, so reapplying one is best effort.
type Preset struct {
	Name            string        `yaml:"name"             json:"name"`
	Description     string        `yaml:"description"      json:"description"`
	DisplayCategory string        `yaml:"display_category" json:"display_category"`
	CreatedAt       string        `yaml:"created_at"       json:"created_at"`
	Windows         []WindowEntry `yaml:"windows"          json:"windows"`
	Monitors        []string      `yaml:"monitors"         json:"monitors"`
}

// Store is a key-value store of presets keyed by name.
type Store interface {
	// Put writes p, replacing any preset with the same name.
	Put(ctx context.Context, p Preset) error
	// Get returns the preset named name or ErrNotFound.
	Get(ctx context.Context, name string) (Preset, error)
	// List returns all preset names in ascending order.
	List(ctx context.Context) ([]string, error)
	// Delete removes a preset or returns ErrNotFound.
	Delete(ctx context.Context, name string) error
}

// ValidateName rejects names that are empty or could escape the preset
// directory.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("preset name is required")
	}
	if trimmed != name {
		return fmt.Errorf("invalid preset name %q: surrounding whitespace", name)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, string(os.PathSeparator)) || name != filepath.Base(name) {
		return fmt.Errorf("invalid preset name %q", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid preset name %q", name)
	}
	return nil
}

func encode(p Preset) ([]byte, error) {
	if p.Windows == nil {
		p.Windows = []WindowEntry{}
	}
	if p.Monitors == nil {
		p.Monitors = []string{}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode preset %q: %w", p.Name, err)
	}
	return data, nil
}

func decode(name string, data []byte) (Preset, error) {
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("failed to parse preset %q: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}
