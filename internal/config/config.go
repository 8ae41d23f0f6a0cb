// Package config loads win-ctrl settings. Sources are applied in order:
// built-in defaults, the TOML config file, then WIN_CTRL_* environment
// variables. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mj1618/win-ctrl/internal/logging"
	"github.com/mj1618/win-ctrl/internal/output"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override, e.g. WIN_CTRL_PRESET_DIR
// or WIN_CTRL_LOG_LEVEL.
const EnvPrefix = "WIN_CTRL_"

// Preset storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends lists the accepted preset_backend values.
var Backends = []string{BackendFile, BackendSQLite}

// Log holds the [log] table.
type Log struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"`
}

// Config is the full settings set.
type Config struct {
	AerospaceBin      string `toml:"aerospace_bin"`
	ScreencaptureBin  string `toml:"screencapture_bin"`
	SystemProfilerBin string `toml:"system_profiler_bin"`
	PresetBackend     string `toml:"preset_backend"`
	PresetDir         string `toml:"preset_dir"`
	PresetDB          string `toml:"preset_db"`
	CaptureDir        string `toml:"capture_dir"`
	OutputFormat      string `toml:"output_format"`
	Log               Log    `toml:"log"`

	// Path is the file the settings were read from, empty when none was.
	Path string `toml:"-"`
}

// Logging returns the logger settings.
func (c Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, File: c.Log.File, Format: c.Log.Format}
}

// Dir returns $XDG_CONFIG_HOME/win-ctrl, falling back to ~/.config.
func Dir() string {
	return filepath.Join(xdg("XDG_CONFIG_HOME", ".config"), "win-ctrl")
}

// StateDir returns $XDG_STATE_HOME/win-ctrl, falling back to
// ~/.local/state.
func StateDir() string {
	return filepath.Join(xdg("XDG_STATE_HOME", filepath.Join(".local", "state")), "win-ctrl")
}

func xdg(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, fallback)
}

// DefaultPath is the config file read when none is given explicitly.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		AerospaceBin:      "aerospace",
		ScreencaptureBin:  "screencapture",
		SystemProfilerBin: "system_profiler",
		PresetBackend:     BackendFile,
		PresetDir:         filepath.Join(Dir(), "presets"),
		PresetDB:          filepath.Join(StateDir(), "presets.db"),
		CaptureDir:        os.TempDir(),
		OutputFormat:      string(output.FormatYAML),
		Log:               Log{Level: "info", Format: "text"},
	}
}

// Load reads settings. An explicit path must exist; the default path is
// optional.
func Load(path string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg.Path = path
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from WIN_CTRL_<KEY> variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	fields := map[string]*string{
		"AEROSPACE_BIN":       &c.AerospaceBin,
		"SCREENCAPTURE_BIN":   &c.ScreencaptureBin,
		"SYSTEM_PROFILER_BIN": &c.SystemProfilerBin,
		"PRESET_BACKEND":      &c.PresetBackend,
		"PRESET_DIR":          &c.PresetDir,
		"PRESET_DB":           &c.PresetDB,
		"CAPTURE_DIR":         &c.CaptureDir,
		"OUTPUT_FORMAT":       &c.OutputFormat,
		"LOG_LEVEL":           &c.Log.Level,
		"LOG_FILE":            &c.Log.File,
		"LOG_FORMAT":          &c.Log.Format,
	}
	for key, field := range fields {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*field = v
		}
	}
}

func (c *Config) normalize() {
	c.PresetBackend = strings.ToLower(c.PresetBackend)
	c.OutputFormat = strings.ToLower(c.OutputFormat)
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
	c.PresetDir = expandHome(c.PresetDir)
	c.PresetDB = expandHome(c.PresetDB)
	c.CaptureDir = expandHome(c.CaptureDir)
	c.Log.File = expandHome(c.Log.File)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	checks := []struct {
		key, value string
		allowed    []string
	}{
		{"preset_backend", c.PresetBackend, Backends},
		{"output_format", c.OutputFormat, output.Formats},
		{"log.level", c.Log.Level, slices.Concat(logging.Levels, []string{"warning"})},
		{"log.format", c.Log.Format, logging.Formats},
	}
	var errs []error
	for _, ch := range checks {
		if !slices.Contains(ch.allowed, ch.value) {
			errs = append(errs, fmt.Errorf("invalid %s %q: must be one of %s", ch.key, ch.value, strings.Join(ch.allowed, ", ")))
		}
	}
	if c.AerospaceBin == "" {
		errs = append(errs, errors.New("aerospace_bin must not be empty"))
	}
	return errors.Join(errs...)
}

// Sample is a commented config file users can start from.
const Sample = `# win-ctrl configuration
# Every key can also be set with a WIN_CTRL_<KEY> environment variable,
# e.g. WIN_CTRL_PRESET_BACKEND=sqlite or WIN_CTRL_LOG_LEVEL=debug.

# aerospace_bin = "aerospace"
# screencapture_bin = "screencapture"
# system_profiler_bin = "system_profiler"

# Focus preset storage: "file" (one JSON file per preset) or "sqlite".
# preset_backend = "file"
# preset_dir = "~/.config/win-ctrl/presets"
# preset_db = "~/.local/state/win-ctrl/presets.db"

# Where captures go when no output path is given.
# capture_dir = "/tmp"

# CLI output: "yaml" or "json".
# output_format = "yaml"

[log]
# level = "info"
# file = ""
# format = "text"
`
