package focus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/display"
	"github.com/mj1618/win-ctrl/internal/preset"
)

// AutoPreset selects a built-in preset from the display category.
const AutoPreset = "auto"

// Built-in preset names.
const (
	SmallSingleFocus   = "small_single_focus"
	MediumSplit        = "medium_split"
	LargeCentered      = "large_centered"
	DualMonitorFocus   = "dual_monitor_focus"
	TripleMonitorFocus = "triple_monitor_focus"
)

// BuiltinPresets lists the built-in layouts.
var BuiltinPresets = []string{SmallSingleFocus, MediumSplit, LargeCentered, DualMonitorFocus, TripleMonitorFocus}

var autoPresets = map[display.Category]string{
	display.SmallSingle:  SmallSingleFocus,
	display.MediumSingle: MediumSplit,
	display.LargeSingle:  LargeCentered,
	display.DualDisplay:  DualMonitorFocus,
	display.TriplePlus:   TripleMonitorFocus,
}

// PresetFor maps a display category to the preset "auto" resolves to.
func PresetFor(c display.Category) string {
	if p, ok := autoPresets[c]; ok {
		return p
	}
	return MediumSplit
}

// HiddenWorkspace receives communication windows when they are hidden.
const HiddenWorkspace = "communication"

// mediumSplitGrowPercent widens the focus window in the 70/30 split.
const mediumSplitGrowPercent = 30

// SavedPreset summarizes a saved preset.
type SavedPreset struct {
	Name            string `yaml:"name"             json:"name"`
	Description     string `yaml:"description"      json:"description"`
	DisplayCategory string `yaml:"display_category" json:"display_category"`
	CreatedAt       string `yaml:"created_at"       json:"created_at"`
	WindowCount     int    `yaml:"window_count"     json:"window_count"`
}

// SaveResult is returned by Save.
type SaveResult struct {
	Success bool        `yaml:"success" json:"success"`
	Preset  SavedPreset `yaml:"preset"  json:"preset"`
}

// LoadResult is returned by Load.
type LoadResult struct {
	Success         bool            `yaml:"success"          json:"success"`
	PresetLoaded    string          `yaml:"preset_loaded"    json:"preset_loaded"`
	Adapted         bool            `yaml:"adapted"          json:"adapted"`
	WindowsArranged int             `yaml:"windows_arranged" json:"windows_arranged"`
	WindowsSkipped  []SkippedWindow `yaml:"windows_skipped"  json:"windows_skipped"`
}

// FocusPlacement describes where the focus window ended up.
type FocusPlacement struct {
	WindowID    int    `yaml:"window_id"   json:"window_id"`
	Monitor     int    `yaml:"monitor"     json:"monitor"`
	Arrangement string `yaml:"arrangement" json:"arrangement"`
}

// HiddenWindow is a window moved out of the way.
type HiddenWindow struct {
	WindowID         int    `yaml:"window_id"          json:"window_id"`
	MovedToWorkspace string `yaml:"moved_to_workspace" json:"moved_to_workspace"`
}

// Layout describes what a built-in preset did.
type Layout struct {
	FocusWindow      FocusPlacement   `yaml:"focus_window"      json:"focus_window"`
	ReferenceWindows []FocusPlacement `yaml:"reference_windows" json:"reference_windows"`
	HiddenWindows    []HiddenWindow   `yaml:"hidden_windows"    json:"hidden_windows"`
	Skipped          []SkippedWindow  `yaml:"skipped"           json:"skipped"`
}

// ApplyResult is returned by Apply. Exactly one of Layout (a built-in
// preset ran) and SavedPreset (a saved preset was loaded) is set.
type ApplyResult struct {
	Success         bool        `yaml:"success"                json:"success"`
	PresetApplied   string      `yaml:"preset_applied"         json:"preset_applied"`
	DisplayCategory string      `yaml:"display_category"       json:"display_category"`
	Layout          *Layout     `yaml:"layout,omitempty"       json:"layout,omitempty"`
	SavedPreset     *LoadResult `yaml:"saved_preset,omitempty" json:"saved_preset,omitempty"`
}

// ListResult is returned by List.
type ListResult struct {
	Success bool          `yaml:"success" json:"success"`
	Presets []SavedPreset `yaml:"presets" json:"presets"`
}

// DeleteResult is returned by Delete.
type DeleteResult struct {
	Success bool   `yaml:"success" json:"success"`
	Deleted string `yaml:"deleted" json:"deleted"`
}

// ApplyOptions configures Apply.
type ApplyOptions struct {
	Preset            string // defaults to AutoPreset
	FocusWindowID     *int   // defaults to the focused window
	ReferenceApps     []string
	HideCommunication bool
}

func invalidName(name string, err error) error {
	return apperr.Invalidf(apperr.Details{"parameter": "name", "provided": name}, "%s", err.Error())
}

func storeError(err error) error {
	return apperr.Wrap(err, apperr.UnknownError, fmt.Sprintf("preset store: %v", err), nil)
}

// Save snapshots every window's application and workspace under name,
// replacing any preset of the same name.
func (s *Service) Save(ctx context.Context, name, description string) (SaveResult, error) {
	if err := preset.ValidateName(name); err != nil {
		return SaveResult{}, invalidName(name, err)
	}
	category, _, err := s.category(ctx)
	if err != nil {
		return SaveResult{}, err
	}
	windows, err := s.wm.ListWindows(ctx, aerospace.WindowFilter{})
	if err != nil {
		return SaveResult{}, err
	}
	monitors, err := s.wm.ListMonitors(ctx)
	if err != nil {
		return SaveResult{}, err
	}
	focused, err := s.wm.FocusedWindow(ctx)
	if err != nil {
		return SaveResult{}, err
	}

	if description == "" {
		description = "Focus preset: " + name
	}
	p := preset.Preset{
		Name:            name,
		Description:     description,
		DisplayCategory: string(category),
		CreatedAt:       s.now().UTC().Format(time.RFC3339),
		Windows:         make([]preset.WindowEntry, 0, len(windows)),
		Monitors:        aerospace.MonitorNames(monitors),
	}
	for _, w := range windows {
		p.Windows = append(p.Windows, preset.WindowEntry{
			AppName:   w.App,
			Workspace: w.Workspace,
			IsFocused: focused != nil && focused.ID == w.ID,
		})
	}
	if err := s.store.Put(ctx, p); err != nil {
		return SaveResult{}, storeError(err)
	}
	s.log.Info("saved focus preset", "name", name, "windows", len(windows), "category", category)

	return SaveResult{Success: true, Preset: summary(p)}, nil
}

func summary(p preset.Preset) SavedPreset {
	return SavedPreset{
		Name:            p.Name,
		Description:     p.Description,
		DisplayCategory: p.DisplayCategory,
		CreatedAt:       p.CreatedAt,
		WindowCount:     len(p.Windows),
	}
}

// get reads a preset, translating a miss into PRESET_NOT_FOUND.
func (s *Service) get(ctx context.Context, name string) (preset.Preset, error) {
	if err := preset.ValidateName(name); err != nil {
		return preset.Preset{}, invalidName(name, err)
	}
	p, err := s.store.Get(ctx, name)
	if errors.Is(err, preset.ErrNotFound) {
		available, listErr := s.store.List(ctx)
		if listErr != nil {
			return preset.Preset{}, storeError(listErr)
		}
		return preset.Preset{}, apperr.New(apperr.PresetNotFound,
			fmt.Sprintf("Preset '%s' not found", name),
			apperr.Details{"available_presets": available})
	}
	if err != nil {
		return preset.Preset{}, storeError(err)
	}
	return p, nil
}

// Load reapplies a saved preset. Each entry moves the first not yet used
// live window of the same application to the recorded workspace; entries
// with no live window, or whose window fails to move, are skipped.
func (s *Service) Load(ctx context.Context, name string, adapt bool) (LoadResult, error) {
	p, err := s.get(ctx, name)
	if err != nil {
		return LoadResult{}, err
	}
	current, _, err := s.category(ctx)
	if err != nil {
		return LoadResult{}, err
	}
	adapted := string(current) != p.DisplayCategory
	if adapted && !adapt {
		return LoadResult{}, apperr.New(apperr.DisplayMismatch,
			fmt.Sprintf("Display configuration changed from '%s' to '%s'", p.DisplayCategory, current),
			apperr.Details{
				"saved_category":   p.DisplayCategory,
				"current_category": string(current),
				"suggestion":       "Set adapt_to_displays=True to adapt the preset",
			})
	}

	windows, err := s.wm.ListWindows(ctx, aerospace.WindowFilter{})
	if err != nil {
		return LoadResult{}, err
	}

	type assignment struct {
		entry  preset.WindowEntry
		window aerospace.Window
	}
	used := map[int]bool{}
	var assignments []assignment
	skippedWindows := []SkippedWindow{}
	for _, entry := range p.Windows {
		matched := false
		for _, w := range windows {
			if w.App == entry.AppName && !used[w.ID] {
				used[w.ID] = true
				assignments = append(assignments, assignment{entry: entry, window: w})
				matched = true
				break
			}
		}
		if !matched {
			skippedWindows = append(skippedWindows, SkippedWindow{AppName: entry.AppName, Reason: "no matching window"})
		}
	}

	arranged, failed := fold(assignments, func(a assignment) error {
		return s.focusThen(ctx, a.window.ID, func() error {
			if a.entry.Workspace == "" {
				return nil
			}
			return s.wm.MoveToWorkspace(ctx, a.entry.Workspace)
		})
	})
	for _, f := range failed {
		skippedWindows = append(skippedWindows, SkippedWindow{
			WindowID: f.item.window.ID,
			AppName:  f.item.entry.AppName,
			Reason:   f.err.Error(),
		})
	}
	s.logSkips("load preset", skippedWindows)

	return LoadResult{
		Success:         true,
		PresetLoaded:    name,
		Adapted:         adapted,
		WindowsArranged: len(arranged),
		WindowsSkipped:  skippedWindows,
	}, nil
}

// List summarizes every saved preset.
func (s *Service) List(ctx context.Context) (ListResult, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return ListResult{}, storeError(err)
	}
	out := ListResult{Success: true, Presets: make([]SavedPreset, 0, len(names))}
	for _, name := range names {
		p, err := s.store.Get(ctx, name)
		if err != nil {
			s.log.Warn("unreadable preset", "name", name, "err", err)
			continue
		}
		out.Presets = append(out.Presets, summary(p))
	}
	return out, nil
}

// Delete removes a saved preset.
func (s *Service) Delete(ctx context.Context, name string) (DeleteResult, error) {
	if _, err := s.get(ctx, name); err != nil {
		return DeleteResult{}, err
	}
	if err := s.store.Delete(ctx, name); err != nil && !errors.Is(err, preset.ErrNotFound) {
		return DeleteResult{}, storeError(err)
	}
	return DeleteResult{Success: true, Deleted: name}, nil
}

// Apply arranges windows using a saved preset or a built-in layout. "auto"
// picks the built-in preset for the current display category; a saved
// preset of the resolved name takes precedence over the built-in one.
func (s *Service) Apply(ctx context.Context, opts ApplyOptions) (ApplyResult, error) {
	name := opts.Preset
	if name == "" {
		name = AutoPreset
	}
	category, displays, err := s.category(ctx)
	if err != nil {
		return ApplyResult{}, err
	}
	if name == AutoPreset {
		name = PresetFor(category)
	}

	result := ApplyResult{Success: true, PresetApplied: name, DisplayCategory: string(category)}

	saved, err := s.store.List(ctx)
	if err != nil {
		return ApplyResult{}, storeError(err)
	}
	if slices.Contains(saved, name) {
		loaded, err := s.Load(ctx, name, true)
		if err != nil {
			return ApplyResult{}, err
		}
		result.SavedPreset = &loaded
		return result, nil
	}
	if !slices.Contains(BuiltinPresets, name) {
		valid := append([]string{AutoPreset}, BuiltinPresets...)
		valid = append(valid, saved...)
		return ApplyResult{}, apperr.Invalid("preset", name, valid)
	}

	target, err := s.wm.ResolveWindow(ctx, opts.FocusWindowID)
	if err != nil {
		return ApplyResult{}, err
	}
	windows, err := s.wm.ListWindows(ctx, aerospace.WindowFilter{})
	if err != nil {
		return ApplyResult{}, err
	}
	monitors, err := s.wm.ListMonitors(ctx)
	if err != nil {
		return ApplyResult{}, err
	}

	var reference, hidden []aerospace.Window
	for _, w := range windows {
		if w.ID == target.ID {
			continue
		}
		cat := CategoryOf(w.App)
		switch {
		case slices.Contains(opts.ReferenceApps, w.App) || cat == "reference":
			reference = append(reference, w)
		case opts.HideCommunication && cat == "communication":
			hidden = append(hidden, w)
		}
	}

	layout := &Layout{
		FocusWindow:      FocusPlacement{WindowID: target.ID, Monitor: 1, Arrangement: "normal"},
		ReferenceWindows: []FocusPlacement{},
		HiddenWindows:    []HiddenWindow{},
		Skipped:          []SkippedWindow{},
	}

	if err := s.wm.FocusWindow(ctx, target.ID); err != nil {
		return ApplyResult{}, err
	}

	switch name {
	case SmallSingleFocus:
		if err := s.wm.Fullscreen(ctx); err != nil {
			return ApplyResult{}, err
		}
		layout.FocusWindow.Arrangement = "fullscreen"

	case MediumSplit:
		primary, ok := display.Primary(displays)
		grow := pixels(screen(primary, ok).Width, mediumSplitGrowPercent)
		if err := s.wm.SetLayout(ctx, "h_tiles"); err != nil {
			return ApplyResult{}, err
		}
		if err := s.wm.Resize(ctx, "width", signed(grow)); err != nil {
			return ApplyResult{}, err
		}
		layout.FocusWindow.Arrangement = "tiled_70"

	case LargeCentered:
		if err := s.wm.SetLayout(ctx, "h_tiles"); err != nil {
			return ApplyResult{}, err
		}
		layout.FocusWindow.Arrangement = "centered"

	case DualMonitorFocus:
		if len(monitors) < 2 {
			break
		}
		if err := s.wm.Fullscreen(ctx); err != nil {
			return ApplyResult{}, err
		}
		layout.FocusWindow.Arrangement = "fullscreen"

		moved, failed := fold(reference, func(w aerospace.Window) error {
			return s.focusThen(ctx, w.ID, func() error { return s.wm.MoveToMonitor(ctx, "next") })
		})
		for _, w := range moved {
			layout.ReferenceWindows = append(layout.ReferenceWindows,
				FocusPlacement{WindowID: w.ID, Monitor: 2, Arrangement: "tiled"})
		}
		layout.Skipped = append(layout.Skipped, skippedWindows(failed)...)

	case TripleMonitorFocus:
		if len(monitors) < 3 {
			break
		}
		if err := s.wm.Fullscreen(ctx); err != nil {
			return ApplyResult{}, err
		}
		layout.FocusWindow.Arrangement = "fullscreen"
	}

	if opts.HideCommunication {
		moved, failed := fold(hidden, func(w aerospace.Window) error {
			return s.focusThen(ctx, w.ID, func() error { return s.wm.MoveToWorkspace(ctx, HiddenWorkspace) })
		})
		for _, w := range moved {
			layout.HiddenWindows = append(layout.HiddenWindows,
				HiddenWindow{WindowID: w.ID, MovedToWorkspace: HiddenWorkspace})
		}
		layout.Skipped = append(layout.Skipped, skippedWindows(failed)...)
	}
	s.logSkips("apply preset", layout.Skipped)

	if err := s.wm.FocusWindow(ctx, target.ID); err != nil {
		return ApplyResult{}, err
	}
	result.Layout = layout
	return result, nil
}

func skippedWindows(failed []skip[aerospace.Window]) []SkippedWindow {
	out := make([]SkippedWindow, 0, len(failed))
	for _, f := range failed {
		out = append(out, SkippedWindow{WindowID: f.item.ID, AppName: f.item.App, Reason: f.err.Error()})
	}
	return out
}
