package display

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/platform"
)

// WindowManager is the part of the AeroSpace client the display service
// reads.
type WindowManager interface {
	ListMonitors(ctx context.Context) ([]aerospace.Monitor, error)
	ListWorkspaces(ctx context.Context, f aerospace.WorkspaceFilter) ([]aerospace.Workspace, error)
	ListWindows(ctx context.Context, f aerospace.WindowFilter) ([]aerospace.Window, error)
}

// Service answers display questions. Nothing is cached; every call reads
// the current hardware state.
type Service struct {
	wm        WindowManager
	inventory platform.DisplayInventory
	log       *log.Logger
}

// NewService creates a Service. A nil logger discards output.
func NewService(wm WindowManager, inventory platform.DisplayInventory, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{wm: wm, inventory: inventory, log: logger}
}

// Info is the full display report.
type Info struct {
	Displays             []Descriptor `yaml:"displays"               json:"displays"`
	Arrangement          string       `yaml:"arrangement"            json:"arrangement"`
	TotalEffectivePixels int          `yaml:"total_effective_pixels" json:"total_effective_pixels"`
	Category             Category     `yaml:"category"               json:"category"`
}

// CategoryInfo is the condensed classification report.
type CategoryInfo struct {
	Category            Category `yaml:"category"             json:"category"`
	PrimarySize         string   `yaml:"primary_size"         json:"primary_size"`
	SecondarySizes      []string `yaml:"secondary_sizes"      json:"secondary_sizes"`
	RecommendedStrategy string   `yaml:"recommended_strategy" json:"recommended_strategy"`
	Description         string   `yaml:"description"          json:"description"`
}

// Detail is one display plus what AeroSpace has placed on it.
type Detail struct {
	Descriptor       `yaml:",inline"`
	Workspaces       []string `yaml:"workspaces"        json:"workspaces"`
	FocusedWorkspace *string  `yaml:"focused_workspace" json:"focused_workspace"`
	SizeCategory     string   `yaml:"size_category"     json:"size_category"`
	WindowCount      int      `yaml:"window_count"      json:"window_count"`
}

// Displays returns the merged descriptors.
func (s *Service) Displays(ctx context.Context) ([]Descriptor, error) {
	monitors, err := s.wm.ListMonitors(ctx)
	if err != nil {
		return nil, err
	}
	var system []platform.SystemDisplay
	if s.inventory != nil {
		system, err = s.inventory.Displays(ctx)
		if err != nil {
			s.log.Warn("display inventory unavailable", "err", err)
			system = nil
		}
	}
	return Merge(monitors, system), nil
}

// Info reports every display with the overall arrangement and category.
func (s *Service) Info(ctx context.Context) (Info, error) {
	displays, err := s.Displays(ctx)
	if err != nil {
		return Info{}, err
	}
	info := Info{Displays: displays, Arrangement: "multiple"}
	switch len(displays) {
	case 1:
		info.Arrangement = "single"
	case 2:
		info.Arrangement = "horizontal"
	}
	for _, d := range displays {
		info.TotalEffectivePixels += d.EffectiveResolution.Pixels()
	}
	info.Category, _ = Classify(displays)
	return info, nil
}

// Category classifies the current configuration.
func (s *Service) Category(ctx context.Context) (CategoryInfo, error) {
	displays, err := s.Displays(ctx)
	if err != nil {
		return CategoryInfo{}, err
	}
	return Summarize(displays), nil
}

// Summarize builds the category report for a display list.
func Summarize(displays []Descriptor) CategoryInfo {
	category, description := Classify(displays)
	ci := CategoryInfo{
		Category:            category,
		PrimarySize:         "medium",
		SecondarySizes:      []string{},
		RecommendedStrategy: Strategy(category),
		Description:         description,
	}
	if primary, ok := Primary(displays); ok {
		ci.PrimarySize = SizeClass(primary.effective())
	}
	for _, d := range displays {
		if !d.IsPrimary {
			ci.SecondarySizes = append(ci.SecondarySizes, SizeClass(d.effective()))
		}
	}
	return ci
}

// ByID returns one display with its workspaces and window count.
func (s *Service) ByID(ctx context.Context, id int) (Detail, error) {
	displays, err := s.Displays(ctx)
	if err != nil {
		return Detail{}, err
	}
	var found *Descriptor
	ids := make([]int, 0, len(displays))
	for i := range displays {
		ids = append(ids, displays[i].ID)
		if displays[i].ID == id {
			found = &displays[i]
		}
	}
	if found == nil {
		return Detail{}, apperr.New(apperr.DisplayNotFound,
			fmt.Sprintf("Display with ID %d not found", id),
			apperr.Details{"requested_display_id": id, "available_displays": ids})
	}

	detail := Detail{Descriptor: *found, Workspaces: []string{}, SizeCategory: SizeClass(found.effective())}

	workspaces, err := s.wm.ListWorkspaces(ctx, aerospace.WorkspaceFilter{})
	if err != nil {
		return Detail{}, err
	}
	for _, ws := range workspaces {
		if ws.MonitorName == found.Name {
			detail.Workspaces = append(detail.Workspaces, ws.Name)
		}
	}

	// Only the globally focused workspace counts; other displays report nil.
	focused, err := s.wm.ListWorkspaces(ctx, aerospace.WorkspaceFilter{Focused: true})
	if err != nil {
		return Detail{}, err
	}
	for _, ws := range focused {
		if ws.MonitorName == found.Name {
			name := ws.Name
			detail.FocusedWorkspace = &name
			break
		}
	}

	windows, err := s.wm.ListWindows(ctx, aerospace.WindowFilter{})
	if err != nil {
		return Detail{}, err
	}
	for _, w := range windows {
		if w.MonitorName == found.Name {
			detail.WindowCount++
		}
	}
	return detail, nil
}
