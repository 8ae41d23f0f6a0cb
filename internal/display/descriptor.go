package display

import (
	"fmt"
	"strings"

	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/platform"
)

// Position is a display origin. The inventory does not report it, so it is
// always zero.
type Position struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Descriptor describes one display. It is derived on every query and
// never stored.
type Descriptor struct {
	ID                  int            `yaml:"id"                          json:"id"`
	Name                string         `yaml:"name"                        json:"name"`
	Resolution          platform.Size  `yaml:"resolution"                  json:"resolution"`
	NativeResolution    *platform.Size `yaml:"native_resolution,omitempty" json:"native_resolution,omitempty"`
	EffectiveResolution platform.Size  `yaml:"effective_resolution"        json:"effective_resolution"`
	ScaleFactor         float64        `yaml:"scale_factor"                json:"scale_factor"`
	SizeInches          float64        `yaml:"size_inches"                 json:"size_inches"`
	PPI                 int            `yaml:"ppi"                         json:"ppi"`
	IsPrimary           bool           `yaml:"is_primary"                  json:"is_primary"`
	IsBuiltin           bool           `yaml:"is_builtin"                  json:"is_builtin"`
	Position            Position       `yaml:"position"                    json:"position"`
}

func (d Descriptor) effective() platform.Size {
	if d.EffectiveResolution.Pixels() > 0 {
		return d.EffectiveResolution
	}
	return d.Resolution
}

// Merge builds descriptors for monitors, in window manager order, enriched
// with whichever system display matches each monitor's name. Matching is
// best effort: names match when either contains the other, and a built-in
// panel matches a monitor whose name mentions "built-in". Unmatched
// monitors get default values.
func Merge(monitors []aerospace.Monitor, system []platform.SystemDisplay) []Descriptor {
	out := make([]Descriptor, 0, len(monitors))
	for i, m := range monitors {
		d := Descriptor{ID: i + 1, Name: m.Name, ScaleFactor: 1.0}
		if d.Name == "" {
			d.Name = fmt.Sprintf("Display %d", i+1)
		}

		sd := match(d.Name, system)
		if sd == nil {
			d.IsPrimary = i == 0
			out = append(out, d)
			continue
		}

		d.Resolution = sd.Resolution
		d.EffectiveResolution = sd.Resolution
		d.IsBuiltin = sd.IsBuiltin
		d.IsPrimary = sd.IsMain
		if sd.Native != nil {
			native := *sd.Native
			d.NativeResolution = &native
			if sd.Resolution.Width > 0 {
				d.ScaleFactor = round1(float64(native.Width) / float64(sd.Resolution.Width))
			}
		}
		d.SizeInches, d.PPI = EstimateSizeInches(d.Resolution.Width, d.IsBuiltin, d.ScaleFactor)
		out = append(out, d)
	}
	return out
}

func match(name string, system []platform.SystemDisplay) *platform.SystemDisplay {
	lower := strings.ToLower(name)
	for i := range system {
		sd := &system[i]
		if strings.Contains(name, sd.Name) || strings.Contains(sd.Name, name) {
			return sd
		}
		if sd.IsBuiltin && strings.Contains(lower, "built-in") {
			return sd
		}
	}
	return nil
}

// Primary returns the display flagged primary, else the first one.
func Primary(displays []Descriptor) (Descriptor, bool) {
	for _, d := range displays {
		if d.IsPrimary {
			return d, true
		}
	}
	if len(displays) > 0 {
		return displays[0], true
	}
	return Descriptor{}, false
}
