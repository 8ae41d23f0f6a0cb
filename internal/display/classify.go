// Package display merges the window manager's monitor list with the OS
// display inventory and classifies the resulting configuration.
package display

import (
	"math"

	"github.com/mj1618/win-ctrl/internal/platform"
)

// Category is a coarse description of the attached display configuration.
type Category string

const (
	Unknown      Category = "unknown"
	SmallSingle  Category = "small_single"
	MediumSingle Category = "medium_single"
	LargeSingle  Category = "large_single"
	DualDisplay  Category = "dual_display"
	TriplePlus   Category = "triple_plus"
)

// Size thresholds for a single display.
const (
	largeInches  = 27.0
	mediumInches = 15.0

	largePixels  = 3_686_400 // 2560x1440
	mediumPixels = 1_036_800 // 1280x810
)

// Assumed pixel densities and aspect ratio for EstimateSizeInches.
const (
	retinaPPI  = 220
	standardPP = 110
	aspect     = 0.625 // 16:10
)

// strategies maps a category to its recommended arrangement strategy.
var strategies = map[Category]string{
	SmallSingle:  "fullscreen_focus",
	MediumSingle: "split_sidebar",
	LargeSingle:  "centered_focus",
	DualDisplay:  "primary_focus_secondary_reference",
	TriplePlus:   "dedicated_monitors",
}

// Strategy returns the recommended arrangement for c.
func Strategy(c Category) string {
	if s, ok := strategies[c]; ok {
		return s
	}
	return "fullscreen_focus"
}

// Classify buckets a display list. Two or more displays are classified by
// count alone; a single display by its estimated diagonal, or by its
// effective pixel count when the diagonal is unknown.
func Classify(displays []Descriptor) (Category, string) {
	switch n := len(displays); {
	case n == 0:
		return Unknown, "No displays detected"
	case n >= 3:
		return TriplePlus, "Three or more monitors: focus=primary, reference=secondary, communication=tertiary"
	case n == 2:
		return DualDisplay, "Two monitors: focus on primary, reference on secondary"
	}

	d := displays[0]
	if d.SizeInches > 0 {
		switch {
		case d.SizeInches >= largeInches:
			return LargeSingle, `Large single display (27"+): centered focus with flanking reference`
		case d.SizeInches >= mediumInches:
			return MediumSingle, `Medium single display (15-24"): 70/30 split with sidebar`
		default:
			return SmallSingle, `Small single display (<15"): fullscreen focus, workspaces for others`
		}
	}

	switch px := d.effective().Pixels(); {
	case px >= largePixels:
		return LargeSingle, "Large single display: centered focus with flanking reference"
	case px >= mediumPixels:
		return MediumSingle, "Medium single display: 70/30 split with sidebar"
	default:
		return SmallSingle, "Small single display: fullscreen focus, workspaces for others"
	}
}

// SizeClass buckets a resolution into small, medium or large using the same
// pixel thresholds as Classify.
func SizeClass(s platform.Size) string {
	switch px := s.Pixels(); {
	case px >= largePixels:
		return "large"
	case px >= mediumPixels:
		return "medium"
	default:
		return "small"
	}
}

// EstimateSizeInches guesses a panel's diagonal from its pixel width.
//
// This is a heuristic, not a measurement: the panel is assumed to be
// 220 ppi when built-in or scaled (HiDPI) and 110 ppi otherwise, and to have
// a 16:10 aspect ratio. The result is rounded to one decimal. A zero width
// yields (0, 0).
func EstimateSizeInches(widthPx int, builtin bool, scale float64) (float64, int) {
	if widthPx <= 0 {
		return 0, 0
	}
	ppi := standardPP
	if builtin || scale > 1 {
		ppi = retinaPPI
	}
	w := float64(widthPx) / float64(ppi)
	h := w * aspect
	return round1(math.Hypot(w, h)), ppi
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
