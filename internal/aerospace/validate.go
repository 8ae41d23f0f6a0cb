package aerospace

import "github.com/mj1618/win-ctrl/internal/apperr"

// Directions accepted by focus and move.
var Directions = []string{"left", "right", "up", "down"}

// Layouts accepted by `aerospace layout`.
var Layouts = []string{
	"tiles",
	"accordion",
	"h_tiles",
	"v_tiles",
	"h_accordion",
	"v_accordion",
	"floating",
	"tiling",
}

// ValidateDirection checks a direction parameter.
func ValidateDirection(direction string) error {
	return ValidateEnum("direction", direction, Directions)
}

// ValidateLayout checks a layout parameter.
func ValidateLayout(layout string) error {
	return ValidateEnum("layout", layout, Layouts)
}

// ValidateEnum returns INVALID_PARAMETERS when value is not in valid.
func ValidateEnum(param, value string, valid []string) error {
	for _, v := range valid {
		if v == value {
			return nil
		}
	}
	return apperr.Invalid(param, value, valid)
}
