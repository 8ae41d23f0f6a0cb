package focus

import (
	"github.com/mj1618/win-ctrl/internal/display"
	"github.com/mj1618/win-ctrl/internal/platform"
)

func displayWithSize(w, h int) display.Descriptor {
	return display.Descriptor{EffectiveResolution: platform.Size{Width: w, Height: h}}
}
