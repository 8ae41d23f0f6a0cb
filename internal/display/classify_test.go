package display

import (
	"testing"

	"github.com/mj1618/win-ctrl/internal/platform"
	"github.com/stretchr/testify/assert"
)

func sized(inches float64) Descriptor {
	return Descriptor{SizeInches: inches}
}

func resolution(w, h int) Descriptor {
	return Descriptor{EffectiveResolution: platform.Size{Width: w, Height: h}}
}

func TestClassifyByCount(t *testing.T) {
	tests := []struct {
		name     string
		displays []Descriptor
		want     Category
	}{
		{"none", nil, Unknown},
		{"two small", []Descriptor{sized(13), sized(13)}, DualDisplay},
		{"two large", []Descriptor{sized(32), sized(0)}, DualDisplay},
		{"three", []Descriptor{sized(13), sized(27), sized(0)}, TriplePlus},
		{"four", []Descriptor{{}, {}, {}, {}}, TriplePlus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, desc := Classify(tt.displays)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, desc)
		})
	}
}

func TestClassifyBySize(t *testing.T) {
	tests := []struct {
		inches float64
		want   Category
	}{
		{13, SmallSingle},
		{14.9, SmallSingle},
		{15, MediumSingle},
		{21, MediumSingle},
		{26.9, MediumSingle},
		{27, LargeSingle},
		{34, LargeSingle},
	}
	for _, tt := range tests {
		got, _ := Classify([]Descriptor{sized(tt.inches)})
		assert.Equal(t, tt.want, got, "size %.1f", tt.inches)
	}
}

func TestClassifyByResolutionFallback(t *testing.T) {
	tests := []struct {
		w, h int
		want Category
	}{
		{1024, 768, SmallSingle},
		{1280, 810, MediumSingle},
		{1920, 1080, MediumSingle},
		{2560, 1440, LargeSingle},
		{3840, 2160, LargeSingle},
		{0, 0, SmallSingle},
	}
	for _, tt := range tests {
		got, _ := Classify([]Descriptor{resolution(tt.w, tt.h)})
		assert.Equal(t, tt.want, got, "%dx%d", tt.w, tt.h)
	}
}

func TestClassifyFallsBackToResolutionWhenEffectiveUnknown(t *testing.T) {
	d := Descriptor{Resolution: platform.Size{Width: 2560, Height: 1440}}
	got, _ := Classify([]Descriptor{d})
	assert.Equal(t, LargeSingle, got)
}

func TestClassifyDescriptions(t *testing.T) {
	_, desc := Classify([]Descriptor{sized(27)})
	assert.Equal(t, `Large single display (27"+): centered focus with flanking reference`, desc)

	_, desc = Classify([]Descriptor{resolution(1920, 1080)})
	assert.Equal(t, "Medium single display: 70/30 split with sidebar", desc)

	_, desc = Classify(nil)
	assert.Equal(t, "No displays detected", desc)
}

func TestStrategy(t *testing.T) {
	assert.Equal(t, "fullscreen_focus", Strategy(SmallSingle))
	assert.Equal(t, "split_sidebar", Strategy(MediumSingle))
	assert.Equal(t, "centered_focus", Strategy(LargeSingle))
	assert.Equal(t, "primary_focus_secondary_reference", Strategy(DualDisplay))
	assert.Equal(t, "dedicated_monitors", Strategy(TriplePlus))
	assert.Equal(t, "fullscreen_focus", Strategy(Unknown))
}

func TestSizeClass(t *testing.T) {
	assert.Equal(t, "small", SizeClass(platform.Size{Width: 1024, Height: 768}))
	assert.Equal(t, "medium", SizeClass(platform.Size{Width: 1920, Height: 1080}))
	assert.Equal(t, "large", SizeClass(platform.Size{Width: 2560, Height: 1440}))
}

func TestEstimateSizeInches(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		builtin bool
		scale   float64
		inches  float64
		ppi     int
	}{
		{"external 1x", 2560, false, 1.0, 27.4, 110},
		{"external 1080p", 1920, false, 1.0, 20.6, 110},
		{"builtin", 1728, true, 2.0, 9.3, 220},
		{"scaled external", 2560, false, 1.5, 13.7, 220},
		{"unknown width", 0, true, 2.0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inches, ppi := EstimateSizeInches(tt.width, tt.builtin, tt.scale)
			assert.InDelta(t, tt.inches, inches, 0.001)
			assert.Equal(t, tt.ppi, ppi)
		})
	}
}
