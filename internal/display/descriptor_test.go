package display

import (
	"testing"

	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeMatchesByName(t *testing.T) {
	native := platform.Size{Width: 3840, Height: 2160}
	monitors := []aerospace.Monitor{{ID: 1, Name: "DELL U2723QE"}}
	system := []platform.SystemDisplay{{
		Name:       "DELL U2723QE",
		Resolution: platform.Size{Width: 1920, Height: 1080},
		Native:     &native,
		IsMain:     true,
	}}

	got := Merge(monitors, system)
	require.Len(t, got, 1)
	d := got[0]
	assert.Equal(t, 1, d.ID)
	assert.Equal(t, 2.0, d.ScaleFactor)
	assert.Equal(t, 220, d.PPI)
	assert.Equal(t, platform.Size{Width: 1920, Height: 1080}, d.EffectiveResolution)
	assert.True(t, d.IsPrimary)
	assert.False(t, d.IsBuiltin)
	require.NotNil(t, d.NativeResolution)
	assert.Equal(t, native, *d.NativeResolution)
}

func TestMergeMatchesBuiltin(t *testing.T) {
	monitors := []aerospace.Monitor{{ID: 1, Name: "Built-in Retina Display"}}
	system := []platform.SystemDisplay{{Name: "Color LCD", Resolution: platform.Size{Width: 1512, Height: 982}, IsBuiltin: true, IsMain: true}}

	got := Merge(monitors, system)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsBuiltin)
	assert.Equal(t, 220, got[0].PPI)
	assert.Equal(t, 1.0, got[0].ScaleFactor)
}

func TestMergeUnmatchedDefaults(t *testing.T) {
	monitors := []aerospace.Monitor{{ID: 1, Name: "Sidecar"}, {ID: 2, Name: ""}}
	system := []platform.SystemDisplay{{Name: "LG HDR 4K", Resolution: platform.Size{Width: 3840, Height: 2160}}}

	got := Merge(monitors, system)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsPrimary)
	assert.False(t, got[1].IsPrimary)
	assert.Equal(t, "Display 2", got[1].Name)
	for _, d := range got {
		assert.Equal(t, 1.0, d.ScaleFactor)
		assert.Zero(t, d.SizeInches)
		assert.Zero(t, d.PPI)
		assert.Zero(t, d.Resolution.Pixels())
	}
}

func TestPrimary(t *testing.T) {
	_, ok := Primary(nil)
	assert.False(t, ok)

	d, ok := Primary([]Descriptor{{ID: 1}, {ID: 2, IsPrimary: true}})
	assert.True(t, ok)
	assert.Equal(t, 2, d.ID)

	d, _ = Primary([]Descriptor{{ID: 5}, {ID: 6}})
	assert.Equal(t, 5, d.ID)
}
