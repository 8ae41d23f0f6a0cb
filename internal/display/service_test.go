package display_test

import (
	"context"
	"testing"

	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/aerospace/aerospacetest"
	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/display"
	"github.com/mj1618/win-ctrl/internal/platform/darwin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(fake *aerospacetest.Fake) *display.Service {
	return display.NewService(aerospace.New(fake), darwin.NewDisplayInventory(fake, ""), nil)
}

func TestInfoDualDisplay(t *testing.T) {
	svc := newService(aerospacetest.New())

	info, err := svc.Info(context.Background())
	require.NoError(t, err)
	require.Len(t, info.Displays, 2)
	assert.Equal(t, "horizontal", info.Arrangement)
	assert.Equal(t, display.DualDisplay, info.Category)
	assert.Equal(t, 1728*1117+2560*1440, info.TotalEffectivePixels)

	builtin := info.Displays[0]
	assert.Equal(t, "Built-in Retina Display", builtin.Name)
	assert.True(t, builtin.IsBuiltin)
	assert.True(t, builtin.IsPrimary)
	assert.Equal(t, 2.0, builtin.ScaleFactor)
}

func TestCategorySingleDisplay(t *testing.T) {
	fake := aerospacetest.New()
	fake.Monitors = fake.Monitors[:1]
	fake.Displays = fake.Displays[:1]
	svc := newService(fake)

	ci, err := svc.Category(context.Background())
	require.NoError(t, err)
	assert.Equal(t, display.SmallSingle, ci.Category)
	assert.Equal(t, "fullscreen_focus", ci.RecommendedStrategy)
	assert.Equal(t, "medium", ci.PrimarySize)
	assert.Empty(t, ci.SecondarySizes)
}

func TestCategoryRecomputedEachCall(t *testing.T) {
	fake := aerospacetest.New()
	svc := newService(fake)
	ctx := context.Background()

	ci, err := svc.Category(ctx)
	require.NoError(t, err)
	assert.Equal(t, display.DualDisplay, ci.Category)
	assert.Equal(t, []string{"large"}, ci.SecondarySizes)

	fake.Monitors = append(fake.Monitors, aerospacetest.Monitor{ID: 3, Name: "Sidecar", Visible: "4"})
	ci, err = svc.Category(ctx)
	require.NoError(t, err)
	assert.Equal(t, display.TriplePlus, ci.Category)
}

func TestInventoryFailureDegrades(t *testing.T) {
	fake := aerospacetest.New()
	fake.FailOn("system_profiler", 1, "")
	svc := newService(fake)

	displays, err := svc.Displays(context.Background())
	require.NoError(t, err)
	require.Len(t, displays, 2)
	assert.Zero(t, displays[1].PPI)
}

func TestByID(t *testing.T) {
	svc := newService(aerospacetest.New())
	ctx := context.Background()

	d, err := svc.ByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, d.Workspaces)
	require.NotNil(t, d.FocusedWorkspace)
	assert.Equal(t, "1", *d.FocusedWorkspace)
	assert.Equal(t, 3, d.WindowCount)
	assert.Equal(t, "medium", d.SizeCategory)

	// Workspace "3" is visible on display 2 but not focused.
	d, err = svc.ByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, d.Workspaces)
	assert.Nil(t, d.FocusedWorkspace)

	_, err = svc.ByID(ctx, 9)
	e := apperr.From(err)
	assert.Equal(t, apperr.DisplayNotFound, e.Code)
	assert.Equal(t, []int{1, 2}, e.Details["available_displays"])
}

func TestAeroSpaceFailurePropagates(t *testing.T) {
	fake := aerospacetest.New()
	fake.Missing = map[string]bool{"aerospace": true}

	_, err := newService(fake).Info(context.Background())
	assert.True(t, apperr.Is(err, apperr.ToolUnavailable))
}
