package actions_test

import (
	"context"
	"testing"

	"github.com/mj1618/win-ctrl/internal/actions"
	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLayout(t *testing.T) {
	svc, fake := newService(t)

	res, err := svc.SetLayout(context.Background(), "h_accordion")
	require.NoError(t, err)
	assert.Equal(t, actions.LayoutResult{Success: true, Layout: "h_accordion", AffectedWindows: []int{1, 2}}, res)
	assert.Equal(t, [][]string{{"layout", "h_accordion"}}, fake.CallsTo("layout"))
}

func TestSetLayoutRejectsUnknown(t *testing.T) {
	svc, fake := newService(t)

	_, err := svc.SetLayout(context.Background(), "spiral")
	require.True(t, apperr.Is(err, apperr.InvalidParameters))
	assert.Len(t, details(t, err)["valid_options"], 8)
	assert.Empty(t, fake.CallsTo("layout"))
}

func TestSplit(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	res, err := svc.Split(ctx, "vertical")
	require.NoError(t, err)
	assert.Equal(t, "vertical", res.SplitOrientation)

	_, err = svc.Split(ctx, "diagonal")
	assert.True(t, apperr.Is(err, apperr.InvalidParameters))
}

func TestFlatten(t *testing.T) {
	svc, fake := newService(t)
	ctx := context.Background()

	res, err := svc.Flatten(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, actions.FlattenResult{Success: true, Workspace: "1", FlattenedContainers: 1}, res)
	assert.Empty(t, fake.CallsTo("workspace"))

	res, err = svc.Flatten(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "3", res.Workspace)
	assert.Equal(t, [][]string{{"workspace", "3"}}, fake.CallsTo("workspace"))
	assert.Equal(t, "3", fake.Current)
}

func TestBalance(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, actions.BalanceResult{Success: true, Workspace: "1", BalancedWindows: 2}, res)
}
