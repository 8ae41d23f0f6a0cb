package aerospacetest_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mj1618/win-ctrl/internal/aerospace/aerospacetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocusByWindowID(t *testing.T) {
	f := aerospacetest.New()
	ctx := context.Background()

	res, err := f.Run(ctx, "aerospace", "focus", "--window-id", "4")
	require.NoError(t, err)
	assert.Zero(t, res.ExitCode)
	assert.Equal(t, 4, f.Focused)
	assert.Equal(t, "3", f.Current)
	assert.Equal(t, "3", f.Monitors[1].Visible)

	res, err = f.Run(ctx, "aerospace", "focus", "--window-id", "99")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "Invalid <window-id> 99")
	assert.Equal(t, 4, f.Focused)
}

func TestWindowCommandsByID(t *testing.T) {
	f := aerospacetest.New()
	ctx := context.Background()

	res, err := f.Run(ctx, "aerospace", "close", "--window-id", "99")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)

	res, err = f.Run(ctx, "aerospace", "close", "--window-id", "3")
	require.NoError(t, err)
	assert.Zero(t, res.ExitCode)
	_, found := f.Window(3)
	assert.False(t, found)
}

func TestScreencaptureFlags(t *testing.T) {
	f := aerospacetest.New()
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "shot.png")

	res, err := f.Run(ctx, "screencapture", "-x", "-l", "7", out)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)

	res, err = f.Run(ctx, "screencapture", "-x", "-D", "3", out)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)

	res, err = f.Run(ctx, "screencapture", "-x", "-l", "2", "-t", "png", out)
	require.NoError(t, err)
	assert.Zero(t, res.ExitCode)
	assert.FileExists(t, out)
}
