package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrom_Classified(t *testing.T) {
	orig := New(PresetNotFound, "Preset 'x' not found", Details{"available_presets": []string{}})
	wrapped := fmt.Errorf("load: %w", orig)

	got := From(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, PresetNotFound, got.Code)
	assert.True(t, Is(wrapped, PresetNotFound))
	assert.False(t, Is(wrapped, DisplayMismatch))
}

func TestFrom_Unclassified(t *testing.T) {
	got := From(errors.New("boom"))
	require.NotNil(t, got)
	assert.Equal(t, UnknownError, got.Code)
	assert.Equal(t, "boom", got.Message)
	assert.NotNil(t, got.Details)
}

func TestFrom_Nil(t *testing.T) {
	assert.Nil(t, From(nil))
}

func TestInvalid_SortsOptions(t *testing.T) {
	err := Invalid("direction", "north", []string{"up", "down", "left", "right"})
	assert.Equal(t, InvalidParameters, err.Code)
	assert.Equal(t, []string{"down", "left", "right", "up"}, err.Details["valid_options"])
	assert.Equal(t, "north", err.Details["provided"])
	assert.Contains(t, err.Message, "north")
}

func TestWindowMissing_NeverNilList(t *testing.T) {
	err := WindowMissing(42, nil)
	assert.Equal(t, WindowNotFound, err.Code)
	assert.Equal(t, []int{}, err.Details["available_windows"])
	assert.Equal(t, 42, err.Details["requested_window_id"])
}

func TestEnvelope(t *testing.T) {
	env := Envelope(NoFocus())
	assert.False(t, env.Success)
	assert.Equal(t, NoWindowFocused, env.Error.Code)
	assert.Equal(t, "Focus a window first", env.Error.Details["suggestion"])

	env = Envelope(errors.New("raw"))
	assert.Equal(t, UnknownError, env.Error.Code)
	assert.NotNil(t, env.Error.Details)
}

func TestWrap_Unwraps(t *testing.T) {
	cause := errors.New("exec: not found")
	err := Wrap(cause, ToolUnavailable, "missing", nil)
	assert.ErrorIs(t, err, cause)
}
