package preset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "presets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return map[string]Store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "presets")),
		"sqlite": db,
	}
}

func sample(name, app string) Preset {
	return Preset{
		Name:            name,
		Description:     "Focus preset: " + name,
		DisplayCategory: "dual_display",
		CreatedAt:       "2026-10-19T09:00:00Z",
		Windows:         []WindowEntry{{AppName: app, Workspace: "1", IsFocused: true}},
		Monitors:        []string{"Built-in Retina Display"},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for kind, s := range stores(t) {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Put(ctx, sample("coding", "Ghostty")))

			got, err := s.Get(ctx, "coding")
			require.NoError(t, err)
			assert.Equal(t, sample("coding", "Ghostty"), got)
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	for kind, s := range stores(t) {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Put(ctx, sample("x", "Ghostty")))
			require.NoError(t, s.Put(ctx, sample("x", "Safari")))

			got, err := s.Get(ctx, "x")
			require.NoError(t, err)
			require.Len(t, got.Windows, 1)
			assert.Equal(t, "Safari", got.Windows[0].AppName)

			names, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"x"}, names)
		})
	}
}

func TestStoreNotFoundAndList(t *testing.T) {
	for kind, s := range stores(t) {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()

			names, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, names)
			assert.NotNil(t, names)

			_, err = s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, sample("b", "Slack")))
			require.NoError(t, s.Put(ctx, sample("a", "Slack")))
			names, err = s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, names)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for kind, s := range stores(t) {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Put(ctx, sample("gone", "Slack")))
			require.NoError(t, s.Delete(ctx, "gone"))

			_, err := s.Get(ctx, "gone")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, s.Delete(ctx, "gone"), ErrNotFound)
		})
	}
}

func TestStoreNilSlicesPersistAsEmpty(t *testing.T) {
	for kind, s := range stores(t) {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Put(ctx, Preset{Name: "empty"}))
			got, err := s.Get(ctx, "empty")
			require.NoError(t, err)
			assert.NotNil(t, got.Windows)
			assert.NotNil(t, got.Monitors)
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "presets")
	s := NewFileStore(dir)
	require.NoError(t, s.Put(context.Background(), sample("work", "Code")))

	data, err := os.ReadFile(filepath.Join(dir, "work.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"app_name": "Code"`)
	assert.Contains(t, string(data), `"display_category": "dual_display"`)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))
	names, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, names)
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"coding", "dual-monitor_focus", "Meeting 2", "v1..2"} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"", "  ", "../etc", "a/b", `a\b`, "..", ".", " lead"} {
		assert.Error(t, ValidateName(name), name)
	}
	assert.Error(t, NewFileStore(t.TempDir()).Put(context.Background(), Preset{Name: "../x"}))
}

func TestFileStoreDottedName(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, sample("v1..2", "Ghostty")))

	_, err := os.Stat(filepath.Join(dir, "v1..2.json"))
	require.NoError(t, err)
	got, err := s.Get(ctx, "v1..2")
	require.NoError(t, err)
	assert.Equal(t, "v1..2", got.Name)
}
