package preset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileExt = ".json"

// FileStore keeps each preset in <dir>/<name>.json.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+fileExt), nil
}

// Put implements Store.
func (s *FileStore) Put(_ context.Context, p Preset) error {
	path, err := s.path(p.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}
	data, err := encode(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write preset %q: %w", p.Name, err)
	}
	return nil
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, name string) (Preset, error) {
	path, err := s.path(name)
	if err != nil {
		return Preset{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Preset{}, ErrNotFound
	}
	if err != nil {
		return Preset{}, fmt.Errorf("failed to read preset %q: %w", name, err)
	}
	return decode(name, data)
}

// List implements Store. A missing directory holds no presets.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}

// Delete implements Store.
func (s *FileStore) Delete(_ context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete preset %q: %w", name, err)
	}
	return nil
}
