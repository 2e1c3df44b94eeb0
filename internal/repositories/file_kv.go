package repositories

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/desertthunder/cinex/internal/shared"
)

const fileKVExt = ".json"

// FileKV keeps each key in its own file under dir.
type FileKV struct {
	fs  afero.Fs
	dir string
}

// NewFileKV creates dir on fsys when missing and returns a [FileKV] rooted there.
func NewFileKV(fsys afero.Fs, dir string) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: storage dir is empty", shared.ErrInvalidConfig)
	}
	if ok, _ := afero.DirExists(fsys, dir); !ok {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
	}
	return &FileKV{fs: fsys, dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+fileKVExt)
}

// Get reads the file for key; ok is false when it does not exist.
func (f *FileKV) Get(key string) (string, bool, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes value to a temp file and renames it over the key's file.
func (f *FileKV) Set(key, value string) error {
	target := f.path(key)
	tmp := target + ".tmp"

	if err := afero.WriteFile(f.fs, tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := f.fs.Rename(tmp, target); err == nil {
		return nil
	}

	// some filesystems refuse to rename over an existing file
	if err := f.fs.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	if err := f.fs.Rename(tmp, target); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// Delete removes the key's file. Deleting an absent key is not an error.
func (f *FileKV) Delete(key string) error {
	err := f.fs.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in lexical order.
func (f *FileKV) Keys() ([]string, error) {
	entries, err := afero.ReadDir(f.fs, f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", f.dir, err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileKVExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileKVExt))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
