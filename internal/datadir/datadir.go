// Package datadir provides a rooted path provider over the application
// data directory.
package datadir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir resolves relative paths against the data directory root and rejects
// any path that escapes it.
type Dir struct {
	root string // absolute path to the data directory
}

// New creates a Dir rooted at the given directory, creating it if needed.
func New(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("datadir: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("datadir: create root: %w", err)
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute data directory path.
func (d *Dir) Root() string {
	return d.root
}

// Resolve joins a relative path against the root and rejects results that
// escape it (directory traversal).
func (d *Dir) Resolve(rel string) (string, error) {
	if rel == "" {
		return d.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("datadir: absolute paths not allowed: %s", rel)
	}
	abs, err := filepath.Abs(filepath.Join(d.root, cleaned))
	if err != nil {
		return "", fmt.Errorf("datadir: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, d.root+string(os.PathSeparator)) && abs != d.root {
		return "", fmt.Errorf("datadir: path escapes data dir: %s", rel)
	}
	return abs, nil
}

// WriteFile atomically writes content to a path under the root:
// tmp file → fsync → rename. Parent directories are created as needed.
func (d *Dir) WriteFile(rel string, content []byte) error {
	abs, err := d.Resolve(rel)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("datadir: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".naudiz-tmp-*")
	if err != nil {
		return fmt.Errorf("datadir: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("datadir: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("datadir: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("datadir: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("datadir: rename: %w", err)
	}
	success = true
	return nil
}

// ReadFile reads a file under the root.
func (d *Dir) ReadFile(rel string) ([]byte, error) {
	abs, err := d.Resolve(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("datadir: read %s: %w", rel, err)
	}
	return data, nil
}
