package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Archive keeps rendered report files on disk under a base directory so
// download links can be replayed after the initial export response.
type Archive struct {
	baseDir string
}

// NewArchive ensures the base directory exists and returns a handle.
func NewArchive(baseDir string) (*Archive, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &Archive{baseDir: baseDir}, nil
}

// Save writes the report bytes under the base directory and returns the
// relative name.
func (a *Archive) Save(name string, data []byte) (string, error) {
	path := a.resolve(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare archive directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archived report: %w", err)
	}
	return name, nil
}

// Open returns a read handle for an archived report.
func (a *Archive) Open(name string) (io.ReadCloser, error) {
	file, err := os.Open(a.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("open archived report: %w", err)
	}
	return file, nil
}

// Remove deletes an archived report if present.
func (a *Archive) Remove(name string) error {
	if err := os.Remove(a.resolve(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove archived report: %w", err)
	}
	return nil
}

// Prune removes reports older than the retention window and returns the
// names of the removed files.
func (a *Archive) Prune(retention time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-retention)
	removed := make([]string, 0)
	err := filepath.WalkDir(a.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(a.baseDir, path)
		if err != nil {
			rel = path
		}
		removed = append(removed, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("prune archive: %w", err)
	}
	return removed, nil
}

func (a *Archive) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.baseDir, name)
}
