// Package files discovers tabular data files on disk for batch processing.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tabpulse/internal/validation"
)

// FileInfo describes a discovered data file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery lists data files under a base directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a discovery instance rooted at basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDataFiles returns every file in dir with a supported tabular
// extension, sorted by name for deterministic processing order.
func (d *Discovery) FindDataFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var infos []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !validation.IsSupportedExtension(name) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		infos = append(infos, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos, nil
}
