package pkgfs

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// DirPackage serves a content package from an extracted directory tree.
type DirPackage struct {
	root string
}

// NewDirPackage creates a DirPackage rooted at root.
func NewDirPackage(root string) *DirPackage {
	return &DirPackage{root: root}
}

func (p *DirPackage) resolve(rel string) string {
	return filepath.Join(p.root, filepath.FromSlash(rel))
}

func (p *DirPackage) FileExists(relPath string) bool {
	info, err := os.Stat(p.resolve(relPath))
	return err == nil && !info.IsDir()
}

func (p *DirPackage) ListFiles(dir string) ([]string, error) {
	dir = normalizeDir(dir)
	entries, err := os.ReadDir(p.resolve(dir))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if dir == "" {
			files = append(files, entry.Name())
		} else {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func (p *DirPackage) Open(relPath string) (io.ReadCloser, error) {
	f, err := os.Open(p.resolve(relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", relPath, ErrNotFound)
		}
		return nil, fmt.Errorf("opening %s: %w", relPath, err)
	}
	return f, nil
}

func (p *DirPackage) RootPath() string { return p.root }

func (p *DirPackage) Close() error { return nil }
