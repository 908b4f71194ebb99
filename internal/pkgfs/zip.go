package pkgfs

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// ZipPackage serves a content package directly from a zip archive without
// extracting it.
type ZipPackage struct {
	root    string
	archive *zip.ReadCloser
	// entries indexes non-directory archive members by their
	// forward-slash normalized name.
	entries map[string]*zip.File
}

// OpenZipPackage opens the archive at root and indexes its file entries.
func OpenZipPackage(root string) (*ZipPackage, error) {
	archive, err := zip.OpenReader(root)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", root, err)
	}
	entries := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := strings.ReplaceAll(f.Name, `\`, "/")
		entries[name] = f
	}
	return &ZipPackage{root: root, archive: archive, entries: entries}, nil
}

func (p *ZipPackage) FileExists(relPath string) bool {
	_, ok := p.entries[relPath]
	return ok
}

func (p *ZipPackage) ListFiles(dir string) ([]string, error) {
	dir = normalizeDir(dir)
	var files []string
	for _, f := range p.archive.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := strings.ReplaceAll(f.Name, `\`, "/")
		if path.Dir(name) == "." && dir == "" {
			files = append(files, name)
		} else if path.Dir(name) == dir && dir != "" {
			files = append(files, name)
		}
	}
	return files, nil
}

func (p *ZipPackage) Open(relPath string) (io.ReadCloser, error) {
	entry, ok := p.entries[relPath]
	if !ok {
		return nil, fmt.Errorf("%s: %w", relPath, ErrNotFound)
	}
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", relPath, err)
	}
	return rc, nil
}

func (p *ZipPackage) RootPath() string { return p.root }

func (p *ZipPackage) Close() error { return p.archive.Close() }
