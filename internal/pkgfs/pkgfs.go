// Package pkgfs provides read-only access to the files of a content
// package, whether it is an extracted directory tree or a zip archive.
// All paths exchanged with a Package are package-relative and
// forward-slash separated.
package pkgfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNotFound indicates a requested file does not exist in the package.
var ErrNotFound = errors.New("file not found in package")

// Package is the capability the detection and parsing pipeline reads
// packages through. Implementations are read-only.
type Package interface {
	// FileExists reports whether path names an existing file.
	FileExists(path string) bool
	// ListFiles returns the package-relative paths of the files directly
	// under dir ("" or "." for the package root). It fails with an I/O
	// error for unreadable directories.
	ListFiles(dir string) ([]string, error)
	// Open streams the contents of path, failing with ErrNotFound when
	// the file is absent.
	Open(path string) (io.ReadCloser, error)
	// RootPath returns the filesystem location the package was opened from.
	RootPath() string
	// Close releases any underlying handle.
	Close() error
}

// OpenPackage opens path as a content package: a directory is served
// directly, a file is assumed to be a zip archive.
func OpenPackage(path string) (Package, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening package %s: %w", path, err)
	}
	if info.IsDir() {
		return NewDirPackage(path), nil
	}
	return OpenZipPackage(path)
}

// ReadFile reads the full contents of path from pkg.
func ReadFile(pkg Package, path string) ([]byte, error) {
	rc, err := pkg.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// normalizeDir maps "", "." and "/" to the package root and strips any
// trailing slash from other directory paths.
func normalizeDir(dir string) string {
	dir = strings.TrimPrefix(dir, "./")
	if dir == "" || dir == "." || dir == "/" {
		return ""
	}
	return strings.TrimSuffix(dir, "/")
}
