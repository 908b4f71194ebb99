package pkgfs

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDirFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func writeZipFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, content := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

var fixtureFiles = map[string]string{
	"imsmanifest.xml":    "<manifest/>",
	"lesson1/index.html": "<html/>",
	"lesson1/style.css":  "body{}",
}

func readAll(t *testing.T, pkg Package, path string) string {
	t.Helper()
	rc, err := pkg.Open(path)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestOpenPackage(t *testing.T) {
	dirRoot := writeDirFixture(t, fixtureFiles)
	zipRoot := writeZipFixture(t, fixtureFiles)

	tests := []struct {
		name string
		root string
	}{
		{"directory", dirRoot},
		{"zip archive", zipRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := OpenPackage(tt.root)
			require.NoError(t, err)
			defer pkg.Close()

			assert.Equal(t, tt.root, pkg.RootPath())

			assert.True(t, pkg.FileExists("imsmanifest.xml"))
			assert.True(t, pkg.FileExists("lesson1/index.html"))
			assert.False(t, pkg.FileExists("missing.xml"))
			assert.False(t, pkg.FileExists("lesson1"), "directories are not files")

			assert.Equal(t, "<manifest/>", readAll(t, pkg, "imsmanifest.xml"))
			assert.Equal(t, "<html/>", readAll(t, pkg, "lesson1/index.html"))

			root, err := pkg.ListFiles("")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"imsmanifest.xml"}, root)

			nested, err := pkg.ListFiles("lesson1")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"lesson1/index.html", "lesson1/style.css"}, nested)

			_, err = pkg.Open("missing.xml")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestOpenPackage_MissingPath(t *testing.T) {
	_, err := OpenPackage(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestOpenZipPackage_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := OpenPackage(path)
	assert.Error(t, err)
}

func TestZipPackage_BackslashEntriesNormalized(t *testing.T) {
	// Archives produced by some Windows tools carry backslash separators.
	path := writeZipFixture(t, map[string]string{
		`lesson1\index.html`: "<html/>",
		"course.crs":         "[Course]",
	})

	pkg, err := OpenPackage(path)
	require.NoError(t, err)
	defer pkg.Close()

	assert.True(t, pkg.FileExists("lesson1/index.html"))
	assert.Equal(t, "<html/>", readAll(t, pkg, "lesson1/index.html"))

	root, err := pkg.ListFiles("")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"course.crs"}, root)
}

func TestListFiles_DirSpellings(t *testing.T) {
	root := writeDirFixture(t, fixtureFiles)
	pkg := NewDirPackage(root)

	for _, dir := range []string{"", ".", "/"} {
		files, err := pkg.ListFiles(dir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"imsmanifest.xml"}, files, "dir spelling %q", dir)
	}
}

func TestReadFile(t *testing.T) {
	pkg := NewDirPackage(writeDirFixture(t, fixtureFiles))

	data, err := ReadFile(pkg, "imsmanifest.xml")
	require.NoError(t, err)
	assert.Equal(t, "<manifest/>", string(data))

	_, err = ReadFile(pkg, "missing.xml")
	assert.ErrorIs(t, err, ErrNotFound)
}
