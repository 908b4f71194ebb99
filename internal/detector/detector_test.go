package detector

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmsforge/packlint/internal/domain"
	"github.com/lmsforge/packlint/internal/pkgfs"
)

// fakePackage serves an in-memory file map through the pkgfs.Package
// interface, with injectable errors for probe failure tests.
type fakePackage struct {
	files   map[string]string
	openErr error
	listErr error
}

func (p *fakePackage) FileExists(path string) bool {
	_, ok := p.files[path]
	return ok
}

func (p *fakePackage) ListFiles(dir string) ([]string, error) {
	if p.listErr != nil {
		return nil, p.listErr
	}
	var names []string
	for name := range p.files {
		names = append(names, name)
	}
	return names, nil
}

func (p *fakePackage) Open(path string) (io.ReadCloser, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	content, ok := p.files[path]
	if !ok {
		return nil, pkgfs.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader([]byte(content))), nil
}

func (p *fakePackage) RootPath() string { return "/fake/pkg" }
func (p *fakePackage) Close() error     { return nil }

const scorm12Manifest = `<?xml version="1.0"?>
<manifest identifier="m1" xmlns="http://www.imsproject.org/xsd/imscp_rootv1p1p2">
  <metadata><schemaversion>1.2</schemaversion></metadata>
</manifest>`

const scorm2004Manifest = `<?xml version="1.0"?>
<manifest identifier="m1">
  <metadata><schemaversion>2004 3rd Edition</schemaversion></metadata>
</manifest>`

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  domain.ModuleType
	}{
		{"scorm 1.2", map[string]string{ScormManifestFile: scorm12Manifest}, domain.ModuleScorm12},
		{"scorm 2004", map[string]string{ScormManifestFile: scorm2004Manifest}, domain.ModuleScorm2004},
		{"cmi5", map[string]string{Cmi5ManifestFile: "<courseStructure/>"}, domain.ModuleCmi5},
		{"aicc", map[string]string{"course.crs": "[Course]"}, domain.ModuleAicc},
		{"aicc extension case insensitive", map[string]string{"COURSE.CRS": "[Course]"}, domain.ModuleAicc},
		{"xapi", map[string]string{XapiManifestFile: "<tincan/>"}, domain.ModuleXapi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Default().Detect(&fakePackage{files: tt.files})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_PriorityOrder(t *testing.T) {
	// A package carrying several manifests resolves to the highest-priority
	// match: SCORM over cmi5 over AICC over xAPI.
	files := map[string]string{
		ScormManifestFile: scorm12Manifest,
		Cmi5ManifestFile:  "<courseStructure/>",
		"course.crs":      "[Course]",
		XapiManifestFile:  "<tincan/>",
	}

	got, err := Default().Detect(&fakePackage{files: files})
	require.NoError(t, err)
	assert.Equal(t, domain.ModuleScorm12, got)

	delete(files, ScormManifestFile)
	got, err = Default().Detect(&fakePackage{files: files})
	require.NoError(t, err)
	assert.Equal(t, domain.ModuleCmi5, got)

	delete(files, Cmi5ManifestFile)
	got, err = Default().Detect(&fakePackage{files: files})
	require.NoError(t, err)
	assert.Equal(t, domain.ModuleAicc, got)

	delete(files, "course.crs")
	got, err = Default().Detect(&fakePackage{files: files})
	require.NoError(t, err)
	assert.Equal(t, domain.ModuleXapi, got)
}

func TestDetect_NoMatch(t *testing.T) {
	_, err := Default().Detect(&fakePackage{files: map[string]string{"readme.txt": "hi"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Contains(t, err.Error(), "/fake/pkg")
}

func TestDetect_ProbeErrorPropagates(t *testing.T) {
	// An unreadable manifest is an error, never a silent fall-through to a
	// lower-priority plugin.
	boom := errors.New("disk gone")
	pkg := &fakePackage{
		files: map[string]string{
			ScormManifestFile: scorm12Manifest,
			Cmi5ManifestFile:  "<courseStructure/>",
		},
		openErr: boom,
	}

	_, err := Default().Detect(pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestDetect_ListErrorPropagates(t *testing.T) {
	boom := errors.New("permission denied")
	pkg := &fakePackage{
		files:   map[string]string{"readme.txt": "hi"},
		listErr: boom,
	}

	_, err := Default().Detect(pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

type stubPlugin struct {
	name     string
	priority int
	calls    *[]string
	match    bool
}

func (s stubPlugin) Name() string  { return s.name }
func (s stubPlugin) Priority() int { return s.priority }

func (s stubPlugin) Detect(pkg pkgfs.Package) (domain.ModuleType, bool, error) {
	*s.calls = append(*s.calls, s.name)
	if s.match {
		return domain.ModuleXapi, true, nil
	}
	return "", false, nil
}

func TestDetect_ShortCircuitsOnFirstMatch(t *testing.T) {
	var calls []string
	d := New(
		stubPlugin{name: "low", priority: 10, calls: &calls},
		stubPlugin{name: "high", priority: 100, calls: &calls, match: true},
		stubPlugin{name: "mid", priority: 50, calls: &calls},
	)

	_, err := d.Detect(&fakePackage{})
	require.NoError(t, err)
	assert.Equal(t, []string{"high"}, calls)
}

func TestDetect_EqualPriorityKeepsRegistrationOrder(t *testing.T) {
	var calls []string
	d := New(
		stubPlugin{name: "first", priority: 50, calls: &calls},
		stubPlugin{name: "second", priority: 50, calls: &calls},
	)

	_, err := d.Detect(&fakePackage{})
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, []string{"first", "second"}, calls)
}
