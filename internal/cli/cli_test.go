package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmsforge/packlint/internal/db"
	"github.com/lmsforge/packlint/internal/detector"
	"github.com/lmsforge/packlint/internal/repository"
	"github.com/lmsforge/packlint/internal/service"
)

const validManifestFixture = `<?xml version="1.0"?>
<manifest identifier="com.example.course">
  <metadata><schemaversion>1.2</schemaversion></metadata>
  <organizations default="org1">
    <organization identifier="org1">
      <title>Sample Course</title>
      <item identifier="item1" identifierref="res1"><title>Lesson 1</title></item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="res1" type="webcontent" href="lesson1/index.html"/>
  </resources>
</manifest>`

const brokenManifestFixture = `<?xml version="1.0"?>
<manifest identifier="">
  <organizations default="ghost">
    <organization identifier="org1"><title>Broken</title></organization>
  </organizations>
  <resources>
    <resource identifier="res1" type="webcontent" href="index.html"/>
  </resources>
</manifest>`

func writeFixture(t *testing.T, manifest string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "imsmanifest.xml"), []byte(manifest), 0o644))
	return root
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return &App{
		Scans:         service.NewScanService(detector.Default(), nil),
		History:       repository.NewSQLiteScanRepo(database),
		IsInteractive: func() bool { return false },
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestScanCmd_JSONOutput(t *testing.T) {
	app := newTestApp(t)
	root := writeFixture(t, validManifestFixture)

	out, err := execute(t, app, "scan", "--json", root)
	require.NoError(t, err)

	var report struct {
		ModuleType string `json:"module_type"`
		Status     string `json:"status"`
		IsValid    bool   `json:"is_valid"`
		Metadata   struct {
			Identifier string `json:"identifier"`
			LaunchURL  string `json:"launch_url"`
		} `json:"metadata"`
		Issues []struct {
			Code string `json:"code"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "scorm_1.2", report.ModuleType)
	assert.Equal(t, "valid", report.Status)
	assert.True(t, report.IsValid)
	assert.Equal(t, "com.example.course", report.Metadata.Identifier)
	assert.Equal(t, "lesson1/index.html", report.Metadata.LaunchURL)
	assert.Empty(t, report.Issues)
}

func TestScanCmd_InvalidPackageExitsNonZero(t *testing.T) {
	app := newTestApp(t)
	root := writeFixture(t, brokenManifestFixture)

	out, err := execute(t, app, "scan", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package is invalid")
	assert.Contains(t, out, "SCORM12_MISSING_MANIFEST_ID")
}

func TestScanCmd_JSONInvalidPackageExitsNonZero(t *testing.T) {
	app := newTestApp(t)
	root := writeFixture(t, brokenManifestFixture)

	var out, errOut bytes.Buffer
	cmd := NewRootCmd(app)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"scan", "--json", root})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package is invalid")

	// The error goes to stderr; stdout still carries the full report.
	var report struct {
		Status  string `json:"status"`
		IsValid bool   `json:"is_valid"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "with_errors", report.Status)
	assert.False(t, report.IsValid)
}

func TestScanCmd_TypeOverride(t *testing.T) {
	app := newTestApp(t)
	root := writeFixture(t, validManifestFixture)
	tincan := `<?xml version="1.0"?>
<tincan>
  <activities>
    <activity id="http://example.com/a1" type="http://adlnet.gov/expapi/activities/course">
      <name>Course</name>
      <launch>index.html</launch>
    </activity>
  </activities>
</tincan>`
	require.NoError(t, os.WriteFile(filepath.Join(root, "tincan.xml"), []byte(tincan), 0o644))

	var report struct {
		ModuleType string `json:"module_type"`
		Metadata   struct {
			Identifier string `json:"identifier"`
		} `json:"metadata"`
	}

	// Detection prefers the SCORM manifest.
	out, err := execute(t, app, "scan", "--json", root)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "scorm_1.2", report.ModuleType)

	out, err = execute(t, app, "scan", "--json", "--type", "xapi", root)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "xapi", report.ModuleType)
	assert.Equal(t, "http://example.com/a1", report.Metadata.Identifier)
}

func TestScanCmd_TypeOverrideUnknown(t *testing.T) {
	app := newTestApp(t)
	root := writeFixture(t, validManifestFixture)

	_, err := execute(t, app, "scan", "--type", "pdf", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown module type")
}

func TestScanCmd_RequiresPackagePath(t *testing.T) {
	app := newTestApp(t)

	_, err := execute(t, app, "scan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package path is required")
}

func TestScanCmd_SavePersistsReport(t *testing.T) {
	app := newTestApp(t)
	root := writeFixture(t, validManifestFixture)

	_, err := execute(t, app, "scan", "--save", root)
	require.NoError(t, err)

	reports, err := app.History.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, root, reports[0].PackagePath)
}

func TestHistoryCmds(t *testing.T) {
	app := newTestApp(t)
	root := writeFixture(t, validManifestFixture)

	_, err := execute(t, app, "scan", "--save", root)
	require.NoError(t, err)

	reports, err := app.History.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	id := reports[0].ID

	out, err := execute(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, root)
	assert.Contains(t, out, "scorm_1.2")

	// Show accepts an unambiguous id prefix.
	out, err = execute(t, app, "history", "show", id[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "com.example.course")

	_, err = execute(t, app, "history", "rm", id)
	require.NoError(t, err)

	_, err = execute(t, app, "history", "show", id)
	require.Error(t, err)
}

func TestResolveReportID_Ambiguous(t *testing.T) {
	app := newTestApp(t)
	root := writeFixture(t, validManifestFixture)

	_, err := execute(t, app, "scan", "--save", root)
	require.NoError(t, err)
	_, err = execute(t, app, "scan", "--save", root)
	require.NoError(t, err)

	reports, err := app.History.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	if reports[0].ID[0] == reports[1].ID[0] {
		_, err = resolveReportID(context.Background(), app, reports[0].ID[:1])
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")
	}

	_, err = resolveReportID(context.Background(), app, "zzzz-not-a-real-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestInspectCmd(t *testing.T) {
	app := newTestApp(t)
	root := writeFixture(t, validManifestFixture)

	out, err := execute(t, app, "inspect", root)
	require.NoError(t, err)
	assert.Contains(t, out, "com.example.course")
	assert.Contains(t, out, "Sample Course")
	assert.Contains(t, out, "lesson1/index.html")
}

func TestReportCmd_RefusesWithoutTerminal(t *testing.T) {
	app := newTestApp(t)
	root := writeFixture(t, validManifestFixture)

	_, err := execute(t, app, "report", root)
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "terminal")
}
