package detector

import (
	"strings"

	"github.com/lmsforge/packlint/internal/domain"
	"github.com/lmsforge/packlint/internal/pkgfs"
)

// Well-known manifest file names, package-root relative.
const (
	ScormManifestFile = "imsmanifest.xml"
	Cmi5ManifestFile  = "cmi5.xml"
	XapiManifestFile  = "tincan.xml"
)

// ScormPlugin detects SCORM 1.2 and SCORM 2004 packages by the presence of
// imsmanifest.xml, sniffing the manifest text to tell the two apart.
type ScormPlugin struct{}

func (ScormPlugin) Name() string  { return "scorm" }
func (ScormPlugin) Priority() int { return 100 }

func (ScormPlugin) Detect(pkg pkgfs.Package) (domain.ModuleType, bool, error) {
	if !pkg.FileExists(ScormManifestFile) {
		return "", false, nil
	}
	data, err := pkgfs.ReadFile(pkg, ScormManifestFile)
	if err != nil {
		return "", false, err
	}
	text := string(data)
	if strings.Contains(text, "2004") || strings.Contains(text, "CAM 1.3") {
		return domain.ModuleScorm2004, true, nil
	}
	return domain.ModuleScorm12, true, nil
}

// Cmi5Plugin detects cmi5 packages by the presence of cmi5.xml.
type Cmi5Plugin struct{}

func (Cmi5Plugin) Name() string  { return "cmi5" }
func (Cmi5Plugin) Priority() int { return 90 }

func (Cmi5Plugin) Detect(pkg pkgfs.Package) (domain.ModuleType, bool, error) {
	if pkg.FileExists(Cmi5ManifestFile) {
		return domain.ModuleCmi5, true, nil
	}
	return "", false, nil
}

// AiccPlugin detects AICC packages by the presence of a .crs course
// description file anywhere in the package root.
type AiccPlugin struct{}

func (AiccPlugin) Name() string  { return "aicc" }
func (AiccPlugin) Priority() int { return 80 }

func (AiccPlugin) Detect(pkg pkgfs.Package) (domain.ModuleType, bool, error) {
	files, err := pkg.ListFiles("")
	if err != nil {
		return "", false, err
	}
	for _, f := range files {
		if strings.EqualFold(pathExt(f), ".crs") {
			return domain.ModuleAicc, true, nil
		}
	}
	return "", false, nil
}

// XapiPlugin detects xAPI/TinCan packages by the presence of tincan.xml.
type XapiPlugin struct{}

func (XapiPlugin) Name() string  { return "xapi" }
func (XapiPlugin) Priority() int { return 70 }

func (XapiPlugin) Detect(pkg pkgfs.Package) (domain.ModuleType, bool, error) {
	if pkg.FileExists(XapiManifestFile) {
		return domain.ModuleXapi, true, nil
	}
	return "", false, nil
}

func pathExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}
