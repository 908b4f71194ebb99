package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/lmsforge/packlint/internal/domain"
)

// scanFormValues carries the parameters collected by the interactive scan
// form. An empty moduleType means auto-detect.
type scanFormValues struct {
	packagePath string
	moduleType  string
	save        bool
}

// runScanForm prompts for the package path, an optional module type
// override, and whether to persist the report, seeded with any values
// already supplied on the command line.
func runScanForm(packagePath, moduleType string, save bool) (*scanFormValues, error) {
	values := &scanFormValues{packagePath: packagePath, moduleType: moduleType, save: save}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Package path").
				Placeholder("./course.zip").
				Value(&values.packagePath).
				Validate(validatePackagePath),
			huh.NewSelect[string]().
				Title("Module type").
				Options(
					huh.NewOption("Auto-detect", ""),
					huh.NewOption("SCORM 1.2", string(domain.ModuleScorm12)),
					huh.NewOption("SCORM 2004", string(domain.ModuleScorm2004)),
					huh.NewOption("AICC", string(domain.ModuleAicc)),
					huh.NewOption("cmi5", string(domain.ModuleCmi5)),
					huh.NewOption("xAPI", string(domain.ModuleXapi)),
				).
				Value(&values.moduleType),
			huh.NewConfirm().
				Title("Save report to scan history?").
				Value(&values.save),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return values, nil
}

func validatePackagePath(path string) error {
	if path == "" {
		return fmt.Errorf("package path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot access %s", path)
	}
	return nil
}
