package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lmsforge/packlint/internal/aicc"
	"github.com/lmsforge/packlint/internal/detector"
	"github.com/lmsforge/packlint/internal/domain"
	"github.com/lmsforge/packlint/internal/parser"
	"github.com/lmsforge/packlint/internal/pkgfs"
	"github.com/lmsforge/packlint/internal/validation"
)

// ScanService runs the detect → parse → validate pipeline over one
// content package. Detection and parse failures return an error and no
// report; a package that validates with errors still yields a report with
// best-effort metadata.
type ScanService interface {
	Scan(ctx context.Context, packagePath string) (*domain.ScanReport, error)
	// ScanAs validates packagePath as the given module type, skipping
	// detection entirely. Parsing still fails normally when the package
	// does not carry the type's manifest files.
	ScanAs(ctx context.Context, packagePath string, moduleType domain.ModuleType) (*domain.ScanReport, error)
}

type scanService struct {
	detector *detector.Detector
	observer ScanObserver
}

// NewScanService creates a ScanService over the given detector. A nil
// observer disables telemetry.
func NewScanService(d *detector.Detector, observer ScanObserver) ScanService {
	if observer == nil {
		observer = NoopScanObserver{}
	}
	return &scanService{detector: d, observer: observer}
}

func (s *scanService) Scan(ctx context.Context, packagePath string) (*domain.ScanReport, error) {
	return s.run(ctx, packagePath, "")
}

func (s *scanService) ScanAs(ctx context.Context, packagePath string, moduleType domain.ModuleType) (*domain.ScanReport, error) {
	return s.run(ctx, packagePath, moduleType)
}

func (s *scanService) run(ctx context.Context, packagePath string, forced domain.ModuleType) (*domain.ScanReport, error) {
	started := time.Now()
	report, err := s.scan(packagePath, forced)

	event := ScanEvent{
		PackagePath: packagePath,
		Duration:    time.Since(started),
		Err:         err,
		StartedAt:   started,
	}
	if report != nil {
		event.ModuleType = report.ModuleType
		event.Status = report.Status
		event.IssueCount = len(report.Result.Issues)
	}
	s.observer.ObserveScan(ctx, event)

	return report, err
}

func (s *scanService) scan(packagePath string, forced domain.ModuleType) (*domain.ScanReport, error) {
	pkg, err := pkgfs.OpenPackage(packagePath)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	moduleType := forced
	if moduleType == "" {
		moduleType, err = s.detector.Detect(pkg)
		if err != nil {
			return nil, err
		}
	}

	var (
		metadata domain.Metadata
		result   domain.ValidationResult
	)
	switch moduleType {
	case domain.ModuleScorm12, domain.ModuleScorm2004:
		manifest, parseErr := parser.ParseScorm(pkg)
		if parseErr != nil {
			return nil, parseErr
		}
		result = validation.ScormEngine().Validate(manifest)
		metadata = scormMetadata(moduleType, manifest)
	case domain.ModuleAicc:
		manifest, parseErr := parser.ParseAicc(pkg)
		if parseErr != nil {
			return nil, parseErr
		}
		result = validation.AiccEngine().Validate(manifest)
		metadata = aiccMetadata(manifest)
	case domain.ModuleCmi5:
		manifest, parseErr := parser.ParseCmi5(pkg)
		if parseErr != nil {
			return nil, parseErr
		}
		result = validation.Cmi5Engine().Validate(manifest)
		metadata = cmi5Metadata(manifest)
	case domain.ModuleXapi:
		manifest, parseErr := parser.ParseXapi(pkg)
		if parseErr != nil {
			return nil, parseErr
		}
		result = validation.XapiEngine().Validate(manifest)
		metadata = xapiMetadata(manifest)
	default:
		return nil, fmt.Errorf("unsupported module type %q", moduleType)
	}

	return &domain.ScanReport{
		ID:          uuid.New().String(),
		PackagePath: packagePath,
		ModuleType:  moduleType,
		Edition:     metadata.Edition,
		Metadata:    metadata,
		Result:      result,
		Status:      domain.StatusFor(result),
		ScannedAt:   time.Now().UTC(),
	}, nil
}

func scormMetadata(moduleType domain.ModuleType, m *domain.ScormManifest) domain.Metadata {
	edition := domain.EditionScorm12
	if moduleType == domain.ModuleScorm2004 {
		edition = domain.ParseScorm2004Edition(m.SchemaVersion)
	}
	return domain.Metadata{
		Identifier: m.Identifier,
		Title:      m.Title,
		LaunchURL:  scormLaunchURL(m),
		ModuleType: moduleType,
		Edition:    edition,
	}
}

// scormLaunchURL resolves the package's entry point: the first launchable
// resource referenced from the default organization's items, falling back
// to the first resource with an href.
func scormLaunchURL(m *domain.ScormManifest) string {
	byID := make(map[string]*domain.Resource, len(m.Resources.Resources))
	for i := range m.Resources.Resources {
		res := &m.Resources.Resources[i]
		if _, ok := byID[res.Identifier]; !ok {
			byID[res.Identifier] = res
		}
	}

	for i := range m.Organizations.Organizations {
		org := &m.Organizations.Organizations[i]
		if url := launchFromItems(org.Items, byID); url != "" {
			return url
		}
	}
	for i := range m.Resources.Resources {
		res := &m.Resources.Resources[i]
		if res.Href != nil && *res.Href != "" {
			return *res.Href
		}
	}
	return ""
}

func launchFromItems(items []domain.Item, byID map[string]*domain.Resource) string {
	stack := make([]*domain.Item, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, &items[i])
	}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if item.IdentifierRef != nil && *item.IdentifierRef != "" {
			if res, ok := byID[*item.IdentifierRef]; ok && res.Href != nil && *res.Href != "" {
				return *res.Href
			}
		}
		for i := len(item.Items) - 1; i >= 0; i-- {
			stack = append(stack, &item.Items[i])
		}
	}
	return ""
}

func aiccMetadata(m *domain.AiccManifest) domain.Metadata {
	launch := ""
	if len(m.AssignableUnits) > 0 {
		launch = m.AssignableUnits[0].FileName
	}
	return domain.Metadata{
		Identifier:    m.Course.ID,
		Title:         m.Course.Title,
		Description:   m.Course.Description,
		LaunchURL:     launch,
		ModuleType:    domain.ModuleAicc,
		Edition:       domain.EditionAicc,
		Prerequisites: aicc.BuildGraph(m.Prerequisites),
	}
}

func cmi5Metadata(m *domain.Cmi5Manifest) domain.Metadata {
	launch := ""
	if len(m.AUs) > 0 {
		launch = m.AUs[0].URL
	}
	return domain.Metadata{
		Identifier:  m.CourseID,
		Title:       m.Title,
		Description: m.Description,
		LaunchURL:   launch,
		ModuleType:  domain.ModuleCmi5,
		Edition:     domain.EditionCmi5,
	}
}

func xapiMetadata(m *domain.XapiManifest) domain.Metadata {
	meta := domain.Metadata{
		ModuleType: domain.ModuleXapi,
		Edition:    domain.EditionXapi,
	}
	for i := range m.Activities {
		act := &m.Activities[i]
		if meta.Identifier == "" {
			meta.Identifier = act.ID
			meta.Title = act.Name
		}
		if meta.LaunchURL == "" && act.Launch != "" {
			meta.LaunchURL = act.Launch
		}
	}
	return meta
}
