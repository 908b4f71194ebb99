package parser

import (
	"encoding/xml"
	"fmt"

	"github.com/lmsforge/packlint/internal/detector"
	"github.com/lmsforge/packlint/internal/domain"
	"github.com/lmsforge/packlint/internal/pkgfs"
)

type xmlTincan struct {
	XMLName    xml.Name          `xml:"tincan"`
	Activities []xmlXapiActivity `xml:"activities>activity"`
}

type xmlXapiActivity struct {
	ID     string `xml:"id,attr"`
	Type   string `xml:"type,attr"`
	Name   string `xml:"name"`
	Launch string `xml:"launch"`
}

// ParseXapi reads and deserializes tincan.xml from pkg.
func ParseXapi(pkg pkgfs.Package) (*domain.XapiManifest, error) {
	data, err := pkgfs.ReadFile(pkg, detector.XapiManifestFile)
	if err != nil {
		return nil, &ParseError{Path: detector.XapiManifestFile, Err: err}
	}

	var raw xmlTincan
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: detector.XapiManifestFile, Err: fmt.Errorf("malformed tincan manifest: %w", err)}
	}

	m := &domain.XapiManifest{}
	for _, act := range raw.Activities {
		m.Activities = append(m.Activities, domain.XapiActivity{
			ID:     act.ID,
			Type:   act.Type,
			Name:   act.Name,
			Launch: act.Launch,
		})
	}
	return m, nil
}
