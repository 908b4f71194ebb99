package parser

import (
	"encoding/xml"
	"fmt"

	"github.com/lmsforge/packlint/internal/detector"
	"github.com/lmsforge/packlint/internal/domain"
	"github.com/lmsforge/packlint/internal/pkgfs"
)

// xmlManifest mirrors the imsmanifest.xml structure. Optional attributes
// are pointers so that absent and present-but-empty stay distinguishable.
type xmlManifest struct {
	XMLName       xml.Name          `xml:"manifest"`
	Identifier    string            `xml:"identifier,attr"`
	Version       string            `xml:"version,attr"`
	Metadata      *xmlMetadata      `xml:"metadata"`
	Organizations *xmlOrganizations `xml:"organizations"`
	Resources     *xmlResources     `xml:"resources"`
}

type xmlMetadata struct {
	Schema        string `xml:"schema"`
	SchemaVersion string `xml:"schemaversion"`
}

type xmlOrganizations struct {
	Default       *string           `xml:"default,attr"`
	Organizations []xmlOrganization `xml:"organization"`
}

type xmlOrganization struct {
	Identifier string    `xml:"identifier,attr"`
	Title      string    `xml:"title"`
	Items      []xmlItem `xml:"item"`
}

type xmlItem struct {
	Identifier    string    `xml:"identifier,attr"`
	IdentifierRef *string   `xml:"identifierref,attr"`
	Title         string    `xml:"title"`
	Items         []xmlItem `xml:"item"`
}

type xmlResources struct {
	Resources []xmlResource `xml:"resource"`
}

type xmlResource struct {
	Identifier   string          `xml:"identifier,attr"`
	Type         string          `xml:"type,attr"`
	Href         *string         `xml:"href,attr"`
	ScormType    string          `xml:"scormtype,attr"`
	Files        []xmlFile       `xml:"file"`
	Dependencies []xmlDependency `xml:"dependency"`
}

type xmlFile struct {
	Href string `xml:"href,attr"`
}

type xmlDependency struct {
	IdentifierRef string `xml:"identifierref,attr"`
}

// ParseScorm reads and deserializes imsmanifest.xml from pkg.
func ParseScorm(pkg pkgfs.Package) (*domain.ScormManifest, error) {
	data, err := pkgfs.ReadFile(pkg, detector.ScormManifestFile)
	if err != nil {
		return nil, &ParseError{Path: detector.ScormManifestFile, Err: err}
	}

	var raw xmlManifest
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: detector.ScormManifestFile, Err: fmt.Errorf("malformed manifest: %w", err)}
	}

	m := &domain.ScormManifest{
		Identifier: raw.Identifier,
		Version:    raw.Version,
	}
	if raw.Metadata != nil {
		m.SchemaVersion = raw.Metadata.SchemaVersion
	}
	if raw.Organizations != nil {
		m.Organizations.Present = true
		m.Organizations.Default = raw.Organizations.Default
		for _, org := range raw.Organizations.Organizations {
			m.Organizations.Organizations = append(m.Organizations.Organizations, convertOrganization(org))
		}
		if len(m.Organizations.Organizations) > 0 {
			m.Title = m.Organizations.Organizations[0].Title
		}
	}
	if raw.Resources != nil {
		m.Resources.Present = true
		for _, res := range raw.Resources.Resources {
			m.Resources.Resources = append(m.Resources.Resources, convertResource(res))
		}
	}
	return m, nil
}

func convertOrganization(raw xmlOrganization) domain.Organization {
	org := domain.Organization{
		Identifier: raw.Identifier,
		Title:      raw.Title,
	}
	for _, item := range raw.Items {
		org.Items = append(org.Items, convertItem(item))
	}
	return org
}

func convertItem(raw xmlItem) domain.Item {
	item := domain.Item{
		Identifier:    raw.Identifier,
		IdentifierRef: raw.IdentifierRef,
		Title:         raw.Title,
	}
	for _, child := range raw.Items {
		item.Items = append(item.Items, convertItem(child))
	}
	return item
}

func convertResource(raw xmlResource) domain.Resource {
	res := domain.Resource{
		Identifier: raw.Identifier,
		Type:       raw.Type,
		Href:       raw.Href,
		ScormType:  raw.ScormType,
	}
	for _, f := range raw.Files {
		res.Files = append(res.Files, f.Href)
	}
	for _, dep := range raw.Dependencies {
		res.Dependencies = append(res.Dependencies, dep.IdentifierRef)
	}
	return res
}
