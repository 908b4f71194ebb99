package parser

import (
	"encoding/xml"
	"fmt"

	"github.com/lmsforge/packlint/internal/detector"
	"github.com/lmsforge/packlint/internal/domain"
	"github.com/lmsforge/packlint/internal/pkgfs"
)

type xmlCourseStructure struct {
	XMLName xml.Name       `xml:"courseStructure"`
	Course  *xmlCmi5Course `xml:"course"`
	AUs     []xmlCmi5AU    `xml:"au"`
	Blocks  []xmlCmi5Block `xml:"block"`
}

type xmlCmi5Course struct {
	ID          string      `xml:"id,attr"`
	Title       xmlLangText `xml:"title"`
	Description xmlLangText `xml:"description"`
}

type xmlCmi5Block struct {
	ID     string         `xml:"id,attr"`
	AUs    []xmlCmi5AU    `xml:"au"`
	Blocks []xmlCmi5Block `xml:"block"`
}

type xmlCmi5AU struct {
	ID           string      `xml:"id,attr"`
	MoveOn       string      `xml:"moveOn,attr"`
	LaunchMethod string      `xml:"launchMethod,attr"`
	Title        xmlLangText `xml:"title"`
	URL          string      `xml:"url"`
}

// xmlLangText flattens a <title>/<description> element holding one or more
// <langstring> children to its first string.
type xmlLangText struct {
	LangStrings []string `xml:"langstring"`
}

func (t xmlLangText) First() string {
	if len(t.LangStrings) == 0 {
		return ""
	}
	return t.LangStrings[0]
}

// ParseCmi5 reads and deserializes cmi5.xml from pkg. Assignable units are
// flattened out of nested blocks in document order.
func ParseCmi5(pkg pkgfs.Package) (*domain.Cmi5Manifest, error) {
	data, err := pkgfs.ReadFile(pkg, detector.Cmi5ManifestFile)
	if err != nil {
		return nil, &ParseError{Path: detector.Cmi5ManifestFile, Err: err}
	}

	var raw xmlCourseStructure
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: detector.Cmi5ManifestFile, Err: fmt.Errorf("malformed course structure: %w", err)}
	}

	m := &domain.Cmi5Manifest{}
	if raw.Course != nil {
		m.CourseID = raw.Course.ID
		m.Title = raw.Course.Title.First()
		m.Description = raw.Course.Description.First()
	}
	appendAUs(m, raw.AUs)
	for _, block := range raw.Blocks {
		flattenBlock(m, block)
	}
	return m, nil
}

func flattenBlock(m *domain.Cmi5Manifest, block xmlCmi5Block) {
	appendAUs(m, block.AUs)
	for _, nested := range block.Blocks {
		flattenBlock(m, nested)
	}
}

func appendAUs(m *domain.Cmi5Manifest, aus []xmlCmi5AU) {
	for _, au := range aus {
		m.AUs = append(m.AUs, domain.Cmi5AU{
			ID:           au.ID,
			Title:        au.Title.First(),
			URL:          au.URL,
			MoveOn:       au.MoveOn,
			LaunchMethod: au.LaunchMethod,
		})
	}
}
