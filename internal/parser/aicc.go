package parser

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/lmsforge/packlint/internal/aicc"
	"github.com/lmsforge/packlint/internal/domain"
	"github.com/lmsforge/packlint/internal/pkgfs"
)

// ParseAicc locates the AICC course description tables in the package root
// (.crs, .des, .au, and optional .pre sharing the .crs base name) and
// deserializes them. Prerequisite expressions are tokenized and converted
// to postfix as part of parsing; a malformed expression is a parse failure.
func ParseAicc(pkg pkgfs.Package) (*domain.AiccManifest, error) {
	files, err := pkg.ListFiles("")
	if err != nil {
		return nil, &ParseError{Path: pkg.RootPath(), Err: err}
	}

	crsPath := ""
	for _, f := range files {
		if strings.EqualFold(pathExtOf(f), ".crs") {
			crsPath = f
			break
		}
	}
	if crsPath == "" {
		return nil, &ParseError{Path: pkg.RootPath(), Err: fmt.Errorf("no .crs course file found: %w", pkgfs.ErrNotFound)}
	}
	base := strings.TrimSuffix(crsPath, pathExtOf(crsPath))

	m := &domain.AiccManifest{}
	if err := parseCrsFile(pkg, crsPath, m); err != nil {
		return nil, err
	}
	if err := parseDesFile(pkg, base+".des", m); err != nil {
		return nil, err
	}
	if err := parseAuFile(pkg, base+".au", m); err != nil {
		return nil, err
	}
	if err := parsePreFile(pkg, base+".pre", m); err != nil {
		return nil, err
	}
	return m, nil
}

// parseCrsFile reads the INI-style [Course] and [Course_Description]
// blocks of a .crs file.
func parseCrsFile(pkg pkgfs.Package, path string, m *domain.AiccManifest) error {
	data, err := pkgfs.ReadFile(pkg, path)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}

	section := ""
	var description []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.ToLower(trimmed[1 : len(trimmed)-1])
			continue
		}
		if section == "course_description" {
			description = append(description, trimmed)
			continue
		}
		key, value, found := strings.Cut(trimmed, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if section != "course" {
			continue
		}
		switch key {
		case "course_id":
			m.Course.ID = value
		case "course_title":
			m.Course.Title = value
		case "course_creator":
			m.Course.Creator = value
		case "course_system":
			m.Course.System = value
		case "level":
			m.Course.Level = value
		case "total_aus":
			m.Course.TotalAUs, _ = strconv.Atoi(value)
		case "total_blocks":
			m.Course.TotalBlocks, _ = strconv.Atoi(value)
		}
	}
	m.Course.Description = strings.Join(description, "\n")
	return nil
}

func parseDesFile(pkg pkgfs.Package, path string, m *domain.AiccManifest) error {
	rows, err := readCsvTable(pkg, path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		m.Descriptors = append(m.Descriptors, domain.AiccDescriptor{
			SystemID:    row["system_id"],
			Title:       row["title"],
			Description: row["description"],
			DeveloperID: row["developer_id"],
		})
	}
	return nil
}

func parseAuFile(pkg pkgfs.Package, path string, m *domain.AiccManifest) error {
	rows, err := readCsvTable(pkg, path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		m.AssignableUnits = append(m.AssignableUnits, domain.AssignableUnit{
			SystemID:     row["system_id"],
			Type:         row["type"],
			CommandLine:  row["command_line"],
			FileName:     row["file_name"],
			MaxScore:     row["max_score"],
			MasteryScore: row["mastery_score"],
		})
	}
	return nil
}

// parsePreFile reads the optional .pre prerequisites table. A missing file
// simply means no unit declares prerequisites.
func parsePreFile(pkg pkgfs.Package, path string, m *domain.AiccManifest) error {
	if !pkg.FileExists(path) {
		return nil
	}
	rows, err := readCsvTable(pkg, path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		unitID := row["structure_element"]
		expr := row["prerequisite"]
		tokens, postfix, parseErr := aicc.ParseExpression(expr)
		if parseErr != nil {
			return &ParseError{Path: path, Err: fmt.Errorf("prerequisite of %s: %w", unitID, parseErr)}
		}
		raw := expr
		m.Prerequisites = append(m.Prerequisites, domain.AiccPrerequisite{
			AssignableUnitID: unitID,
			RawExpression:    &raw,
			Mandatory:        true,
			Tokens:           tokens,
			PostfixTokens:    postfix,
		})
	}
	return nil
}

// readCsvTable reads a header-keyed AICC CSV table into one map per row.
// Header names are lowercased and trimmed; quoted fields follow the loose
// quoting AICC files exhibit in the wild.
func readCsvTable(pkg pkgfs.Package, path string) ([]map[string]string, error) {
	rc, err := pkg.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("malformed table: %w", err)}
	}
	if len(records) == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("empty table, header row required")}
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []map[string]string
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, field := range record {
			if i >= len(header) {
				break
			}
			row[header[i]] = strings.TrimSpace(field)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func pathExtOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}
