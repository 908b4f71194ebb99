package validation

import (
	"github.com/lmsforge/packlint/internal/domain"
)

// IdentifierRegistry accumulates identifier occurrences across a document
// tree and reports duplicates. Identifiers compare exact (byte-for-byte,
// no trimming or case folding). A registry lives for one validation pass.
type IdentifierRegistry struct {
	order     []string
	locations map[string][]string
}

// NewIdentifierRegistry creates an empty registry.
func NewIdentifierRegistry() *IdentifierRegistry {
	return &IdentifierRegistry{locations: make(map[string][]string)}
}

// Record notes one occurrence of id at location. Empty identifiers are
// ignored: a missing identifier is a structural problem for other rules,
// not a uniqueness one.
func (r *IdentifierRegistry) Record(id, location string) {
	if id == "" {
		return
	}
	if _, seen := r.locations[id]; !seen {
		r.order = append(r.order, id)
	}
	r.locations[id] = append(r.locations[id], location)
}

// Duplicate reports one identifier recorded at more than one location.
type Duplicate struct {
	Identifier string
	Locations  []string
}

// Duplicates returns every identifier with more than one occurrence, in
// first-seen order.
func (r *IdentifierRegistry) Duplicates() []Duplicate {
	var dups []Duplicate
	for _, id := range r.order {
		if locs := r.locations[id]; len(locs) > 1 {
			dups = append(dups, Duplicate{Identifier: id, Locations: locs})
		}
	}
	return dups
}

// RecordManifest registers every identifier of a SCORM manifest: the
// manifest id, organization ids, item ids (full tree), and resource ids.
// All of them share one package-wide namespace.
func (r *IdentifierRegistry) RecordManifest(m *domain.ScormManifest) {
	r.Record(m.Identifier, "manifest")
	for i := range m.Organizations.Organizations {
		org := &m.Organizations.Organizations[i]
		r.Record(org.Identifier, orgLocation(org))
		walkItems(org, func(item *domain.Item, location string) {
			r.Record(item.Identifier, location)
		})
	}
	for i := range m.Resources.Resources {
		res := &m.Resources.Resources[i]
		r.Record(res.Identifier, resourceLocation(res))
	}
}
