package validation

import "github.com/lmsforge/packlint/internal/domain"

// ReferenceResolver indexes a SCORM manifest's organizations and resources
// by identifier so that reference checks are containment lookups. Built
// fresh per validation pass.
type ReferenceResolver struct {
	organizations map[string]*domain.Organization
	resources     map[string]*domain.Resource
}

// NewReferenceResolver builds the id indexes for m. On duplicate
// identifiers the first occurrence wins; duplicates are the uniqueness
// rules' concern.
func NewReferenceResolver(m *domain.ScormManifest) *ReferenceResolver {
	r := &ReferenceResolver{
		organizations: make(map[string]*domain.Organization, len(m.Organizations.Organizations)),
		resources:     make(map[string]*domain.Resource, len(m.Resources.Resources)),
	}
	for i := range m.Organizations.Organizations {
		org := &m.Organizations.Organizations[i]
		if _, exists := r.organizations[org.Identifier]; !exists {
			r.organizations[org.Identifier] = org
		}
	}
	for i := range m.Resources.Resources {
		res := &m.Resources.Resources[i]
		if _, exists := r.resources[res.Identifier]; !exists {
			r.resources[res.Identifier] = res
		}
	}
	return r
}

// ResolvesOrganization reports whether id names a declared organization.
func (r *ReferenceResolver) ResolvesOrganization(id string) bool {
	_, ok := r.organizations[id]
	return ok
}

// ResolvesResource reports whether id names a declared resource.
func (r *ReferenceResolver) ResolvesResource(id string) bool {
	_, ok := r.resources[id]
	return ok
}
