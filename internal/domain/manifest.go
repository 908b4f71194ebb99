package domain

// ScormManifest is the typed view of an imsmanifest.xml document, shared by
// SCORM 1.2 and SCORM 2004 packages. It holds the organizations hierarchy
// and the flat resources list, sharing one package-wide identifier
// namespace.
type ScormManifest struct {
	Identifier    string
	Version       string
	SchemaVersion string
	Title         string
	Organizations Organizations
	Resources     Resources
}

// Organizations is the container node for every organization in a manifest,
// plus the manifest's default-organization reference.
type Organizations struct {
	// Present reports whether the <organizations> element existed at all.
	// A manifest may carry the element with zero children; the two cases
	// trip different rules.
	Present bool
	// Default is nil when no default attribute was declared; an empty
	// string is a declared-but-empty reference, which is an error.
	Default       *string
	Organizations []Organization
}

// Organization is one named hierarchy of items.
type Organization struct {
	Identifier string
	Title      string
	Items      []Item
}

// Item is a node in an organization's hierarchy. Items nest arbitrarily
// deep. IdentifierRef is nil for pure container items; an empty string
// means a declared-but-empty reference.
type Item struct {
	Identifier    string
	IdentifierRef *string
	Title         string
	Items         []Item
}

// Resources is the container node for every resource in a manifest.
type Resources struct {
	Present   bool
	Resources []Resource
}

// Resource is a declared content asset or SCO. Href is nil for
// non-launchable resources.
type Resource struct {
	Identifier   string
	Type         string
	Href         *string
	ScormType    string
	Files        []string
	Dependencies []string
}

// Cmi5Manifest is the typed view of a cmi5.xml course structure.
type Cmi5Manifest struct {
	CourseID    string
	Title       string
	Description string
	AUs         []Cmi5AU
}

// Cmi5AU is one assignable unit in a cmi5 course structure.
type Cmi5AU struct {
	ID           string
	Title        string
	URL          string
	MoveOn       string
	LaunchMethod string
}

// XapiManifest is the typed view of a tincan.xml activity list.
type XapiManifest struct {
	Activities []XapiActivity
}

// XapiActivity is one declared activity; Launch is empty when the activity
// declares no launch href.
type XapiActivity struct {
	ID     string
	Type   string
	Name   string
	Launch string
}

// AiccManifest aggregates the four AICC course description tables into one
// typed view.
type AiccManifest struct {
	Course          AiccCourse
	Descriptors     []AiccDescriptor
	AssignableUnits []AssignableUnit
	Prerequisites   []AiccPrerequisite
}

// AiccCourse carries the [Course] block of a .crs file.
type AiccCourse struct {
	ID          string
	Title       string
	Creator     string
	System      string
	Level       string
	TotalAUs    int
	TotalBlocks int
	Description string
}

// AiccDescriptor is one row of the .des table.
type AiccDescriptor struct {
	SystemID    string
	Title       string
	Description string
	DeveloperID string
}

// AssignableUnit is one row of the .au table: AICC's launchable content
// unit.
type AssignableUnit struct {
	SystemID     string
	Type         string
	CommandLine  string
	FileName     string
	MaxScore     string
	MasteryScore string
}
