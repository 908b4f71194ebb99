// Package validation checks typed manifest trees against the structural,
// referential, uniqueness, cardinality, and security properties of their
// specifications. Rules are pure functions: invalid input yields issues,
// never a failed computation.
package validation

// Issue codes are stable strings consumed by embedding callers; the
// message and suggested-fix text attached to each code is part of the
// contract as well.
const (
	CodeScorm12MissingManifestID      = "SCORM12_MISSING_MANIFEST_ID"
	CodeScorm12MissingOrganizations   = "SCORM12_MISSING_ORGANIZATIONS"
	CodeScorm12NoOrganizations        = "SCORM12_NO_ORGANIZATIONS"
	CodeScorm12InvalidDefaultOrg      = "SCORM12_INVALID_DEFAULT_ORG"
	CodeScorm12DuplicateOrgID         = "SCORM12_DUPLICATE_ORG_ID"
	CodeScorm12DuplicateItemID        = "SCORM12_DUPLICATE_ITEM_ID"
	CodeScorm12MissingResourceRef     = "SCORM12_MISSING_RESOURCE_REF"
	CodeScorm12MissingResources       = "SCORM12_MISSING_RESOURCES"
	CodeScorm12DuplicateResourceID    = "SCORM12_DUPLICATE_RESOURCE_ID"
	CodeScorm12MissingLaunchURL       = "SCORM12_MISSING_LAUNCH_URL"
	CodeScorm12NoLaunchableResources  = "SCORM12_NO_LAUNCHABLE_RESOURCES"
	CodeDuplicateIdentifier           = "DUPLICATE_IDENTIFIER"
	CodeOrphanedResource              = "ORPHANED_RESOURCE"
	CodeUnsafePathTraversal           = "UNSAFE_PATH_TRAVERSAL"
	CodeUnsafeAbsolutePath            = "UNSAFE_ABSOLUTE_PATH"
	CodeUnsafeExternalURL             = "UNSAFE_EXTERNAL_URL"
	CodeUnsafeNullByte                = "UNSAFE_NULL_BYTE"
	CodeAiccMissingCourse             = "AICC_MISSING_COURSE"
	CodeAiccMissingTitle              = "AICC_MISSING_TITLE"
	CodeAiccMissingLaunchURL          = "AICC_MISSING_LAUNCH_URL"
	CodeAiccUnknownPrerequisiteUnit   = "AICC_UNKNOWN_PREREQUISITE_UNIT"
	CodeCmi5MissingCourse             = "CMI5_MISSING_COURSE"
	CodeCmi5MissingTitle              = "CMI5_MISSING_TITLE"
	CodeCmi5MissingLaunchURL          = "CMI5_MISSING_LAUNCH_URL"
	CodeXapiMissingLaunchURL          = "XAPI_MISSING_LAUNCH_URL"
)
