package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lmsforge/packlint/internal/domain"
)

// PathViolation classifies one unsafe path. Code is one of the UNSAFE_*
// issue codes.
type PathViolation struct {
	Code    string
	Message string
}

var (
	schemeURLPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	drivePathPattern = regexp.MustCompile(`^[a-zA-Z]:[\\/]`)
)

// CheckPathSafety validates a candidate package-relative path and returns
// the first violation found, or nil for a safe path. Checks run against
// the percent-decoded form so encoded traversal sequences (%2e%2e%2f) and
// encoded null bytes are caught; decoding happens before separator
// normalization.
func CheckPathSafety(raw string) *PathViolation {
	decoded := percentDecode(raw)

	if strings.ContainsRune(decoded, 0) {
		return &PathViolation{
			Code:    CodeUnsafeNullByte,
			Message: fmt.Sprintf("path %q contains a null byte", raw),
		}
	}
	if schemeURLPattern.MatchString(decoded) {
		return &PathViolation{
			Code:    CodeUnsafeExternalURL,
			Message: fmt.Sprintf("path %q is an external URL", raw),
		}
	}
	if strings.HasPrefix(decoded, "//") || strings.HasPrefix(decoded, `\\`) {
		return &PathViolation{
			Code:    CodeUnsafeExternalURL,
			Message: fmt.Sprintf("path %q is a protocol-relative URL", raw),
		}
	}
	if strings.HasPrefix(decoded, "/") || strings.HasPrefix(decoded, `\`) || drivePathPattern.MatchString(decoded) {
		return &PathViolation{
			Code:    CodeUnsafeAbsolutePath,
			Message: fmt.Sprintf("path %q is absolute, package paths must be relative", raw),
		}
	}

	normalized := strings.ReplaceAll(decoded, `\`, "/")
	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return &PathViolation{
				Code:    CodeUnsafePathTraversal,
				Message: fmt.Sprintf("path %q contains a directory traversal sequence", raw),
			}
		}
	}
	return nil
}

// checkPaths runs CheckPathSafety over every (path, location) pair and
// appends one Error issue per violation.
func checkPaths(result *domain.ValidationResult, paths []locatedPath) {
	for _, lp := range paths {
		if v := CheckPathSafety(lp.path); v != nil {
			result.AddError(v.Code, v.Message, lp.location, "reference only files inside the package, using relative paths")
		}
	}
}

// locatedPath pairs a candidate path with the manifest location that
// declared it.
type locatedPath struct {
	path     string
	location string
}

// percentDecode decodes %XX escapes tolerantly: invalid escapes pass
// through unchanged rather than failing the whole path, so a malformed
// escape cannot smuggle a sequence past the checks.
func percentDecode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, okHi := hexVal(s[i+1])
			lo, okLo := hexVal(s[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
