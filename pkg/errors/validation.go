package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// projectNameRegex matches valid Python project names (PEP 508).
var projectNameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidateProjectName validates a PyPI project name before it is
// interpolated into a request path.
//
// The rules are conservative:
//   - No empty names
//   - No control characters or path separators
//   - Maximum length of 256 characters
//   - Must match the PEP 508 name grammar
func ValidateProjectName(name string) error {
	if name == "" {
		return Argument("project name cannot be empty")
	}
	if len(name) > 256 {
		return Argument("project name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return Argument("project name contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return Argument("project name contains invalid characters: %q", name)
	}
	if !projectNameRegex.MatchString(name) {
		return Argument("invalid Python project name: %q", name)
	}
	return nil
}

// ValidateVersion validates a version string passed with --versions.
// Version strings are free-form upstream, so only blank values and
// control characters are rejected.
func ValidateVersion(v string) error {
	if strings.TrimSpace(v) == "" {
		return Argument("version cannot be empty")
	}
	for _, r := range v {
		if unicode.IsControl(r) {
			return Argument("version %q contains invalid control characters", v)
		}
	}
	return nil
}

// ValidateURL validates a base URL from flags or configuration.
// It ensures the URL parses and uses an http or https scheme.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return Argument("URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Argument("invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Argument("URL must use http or https scheme")
	}
	if u.Host == "" {
		return Argument("URL %q has no host", rawURL)
	}
	return nil
}
