// Package redact provides utilities for scrubbing sensitive information
// from strings before they are logged. Error messages can embed connection
// strings, credentials, or tokens; everything that leaves the process
// through a log line passes through here first.
package redact

import "regexp"

// RedactionPlaceholder replaces any matched sensitive fragment.
const RedactionPlaceholder = "[REDACTED]"

// Precompiled patterns for the fragments we scrub.
var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Password-ish key/value pairs
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// API keys, secrets, and bearer tokens
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|authorization)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// JWTs: three base64url segments starting with the JSON header marker
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
)

// String returns s with all recognized sensitive fragments replaced by the
// redaction placeholder.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, "${1}://"+RedactionPlaceholder+"@")
	s = passwordRegex.ReplaceAllString(s, "${1}${2}"+RedactionPlaceholder)
	s = apiKeyRegex.ReplaceAllString(s, "${1}${2}"+RedactionPlaceholder)
	s = jwtTokenRegex.ReplaceAllString(s, RedactionPlaceholder)
	return s
}

// Error returns the redacted message of err, or an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
