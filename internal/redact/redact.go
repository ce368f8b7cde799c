// Package redact strips credentials and other sensitive values from strings
// before they are logged or forwarded to telemetry. Error messages coming out
// of the store layer can carry connection URLs, file paths and hashed
// passwords; handlers never show them to users, but logs see them too.
package redact

import "regexp"

// Placeholders substituted for redacted values.
const (
	Placeholder     = "[REDACTED]"
	PathPlaceholder = "[REDACTED_PATH]"
	HashPlaceholder = "[REDACTED_HASH]"
	JWTPlaceholder  = "[REDACTED_JWT]"
	MailPlaceholder = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order. Earlier rules may consume text later rules would
// otherwise match, so the most specific shapes come first.
var rules = []rule{
	// userinfo in any URL: database URLs and Sentry DSNs
	{regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*://)[^/@\s]+@`), "${1}" + Placeholder + "@"},
	{regexp.MustCompile(`(?i)\b(taskdeck_session=)[^;\s]+`), "${1}" + Placeholder},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), JWTPlaceholder},
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), HashPlaceholder},
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd)(\s*[=:]\s*)['"]?[^'"&\s]+['"]?`), "${1}${2}" + Placeholder},
	{regexp.MustCompile(`(?i)(secret|token|api[_-]?key|dsn)(\s*[=:]\s*)['"]?[^'"&\s]+['"]?`), "${1}${2}" + Placeholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), MailPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
