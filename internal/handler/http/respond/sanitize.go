package respond

import (
	"regexp"
)

var (
	// user:password@ inside postgres:// or mongodb(+srv):// URIs.
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
	// password=secret in key/value DSNs.
	kvPasswordPattern = regexp.MustCompile(`(?i)(password=)([^\s&]+)`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
