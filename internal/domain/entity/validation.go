package entity

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used as the entry key.
const DateLayout = "2006-01-02"

// ValidateDate checks that date is present and a real calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return &ValidationError{Field: "date", Message: "is required"}
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil || t.Format(DateLayout) != date {
		return &ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"}
	}
	return nil
}

// NormalizeContent trims surrounding whitespace and rejects empty content.
func NormalizeContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", &ValidationError{Field: "content", Message: "cannot be empty"}
	}
	return trimmed, nil
}
