// Package entity defines the core domain entities and validation logic for the journal.
// It contains the Entry record keyed by calendar date, the aggregate Stats computed
// over all entries, and the domain-specific errors shared by every layer.
package entity

import (
	"strings"
	"time"
)

// Entry is one journal record. Exactly one Entry exists per Date.
type Entry struct {
	ID        string
	Date      string // YYYY-MM-DD
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Outcome reports whether an upsert created a new entry or changed an existing one.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
)

// WordCount returns the number of whitespace-delimited tokens in the entry content.
func (e *Entry) WordCount() int {
	return CountWords(e.Content)
}

// CountWords counts whitespace-delimited tokens.
//
//	CountWords("a b")        // 2
//	CountWords("  a\n\tb  ") // 2
//	CountWords("")           // 0
func CountWords(text string) int {
	return len(strings.Fields(text))
}
