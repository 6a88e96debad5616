// Package vocab holds the read-only vocabulary catalog that questions are
// drawn from, and the CSV source that fills it.
package vocab

import "strings"

// Record is a single vocabulary entry.
type Record struct {
	English      string // Answer label shown on a balloon
	TargetScript string // Prompt text shown to the player
	Category     string // Thematic group used for filtering and distractors
}

// normalize trims surrounding whitespace from every field.
func (r Record) normalize() Record {
	return Record{
		English:      strings.TrimSpace(r.English),
		TargetScript: strings.TrimSpace(r.TargetScript),
		Category:     strings.TrimSpace(r.Category),
	}
}

// Complete reports whether all fields needed for selection are present.
func (r Record) Complete() bool {
	return r.English != "" && r.TargetScript != "" && r.Category != ""
}
