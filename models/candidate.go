package models

import (
	"path"
	"time"
)

// Candidate is a source object discovered within the current cycle's date
// window and eligible for transfer. Candidates are rebuilt from scratch on
// every discovery pass and are never persisted.
type Candidate struct {
	// SourceKey is the opaque identifier of the object in the source store.
	// It doubles as the dedup key checked against the state store.
	SourceKey string `json:"sourceKey"`

	// InferredDate is the calendar date parsed from the object's path or
	// prefix. It drives both date-window filtering and the destination
	// rename.
	InferredDate time.Time `json:"inferredDate"`

	// SizeBytes is the size reported by the source listing. Informational
	// only; copy completion is judged by the byte stream, not this value.
	SizeBytes int64 `json:"sizeBytes"`
}

// DestinationKey derives the key the object is written under in the
// destination store: "YYYY-MM-DD_" + basename of the source key.
func (c Candidate) DestinationKey() string {
	return c.InferredDate.Format(time.DateOnly) + "_" + path.Base(c.SourceKey)
}
