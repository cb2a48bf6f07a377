package model

import (
	"time"

	"github.com/google/uuid"
)

type SearchStatus string

const (
	SearchStatusOK     SearchStatus = "ok"
	SearchStatusFailed SearchStatus = "failed"
)

// SearchRecord is one executed search kept in the search history.
// Parameters are stored after defaulting, so every field is concrete.
type SearchRecord struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	SearchText   string       `db:"search_text" json:"search_text"`
	Index        string       `db:"index_pattern" json:"index"`
	Size         uint64       `db:"size" json:"size"`
	MinTimestamp string       `db:"min_timestamp" json:"min_timestamp"`
	MaxTimestamp string       `db:"max_timestamp" json:"max_timestamp"`
	Total        uint64       `db:"total" json:"total"`
	Status       SearchStatus `db:"status" json:"status"`
	Error        string       `db:"error" json:"error,omitempty"`
	DurationMs   int64        `db:"duration_ms" json:"duration_ms"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}
