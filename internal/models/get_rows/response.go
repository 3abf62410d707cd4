package models

import (
	"time"

	"io.winapps.vybes/internal/journal"
)

type GetRowsResponse struct {
	SessionID         string        `json:"sessionId"`
	Version           uint64        `json:"version"`
	ChangedAt         time.Time     `json:"changedAt"`
	RowCount          int           `json:"rowCount"`
	Rows              []journal.Row `json:"rows"`
	ScrollTargetIndex *int          `json:"scrollTargetIndex"`
}
