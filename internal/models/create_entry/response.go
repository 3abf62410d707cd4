package models

import "time"

type CreateEntryResponse struct {
	ID                string    `json:"id"`
	Body              string    `json:"body"`
	Date              time.Time `json:"date"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	SessionID         string    `json:"sessionId,omitempty"`
	Version           uint64    `json:"version,omitempty"`
	ScrollTargetIndex *int      `json:"scrollTargetIndex,omitempty"`
}
