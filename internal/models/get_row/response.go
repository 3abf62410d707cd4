package models

import "io.winapps.vybes/internal/journal"

type GetRowResponse struct {
	SessionID string      `json:"sessionId"`
	Index     int         `json:"index"`
	Row       journal.Row `json:"row"`
}
