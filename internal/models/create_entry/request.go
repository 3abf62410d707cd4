package models

type CreateEntryRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Body      string `json:"body"`
}
