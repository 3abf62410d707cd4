package models

type GetRowsRequest struct {
	SessionID string `json:"sessionId"`
}
