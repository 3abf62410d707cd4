package models

type CloseSessionRequest struct {
	SessionID string `json:"sessionId"`
}
