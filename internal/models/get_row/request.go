package models

type GetRowRequest struct {
	SessionID string `json:"sessionId"`
	Index     *int   `json:"index"`
}
