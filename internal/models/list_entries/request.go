package models

type ListEntriesRequest struct {
	Page  int `json:"page,omitempty"`  // Default: 1
	Limit int `json:"limit,omitempty"` // Default: 50, max 200
}
