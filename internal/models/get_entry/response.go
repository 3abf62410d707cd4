package models

import "time"

type GetEntryResponse struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
