package models

import (
	getentrymodels "io.winapps.vybes/internal/models/get_entry"
)

type ListEntriesResponse struct {
	Entries    []getentrymodels.GetEntryResponse `json:"entries"`
	Pagination Pagination                        `json:"pagination"`
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}
