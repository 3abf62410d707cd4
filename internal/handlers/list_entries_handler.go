package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	getentrymodels "io.winapps.vybes/internal/models/get_entry"
	listmodels "io.winapps.vybes/internal/models/list_entries"
	"io.winapps.vybes/internal/store"
)

// ListEntries returns persisted entries oldest first, with pagination. Page
// and limit may come from the query string or the JSON body.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	var req listmodels.ListEntriesRequest

	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			req.Page = page
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	// An empty body is fine; query params alone are enough.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	page := store.Page{Page: req.Page, Limit: req.Limit}.Normalize()
	res, err := h.store.List(c.Request.Context(), page)
	if err != nil {
		h.logError(c, err, "failed to list entries", "page", page.Page, "limit", page.Limit)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	entries := make([]getentrymodels.GetEntryResponse, 0, len(res.Records))
	for _, rec := range res.Records {
		entries = append(entries, toEntryResponse(rec))
	}

	totalPages := int(math.Ceil(float64(res.Total) / float64(page.Limit)))
	response := listmodels.ListEntriesResponse{
		Entries: entries,
		Pagination: listmodels.Pagination{
			Page:        page.Page,
			Limit:       page.Limit,
			Total:       res.Total,
			TotalPages:  totalPages,
			HasNext:     page.Page < totalPages,
			HasPrevious: page.Page > 1,
		},
	}

	c.JSON(http.StatusOK, response)
}
