package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	getentrymodels "io.winapps.vybes/internal/models/get_entry"
	"io.winapps.vybes/internal/store"
)

// GetEntry handles fetching a single persisted entry
func (h *EntryHandler) GetEntry(c *gin.Context) {
	var req getentrymodels.GetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.EntryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry ID is required"})
		return
	}

	rec, err := h.store.Get(c.Request.Context(), req.EntryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		h.logError(c, err, "failed to fetch entry", "entry_id", req.EntryID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
		return
	}

	c.JSON(http.StatusOK, toEntryResponse(rec))
}

func toEntryResponse(rec store.Record) getentrymodels.GetEntryResponse {
	return getentrymodels.GetEntryResponse{
		ID:        rec.ID,
		Body:      rec.Body,
		Date:      rec.Date,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
