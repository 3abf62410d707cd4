package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	createmodels "io.winapps.vybes/internal/models/create_entry"
	"io.winapps.vybes/internal/session"
	"io.winapps.vybes/internal/store"
)

type EntryHandler struct {
	store    store.EntryStore
	sessions *session.Manager
	logger   *zap.SugaredLogger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(st store.EntryStore, sessions *session.Manager, logger *zap.SugaredLogger) *EntryHandler {
	return &EntryHandler{
		store:    st,
		sessions: sessions,
		logger:   logger,
	}
}

// CreateEntry handles submission of a new journal entry. The body is stored
// as given; with a sessionId the entry is also appended to that session.
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req createmodels.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sub, err := h.sessions.CreateEntry(c.Request.Context(), req.SessionID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionClosed):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, session.ErrEmptyBody):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Body is required"})
		default:
			h.logError(c, err, "failed to create entry", "session_id", req.SessionID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	response := createmodels.CreateEntryResponse{
		ID:                sub.Record.ID,
		Body:              sub.Record.Body,
		Date:              sub.Record.Date,
		CreatedAt:         sub.Record.CreatedAt,
		UpdatedAt:         sub.Record.UpdatedAt,
		SessionID:         req.SessionID,
		Version:           sub.Version,
		ScrollTargetIndex: sub.ScrollTargetIndex,
	}

	c.JSON(http.StatusCreated, response)
}
