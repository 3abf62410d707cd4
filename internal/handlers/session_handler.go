package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.vybes/internal/journal"
	closemodels "io.winapps.vybes/internal/models/close_session"
	getrowmodels "io.winapps.vybes/internal/models/get_row"
	getrowsmodels "io.winapps.vybes/internal/models/get_rows"
	opensessionmodels "io.winapps.vybes/internal/models/open_session"
	"io.winapps.vybes/internal/session"
)

type SessionHandler struct {
	sessions *session.Manager
	logger   *zap.SugaredLogger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Manager, logger *zap.SugaredLogger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// OpenSession starts a session whose log holds the full stored history
func (h *SessionHandler) OpenSession(c *gin.Context) {
	sess, err := h.sessions.Open(c.Request.Context())
	if err != nil {
		h.logError(c, err, "failed to open session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open session"})
		return
	}

	c.JSON(http.StatusCreated, opensessionmodels.OpenSessionResponse(toRowsResponse(sess.Snapshot())))
}

// GetRows returns every row of the session plus the index to scroll to
func (h *SessionHandler) GetRows(c *gin.Context) {
	var req getrowsmodels.GetRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sess, ok := h.lookup(c, req.SessionID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toRowsResponse(sess.Snapshot()))
}

// GetRow returns the content of a single row
func (h *SessionHandler) GetRow(c *gin.Context) {
	var req getrowmodels.GetRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Index == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index is required"})
		return
	}

	sess, ok := h.lookup(c, req.SessionID)
	if !ok {
		return
	}

	row, err := sess.Row(*req.Index)
	if err != nil {
		if errors.Is(err, journal.ErrIndexOutOfRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Index out of range"})
			return
		}
		h.logError(c, err, "failed to read row", "session_id", req.SessionID, "index", *req.Index)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read row"})
		return
	}

	c.JSON(http.StatusOK, getrowmodels.GetRowResponse{SessionID: sess.ID, Index: *req.Index, Row: row})
}

// CloseSession ends a session
func (h *SessionHandler) CloseSession(c *gin.Context) {
	var req closemodels.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	if err := h.sessions.Close(req.SessionID); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		h.logError(c, err, "failed to close session", "session_id", req.SessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isClosed": true, "message": "Session closed successfully"})
}

func (h *SessionHandler) lookup(c *gin.Context, id string) (*session.Session, bool) {
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return nil, false
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return sess, true
}

func toRowsResponse(snap session.Snapshot) getrowsmodels.GetRowsResponse {
	return getrowsmodels.GetRowsResponse{
		SessionID:         snap.SessionID,
		Version:           snap.Version,
		ChangedAt:         snap.ChangedAt,
		RowCount:          snap.RowCount,
		Rows:              snap.Rows,
		ScrollTargetIndex: snap.ScrollTargetIndex,
	}
}
