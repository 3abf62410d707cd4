package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"io.winapps.vybes/internal/store"
)

// ExportEntries streams every persisted entry as CSV, oldest first
func (h *EntryHandler) ExportEntries(c *gin.Context) {
	ctx := c.Request.Context()

	// Read the first page before writing headers so a storage failure can
	// still produce a JSON error.
	page := store.Page{Page: 1, Limit: store.MaxPageSize}
	res, err := h.store.List(ctx, page)
	if err != nil {
		h.logError(c, err, "failed to export entries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export entries"})
		return
	}

	filename := fmt.Sprintf("entries-%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "date", "body", "createdAt", "updatedAt"})

	exported := 0
	for {
		for _, rec := range res.Records {
			_ = w.Write([]string{
				rec.ID,
				rec.Date.Format(time.RFC3339Nano),
				rec.Body,
				rec.CreatedAt.Format(time.RFC3339Nano),
				rec.UpdatedAt.Format(time.RFC3339Nano),
			})
			exported++
		}
		w.Flush()

		if len(res.Records) == 0 || page.Page*page.Limit >= res.Total {
			break
		}
		page.Page++
		if res, err = h.store.List(ctx, page); err != nil {
			// Headers are already sent; all we can do is stop and log.
			h.logError(c, err, "export interrupted", "exported", exported)
			return
		}
	}

	if err := w.Error(); err != nil {
		h.logError(c, err, "failed to write export", "exported", exported)
	}
}
