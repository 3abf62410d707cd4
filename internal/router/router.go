package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.vybes/internal/handlers"
	"io.winapps.vybes/internal/metrics"
	"io.winapps.vybes/internal/middleware"
	"io.winapps.vybes/internal/session"
	"io.winapps.vybes/internal/store"
)

// Deps are the collaborators the HTTP surface needs
type Deps struct {
	Store    store.EntryStore
	Sessions *session.Manager
	Metrics  *metrics.Collector
	Logger   *zap.SugaredLogger
}

// New builds the gin engine with middleware and all routes registered
func New(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.RecoveryMiddleware(deps.Logger),
		middleware.RequestLoggingMiddleware(deps.Logger),
		middleware.CORSMiddleware(),
	)
	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	entryHandler := handlers.NewEntryHandler(deps.Store, deps.Sessions, deps.Logger)
	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.Logger)

	v1 := router.Group("/api/v1")
	{
		entries := v1.Group("/entries")
		{
			entries.POST("/create-entry", entryHandler.CreateEntry)
			entries.POST("/get-entry", entryHandler.GetEntry)
			entries.POST("/list-entries", entryHandler.ListEntries)
			entries.POST("/export-entries", entryHandler.ExportEntries)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("/open-session", sessionHandler.OpenSession)
			sessions.POST("/get-rows", sessionHandler.GetRows)
			sessions.POST("/get-row", sessionHandler.GetRow)
			sessions.POST("/close-session", sessionHandler.CloseSession)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": deps.Sessions.Len()})
	})

	return router
}
