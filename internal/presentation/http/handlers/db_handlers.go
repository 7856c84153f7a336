package handlers

import (
	"net/http"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/performance"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/database"
	"github.com/gin-gonic/gin"
)

// DBHandlers serves health and diagnostics endpoints
type DBHandlers struct {
	db     *database.DB
	perf   *performance.Tracker
	logger *logging.ChanneledLogger
}

// NewDBHandlers creates health handlers with injected dependencies
func NewDBHandlers(db *database.DB, perf *performance.Tracker, logger *logging.ChanneledLogger) *DBHandlers {
	return &DBHandlers{
		db:     db,
		perf:   perf,
		logger: logger,
	}
}

// Health reports database reachability and basic performance stats
func (h *DBHandlers) Health(c *gin.Context) {
	start := time.Now()

	if err := h.db.Ping(); err != nil {
		h.logger.Database().Error("Health check ping failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"pingDuration": time.Since(start).String(),
		"performance":  h.perf.GetStats(),
	})
}
