package handlers

import (
	"net/http"

	"github.com/PageCraftHQ/pagecraft-go/internal/application/services"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/messaging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Auth happens via token before the upgrade; origin is not the gate.
		return true
	},
}

// WSHandlers serves the editor live-update websocket
type WSHandlers struct {
	pageService *services.PageService
	broadcaster *messaging.EditorBroadcaster
	logger      *logging.ChanneledLogger
}

// NewWSHandlers creates websocket handlers with injected dependencies
func NewWSHandlers(pageService *services.PageService, broadcaster *messaging.EditorBroadcaster, logger *logging.ChanneledLogger) *WSHandlers {
	return &WSHandlers{
		pageService: pageService,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// WatchPage upgrades the connection and streams page_updated events for one
// page until the client disconnects.
func (h *WSHandlers) WatchPage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	pageID := c.Param("pageId")

	if _, err := h.pageService.GetByID(pageID, userID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Editor().Error("Websocket upgrade failed", "pageId", pageID, "error", err.Error())
		return
	}

	h.broadcaster.AddClient(pageID, conn)
	h.logger.Editor().Info("Editor client watching page",
		"pageId", pageID, "watchers", h.broadcaster.GetConnectionCount(pageID))

	// Drain reads so close frames and pings are processed; unregister on error.
	go func() {
		defer func() {
			h.broadcaster.RemoveClient(pageID, conn)
			conn.Close()
			h.logger.Editor().Info("Editor client left page",
				"pageId", pageID, "watchers", h.broadcaster.GetConnectionCount(pageID))
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
