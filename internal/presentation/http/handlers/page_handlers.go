package handlers

import (
	"net/http"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/application/services"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// PageRequest is the request body for page creation and updates
type PageRequest struct {
	Title string `json:"title" binding:"required"`
	Slug  string `json:"slug" binding:"required"`
}

// PageHandlers contains all page-related HTTP handlers
type PageHandlers struct {
	pageService *services.PageService
	logger      *logging.ChanneledLogger
}

// NewPageHandlers creates page handlers with injected dependencies
func NewPageHandlers(pageService *services.PageService, logger *logging.ChanneledLogger) *PageHandlers {
	return &PageHandlers{
		pageService: pageService,
		logger:      logger,
	}
}

// GetPage returns a page with its ordered sections and merged header/footer
func (h *PageHandlers) GetPage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	pageID := c.Param("pageId")
	start := time.Now()

	payload, err := h.pageService.GetFullPayload(pageID, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Debug("Get page request completed", "pageId", pageID, "duration", time.Since(start))
	c.JSON(http.StatusOK, payload)
}

// CreatePage adds a page to a site
func (h *PageHandlers) CreatePage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	siteID := c.Param("siteId")

	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	page, err := h.pageService.Create(siteID, userID, req.Title, req.Slug)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": page})
}

// UpdatePage rewrites a page's title and slug
func (h *PageHandlers) UpdatePage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	pageID := c.Param("pageId")

	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	page, err := h.pageService.Update(pageID, userID, req.Title, req.Slug)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// DeletePage removes a page and its sections
func (h *PageHandlers) DeletePage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	pageID := c.Param("pageId")

	if err := h.pageService.Delete(pageID, userID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
