package handlers

import (
	"net/http"

	"github.com/PageCraftHQ/pagecraft-go/internal/application/services"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// CreateSiteRequest is the request body for site creation
type CreateSiteRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// SiteContentRequest is the request body for site-level header/footer updates
type SiteContentRequest struct {
	Content map[string]any `json:"content" binding:"required"`
}

// SiteHandlers contains all site-related HTTP handlers
type SiteHandlers struct {
	siteService *services.SiteService
	logger      *logging.ChanneledLogger
}

// NewSiteHandlers creates site handlers with injected dependencies
func NewSiteHandlers(siteService *services.SiteService, logger *logging.ChanneledLogger) *SiteHandlers {
	return &SiteHandlers{
		siteService: siteService,
		logger:      logger,
	}
}

// ListSites returns every site the caller owns
func (h *SiteHandlers) ListSites(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	sites, err := h.siteService.List(userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sites": sites, "count": len(sites)})
}

// GetSite returns one site by id
func (h *SiteHandlers) GetSite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	siteID := c.Param("siteId")

	site, err := h.siteService.GetByID(siteID, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"site": site})
}

// CreateSite creates a new site
func (h *SiteHandlers) CreateSite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	site, err := h.siteService.Create(userID, req.Name, req.Slug)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"site": site})
}

// UpdateSiteHeader replaces the site-level header content
func (h *SiteHandlers) UpdateSiteHeader(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	siteID := c.Param("siteId")

	var req SiteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.siteService.UpdateHeaderContent(siteID, userID, req.Content); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateSiteFooter replaces the site-level footer content
func (h *SiteHandlers) UpdateSiteFooter(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	siteID := c.Param("siteId")

	var req SiteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.siteService.UpdateFooterContent(siteID, userID, req.Content); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
