package handlers

import (
	"net/http"

	"github.com/PageCraftHQ/pagecraft-go/internal/application/services"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// MigrationHandlers contains the block-conversion HTTP handlers
type MigrationHandlers struct {
	migrationService *services.MigrationService
	logger           *logging.ChanneledLogger
}

// NewMigrationHandlers creates migration handlers with injected dependencies
func NewMigrationHandlers(migrationService *services.MigrationService, logger *logging.ChanneledLogger) *MigrationHandlers {
	return &MigrationHandlers{
		migrationService: migrationService,
		logger:           logger,
	}
}

// ListConvertible returns every deprecated block type with its successor
func (h *MigrationHandlers) ListConvertible(c *gin.Context) {
	convertible := h.migrationService.ListConvertible()
	c.JSON(http.StatusOK, gin.H{"convertible": convertible, "count": len(convertible)})
}

// SectionConvertibility reports whether one stored section can be upgraded
func (h *MigrationHandlers) SectionConvertibility(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	sectionID := c.Param("sectionId")

	info, convertible, err := h.migrationService.SectionConvertibility(sectionID, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if !convertible {
		c.JSON(http.StatusOK, gin.H{"convertible": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"convertible": true, "blockType": info.BlockType, "target": info.Target})
}

// ConvertSection upgrades one stored section to its successor type
func (h *MigrationHandlers) ConvertSection(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	sectionID := c.Param("sectionId")

	section, err := h.migrationService.ConvertSection(sectionID, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section})
}

// ConvertPage upgrades every convertible section of a page
func (h *MigrationHandlers) ConvertPage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	pageID := c.Param("pageId")

	converted, err := h.migrationService.ConvertPage(pageID, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"converted": converted})
}
