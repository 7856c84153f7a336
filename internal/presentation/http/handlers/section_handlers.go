package handlers

import (
	"net/http"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/application/services"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/blocks"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// AddSectionRequest is the request body for section creation
type AddSectionRequest struct {
	BlockType string         `json:"blockType" binding:"required"`
	Position  *int           `json:"position"`
	Content   map[string]any `json:"content"`
}

// SectionContentRequest is the request body for content autosave
type SectionContentRequest struct {
	Content map[string]any `json:"content" binding:"required"`
}

// SectionStatusRequest is the request body for status changes
type SectionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SectionAnchorRequest is the request body for anchor changes. A null anchor
// clears the value.
type SectionAnchorRequest struct {
	AnchorID *string `json:"anchorId"`
}

// ReorderRequest is the request body for bulk reordering
type ReorderRequest struct {
	SectionIDs []string `json:"sectionIds" binding:"required"`
}

// MoveSectionRequest is the request body for single-section moves
type MoveSectionRequest struct {
	Position int `json:"position"`
}

// SectionHandlers contains all section-related HTTP handlers
type SectionHandlers struct {
	sectionService *services.SectionService
	logger         *logging.ChanneledLogger
}

// NewSectionHandlers creates section handlers with injected dependencies
func NewSectionHandlers(sectionService *services.SectionService, logger *logging.ChanneledLogger) *SectionHandlers {
	return &SectionHandlers{
		sectionService: sectionService,
		logger:         logger,
	}
}

// GetSections returns a page's sections in position order
func (h *SectionHandlers) GetSections(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	pageID := c.Param("pageId")

	sections, err := h.sectionService.GetByPage(pageID, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sections": sections, "count": len(sections)})
}

// AddSection creates a new section on a page
func (h *SectionHandlers) AddSection(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	pageID := c.Param("pageId")
	start := time.Now()

	var req AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	section, err := h.sectionService.Add(pageID, userID, blocks.BlockType(req.BlockType), req.Position, req.Content)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Debug("Add section request completed", "pageId", pageID, "sectionId", section.ID, "duration", time.Since(start))
	c.JSON(http.StatusCreated, gin.H{"section": section})
}

// UpdateSectionContent replaces a section's content verbatim
func (h *SectionHandlers) UpdateSectionContent(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	sectionID := c.Param("sectionId")

	var req SectionContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.sectionService.UpdateContent(sectionID, userID, req.Content); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateSectionStatus sets a section's draft/published state
func (h *SectionHandlers) UpdateSectionStatus(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	sectionID := c.Param("sectionId")

	var req SectionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.sectionService.UpdateStatus(sectionID, userID, content.SectionStatus(req.Status)); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateSectionAnchor sets or clears a section's navigation anchor
func (h *SectionHandlers) UpdateSectionAnchor(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	sectionID := c.Param("sectionId")

	var req SectionAnchorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.sectionService.UpdateAnchorID(sectionID, userID, req.AnchorID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteSection removes a section and compacts later positions
func (h *SectionHandlers) DeleteSection(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	sectionID := c.Param("sectionId")

	if err := h.sectionService.Delete(sectionID, userID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DuplicateSection clones a section directly below the original
func (h *SectionHandlers) DuplicateSection(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	sectionID := c.Param("sectionId")

	clone, err := h.sectionService.Duplicate(sectionID, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"section": clone})
}

// ReorderSections applies a full permutation of a page's section ids
func (h *SectionHandlers) ReorderSections(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	pageID := c.Param("pageId")

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.sectionService.Reorder(pageID, userID, req.SectionIDs); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MoveSection repositions one section
func (h *SectionHandlers) MoveSection(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	sectionID := c.Param("sectionId")

	var req MoveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.sectionService.Move(sectionID, userID, req.Position); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
