package services

import (
	"fmt"
	"regexp"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/blocks"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/messaging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/performance"
	contentrepo "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/security"
)

// anchorPattern matches URL-fragment-safe tokens.
var anchorPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

// SectionService is the ordered-block mutation surface. Every operation
// resolves ownership first, then delegates position arithmetic to the
// repository's transactional operations, then notifies editor clients.
type SectionService struct {
	guard       *OwnershipGuard
	sectionRepo *contentrepo.SectionRepository
	pageRepo    *contentrepo.PageRepository
	siteRepo    *contentrepo.SiteRepository
	broadcaster *messaging.EditorBroadcaster
	perf        *performance.Tracker
	logger      *logging.ChanneledLogger
}

func NewSectionService(guard *OwnershipGuard, sectionRepo *contentrepo.SectionRepository, pageRepo *contentrepo.PageRepository, siteRepo *contentrepo.SiteRepository, broadcaster *messaging.EditorBroadcaster, perf *performance.Tracker, logger *logging.ChanneledLogger) *SectionService {
	return &SectionService{
		guard:       guard,
		sectionRepo: sectionRepo,
		pageRepo:    pageRepo,
		siteRepo:    siteRepo,
		broadcaster: broadcaster,
		perf:        perf,
		logger:      logger,
	}
}

// GetByPage returns a page's sections in position order.
func (s *SectionService) GetByPage(pageID, userID string) ([]*content.SectionNode, error) {
	if _, err := s.guard.Page(pageID, userID); err != nil {
		return nil, err
	}
	return s.sectionRepo.FindByPageID(pageID)
}

// Add creates a new section. A nil position appends. Content resolution
// order: explicit template content; a synthesized site-aware default for
// header blocks; the registry default otherwise.
func (s *SectionService) Add(pageID, userID string, blockType blocks.BlockType, position *int, templateContent map[string]any) (*content.SectionNode, error) {
	marker := s.perf.StartOperation("section:add")
	defer s.perf.CompleteOperation(marker)

	page, err := s.guard.Page(pageID, userID)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	if !blocks.IsKnown(blockType) {
		err := fmt.Errorf("unknown block type %q: %w", blockType, apperrors.ErrInvalidArgument)
		marker.SetError(err)
		return nil, err
	}

	payload := templateContent
	if payload == nil {
		if blockType == blocks.TypeHeader {
			payload, err = s.defaultHeaderContent(page)
			if err != nil {
				marker.SetError(err)
				return nil, err
			}
		} else {
			payload = blocks.DefaultContent(blockType)
		}
	}

	section := &content.SectionNode{
		ID:        security.GenerateULID(),
		PageID:    pageID,
		UserID:    userID,
		NodeType:  "Section",
		BlockType: string(blockType),
		Content:   payload,
		Status:    content.StatusDraft,
		Created:   time.Now().UTC(),
	}

	if err := s.sectionRepo.Insert(section, position); err != nil {
		marker.SetError(err)
		return nil, err
	}

	s.logger.Content().Info("Section added", "pageId", pageID, "sectionId", section.ID, "blockType", blockType, "position", section.Position)
	s.broadcaster.BroadcastPageUpdated(pageID, []string{section.ID}, "")
	return section, nil
}

// UpdateContent replaces a section's content verbatim. This is the autosave
// entry point; it touches exactly one row.
func (s *SectionService) UpdateContent(sectionID, userID string, payload map[string]any) error {
	section, err := s.guard.Section(sectionID, userID)
	if err != nil {
		return err
	}

	if err := s.sectionRepo.UpdateContent(sectionID, payload); err != nil {
		return err
	}

	s.broadcaster.BroadcastPageUpdated(section.PageID, []string{sectionID}, "")
	return nil
}

// UpdateStatus sets a section's draft/published state.
func (s *SectionService) UpdateStatus(sectionID, userID string, status content.SectionStatus) error {
	section, err := s.guard.Section(sectionID, userID)
	if err != nil {
		return err
	}

	if status != content.StatusDraft && status != content.StatusPublished {
		return fmt.Errorf("unknown status %q: %w", status, apperrors.ErrInvalidArgument)
	}

	if err := s.sectionRepo.UpdateStatus(sectionID, status); err != nil {
		return err
	}

	s.broadcaster.BroadcastPageUpdated(section.PageID, []string{sectionID}, "")
	return nil
}

// UpdateAnchorID sets or clears a section's same-page navigation anchor.
// Format is validated before storage is touched.
func (s *SectionService) UpdateAnchorID(sectionID, userID string, anchorID *string) error {
	section, err := s.guard.Section(sectionID, userID)
	if err != nil {
		return err
	}

	if anchorID != nil && !anchorPattern.MatchString(*anchorID) {
		return fmt.Errorf("anchor %q is not a valid fragment token: %w", *anchorID, apperrors.ErrInvalidFormat)
	}

	if err := s.sectionRepo.UpdateAnchorID(sectionID, anchorID); err != nil {
		return err
	}

	s.broadcaster.BroadcastPageUpdated(section.PageID, []string{sectionID}, "")
	return nil
}

// Delete removes a section and compacts later positions.
func (s *SectionService) Delete(sectionID, userID string) error {
	marker := s.perf.StartOperation("section:delete")
	defer s.perf.CompleteOperation(marker)

	section, err := s.guard.Section(sectionID, userID)
	if err != nil {
		marker.SetError(err)
		return err
	}

	if err := s.sectionRepo.Delete(sectionID); err != nil {
		marker.SetError(err)
		return err
	}

	s.logger.Content().Info("Section deleted", "pageId", section.PageID, "sectionId", sectionID)
	s.broadcaster.BroadcastPageUpdated(section.PageID, nil, "")
	return nil
}

// Duplicate clones a section directly below the original.
func (s *SectionService) Duplicate(sectionID, userID string) (*content.SectionNode, error) {
	marker := s.perf.StartOperation("section:duplicate")
	defer s.perf.CompleteOperation(marker)

	original, err := s.guard.Section(sectionID, userID)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	clone, err := s.sectionRepo.Duplicate(sectionID, security.GenerateULID())
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	s.logger.Content().Info("Section duplicated", "pageId", original.PageID, "sectionId", sectionID, "cloneId", clone.ID)
	s.broadcaster.BroadcastPageUpdated(original.PageID, []string{clone.ID}, "")
	return clone, nil
}

// Reorder applies a full permutation of a page's section ids.
func (s *SectionService) Reorder(pageID, userID string, orderedIDs []string) error {
	marker := s.perf.StartOperation("section:reorder")
	defer s.perf.CompleteOperation(marker)

	if _, err := s.guard.Page(pageID, userID); err != nil {
		marker.SetError(err)
		return err
	}

	if err := s.sectionRepo.Reorder(pageID, orderedIDs); err != nil {
		marker.SetError(err)
		return err
	}

	s.logger.Content().Info("Sections reordered", "pageId", pageID, "count", len(orderedIDs))
	s.broadcaster.BroadcastPageUpdated(pageID, orderedIDs, "")
	return nil
}

// Move repositions one section to newPosition.
func (s *SectionService) Move(sectionID, userID string, newPosition int) error {
	marker := s.perf.StartOperation("section:move")
	defer s.perf.CompleteOperation(marker)

	section, err := s.guard.Section(sectionID, userID)
	if err != nil {
		marker.SetError(err)
		return err
	}

	if err := s.sectionRepo.Move(sectionID, newPosition); err != nil {
		marker.SetError(err)
		return err
	}

	s.logger.Content().Info("Section moved", "pageId", section.PageID, "sectionId", sectionID, "newPosition", newPosition)
	s.broadcaster.BroadcastPageUpdated(section.PageID, []string{sectionID}, "")
	return nil
}

// defaultHeaderContent builds a header payload from the page's actual site
// name and page list rather than static defaults.
func (s *SectionService) defaultHeaderContent(page *content.PageNode) (map[string]any, error) {
	site, err := s.siteRepo.FindByID(page.SiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load site for header default: %w", err)
	}

	pages, err := s.pageRepo.FindBySiteID(site.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pages for header default: %w", err)
	}

	links := make([]blocks.NavLink, 0, len(pages))
	for _, sibling := range pages {
		links = append(links, blocks.NavLink{
			Label: sibling.Title,
			URL:   "/" + sibling.Slug,
		})
	}

	return blocks.Encode(blocks.HeaderContent{
		SiteName:     site.Name,
		Links:        links,
		Layout:       "standard",
		ShowLogoText: true,
	}), nil
}
