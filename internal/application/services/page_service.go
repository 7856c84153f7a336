package services

import (
	"fmt"
	"regexp"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/resolve"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	contentrepo "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/security"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// PageFullPayload is the full editorial payload for a page: its metadata,
// ordered sections, and the merged header/footer the renderer should use.
type PageFullPayload struct {
	Page           *content.PageNode      `json:"page"`
	Sections       []*content.SectionNode `json:"sections"`
	ResolvedHeader map[string]any         `json:"resolvedHeader"`
	ResolvedFooter map[string]any         `json:"resolvedFooter"`
}

// PageService orchestrates page reads and CRUD with cache-first repositories.
type PageService struct {
	guard       *OwnershipGuard
	pageRepo    *contentrepo.PageRepository
	siteRepo    *contentrepo.SiteRepository
	sectionRepo *contentrepo.SectionRepository
	logger      *logging.ChanneledLogger
}

func NewPageService(guard *OwnershipGuard, pageRepo *contentrepo.PageRepository, siteRepo *contentrepo.SiteRepository, sectionRepo *contentrepo.SectionRepository, logger *logging.ChanneledLogger) *PageService {
	return &PageService{
		guard:       guard,
		pageRepo:    pageRepo,
		siteRepo:    siteRepo,
		sectionRepo: sectionRepo,
		logger:      logger,
	}
}

// GetByID returns a page's metadata.
func (s *PageService) GetByID(pageID, userID string) (*content.PageNode, error) {
	return s.guard.Page(pageID, userID)
}

// GetFullPayload returns a page with its ordered sections and the merged
// header/footer content.
func (s *PageService) GetFullPayload(pageID, userID string) (*PageFullPayload, error) {
	start := time.Now()

	page, err := s.guard.Page(pageID, userID)
	if err != nil {
		return nil, err
	}

	sections, err := s.sectionRepo.FindByPageID(pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sections for page %s: %w", pageID, err)
	}

	site, err := s.siteRepo.FindByID(page.SiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get site for page %s: %w", pageID, err)
	}

	headerSection, footerSection := resolve.FindSpecialized(sections)
	var pageHeader, pageFooter map[string]any
	if headerSection != nil {
		pageHeader = headerSection.Content
	}
	if footerSection != nil {
		pageFooter = footerSection.Content
	}

	resolvedHeader, err := resolve.Header(site.HeaderContent, pageHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve header for page %s: %w", pageID, err)
	}
	resolvedFooter, err := resolve.Footer(site.FooterContent, pageFooter)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve footer for page %s: %w", pageID, err)
	}

	s.logger.Content().Info("Successfully retrieved full page payload", "pageId", pageID, "sectionCount", len(sections), "duration", time.Since(start))

	return &PageFullPayload{
		Page:           page,
		Sections:       sections,
		ResolvedHeader: resolvedHeader,
		ResolvedFooter: resolvedFooter,
	}, nil
}

// Create adds a new page to a site the caller owns. A slug already used on
// the site fails with ErrConflict.
func (s *PageService) Create(siteID, userID, title, slug string) (*content.PageNode, error) {
	if _, err := s.guard.Site(siteID, userID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("page title cannot be empty: %w", apperrors.ErrInvalidArgument)
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("slug %q is not a valid slug: %w", slug, apperrors.ErrInvalidFormat)
	}

	siblings, err := s.pageRepo.FindBySiteID(siteID)
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if sibling.Slug == slug {
			return nil, fmt.Errorf("slug %q already used on site %s: %w", slug, siteID, apperrors.ErrConflict)
		}
	}

	now := time.Now().UTC()
	page := &content.PageNode{
		ID:       security.GenerateULID(),
		SiteID:   siteID,
		UserID:   userID,
		NodeType: "Page",
		Title:    title,
		Slug:     slug,
		Created:  now,
	}

	if err := s.pageRepo.Store(page); err != nil {
		return nil, err
	}

	s.logger.Content().Info("Page created", "siteId", siteID, "pageId", page.ID, "slug", slug)
	return page, nil
}

// Update rewrites a page's title and slug.
func (s *PageService) Update(pageID, userID, title, slug string) (*content.PageNode, error) {
	page, err := s.guard.Page(pageID, userID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("page title cannot be empty: %w", apperrors.ErrInvalidArgument)
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("slug %q is not a valid slug: %w", slug, apperrors.ErrInvalidFormat)
	}

	page.Title = title
	page.Slug = slug
	if err := s.pageRepo.Update(page); err != nil {
		return nil, err
	}

	s.logger.Content().Info("Page updated", "pageId", pageID, "slug", slug)
	return page, nil
}

// Delete removes a page and its sections.
func (s *PageService) Delete(pageID, userID string) error {
	if _, err := s.guard.Page(pageID, userID); err != nil {
		return err
	}

	if err := s.pageRepo.Delete(pageID); err != nil {
		return err
	}

	s.logger.Content().Info("Page deleted", "pageId", pageID)
	return nil
}
