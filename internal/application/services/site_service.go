package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	contentrepo "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/security"
)

// SiteService orchestrates site reads and the site-level header/footer
// content that the resolver treats as authoritative.
type SiteService struct {
	guard    *OwnershipGuard
	siteRepo *contentrepo.SiteRepository
	logger   *logging.ChanneledLogger
}

func NewSiteService(guard *OwnershipGuard, siteRepo *contentrepo.SiteRepository, logger *logging.ChanneledLogger) *SiteService {
	return &SiteService{
		guard:    guard,
		siteRepo: siteRepo,
		logger:   logger,
	}
}

// List returns every site the caller owns.
func (s *SiteService) List(userID string) ([]*content.SiteNode, error) {
	return s.siteRepo.FindByUserID(userID)
}

// GetByID returns a site the caller owns.
func (s *SiteService) GetByID(siteID, userID string) (*content.SiteNode, error) {
	return s.guard.Site(siteID, userID)
}

// Create adds a new site. A slug already registered fails with ErrConflict.
func (s *SiteService) Create(userID, name, slug string) (*content.SiteNode, error) {
	if name == "" {
		return nil, fmt.Errorf("site name cannot be empty: %w", apperrors.ErrInvalidArgument)
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("slug %q is not a valid slug: %w", slug, apperrors.ErrInvalidFormat)
	}

	existing, err := s.siteRepo.FindBySlug(slug)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("slug %q already registered: %w", slug, apperrors.ErrConflict)
	}

	site := &content.SiteNode{
		ID:       security.GenerateULID(),
		UserID:   userID,
		NodeType: "Site",
		Name:     name,
		Slug:     slug,
		Created:  time.Now().UTC(),
	}

	if err := s.siteRepo.Store(site); err != nil {
		return nil, err
	}

	s.logger.Content().Info("Site created", "siteId", site.ID, "slug", slug)
	return site, nil
}

// UpdateHeaderContent replaces the site-level header payload.
func (s *SiteService) UpdateHeaderContent(siteID, userID string, payload map[string]any) error {
	if _, err := s.guard.Site(siteID, userID); err != nil {
		return err
	}

	if err := s.siteRepo.UpdateHeaderContent(siteID, payload); err != nil {
		return err
	}

	s.logger.Content().Info("Site header content updated", "siteId", siteID)
	return nil
}

// UpdateFooterContent replaces the site-level footer payload.
func (s *SiteService) UpdateFooterContent(siteID, userID string, payload map[string]any) error {
	if _, err := s.guard.Site(siteID, userID); err != nil {
		return err
	}

	if err := s.siteRepo.UpdateFooterContent(siteID, payload); err != nil {
		return err
	}

	s.logger.Content().Info("Site footer content updated", "siteId", siteID)
	return nil
}
