// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"fmt"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	contentrepo "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/content"
)

// OwnershipGuard resolves whether a caller owns a page, site, or section.
// Every mutation starts here; a missing row and a foreign row are both
// reported as ErrNotFound so callers cannot probe for other users' content.
type OwnershipGuard struct {
	siteRepo    *contentrepo.SiteRepository
	pageRepo    *contentrepo.PageRepository
	sectionRepo *contentrepo.SectionRepository
}

func NewOwnershipGuard(siteRepo *contentrepo.SiteRepository, pageRepo *contentrepo.PageRepository, sectionRepo *contentrepo.SectionRepository) *OwnershipGuard {
	return &OwnershipGuard{
		siteRepo:    siteRepo,
		pageRepo:    pageRepo,
		sectionRepo: sectionRepo,
	}
}

// Site returns the site only when userID owns it.
func (g *OwnershipGuard) Site(siteID, userID string) (*content.SiteNode, error) {
	site, err := g.siteRepo.FindByID(siteID)
	if err != nil {
		return nil, err
	}
	if site.UserID != userID {
		return nil, fmt.Errorf("site %s: %w", siteID, apperrors.ErrNotFound)
	}
	return site, nil
}

// Page returns the page only when userID owns it.
func (g *OwnershipGuard) Page(pageID, userID string) (*content.PageNode, error) {
	page, err := g.pageRepo.FindByID(pageID)
	if err != nil {
		return nil, err
	}
	if page.UserID != userID {
		return nil, fmt.Errorf("page %s: %w", pageID, apperrors.ErrNotFound)
	}
	return page, nil
}

// Section returns the section only when userID owns its page.
func (g *OwnershipGuard) Section(sectionID, userID string) (*content.SectionNode, error) {
	section, err := g.sectionRepo.FindByID(sectionID)
	if err != nil {
		return nil, err
	}
	if section.UserID != userID {
		return nil, fmt.Errorf("section %s: %w", sectionID, apperrors.ErrNotFound)
	}
	return section, nil
}
