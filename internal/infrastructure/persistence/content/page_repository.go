// Package content provides the pages repository
package content

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/caching"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/database"
)

type PageRepository struct {
	db     *sql.DB
	cache  *caching.ContentStore
	logger *logging.ChanneledLogger
}

func NewPageRepository(db *sql.DB, cache *caching.ContentStore, logger *logging.ChanneledLogger) *PageRepository {
	return &PageRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// FindByID loads a page with its ordered section id list, cache-first.
func (r *PageRepository) FindByID(id string) (*content.PageNode, error) {
	if page, found := r.cache.GetPage(id); found {
		return page, nil
	}

	page, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}

	r.cache.SetPage(page)
	return page, nil
}

// FindBySiteID returns every page of a site ordered by title.
func (r *PageRepository) FindBySiteID(siteID string) ([]*content.PageNode, error) {
	start := time.Now()
	query := `SELECT id FROM pages WHERE site_id = ? ORDER BY title`

	rows, err := r.db.Query(query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages for site %s: %w: %w", siteID, apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan page id: %w: %w", apperrors.ErrStorage, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w: %w", apperrors.ErrStorage, err)
	}

	pages := make([]*content.PageNode, 0, len(ids))
	for _, id := range ids {
		page, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	database.CheckAndLogSlowQuery(r.logger, "PAGE_FIND_BY_SITE", time.Since(start))
	return pages, nil
}

// Store inserts a new page.
func (r *PageRepository) Store(page *content.PageNode) error {
	query := `INSERT INTO pages (id, site_id, user_id, title, slug, created, changed)
              VALUES (?, ?, ?, ?, ?, ?, ?)`

	var changed any
	if page.Changed != nil {
		changed = page.Changed.Format("2006-01-02 15:04:05")
	}
	_, err := r.db.Exec(query, page.ID, page.SiteID, page.UserID, page.Title, page.Slug,
		page.Created.Format("2006-01-02 15:04:05"), changed)
	if err != nil {
		return fmt.Errorf("failed to insert page: %w: %w", apperrors.ErrStorage, err)
	}

	r.cache.SetPage(page)
	return nil
}

// Update rewrites a page's title and slug.
func (r *PageRepository) Update(page *content.PageNode) error {
	query := `UPDATE pages SET title = ?, slug = ?, changed = ? WHERE id = ?`

	_, err := r.db.Exec(query, page.Title, page.Slug, time.Now().UTC().Format("2006-01-02 15:04:05"), page.ID)
	if err != nil {
		return fmt.Errorf("failed to update page: %w: %w", apperrors.ErrStorage, err)
	}

	r.cache.InvalidatePage(page.ID)
	return nil
}

// Delete removes a page and all of its sections.
func (r *PageRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w: %w", apperrors.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sections WHERE page_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete sections for page %s: %w: %w", id, apperrors.ErrStorage, err)
	}
	if _, err := tx.Exec(`DELETE FROM pages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete page %s: %w: %w", id, apperrors.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit page delete: %w: %w", apperrors.ErrStorage, err)
	}

	r.cache.InvalidatePage(id)
	return nil
}

func (r *PageRepository) loadFromDB(id string) (*content.PageNode, error) {
	start := time.Now()
	query := `SELECT id, site_id, user_id, title, slug, created, changed FROM pages WHERE id = ?`

	row := r.db.QueryRow(query, id)

	var page content.PageNode
	var createdStr string
	var changed sql.NullString

	err := row.Scan(&page.ID, &page.SiteID, &page.UserID, &page.Title, &page.Slug, &createdStr, &changed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("page %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan page: %w: %w", apperrors.ErrStorage, err)
	}

	page.NodeType = "Page"
	if created, err := time.Parse("2006-01-02 15:04:05", createdStr); err == nil {
		page.Created = created
	}
	if changed.Valid {
		if changedTime, err := time.Parse("2006-01-02 15:04:05", changed.String); err == nil {
			page.Changed = &changedTime
		}
	}

	sectionIDs, err := r.loadSectionIDs(id)
	if err != nil {
		return nil, err
	}
	page.SectionIDs = sectionIDs

	database.CheckAndLogSlowQuery(r.logger, "PAGE_FIND_BY_ID", time.Since(start))
	return &page, nil
}

func (r *PageRepository) loadSectionIDs(pageID string) ([]string, error) {
	query := `SELECT id FROM sections WHERE page_id = ? ORDER BY position`

	rows, err := r.db.Query(query, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query section ids for page %s: %w: %w", pageID, apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan section id: %w: %w", apperrors.ErrStorage, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w: %w", apperrors.ErrStorage, err)
	}

	return ids, nil
}
