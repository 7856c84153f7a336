// Package content provides the sites repository
package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/caching"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/database"
)

type SiteRepository struct {
	db     *sql.DB
	cache  *caching.ContentStore
	logger *logging.ChanneledLogger
}

func NewSiteRepository(db *sql.DB, cache *caching.ContentStore, logger *logging.ChanneledLogger) *SiteRepository {
	return &SiteRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// FindByID loads a site node, cache-first.
func (r *SiteRepository) FindByID(id string) (*content.SiteNode, error) {
	if site, found := r.cache.GetSite(id); found {
		return site, nil
	}

	site, err := r.loadFromDB(`SELECT id, user_id, name, slug, header_content, footer_content, created, changed
                               FROM sites WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}

	r.cache.SetSite(site)
	return site, nil
}

// FindBySlug loads a site node by its slug.
func (r *SiteRepository) FindBySlug(slug string) (*content.SiteNode, error) {
	site, err := r.loadFromDB(`SELECT id, user_id, name, slug, header_content, footer_content, created, changed
                               FROM sites WHERE slug = ?`, slug)
	if err != nil {
		return nil, err
	}

	r.cache.SetSite(site)
	return site, nil
}

// FindByUserID returns every site owned by a user.
func (r *SiteRepository) FindByUserID(userID string) ([]*content.SiteNode, error) {
	start := time.Now()
	query := `SELECT id FROM sites WHERE user_id = ? ORDER BY name`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites for user: %w: %w", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan site id: %w: %w", apperrors.ErrStorage, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w: %w", apperrors.ErrStorage, err)
	}

	sites := make([]*content.SiteNode, 0, len(ids))
	for _, id := range ids {
		site, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}

	database.CheckAndLogSlowQuery(r.logger, "SITE_FIND_BY_USER", time.Since(start))
	return sites, nil
}

// Store inserts a new site.
func (r *SiteRepository) Store(site *content.SiteNode) error {
	headerJSON := marshalNullable(site.HeaderContent)
	footerJSON := marshalNullable(site.FooterContent)

	query := `INSERT INTO sites (id, user_id, name, slug, header_content, footer_content, created, changed)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var changed any
	if site.Changed != nil {
		changed = site.Changed.Format("2006-01-02 15:04:05")
	}
	_, err := r.db.Exec(query, site.ID, site.UserID, site.Name, site.Slug,
		headerJSON, footerJSON, site.Created.Format("2006-01-02 15:04:05"), changed)
	if err != nil {
		return fmt.Errorf("failed to insert site: %w: %w", apperrors.ErrStorage, err)
	}

	r.cache.SetSite(site)
	return nil
}

// UpdateHeaderContent replaces the site-level header payload.
func (r *SiteRepository) UpdateHeaderContent(id string, payload map[string]any) error {
	return r.updateContentColumn(id, "header_content", payload)
}

// UpdateFooterContent replaces the site-level footer payload.
func (r *SiteRepository) UpdateFooterContent(id string, payload map[string]any) error {
	return r.updateContentColumn(id, "footer_content", payload)
}

func (r *SiteRepository) updateContentColumn(id, column string, payload map[string]any) error {
	start := time.Now()

	var exists bool
	if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM sites WHERE id = ?)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check site %s: %w: %w", id, apperrors.ErrStorage, err)
	}
	if !exists {
		return fmt.Errorf("site %s: %w", id, apperrors.ErrNotFound)
	}

	query := fmt.Sprintf(`UPDATE sites SET %s = ?, changed = ? WHERE id = ?`, column)
	if _, err := r.db.Exec(query, marshalNullable(payload), time.Now().UTC().Format("2006-01-02 15:04:05"), id); err != nil {
		return fmt.Errorf("failed to update site %s: %w: %w", id, apperrors.ErrStorage, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SITE_UPDATE_CONTENT", time.Since(start))
	r.cache.InvalidateSite(id)
	return nil
}

func (r *SiteRepository) loadFromDB(query string, arg any) (*content.SiteNode, error) {
	start := time.Now()
	row := r.db.QueryRow(query, arg)

	var site content.SiteNode
	var headerStr, footerStr sql.NullString
	var createdStr string
	var changed sql.NullString

	err := row.Scan(&site.ID, &site.UserID, &site.Name, &site.Slug, &headerStr, &footerStr, &createdStr, &changed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("site: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan site: %w: %w", apperrors.ErrStorage, err)
	}

	site.NodeType = "Site"
	if headerStr.Valid && headerStr.String != "" {
		if err := json.Unmarshal([]byte(headerStr.String), &site.HeaderContent); err != nil {
			return nil, fmt.Errorf("failed to decode site header content: %w", err)
		}
	}
	if footerStr.Valid && footerStr.String != "" {
		if err := json.Unmarshal([]byte(footerStr.String), &site.FooterContent); err != nil {
			return nil, fmt.Errorf("failed to decode site footer content: %w", err)
		}
	}
	if created, err := time.Parse("2006-01-02 15:04:05", createdStr); err == nil {
		site.Created = created
	}
	if changed.Valid {
		if changedTime, err := time.Parse("2006-01-02 15:04:05", changed.String); err == nil {
			site.Changed = &changedTime
		}
	}

	database.CheckAndLogSlowQuery(r.logger, "SITE_FIND", time.Since(start))
	return &site, nil
}

// marshalNullable serializes a payload, mapping nil to SQL NULL.
func marshalNullable(payload map[string]any) any {
	if payload == nil {
		return nil
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}
