// Package database provides schema instantiation
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/security"
)

// TableCreator handles the creation of the database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the database tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedInitialContent adds the default site and page a fresh install needs.
func (tc *TableCreator) SeedInitialContent(db *sql.DB, ownerID string) error {
	// Idempotently create the default "hello" site.
	var siteID string
	err := db.QueryRow("SELECT id FROM sites WHERE slug = 'hello'").Scan(&siteID)
	if err == sql.ErrNoRows {
		siteID = security.GenerateULID()
		now := time.Now().UTC().Format("2006-01-02 15:04:05")
		_, err = db.Exec(`INSERT INTO sites (id, user_id, name, slug, created) VALUES (?, ?, ?, ?, ?)`,
			siteID, ownerID, "My Site", "hello", now)
		if err != nil {
			return fmt.Errorf("failed to insert default site: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check for default site: %w", err)
	}

	// Idempotently create the default "home" page.
	var pageExists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pages WHERE site_id = ? AND slug = 'home')", siteID).Scan(&pageExists)
	if err != nil {
		return fmt.Errorf("failed to check for page existence: %w", err)
	}

	if !pageExists {
		pageID := security.GenerateULID()
		now := time.Now().UTC().Format("2006-01-02 15:04:05")
		_, err = db.Exec(`INSERT INTO pages (id, site_id, user_id, title, slug, created, changed) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			pageID, siteID, ownerID, "Home", "home", now, now)
		if err != nil {
			return fmt.Errorf("failed to insert default page: %w", err)
		}
	}

	return nil
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS users (id TEXT PRIMARY KEY, email TEXT NOT NULL UNIQUE, password_hash TEXT NOT NULL, display_name TEXT, created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS sites (id TEXT PRIMARY KEY, user_id TEXT NOT NULL REFERENCES users(id), name TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, header_content TEXT, footer_content TEXT, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS pages (id TEXT PRIMARY KEY, site_id TEXT NOT NULL REFERENCES sites(id), user_id TEXT NOT NULL REFERENCES users(id), title TEXT NOT NULL, slug TEXT NOT NULL, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP, UNIQUE(site_id, slug))`,
	`CREATE TABLE IF NOT EXISTS sections (id TEXT PRIMARY KEY, page_id TEXT NOT NULL REFERENCES pages(id), user_id TEXT NOT NULL REFERENCES users(id), block_type TEXT NOT NULL, content TEXT NOT NULL, position INTEGER NOT NULL, status TEXT NOT NULL DEFAULT 'draft', anchor_id TEXT, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP, UNIQUE(page_id, anchor_id))`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	`CREATE INDEX IF NOT EXISTS idx_sites_user_id ON sites(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sites_slug ON sites(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_pages_site_id ON pages(site_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pages_user_id ON pages(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_page_id ON sections(page_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_user_id ON sections(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_position ON sections(page_id, position)`,
}
