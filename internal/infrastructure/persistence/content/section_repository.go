// Package content provides the sections repository. Every operation that
// reads current positions and then writes new ones runs inside a single
// transaction so concurrent movers can never observe or commit a sparse
// layout.
package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/caching"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/database"
)

type SectionRepository struct {
	db     *sql.DB
	cache  *caching.ContentStore
	logger *logging.ChanneledLogger
}

func NewSectionRepository(db *sql.DB, cache *caching.ContentStore, logger *logging.ChanneledLogger) *SectionRepository {
	return &SectionRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// FindByID loads a single section. Returns ErrNotFound when no row exists.
func (r *SectionRepository) FindByID(id string) (*content.SectionNode, error) {
	start := time.Now()
	query := `SELECT id, page_id, user_id, block_type, content, position, status, anchor_id, created, changed
              FROM sections WHERE id = ?`

	section, err := scanSection(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("section %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load section %s: %w: %w", id, apperrors.ErrStorage, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SECTION_FIND_BY_ID", time.Since(start))
	return section, nil
}

// FindByPageID returns a page's sections ordered by position, cache-first.
func (r *SectionRepository) FindByPageID(pageID string) ([]*content.SectionNode, error) {
	if sections, found := r.cache.GetPageSections(pageID); found {
		return sections, nil
	}

	start := time.Now()
	query := `SELECT id, page_id, user_id, block_type, content, position, status, anchor_id, created, changed
              FROM sections WHERE page_id = ? ORDER BY position`

	rows, err := r.db.Query(query, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections for page %s: %w: %w", pageID, apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var sections []*content.SectionNode
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w: %w", apperrors.ErrStorage, err)
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w: %w", apperrors.ErrStorage, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SECTION_FIND_BY_PAGE", time.Since(start))
	r.cache.SetPageSections(pageID, sections)
	return sections, nil
}

// Insert stores a new section. A nil requestedPosition appends; otherwise
// every existing section at or above the requested position shifts up by one
// before the insert so the new row never collides.
func (r *SectionRepository) Insert(section *content.SectionNode, requestedPosition *int) error {
	start := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w: %w", apperrors.ErrStorage, err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM sections WHERE page_id = ?`, section.PageID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count sections for page %s: %w: %w", section.PageID, apperrors.ErrStorage, err)
	}

	position := count
	if requestedPosition != nil {
		position = *requestedPosition
		if position < 0 || position > count {
			return fmt.Errorf("position %d out of range [0, %d]: %w", position, count, apperrors.ErrInvalidArgument)
		}
		_, err := tx.Exec(`UPDATE sections SET position = position + 1 WHERE page_id = ? AND position >= ?`,
			section.PageID, position)
		if err != nil {
			return fmt.Errorf("failed to shift sections for insert: %w: %w", apperrors.ErrStorage, err)
		}
	}
	section.Position = position

	contentJSON, _ := json.Marshal(section.Content)
	_, err = tx.Exec(`INSERT INTO sections (id, page_id, user_id, block_type, content, position, status, anchor_id, created, changed)
                      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		section.ID, section.PageID, section.UserID, section.BlockType, string(contentJSON),
		section.Position, string(section.Status), section.AnchorID,
		section.Created.Format("2006-01-02 15:04:05"), formatNullableTime(section.Changed))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("anchor already used on page %s: %w", section.PageID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to insert section: %w: %w", apperrors.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit section insert: %w: %w", apperrors.ErrStorage, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SECTION_INSERT", time.Since(start))
	r.cache.InvalidatePage(section.PageID)
	return nil
}

// UpdateContent replaces a section's content verbatim. Touches exactly one
// row; safe to call at autosave frequency.
func (r *SectionRepository) UpdateContent(id string, payload map[string]any) error {
	contentJSON, _ := json.Marshal(payload)
	return r.updateSingleRow(id, `UPDATE sections SET content = ?, changed = ? WHERE id = ?`,
		string(contentJSON), time.Now().UTC().Format("2006-01-02 15:04:05"), id)
}

// UpdateBlock rewrites a section's block type and content together. Used by
// the migration path when a legacy block is upgraded to its successor.
func (r *SectionRepository) UpdateBlock(id, blockType string, payload map[string]any) error {
	contentJSON, _ := json.Marshal(payload)
	return r.updateSingleRow(id, `UPDATE sections SET block_type = ?, content = ?, changed = ? WHERE id = ?`,
		blockType, string(contentJSON), time.Now().UTC().Format("2006-01-02 15:04:05"), id)
}

// UpdateStatus sets a section's publishing state.
func (r *SectionRepository) UpdateStatus(id string, status content.SectionStatus) error {
	return r.updateSingleRow(id, `UPDATE sections SET status = ?, changed = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format("2006-01-02 15:04:05"), id)
}

// UpdateAnchorID sets or clears a section's anchor. A non-nil anchor held by
// another section on the same page fails with ErrConflict. The uniqueness
// check and the write share one transaction; a writer racing past the check
// hits the UNIQUE(page_id, anchor_id) constraint, which is reported as
// ErrConflict as well.
func (r *SectionRepository) UpdateAnchorID(id string, anchorID *string) error {
	start := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w: %w", apperrors.ErrStorage, err)
	}
	defer tx.Rollback()

	var pageID string
	err = tx.QueryRow(`SELECT page_id FROM sections WHERE id = ?`, id).Scan(&pageID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("section %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to load section %s: %w: %w", id, apperrors.ErrStorage, err)
	}

	if anchorID != nil {
		var taken bool
		query := `SELECT EXISTS(SELECT 1 FROM sections WHERE page_id = ? AND anchor_id = ? AND id != ?)`
		if err := tx.QueryRow(query, pageID, *anchorID, id).Scan(&taken); err != nil {
			return fmt.Errorf("failed to check anchor uniqueness: %w: %w", apperrors.ErrStorage, err)
		}
		if taken {
			return fmt.Errorf("anchor %q already used on page %s: %w", *anchorID, pageID, apperrors.ErrConflict)
		}
	}

	_, err = tx.Exec(`UPDATE sections SET anchor_id = ?, changed = ? WHERE id = ?`,
		anchorID, time.Now().UTC().Format("2006-01-02 15:04:05"), id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("anchor already used on page %s: %w", pageID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to update section %s: %w: %w", id, apperrors.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit anchor update: %w: %w", apperrors.ErrStorage, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SECTION_UPDATE_ANCHOR", time.Since(start))
	r.cache.InvalidatePage(pageID)
	return nil
}

// Delete removes a section and compacts the positions above it.
func (r *SectionRepository) Delete(id string) error {
	start := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w: %w", apperrors.ErrStorage, err)
	}
	defer tx.Rollback()

	var pageID string
	var position int
	err = tx.QueryRow(`SELECT page_id, position FROM sections WHERE id = ?`, id).Scan(&pageID, &position)
	if err == sql.ErrNoRows {
		return fmt.Errorf("section %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to load section %s: %w: %w", id, apperrors.ErrStorage, err)
	}

	if _, err := tx.Exec(`DELETE FROM sections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete section: %w: %w", apperrors.ErrStorage, err)
	}

	_, err = tx.Exec(`UPDATE sections SET position = position - 1 WHERE page_id = ? AND position > ?`,
		pageID, position)
	if err != nil {
		return fmt.Errorf("failed to compact positions after delete: %w: %w", apperrors.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit section delete: %w: %w", apperrors.ErrStorage, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SECTION_DELETE", time.Since(start))
	r.cache.InvalidatePage(pageID)
	return nil
}

// Duplicate clones a section directly below the original. The clone carries
// byte-identical content and block type, a fresh id, and no anchor, since
// anchors are unique per page.
func (r *SectionRepository) Duplicate(id, newID string) (*content.SectionNode, error) {
	start := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w: %w", apperrors.ErrStorage, err)
	}
	defer tx.Rollback()

	query := `SELECT id, page_id, user_id, block_type, content, position, status, anchor_id, created, changed
              FROM sections WHERE id = ?`
	original, err := scanSection(tx.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("section %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load section %s: %w: %w", id, apperrors.ErrStorage, err)
	}

	_, err = tx.Exec(`UPDATE sections SET position = position + 1 WHERE page_id = ? AND position > ?`,
		original.PageID, original.Position)
	if err != nil {
		return nil, fmt.Errorf("failed to shift sections for duplicate: %w: %w", apperrors.ErrStorage, err)
	}

	now := time.Now().UTC()
	clone := &content.SectionNode{
		ID:        newID,
		PageID:    original.PageID,
		UserID:    original.UserID,
		NodeType:  "Section",
		BlockType: original.BlockType,
		Content:   original.Content,
		Position:  original.Position + 1,
		Status:    original.Status,
		Created:   now,
	}

	contentJSON, _ := json.Marshal(clone.Content)
	_, err = tx.Exec(`INSERT INTO sections (id, page_id, user_id, block_type, content, position, status, anchor_id, created)
                      VALUES (?, ?, ?, ?, ?, ?, ?, NULL, ?)`,
		clone.ID, clone.PageID, clone.UserID, clone.BlockType, string(contentJSON),
		clone.Position, string(clone.Status), clone.Created.Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, fmt.Errorf("failed to insert duplicated section: %w: %w", apperrors.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit section duplicate: %w: %w", apperrors.ErrStorage, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SECTION_DUPLICATE", time.Since(start))
	r.cache.InvalidatePage(clone.PageID)
	return clone, nil
}

// Reorder writes position = index for a full permutation of the page's
// section ids. A supplied set that is not exactly the page's current id set
// fails with ErrInvalidArgument before any write.
func (r *SectionRepository) Reorder(pageID string, orderedIDs []string) error {
	start := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w: %w", apperrors.ErrStorage, err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT id FROM sections WHERE page_id = ?`, pageID)
	if err != nil {
		return fmt.Errorf("failed to query section ids for page %s: %w: %w", pageID, apperrors.ErrStorage, err)
	}
	existing := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan section id: %w: %w", apperrors.ErrStorage, err)
		}
		existing[id] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("row iteration error: %w: %w", apperrors.ErrStorage, err)
	}
	rows.Close()

	if len(orderedIDs) != len(existing) {
		return fmt.Errorf("reorder set has %d ids, page has %d sections: %w",
			len(orderedIDs), len(existing), apperrors.ErrInvalidArgument)
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !existing[id] {
			return fmt.Errorf("section %s does not belong to page %s: %w", id, pageID, apperrors.ErrInvalidArgument)
		}
		if seen[id] {
			return fmt.Errorf("section %s appears twice in reorder set: %w", id, apperrors.ErrInvalidArgument)
		}
		seen[id] = true
	}

	for index, id := range orderedIDs {
		if _, err := tx.Exec(`UPDATE sections SET position = ? WHERE id = ?`, index, id); err != nil {
			return fmt.Errorf("failed to write position for section %s: %w: %w", id, apperrors.ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w: %w", apperrors.ErrStorage, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SECTION_REORDER", time.Since(start))
	r.cache.InvalidatePage(pageID)
	return nil
}

// Move repositions one section. Moving forward shifts the range
// (oldPosition, newPosition] down by one; moving backward shifts
// [newPosition, oldPosition) up by one. Out-of-range targets fail with
// ErrInvalidArgument rather than clamping.
func (r *SectionRepository) Move(id string, newPosition int) error {
	start := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w: %w", apperrors.ErrStorage, err)
	}
	defer tx.Rollback()

	var pageID string
	var oldPosition int
	err = tx.QueryRow(`SELECT page_id, position FROM sections WHERE id = ?`, id).Scan(&pageID, &oldPosition)
	if err == sql.ErrNoRows {
		return fmt.Errorf("section %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to load section %s: %w: %w", id, apperrors.ErrStorage, err)
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM sections WHERE page_id = ?`, pageID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count sections for page %s: %w: %w", pageID, apperrors.ErrStorage, err)
	}
	if newPosition < 0 || newPosition >= count {
		return fmt.Errorf("position %d out of range [0, %d]: %w", newPosition, count-1, apperrors.ErrInvalidArgument)
	}

	if newPosition == oldPosition {
		return nil
	}

	if newPosition > oldPosition {
		_, err = tx.Exec(`UPDATE sections SET position = position - 1 WHERE page_id = ? AND position > ? AND position <= ?`,
			pageID, oldPosition, newPosition)
	} else {
		_, err = tx.Exec(`UPDATE sections SET position = position + 1 WHERE page_id = ? AND position >= ? AND position < ?`,
			pageID, newPosition, oldPosition)
	}
	if err != nil {
		return fmt.Errorf("failed to shift sections for move: %w: %w", apperrors.ErrStorage, err)
	}

	if _, err := tx.Exec(`UPDATE sections SET position = ? WHERE id = ?`, newPosition, id); err != nil {
		return fmt.Errorf("failed to write moved position: %w: %w", apperrors.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move: %w: %w", apperrors.ErrStorage, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SECTION_MOVE", time.Since(start))
	r.cache.InvalidatePage(pageID)
	return nil
}

// updateSingleRow runs a one-row update keyed by section id and invalidates
// the owning page. A statement that matches no row reports ErrNotFound, which
// also covers a section deleted between a caller's checks and the write.
func (r *SectionRepository) updateSingleRow(id, query string, args ...any) error {
	start := time.Now()

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update section %s: %w: %w", id, apperrors.ErrStorage, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result for section %s: %w: %w", id, apperrors.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("section %s: %w", id, apperrors.ErrNotFound)
	}

	database.CheckAndLogSlowQuery(r.logger, "SECTION_UPDATE", time.Since(start))

	// A section deleted after the update already had its page invalidated by
	// the deleter.
	var pageID string
	if err := r.db.QueryRow(`SELECT page_id FROM sections WHERE id = ?`, id).Scan(&pageID); err == nil {
		r.cache.InvalidatePage(pageID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure. Both
// the sqlite3 and libsql drivers surface SQLite's message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// formatNullableTime maps a nil timestamp to SQL NULL.
func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02 15:04:05")
}

func scanSection(row rowScanner) (*content.SectionNode, error) {
	var section content.SectionNode
	var contentStr string
	var status string
	var anchorID sql.NullString
	var createdStr string
	var changed sql.NullString

	err := row.Scan(&section.ID, &section.PageID, &section.UserID, &section.BlockType,
		&contentStr, &section.Position, &status, &anchorID, &createdStr, &changed)
	if err != nil {
		return nil, err
	}

	section.NodeType = "Section"
	section.Status = content.SectionStatus(status)
	if anchorID.Valid {
		section.AnchorID = &anchorID.String
	}
	if created, err := time.Parse("2006-01-02 15:04:05", createdStr); err == nil {
		section.Created = created
	}
	if changed.Valid {
		if changedTime, err := time.Parse("2006-01-02 15:04:05", changed.String); err == nil {
			section.Changed = &changedTime
		}
	}
	if err := json.Unmarshal([]byte(contentStr), &section.Content); err != nil {
		return nil, fmt.Errorf("failed to decode section content: %w", err)
	}

	return &section, nil
}
