package content

import (
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/caching"
	schema "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/database"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/security"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID = "user-1"
	testPageID = "page-1"
)

func newTestRepository(t *testing.T) (*SectionRepository, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, schema.NewTableCreator().CreateSchema(db))

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	_, err = db.Exec(`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		testUserID, "owner@example.com", "x", now)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sites (id, user_id, name, slug, created) VALUES (?, ?, ?, ?, ?)`,
		"site-1", testUserID, "Test Site", "test-site", now)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO pages (id, site_id, user_id, title, slug, created) VALUES (?, ?, ?, ?, ?, ?)`,
		testPageID, "site-1", testUserID, "Home", "home", now)
	require.NoError(t, err)

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: false,
		OutputToFile:    false,
		DefaultLevel:    slog.LevelError,
		ChannelLevels:   map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)

	return NewSectionRepository(db, caching.NewContentStore(), logger), db
}

func newSection(id string) *content.SectionNode {
	return &content.SectionNode{
		ID:        id,
		PageID:    testPageID,
		UserID:    testUserID,
		NodeType:  "Section",
		BlockType: "text",
		Content:   map[string]any{"body": "body of " + id, "align": "left"},
		Status:    content.StatusDraft,
		Created:   time.Now().UTC(),
	}
}

func seedSections(t *testing.T, repo *SectionRepository, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, repo.Insert(newSection(id), nil))
	}
}

func pageOrder(t *testing.T, repo *SectionRepository) []string {
	t.Helper()
	sections, err := repo.FindByPageID(testPageID)
	require.NoError(t, err)
	ids := make([]string, len(sections))
	for i, section := range sections {
		require.Equal(t, i, section.Position, "positions must stay dense and zero-based")
		ids[i] = section.ID
	}
	return ids
}

func TestInsertAppendsAtEnd(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b", "c")

	assert.Equal(t, []string{"a", "b", "c"}, pageOrder(t, repo))
}

func TestInsertAtPositionShiftsFollowers(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b", "c")

	pos := 1
	require.NoError(t, repo.Insert(newSection("x"), &pos))

	assert.Equal(t, []string{"a", "x", "b", "c"}, pageOrder(t, repo))
}

func TestInsertAtCountAppends(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b")

	pos := 2
	require.NoError(t, repo.Insert(newSection("x"), &pos))

	assert.Equal(t, []string{"a", "b", "x"}, pageOrder(t, repo))
}

func TestInsertOutOfRangeFails(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b")

	for _, pos := range []int{-1, 3} {
		p := pos
		err := repo.Insert(newSection("x"), &p)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	}
	assert.Equal(t, []string{"a", "b"}, pageOrder(t, repo))
}

func TestDeleteCompactsPositions(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b", "c", "d")

	require.NoError(t, repo.Delete("b"))

	assert.Equal(t, []string{"a", "c", "d"}, pageOrder(t, repo))
}

func TestDeleteMissingSection(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a")

	err := repo.Delete("missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDuplicatePlacesCloneDirectlyBelow(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b", "c")

	clone, err := repo.Duplicate("b", "b-copy")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "b-copy", "c"}, pageOrder(t, repo))
	assert.Equal(t, 2, clone.Position)
	assert.Equal(t, "text", clone.BlockType)
	assert.Nil(t, clone.AnchorID)

	original, err := repo.FindByID("b")
	require.NoError(t, err)
	assert.Equal(t, original.Content, clone.Content)
}

func TestDuplicateDropsAnchor(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a")

	anchor := "intro"
	require.NoError(t, repo.UpdateAnchorID("a", &anchor))

	clone, err := repo.Duplicate("a", "a-copy")
	require.NoError(t, err)
	assert.Nil(t, clone.AnchorID)

	stored, err := repo.FindByID("a-copy")
	require.NoError(t, err)
	assert.Nil(t, stored.AnchorID)
}

func TestMoveForward(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "s0", "s1", "s2", "s3", "s4")

	require.NoError(t, repo.Move("s1", 3))

	assert.Equal(t, []string{"s0", "s2", "s3", "s1", "s4"}, pageOrder(t, repo))
}

func TestMoveBackward(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "s0", "s1", "s2", "s3", "s4")

	require.NoError(t, repo.Move("s3", 1))

	assert.Equal(t, []string{"s0", "s3", "s1", "s2", "s4"}, pageOrder(t, repo))
}

func TestMoveToSamePositionIsNoOp(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b", "c")

	require.NoError(t, repo.Move("b", 1))

	assert.Equal(t, []string{"a", "b", "c"}, pageOrder(t, repo))
}

func TestMoveOutOfRangeFails(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b", "c")

	for _, pos := range []int{-1, 3} {
		err := repo.Move("b", pos)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	}
	assert.Equal(t, []string{"a", "b", "c"}, pageOrder(t, repo))
}

func TestReorderAppliesPermutation(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b", "c", "d")

	require.NoError(t, repo.Reorder(testPageID, []string{"d", "b", "a", "c"}))

	assert.Equal(t, []string{"d", "b", "a", "c"}, pageOrder(t, repo))
}

func TestReorderRejectsBadSets(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b", "c")

	cases := map[string][]string{
		"too short":  {"a", "b"},
		"too long":   {"a", "b", "c", "d"},
		"foreign id": {"a", "b", "x"},
		"duplicate":  {"a", "b", "b"},
	}
	for name, ids := range cases {
		err := repo.Reorder(testPageID, ids)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument, name)
	}

	// A rejected reorder must leave the existing layout untouched.
	assert.Equal(t, []string{"a", "b", "c"}, pageOrder(t, repo))
}

func TestAnchorConflictOnSamePage(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a", "b")

	anchor := "pricing"
	require.NoError(t, repo.UpdateAnchorID("a", &anchor))

	err := repo.UpdateAnchorID("b", &anchor)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAnchorConstraintMapsToConflict(t *testing.T) {
	repo, _ := newTestRepository(t)

	// Insert carries the anchor straight to the row, so the second insert
	// exercises the UNIQUE(page_id, anchor_id) backstop rather than the
	// application-level check.
	anchor := "pricing"
	first := newSection("a")
	first.AnchorID = &anchor
	require.NoError(t, repo.Insert(first, nil))

	second := newSection("b")
	second.AnchorID = &anchor
	err := repo.Insert(second, nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NotErrorIs(t, err, apperrors.ErrStorage)
}

func TestAnchorReusableAcrossPages(t *testing.T) {
	repo, db := newTestRepository(t)
	seedSections(t, repo, "a")

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	_, err := db.Exec(`INSERT INTO pages (id, site_id, user_id, title, slug, created) VALUES (?, ?, ?, ?, ?, ?)`,
		"page-2", "site-1", testUserID, "About", "about", now)
	require.NoError(t, err)

	other := newSection("other")
	other.PageID = "page-2"
	require.NoError(t, repo.Insert(other, nil))

	anchor := "pricing"
	require.NoError(t, repo.UpdateAnchorID("a", &anchor))
	assert.NoError(t, repo.UpdateAnchorID("other", &anchor))
}

func TestAnchorCanBeCleared(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a")

	anchor := "intro"
	require.NoError(t, repo.UpdateAnchorID("a", &anchor))
	require.NoError(t, repo.UpdateAnchorID("a", nil))

	section, err := repo.FindByID("a")
	require.NoError(t, err)
	assert.Nil(t, section.AnchorID)
}

func TestUpdateContentRoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a")

	payload := map[string]any{"body": "updated", "align": "center"}
	require.NoError(t, repo.UpdateContent("a", payload))

	section, err := repo.FindByID("a")
	require.NoError(t, err)
	assert.Equal(t, payload, section.Content)
	require.NotNil(t, section.Changed)
}

func TestUpdateBlockRewritesTypeAndContent(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a")

	payload := map[string]any{"layout": "text", "description": "converted"}
	require.NoError(t, repo.UpdateBlock("a", "hero_primitive", payload))

	section, err := repo.FindByID("a")
	require.NoError(t, err)
	assert.Equal(t, "hero_primitive", section.BlockType)
	assert.Equal(t, payload, section.Content)
}

func TestUpdateMissingSectionReportsNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedSections(t, repo, "a")
	require.NoError(t, repo.Delete("a"))

	err := repo.UpdateContent("a", map[string]any{"body": "ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = repo.UpdateStatus("a", content.StatusPublished)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	anchor := "intro"
	err = repo.UpdateAnchorID("a", &anchor)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindByIDNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.FindByID("missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestInsertGeneratedIDsAreUnique(t *testing.T) {
	repo, _ := newTestRepository(t)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		id := security.GenerateULID()
		require.False(t, seen[id])
		seen[id] = true
		require.NoError(t, repo.Insert(newSection(id), nil))
	}

	sections, err := repo.FindByPageID(testPageID)
	require.NoError(t, err)
	assert.Len(t, sections, 10)
}
