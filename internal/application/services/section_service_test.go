package services

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/blocks"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/caching"
	schema "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/database"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/messaging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/performance"
	contentrepo "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/content"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    = "owner"
	intruderID = "intruder"
	siteID     = "site-1"
	pageID     = "page-1"
)

type testEnv struct {
	sections  *SectionService
	pages     *PageService
	migration *MigrationService
	db        *sql.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, schema.NewTableCreator().CreateSchema(db))

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	for _, userID := range []string{ownerID, intruderID} {
		_, err = db.Exec(`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
			userID, userID+"@example.com", "x", now)
		require.NoError(t, err)
	}

	siteHeader, _ := json.Marshal(blocks.Encode(blocks.HeaderContent{
		SiteName:     "Acme",
		Layout:       "standard",
		Sticky:       true,
		ShowLogoText: true,
	}))
	_, err = db.Exec(`INSERT INTO sites (id, user_id, name, slug, header_content, created) VALUES (?, ?, ?, ?, ?, ?)`,
		siteID, ownerID, "Acme", "acme", string(siteHeader), now)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO pages (id, site_id, user_id, title, slug, created) VALUES (?, ?, ?, ?, ?, ?)`,
		pageID, siteID, ownerID, "Home", "home", now)
	require.NoError(t, err)

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: false,
		OutputToFile:    false,
		DefaultLevel:    slog.LevelError,
		ChannelLevels:   map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)

	cache := caching.NewContentStore()
	broadcaster := messaging.NewEditorBroadcaster(logger)
	perf := performance.NewTracker(nil)

	siteRepo := contentrepo.NewSiteRepository(db, cache, logger)
	pageRepo := contentrepo.NewPageRepository(db, cache, logger)
	sectionRepo := contentrepo.NewSectionRepository(db, cache, logger)
	guard := NewOwnershipGuard(siteRepo, pageRepo, sectionRepo)

	return &testEnv{
		sections:  NewSectionService(guard, sectionRepo, pageRepo, siteRepo, broadcaster, perf, logger),
		pages:     NewPageService(guard, pageRepo, siteRepo, sectionRepo, logger),
		migration: NewMigrationService(guard, sectionRepo, broadcaster, perf, logger),
		db:        db,
	}
}

func TestAddSectionDefaultsToDraftWithRegistryContent(t *testing.T) {
	env := newTestEnv(t)

	section, err := env.sections.Add(pageID, ownerID, blocks.TypeText, nil, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, section.ID)
	assert.Equal(t, 0, section.Position)
	assert.Equal(t, content.StatusDraft, section.Status)
	assert.Equal(t, blocks.DefaultContent(blocks.TypeText), section.Content)
}

func TestAddSectionRejectsUnknownBlockType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sections.Add(pageID, ownerID, "carousel", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestAddHeaderSynthesizesSiteAwareDefault(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.pages.Create(siteID, ownerID, "About", "about")
	require.NoError(t, err)

	section, err := env.sections.Add(pageID, ownerID, blocks.TypeHeader, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Acme", section.Content["siteName"])
	links := section.Content["links"].([]any)
	require.Len(t, links, 2)

	urls := make(map[string]bool)
	for _, raw := range links {
		urls[raw.(map[string]any)["url"].(string)] = true
	}
	assert.True(t, urls["/home"])
	assert.True(t, urls["/about"])
}

func TestAddSectionUsesTemplateContentWhenGiven(t *testing.T) {
	env := newTestEnv(t)

	template := map[string]any{"body": "from template", "align": "center"}
	section, err := env.sections.Add(pageID, ownerID, blocks.TypeText, nil, template)
	require.NoError(t, err)
	assert.Equal(t, template, section.Content)
}

func TestSectionOwnershipIsEnforced(t *testing.T) {
	env := newTestEnv(t)

	section, err := env.sections.Add(pageID, ownerID, blocks.TypeText, nil, nil)
	require.NoError(t, err)

	_, err = env.sections.GetByPage(pageID, intruderID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = env.sections.UpdateContent(section.ID, intruderID, map[string]any{"body": "stolen"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = env.sections.Delete(section.ID, intruderID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The owner still sees the untouched section.
	sections, err := env.sections.GetByPage(pageID, ownerID)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.NotEqual(t, "stolen", sections[0].Content["body"])
}

func TestUpdateStatusValidatesState(t *testing.T) {
	env := newTestEnv(t)

	section, err := env.sections.Add(pageID, ownerID, blocks.TypeText, nil, nil)
	require.NoError(t, err)

	err = env.sections.UpdateStatus(section.ID, ownerID, "archived")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	require.NoError(t, env.sections.UpdateStatus(section.ID, ownerID, content.StatusPublished))

	sections, err := env.sections.GetByPage(pageID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, content.StatusPublished, sections[0].Status)
}

func TestUpdateAnchorValidatesFormat(t *testing.T) {
	env := newTestEnv(t)

	section, err := env.sections.Add(pageID, ownerID, blocks.TypeText, nil, nil)
	require.NoError(t, err)

	for _, bad := range []string{"", "1starts-with-digit", "has space", "a" + strings.Repeat("b", 64)} {
		anchor := bad
		err = env.sections.UpdateAnchorID(section.ID, ownerID, &anchor)
		assert.ErrorIs(t, err, apperrors.ErrInvalidFormat, "anchor %q", bad)
	}

	anchor := "valid_anchor-1"
	assert.NoError(t, env.sections.UpdateAnchorID(section.ID, ownerID, &anchor))
}

func TestCreatePageValidatesSlug(t *testing.T) {
	env := newTestEnv(t)

	for _, bad := range []string{"", "Has-Caps", "trailing-", "-leading", "double--dash", "spa ce"} {
		_, err := env.pages.Create(siteID, ownerID, "Title", bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidFormat, "slug %q", bad)
	}

	_, err := env.pages.Create(siteID, ownerID, "Pricing", "pricing")
	require.NoError(t, err)

	_, err = env.pages.Create(siteID, ownerID, "Other", "pricing")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestGetFullPayloadMergesSiteHeader(t *testing.T) {
	env := newTestEnv(t)

	pageHeader := blocks.Encode(blocks.HeaderContent{
		Layout:         "centered",
		OverrideLayout: true,
	})
	_, err := env.sections.Add(pageID, ownerID, blocks.TypeHeader, nil, pageHeader)
	require.NoError(t, err)
	_, err = env.sections.Add(pageID, ownerID, blocks.TypeText, nil, nil)
	require.NoError(t, err)

	payload, err := env.pages.GetFullPayload(pageID, ownerID)
	require.NoError(t, err)

	require.Len(t, payload.Sections, 2)
	assert.Equal(t, "Acme", payload.ResolvedHeader["siteName"])
	assert.Equal(t, "centered", payload.ResolvedHeader["layout"])
	assert.Equal(t, true, payload.ResolvedHeader["sticky"])
	assert.NotNil(t, payload.ResolvedFooter)
}

func TestConvertSectionPersistsSuccessor(t *testing.T) {
	env := newTestEnv(t)

	section, err := env.sections.Add(pageID, ownerID, blocks.TypeCTA, nil, map[string]any{
		"heading":     "Try it",
		"buttonLabel": "Go",
		"buttonUrl":   "/go",
	})
	require.NoError(t, err)

	converted, err := env.migration.ConvertSection(section.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, string(blocks.TypeHeroPrimitive), converted.BlockType)
	assert.Equal(t, "banner", converted.Content["layout"])
	assert.Equal(t, "Try it", converted.Content["heading"])

	stored, err := env.sections.GetByPage(pageID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, string(blocks.TypeHeroPrimitive), stored[0].BlockType)
}

func TestConvertSectionRejectsSpecializedBlocks(t *testing.T) {
	env := newTestEnv(t)

	section, err := env.sections.Add(pageID, ownerID, blocks.TypeHeader, nil, nil)
	require.NoError(t, err)

	_, err = env.migration.ConvertSection(section.ID, ownerID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestConvertPageSkipsNonConvertible(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sections.Add(pageID, ownerID, blocks.TypeHero, nil, nil)
	require.NoError(t, err)
	_, err = env.sections.Add(pageID, ownerID, blocks.TypeContact, nil, nil)
	require.NoError(t, err)
	_, err = env.sections.Add(pageID, ownerID, blocks.TypeImage, nil, nil)
	require.NoError(t, err)

	converted, err := env.migration.ConvertPage(pageID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 2, converted)

	sections, err := env.sections.GetByPage(pageID, ownerID)
	require.NoError(t, err)
	types := []string{sections[0].BlockType, sections[1].BlockType, sections[2].BlockType}
	assert.Equal(t, []string{"hero_primitive", "contact", "media"}, types)

	// A second run finds nothing left to convert.
	converted, err = env.migration.ConvertPage(pageID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 0, converted)
}
