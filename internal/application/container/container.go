// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/PageCraftHQ/pagecraft-go/internal/application/services"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/caching"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/messaging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/performance"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/database"
	contentrepo "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/content"
	userrepo "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/user"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	AuthService      *services.AuthService
	SiteService      *services.SiteService
	PageService      *services.PageService
	SectionService   *services.SectionService
	MigrationService *services.MigrationService

	// Repositories
	SiteRepo    *contentrepo.SiteRepository
	PageRepo    *contentrepo.PageRepository
	SectionRepo *contentrepo.SectionRepository
	UserRepo    *userrepo.UserRepository

	// Infrastructure
	DB          *database.DB
	Cache       *caching.ContentStore
	Broadcaster *messaging.EditorBroadcaster
	Perf        *performance.Tracker
	Logger      *logging.ChanneledLogger
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, logger *logging.ChanneledLogger) *Container {
	cache := caching.NewContentStore()
	broadcaster := messaging.NewEditorBroadcaster(logger)
	perf := performance.NewTracker(nil)

	siteRepo := contentrepo.NewSiteRepository(db.DB, cache, logger)
	pageRepo := contentrepo.NewPageRepository(db.DB, cache, logger)
	sectionRepo := contentrepo.NewSectionRepository(db.DB, cache, logger)
	users := userrepo.NewUserRepository(db.DB, logger)

	guard := services.NewOwnershipGuard(siteRepo, pageRepo, sectionRepo)

	return &Container{
		AuthService:      services.NewAuthService(users, logger),
		SiteService:      services.NewSiteService(guard, siteRepo, logger),
		PageService:      services.NewPageService(guard, pageRepo, siteRepo, sectionRepo, logger),
		SectionService:   services.NewSectionService(guard, sectionRepo, pageRepo, siteRepo, broadcaster, perf, logger),
		MigrationService: services.NewMigrationService(guard, sectionRepo, broadcaster, perf, logger),

		SiteRepo:    siteRepo,
		PageRepo:    pageRepo,
		SectionRepo: sectionRepo,
		UserRepo:    users,

		DB:          db,
		Cache:       cache,
		Broadcaster: broadcaster,
		Perf:        perf,
		Logger:      logger,
	}
}
