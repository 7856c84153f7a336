// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/PageCraftHQ/pagecraft-go/internal/application/container"
	"github.com/PageCraftHQ/pagecraft-go/internal/presentation/http/handlers"
	"github.com/PageCraftHQ/pagecraft-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger)
	siteHandlers := handlers.NewSiteHandlers(container.SiteService, container.Logger)
	pageHandlers := handlers.NewPageHandlers(container.PageService, container.Logger)
	sectionHandlers := handlers.NewSectionHandlers(container.SectionService, container.Logger)
	migrationHandlers := handlers.NewMigrationHandlers(container.MigrationService, container.Logger)
	wsHandlers := handlers.NewWSHandlers(container.PageService, container.Broadcaster, container.Logger)
	dbHandlers := handlers.NewDBHandlers(container.DB, container.Perf, container.Logger)

	r.GET("/api/v1/health", dbHandlers.Health)

	// Public auth routes
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandlers.Register)
		auth.POST("/login", authHandlers.Login)
	}

	// Authenticated API
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(container.Logger))
	{
		api.GET("/auth/status", authHandlers.Status)

		// Sites
		api.GET("/sites", siteHandlers.ListSites)
		api.POST("/sites", siteHandlers.CreateSite)
		api.GET("/sites/:siteId", siteHandlers.GetSite)
		api.PUT("/sites/:siteId/header", siteHandlers.UpdateSiteHeader)
		api.PUT("/sites/:siteId/footer", siteHandlers.UpdateSiteFooter)
		api.POST("/sites/:siteId/pages", pageHandlers.CreatePage)

		// Pages
		api.GET("/pages/:pageId", pageHandlers.GetPage)
		api.PUT("/pages/:pageId", pageHandlers.UpdatePage)
		api.DELETE("/pages/:pageId", pageHandlers.DeletePage)

		// Sections (ordered blocks)
		api.GET("/pages/:pageId/sections", sectionHandlers.GetSections)
		api.POST("/pages/:pageId/sections", sectionHandlers.AddSection)
		api.PUT("/pages/:pageId/sections/reorder", sectionHandlers.ReorderSections)
		api.PUT("/sections/:sectionId/content", sectionHandlers.UpdateSectionContent)
		api.PUT("/sections/:sectionId/status", sectionHandlers.UpdateSectionStatus)
		api.PUT("/sections/:sectionId/anchor", sectionHandlers.UpdateSectionAnchor)
		api.PUT("/sections/:sectionId/move", sectionHandlers.MoveSection)
		api.POST("/sections/:sectionId/duplicate", sectionHandlers.DuplicateSection)
		api.DELETE("/sections/:sectionId", sectionHandlers.DeleteSection)

		// Block conversion
		api.GET("/migration/convertible", migrationHandlers.ListConvertible)
		api.GET("/sections/:sectionId/convertible", migrationHandlers.SectionConvertibility)
		api.POST("/sections/:sectionId/convert", migrationHandlers.ConvertSection)
		api.POST("/pages/:pageId/convert", migrationHandlers.ConvertPage)

		// Editor live updates
		api.GET("/pages/:pageId/watch", wsHandlers.WatchPage)
	}

	return r
}
