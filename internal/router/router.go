package router

import (
	"inventory_catalog_backend/internal/filter"
	"inventory_catalog_backend/internal/handlers"
	"inventory_catalog_backend/internal/middleware"
	"inventory_catalog_backend/internal/services"
	"inventory_catalog_backend/internal/store"

	"github.com/gin-gonic/gin"
)

// Deps carries the externally-constructed collaborators the routes need.
type Deps struct {
	Store             *store.ItemStore
	Engine            *filter.Engine
	Snapshots         filter.SnapshotStore
	AdminUsername     string
	AdminPasswordHash string
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Deps) {
	// Initialize Services
	authService := services.NewAuthService(deps.AdminUsername, deps.AdminPasswordHash)
	catalogService := services.NewCatalogService(deps.Store, deps.Engine)
	exportService := services.NewExportService()

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	itemHandler := handlers.NewItemHandler(catalogService)
	filterHandler := handlers.NewFilterHandler(deps.Engine, deps.Snapshots)
	exportHandler := handlers.NewExportHandler(catalogService, exportService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupItemRoutes(authenticated, itemHandler)
		SetupFilterRoutes(authenticated, filterHandler)
		SetupExportRoutes(authenticated, exportHandler)
	}
}
