package router

import (
	"inventory_catalog_backend/internal/handlers"
	"inventory_catalog_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh-token", authHandler.RefreshToken)
	}
}

// SetupItemRoutes sets up the catalog item routes. Destructive and bulk
// operations are restricted to the Admin role.
func SetupItemRoutes(authenticatedGroup *gin.RouterGroup, itemHandler *handlers.ItemHandler) {
	itemRoutes := authenticatedGroup.Group("/items")
	{
		itemRoutes.POST("", itemHandler.CreateItem)
		itemRoutes.GET("", itemHandler.GetItems)
		itemRoutes.GET("/stats", itemHandler.GetStats)
		itemRoutes.GET("/:id", itemHandler.GetItemByID)
		itemRoutes.PATCH("/:id", itemHandler.UpdateItem)
		itemRoutes.DELETE("/:id", middleware.RoleAuthMiddleware("Admin"), itemHandler.DeleteItem)
		itemRoutes.POST("/import", middleware.RoleAuthMiddleware("Admin"), itemHandler.ImportItems)
	}
}

// SetupFilterRoutes sets up the filter-state routes.
func SetupFilterRoutes(authenticatedGroup *gin.RouterGroup, filterHandler *handlers.FilterHandler) {
	filterRoutes := authenticatedGroup.Group("/filter-state")
	{
		filterRoutes.GET("", filterHandler.GetFilterState)
		filterRoutes.PUT("", filterHandler.PutFilterState)
		filterRoutes.POST("/load", filterHandler.LoadFilterState)
		filterRoutes.DELETE("", filterHandler.ClearFilterState)
		filterRoutes.GET("/summary", filterHandler.GetFilterSummary)
	}
}

// SetupExportRoutes sets up the export routes.
func SetupExportRoutes(authenticatedGroup *gin.RouterGroup, exportHandler *handlers.ExportHandler) {
	exportRoutes := authenticatedGroup.Group("/export")
	{
		exportRoutes.GET("/csv", exportHandler.ExportCSV)
		exportRoutes.GET("/json", exportHandler.ExportJSON)
		exportRoutes.GET("/xlsx", exportHandler.ExportXLSX)
		exportRoutes.GET("/print", exportHandler.ExportPrint)
	}
}
