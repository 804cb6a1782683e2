// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"tallerpro/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads are open to any authenticated user; mutations require the
// given area permission.
//
// Usage:
//
//	repo := catalog_repo.NewClientRepo(txManager)
//	service := client.NewService(repo, txManager, num)
//	handler := handlers.NewClientHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/clients"), handler, auth.PermManageCatalogs)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, permission string) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)

	write := middleware.RequirePermission(permission)
	group.POST("", write, handler.Create)
	group.PUT("/:id", write, handler.Update)
	group.DELETE("/:id", write, handler.Delete)
	group.POST("/:id/deletion-mark", write, handler.SetDeletionMark)
}
