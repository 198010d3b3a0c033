package router

import (
	"github.com/boardhub/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// BoardRoutes registers the board management endpoints
func BoardRoutes(h *handler.BoardHandler) RouteRegistrar {
	return RegistrarFunc(func(rg *gin.RouterGroup) {
		boards := rg.Group("/boards")
		boards.POST("", h.Create)
		boards.GET("", h.List)
		boards.GET("/:board_id", h.Get)
		boards.PUT("/:board_id", h.Update)
		boards.DELETE("/:board_id", h.Archive)
	})
}

// CategoryRoutes registers the category tree endpoints, nested under the
// owning board
func CategoryRoutes(h *handler.CategoryHandler) RouteRegistrar {
	return RegistrarFunc(func(rg *gin.RouterGroup) {
		categories := rg.Group("/boards/:board_id/categories")
		categories.POST("", h.Create)
		categories.GET("", h.List)
		categories.GET("/tree", h.Tree)
		categories.GET("/roots", h.Roots)
		categories.GET("/:id", h.Get)
		categories.GET("/:id/children", h.Children)
		categories.GET("/:id/subtree", h.Subtree)
		categories.GET("/:id/breadcrumbs", h.Breadcrumbs)
		categories.PUT("/:id", h.Update)
		categories.POST("/:id/move", h.Move)
		categories.POST("/:id/reorder", h.Reorder)
		categories.POST("/:id/activate", h.Activate)
		categories.POST("/:id/deactivate", h.Deactivate)
		categories.DELETE("/:id", h.Delete)
	})
}

// MenuRoutes registers the navigation menu endpoints, nested under the menu
// type
func MenuRoutes(h *handler.MenuHandler) RouteRegistrar {
	return RegistrarFunc(func(rg *gin.RouterGroup) {
		menus := rg.Group("/menus/:menu_type")
		menus.GET("/tree", h.Tree)
		menus.GET("/roots", h.Roots)
		menus.GET("/visible", h.Visible)
		menus.POST("/reorder", h.BulkReorder)
		menus.POST("/bulk-delete", h.BulkDelete)

		items := menus.Group("/items")
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:id", h.Get)
		items.GET("/:id/children", h.Children)
		items.PUT("/:id", h.Update)
		items.POST("/:id/move", h.Move)
		items.POST("/:id/reorder", h.Reorder)
		items.DELETE("/:id", h.Delete)
		items.DELETE("/:id/subtree", h.DeleteSubtree)
	})
}
