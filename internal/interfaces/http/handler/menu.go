package handler

import (
	navapp "github.com/boardhub/backend/internal/application/navigation"
	"github.com/boardhub/backend/internal/domain/navigation"
	"github.com/boardhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MenuHandler handles menu API endpoints. All routes are nested under a
// menu type (user, site, admin), which is the menu scope.
type MenuHandler struct {
	BaseHandler
	menus *navapp.Service
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(menus *navapp.Service) *MenuHandler {
	return &MenuHandler{menus: menus}
}

// scope parses the tenant and menu type from the request, replying with an
// error response when either is missing
func (h *MenuHandler) scope(c *gin.Context) (uuid.UUID, navigation.MenuType, bool) {
	tenant, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant context required")
		return uuid.Nil, "", false
	}
	menuType := navigation.MenuType(c.Param("menu_type"))
	if !menuType.Valid() {
		h.BadRequest(c, "Invalid menu type")
		return uuid.Nil, "", false
	}
	return tenant, menuType, true
}

// Create handles POST /menus/:menu_type/items
func (h *MenuHandler) Create(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}

	var req navapp.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.menus.Create(c.Request.Context(), tenant, menuType, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /menus/:menu_type/items/:id
func (h *MenuHandler) Get(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID")
		return
	}

	resp, err := h.menus.GetByID(c.Request.Context(), tenant, menuType, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /menus/:menu_type/items, a flat tree-ordered page
func (h *MenuHandler) List(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}

	filter := navapp.MenuListFilter{Limit: 50}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, total, err := h.menus.List(c.Request.Context(), tenant, menuType, filter.Skip, filter.Limit, filter.IncludeInactive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page, total, filter.Skip, filter.Limit)
}

// Children handles GET /menus/:menu_type/items/:id/children
func (h *MenuHandler) Children(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID")
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	children, err := h.menus.GetChildren(c.Request.Context(), tenant, menuType, &id, includeInactive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, children)
}

// Roots handles GET /menus/:menu_type/roots
func (h *MenuHandler) Roots(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	roots, err := h.menus.GetChildren(c.Request.Context(), tenant, menuType, nil, includeInactive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roots)
}

// Tree handles GET /menus/:menu_type/tree, the management view
func (h *MenuHandler) Tree(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	nodes, err := h.menus.GetTree(c.Request.Context(), tenant, menuType, includeInactive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nodes)
}

// Visible handles GET /menus/:menu_type/visible, the viewer-facing tree.
// The viewer class comes from the X-User-ID header: present means
// authenticated.
func (h *MenuHandler) Visible(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}

	authenticated := c.GetHeader(middleware.ActorHeaderKey) != ""
	nodes, err := h.menus.GetVisibleMenu(c.Request.Context(), tenant, menuType, authenticated)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nodes)
}

// Update handles PUT /menus/:menu_type/items/:id
func (h *MenuHandler) Update(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req navapp.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.menus.Update(c.Request.Context(), tenant, menuType, id, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Move handles POST /menus/:menu_type/items/:id/move
func (h *MenuHandler) Move(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req navapp.MoveMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.menus.Move(c.Request.Context(), tenant, menuType, id, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reorder handles POST /menus/:menu_type/items/:id/reorder
func (h *MenuHandler) Reorder(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req navapp.ReorderMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.menus.Reorder(c.Request.Context(), tenant, menuType, id, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BulkReorder handles POST /menus/:menu_type/reorder
func (h *MenuHandler) BulkReorder(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}

	var req navapp.BulkReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	applied, err := h.menus.BulkReorder(c.Request.Context(), tenant, menuType, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"applied": applied})
}

// Delete handles DELETE /menus/:menu_type/items/:id
func (h *MenuHandler) Delete(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID")
		return
	}

	if err := h.menus.Delete(c.Request.Context(), tenant, menuType, id, middleware.GetActor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteSubtree handles DELETE /menus/:menu_type/items/:id/subtree
func (h *MenuHandler) DeleteSubtree(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID")
		return
	}

	deleted, err := h.menus.DeleteSubtree(c.Request.Context(), tenant, menuType, id, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": deleted})
}

// BulkDelete handles POST /menus/:menu_type/bulk-delete
func (h *MenuHandler) BulkDelete(c *gin.Context) {
	tenant, menuType, ok := h.scope(c)
	if !ok {
		return
	}

	var req navapp.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deleted, err := h.menus.BulkDelete(c.Request.Context(), tenant, menuType, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": deleted})
}
