package handler

import (
	categoryapp "github.com/boardhub/backend/internal/application/category"
	"github.com/boardhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler handles category API endpoints. All routes are nested
// under a board, which is the category scope.
type CategoryHandler struct {
	BaseHandler
	categories *categoryapp.Service
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories *categoryapp.Service) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// scope parses the tenant and board from the request, replying with an
// error response when either is missing
func (h *CategoryHandler) scope(c *gin.Context) (tenant, board uuid.UUID, ok bool) {
	tenant, ok = tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant context required")
		return uuid.Nil, uuid.Nil, false
	}
	board, ok = pathUUID(c, "board_id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return uuid.Nil, uuid.Nil, false
	}
	return tenant, board, true
}

// Create handles POST /boards/:board_id/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}

	var req categoryapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.categories.Create(c.Request.Context(), tenant, board, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /boards/:board_id/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	resp, err := h.categories.GetByID(c.Request.Context(), tenant, board, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /boards/:board_id/categories, a flat tree-ordered page
func (h *CategoryHandler) List(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}

	filter := categoryapp.CategoryListFilter{Limit: 50}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, total, err := h.categories.List(c.Request.Context(), tenant, board, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page, total, filter.Skip, filter.Limit)
}

// Tree handles GET /boards/:board_id/categories/tree
func (h *CategoryHandler) Tree(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	nodes, err := h.categories.GetTree(c.Request.Context(), tenant, board, includeInactive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nodes)
}

// Children handles GET /boards/:board_id/categories/:id/children
func (h *CategoryHandler) Children(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	children, err := h.categories.GetChildren(c.Request.Context(), tenant, board, &id, includeInactive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, children)
}

// Roots handles GET /boards/:board_id/categories/roots
func (h *CategoryHandler) Roots(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	roots, err := h.categories.GetChildren(c.Request.Context(), tenant, board, nil, includeInactive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roots)
}

// Subtree handles GET /boards/:board_id/categories/:id/subtree
func (h *CategoryHandler) Subtree(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	subtree, err := h.categories.GetSubtree(c.Request.Context(), tenant, board, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subtree)
}

// Breadcrumbs handles GET /boards/:board_id/categories/:id/breadcrumbs
func (h *CategoryHandler) Breadcrumbs(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	chain, err := h.categories.GetBreadcrumbs(c.Request.Context(), tenant, board, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, chain)
}

// Update handles PUT /boards/:board_id/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req categoryapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.categories.Update(c.Request.Context(), tenant, board, id, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Move handles POST /boards/:board_id/categories/:id/move
func (h *CategoryHandler) Move(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req categoryapp.MoveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.categories.Move(c.Request.Context(), tenant, board, id, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reorder handles POST /boards/:board_id/categories/:id/reorder
func (h *CategoryHandler) Reorder(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req categoryapp.ReorderCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.categories.Reorder(c.Request.Context(), tenant, board, id, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate handles POST /boards/:board_id/categories/:id/activate
func (h *CategoryHandler) Activate(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	resp, err := h.categories.Activate(c.Request.Context(), tenant, board, id, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate handles POST /boards/:board_id/categories/:id/deactivate
func (h *CategoryHandler) Deactivate(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	resp, err := h.categories.Deactivate(c.Request.Context(), tenant, board, id, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /boards/:board_id/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	tenant, board, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categories.Delete(c.Request.Context(), tenant, board, id, middleware.GetActor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
