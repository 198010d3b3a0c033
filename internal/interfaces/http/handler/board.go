package handler

import (
	boardapp "github.com/boardhub/backend/internal/application/board"
	"github.com/boardhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// BoardHandler handles board API endpoints
type BoardHandler struct {
	BaseHandler
	boards *boardapp.Service
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boards *boardapp.Service) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// Create handles POST /boards
func (h *BoardHandler) Create(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req boardapp.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.boards.Create(c.Request.Context(), tenant, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /boards/:board_id
func (h *BoardHandler) Get(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, ok := pathUUID(c, "board_id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}

	resp, err := h.boards.GetByID(c.Request.Context(), tenant, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /boards
func (h *BoardHandler) List(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var filter boardapp.BoardListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	boards, total, err := h.boards.List(c.Request.Context(), tenant, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, boards, total, (filter.Page-1)*filter.PageSize, filter.PageSize)
}

// Update handles PUT /boards/:board_id
func (h *BoardHandler) Update(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, ok := pathUUID(c, "board_id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}

	var req boardapp.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.boards.Update(c.Request.Context(), tenant, id, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Archive handles DELETE /boards/:board_id
func (h *BoardHandler) Archive(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, ok := pathUUID(c, "board_id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}

	if err := h.boards.Archive(c.Request.Context(), tenant, id, middleware.GetActor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
