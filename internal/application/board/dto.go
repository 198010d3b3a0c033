package board

import (
	"time"

	"github.com/boardhub/backend/internal/domain/board"
	"github.com/google/uuid"
)

// CreateBoardRequest represents a request to create a new board
type CreateBoardRequest struct {
	Code             string `json:"code" binding:"required,nodecode"`
	Name             string `json:"name" binding:"required,min=1,max=100"`
	Description      string `json:"description" binding:"max=2000"`
	Type             string `json:"type" binding:"required,oneof=notice free qna faq gallery review"`
	ReadPermission   string `json:"read_permission" binding:"omitempty,oneof=public member admin disabled"`
	WritePermission  string `json:"write_permission" binding:"omitempty,oneof=public member admin disabled"`
	EnableCategories *bool  `json:"enable_categories"`
	DisplayOrder     *int   `json:"display_order"`
}

// UpdateBoardRequest represents a request to update a board
type UpdateBoardRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description      *string `json:"description" binding:"omitempty,max=2000"`
	ReadPermission   *string `json:"read_permission" binding:"omitempty,oneof=public member admin disabled"`
	WritePermission  *string `json:"write_permission" binding:"omitempty,oneof=public member admin disabled"`
	EnableCategories *bool   `json:"enable_categories"`
	DisplayOrder     *int    `json:"display_order"`
}

// BoardListFilter represents filter options for the board list
type BoardListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BoardResponse represents a board in API responses
type BoardResponse struct {
	ID               uuid.UUID `json:"id"`
	TenantID         uuid.UUID `json:"tenant_id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Type             string    `json:"type"`
	ReadPermission   string    `json:"read_permission"`
	WritePermission  string    `json:"write_permission"`
	EnableCategories bool      `json:"enable_categories"`
	DisplayOrder     int       `json:"display_order"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Version          int       `json:"version"`
}

// ToBoardResponse converts a domain Board to BoardResponse
func ToBoardResponse(b *board.Board) *BoardResponse {
	return &BoardResponse{
		ID:               b.ID,
		TenantID:         b.TenantID,
		Code:             b.Code,
		Name:             b.Name,
		Description:      b.Description,
		Type:             string(b.Type),
		ReadPermission:   string(b.ReadPermission),
		WritePermission:  string(b.WritePermission),
		EnableCategories: b.EnableCategories,
		DisplayOrder:     b.DisplayOrder,
		IsActive:         b.IsActive,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
		Version:          b.Version,
	}
}

// ToBoardResponses converts a slice of domain Boards
func ToBoardResponses(boards []board.Board) []BoardResponse {
	responses := make([]BoardResponse, len(boards))
	for i := range boards {
		responses[i] = *ToBoardResponse(&boards[i])
	}
	return responses
}
