package category

import (
	"time"

	"github.com/boardhub/backend/internal/domain/category"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
)

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Code            string     `json:"code" binding:"required,nodecode"`
	Name            string     `json:"name" binding:"required,min=1,max=100"`
	Description     string     `json:"description" binding:"max=2000"`
	Icon            string     `json:"icon" binding:"max=50"`
	Color           string     `json:"color" binding:"max=20"`
	ParentID        *uuid.UUID `json:"parent_id"`
	SortOrder       *int       `json:"sort_order"`
	ReadPermission  string     `json:"read_permission" binding:"omitempty,oneof=all members admin"`
	WritePermission string     `json:"write_permission" binding:"omitempty,oneof=all members admin"`
}

// UpdateCategoryRequest represents a request to update a category's payload.
// Tree placement is changed through Move and Reorder, never here.
type UpdateCategoryRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	Icon            *string `json:"icon" binding:"omitempty,max=50"`
	Color           *string `json:"color" binding:"omitempty,max=20"`
	ReadPermission  *string `json:"read_permission" binding:"omitempty,oneof=all members admin"`
	WritePermission *string `json:"write_permission" binding:"omitempty,oneof=all members admin"`
}

// MoveCategoryRequest represents a request to reparent a category
type MoveCategoryRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// ReorderCategoryRequest represents a request to reposition a category among
// its siblings, optionally reparenting it in the same operation
type ReorderCategoryRequest struct {
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder int        `json:"sort_order"`
}

// CategoryListFilter represents pagination options for the flat listing
type CategoryListFilter struct {
	Skip            int  `form:"skip" binding:"min=0"`
	Limit           int  `form:"limit" binding:"min=1,max=100"`
	IncludeInactive bool `form:"include_inactive"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID              uuid.UUID  `json:"id"`
	TenantID        uuid.UUID  `json:"tenant_id"`
	BoardID         uuid.UUID  `json:"board_id"`
	ParentID        *uuid.UUID `json:"parent_id"`
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Icon            string     `json:"icon"`
	Color           string     `json:"color"`
	Depth           int        `json:"depth"`
	Path            string     `json:"path"`
	SortOrder       int        `json:"sort_order"`
	Lifecycle       string     `json:"lifecycle"`
	ReadPermission  string     `json:"read_permission"`
	WritePermission string     `json:"write_permission"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Version         int        `json:"version"`
}

// CategoryTreeNode represents one assembled node of the category tree
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryTreeNode `json:"children"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:              c.ID,
		TenantID:        c.TenantID,
		BoardID:         c.BoardID,
		ParentID:        c.ParentID,
		Code:            c.Code,
		Name:            c.Name,
		Description:     c.Description,
		Icon:            c.Icon,
		Color:           c.Color,
		Depth:           c.Depth,
		Path:            c.Path,
		SortOrder:       c.SortOrder,
		Lifecycle:       string(c.Lifecycle),
		ReadPermission:  string(c.ReadPermission),
		WritePermission: string(c.WritePermission),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Version:         c.Version,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []*category.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = *ToCategoryResponse(c)
	}
	return responses
}

// ToCategoryTree converts an assembled forest to response nodes
func ToCategoryTree(forest []*tree.TreeNode[*category.Category]) []CategoryTreeNode {
	out := make([]CategoryTreeNode, len(forest))
	for i, n := range forest {
		out[i] = CategoryTreeNode{
			CategoryResponse: *ToCategoryResponse(n.Item),
			Children:         ToCategoryTree(n.Children),
		}
	}
	return out
}
