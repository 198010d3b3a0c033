package navigation

import (
	"time"

	"github.com/boardhub/backend/internal/domain/navigation"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
)

// CreateMenuItemRequest represents a request to create a new menu item
type CreateMenuItemRequest struct {
	Code           string     `json:"code" binding:"required,nodecode"`
	Name           string     `json:"name" binding:"required,min=1,max=100"`
	Description    string     `json:"description" binding:"max=2000"`
	URL            string     `json:"url" binding:"max=500"`
	Icon           string     `json:"icon" binding:"max=50"`
	ParentID       *uuid.UUID `json:"parent_id"`
	SortOrder      *int       `json:"sort_order"`
	LinkType       string     `json:"link_type" binding:"omitempty,oneof=internal external new_tab modal none"`
	PermissionType string     `json:"permission_type" binding:"omitempty,oneof=public authenticated role_based permission_based"`
	IsVisible      *bool      `json:"is_visible"`
}

// UpdateMenuItemRequest represents a request to update a menu item's payload.
// Tree placement is changed through Move and Reorder, never here.
type UpdateMenuItemRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description    *string `json:"description" binding:"omitempty,max=2000"`
	URL            *string `json:"url" binding:"omitempty,max=500"`
	Icon           *string `json:"icon" binding:"omitempty,max=50"`
	LinkType       *string `json:"link_type" binding:"omitempty,oneof=internal external new_tab modal none"`
	PermissionType *string `json:"permission_type" binding:"omitempty,oneof=public authenticated role_based permission_based"`
	IsVisible      *bool   `json:"is_visible"`
}

// MoveMenuItemRequest represents a request to reparent a menu item
type MoveMenuItemRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// ReorderMenuItemRequest represents a request to reposition one menu item
type ReorderMenuItemRequest struct {
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder int        `json:"sort_order"`
}

// BulkReorderEntry is one item of a bulk reorder request
type BulkReorderEntry struct {
	ID        uuid.UUID  `json:"id" binding:"required"`
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder int        `json:"sort_order"`
}

// BulkReorderRequest rearranges many menu items in one call, the shape a
// drag-and-drop menu editor submits
type BulkReorderRequest struct {
	Items []BulkReorderEntry `json:"items" binding:"required,min=1,dive"`
}

// BulkDeleteRequest soft-deletes many menu items in one call
type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// MenuListFilter represents flat menu listing parameters
type MenuListFilter struct {
	Skip            int  `form:"skip" binding:"omitempty,min=0"`
	Limit           int  `form:"limit" binding:"omitempty,min=1,max=200"`
	IncludeInactive bool `form:"include_inactive"`
}

// MenuItemResponse represents a menu item in API responses
type MenuItemResponse struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	MenuType       string     `json:"menu_type"`
	ParentID       *uuid.UUID `json:"parent_id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	URL            string     `json:"url"`
	Icon           string     `json:"icon"`
	Depth          int        `json:"depth"`
	Path           string     `json:"path"`
	SortOrder      int        `json:"sort_order"`
	Lifecycle      string     `json:"lifecycle"`
	LinkType       string     `json:"link_type"`
	PermissionType string     `json:"permission_type"`
	IsVisible      bool       `json:"is_visible"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Version        int        `json:"version"`
}

// MenuTreeNode represents one assembled node of a menu tree
type MenuTreeNode struct {
	MenuItemResponse
	Children []MenuTreeNode `json:"children"`
}

// ToMenuItemResponse converts a domain MenuItem to MenuItemResponse
func ToMenuItemResponse(m *navigation.MenuItem) *MenuItemResponse {
	return &MenuItemResponse{
		ID:             m.ID,
		TenantID:       m.TenantID,
		MenuType:       string(m.MenuType),
		ParentID:       m.ParentID,
		Code:           m.Code,
		Name:           m.Name,
		Description:    m.Description,
		URL:            m.URL,
		Icon:           m.Icon,
		Depth:          m.Depth,
		Path:           m.Path,
		SortOrder:      m.SortOrder,
		Lifecycle:      string(m.Lifecycle),
		LinkType:       string(m.LinkType),
		PermissionType: string(m.PermissionType),
		IsVisible:      m.IsVisible,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		Version:        m.Version,
	}
}

// ToMenuItemResponses converts a slice of domain MenuItems
func ToMenuItemResponses(items []*navigation.MenuItem) []MenuItemResponse {
	responses := make([]MenuItemResponse, len(items))
	for i, m := range items {
		responses[i] = *ToMenuItemResponse(m)
	}
	return responses
}

// ToMenuTree converts an assembled forest to response nodes
func ToMenuTree(forest []*tree.TreeNode[*navigation.MenuItem]) []MenuTreeNode {
	out := make([]MenuTreeNode, len(forest))
	for i, n := range forest {
		out[i] = MenuTreeNode{
			MenuItemResponse: *ToMenuItemResponse(n.Item),
			Children:         ToMenuTree(n.Children),
		}
	}
	return out
}
