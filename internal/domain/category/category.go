// Package category defines the board category entity. Categories form one
// tree per (tenant, board) scope; the tree mechanics live in the shared
// tree package and are identical for navigation menus.
package category

import (
	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
)

// Permission gates who may read or post into a category
type Permission string

const (
	PermissionAll     Permission = "all"
	PermissionMembers Permission = "members"
	PermissionAdmin   Permission = "admin"
)

// Valid reports whether p is a known permission level
func (p Permission) Valid() bool {
	switch p {
	case PermissionAll, PermissionMembers, PermissionAdmin:
		return true
	}
	return false
}

// Category is one node of a board's category tree
type Category struct {
	tree.Node
	BoardID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_category_board"`
	Name            string     `gorm:"type:varchar(100);not null"`
	Description     string     `gorm:"type:text"`
	Icon            string     `gorm:"type:varchar(50)"`
	Color           string     `gorm:"type:varchar(20)"`
	ReadPermission  Permission `gorm:"type:varchar(20);not null;default:'all'"`
	WritePermission Permission `gorm:"type:varchar(20);not null;default:'all'"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// TreeNode exposes the embedded tree position for the engines
func (c *Category) TreeNode() *tree.Node {
	return &c.Node
}

// Scope returns the (tenant, board) scope this category lives in
func (c *Category) Scope() tree.Scope {
	return tree.Scope{TenantID: c.TenantID, Forest: c.BoardID.String()}
}

// New creates a root-positioned category; the mutation engine re-homes it
// under a parent during Create.
func New(tenantID, boardID uuid.UUID, code, name string, sortOrder int) (*Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	node, err := tree.NewNode(tenantID, code, sortOrder)
	if err != nil {
		return nil, err
	}
	return &Category{
		Node:            node,
		BoardID:         boardID,
		Name:            name,
		ReadPermission:  PermissionAll,
		WritePermission: PermissionAll,
	}, nil
}

// Update changes the category's display payload. Tree placement is owned by
// the mutation engine and is not touched here.
func (c *Category) Update(name, description, icon, color string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = name
	c.Description = description
	c.Icon = icon
	c.Color = color
	return nil
}

// SetPermissions changes who can read and write posts in the category
func (c *Category) SetPermissions(read, write Permission) error {
	if !read.Valid() || !write.Valid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown permission level")
	}
	c.ReadPermission = read
	c.WritePermission = write
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
