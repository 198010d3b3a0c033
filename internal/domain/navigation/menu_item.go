// Package navigation defines the menu item entity. Menu items form one tree
// per (tenant, menu type) scope and are capped at five levels, mirroring
// the site navigation UI.
package navigation

import (
	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
)

// MaxMenuDepth is the number of levels a menu tree may have
const MaxMenuDepth = 5

// MenuType selects which navigation surface an item belongs to; it is the
// forest key of the menu scope.
type MenuType string

const (
	MenuTypeUser  MenuType = "user"
	MenuTypeSite  MenuType = "site"
	MenuTypeAdmin MenuType = "admin"
)

// Valid reports whether t is a known menu type
func (t MenuType) Valid() bool {
	switch t {
	case MenuTypeUser, MenuTypeSite, MenuTypeAdmin:
		return true
	}
	return false
}

// PermissionType gates which viewers see a menu item
type PermissionType string

const (
	PermissionPublic          PermissionType = "public"
	PermissionAuthenticated   PermissionType = "authenticated"
	PermissionRoleBased       PermissionType = "role_based"
	PermissionPermissionBased PermissionType = "permission_based"
)

// Valid reports whether p is a known permission type
func (p PermissionType) Valid() bool {
	switch p {
	case PermissionPublic, PermissionAuthenticated, PermissionRoleBased, PermissionPermissionBased:
		return true
	}
	return false
}

// LinkType describes how a menu item's URL opens
type LinkType string

const (
	LinkInternal LinkType = "internal"
	LinkExternal LinkType = "external"
	LinkNewTab   LinkType = "new_tab"
	LinkModal    LinkType = "modal"
	LinkNone     LinkType = "none"
)

// Valid reports whether t is a known link type
func (t LinkType) Valid() bool {
	switch t {
	case LinkInternal, LinkExternal, LinkNewTab, LinkModal, LinkNone:
		return true
	}
	return false
}

// MenuItem is one node of a navigation menu tree
type MenuItem struct {
	tree.Node
	MenuType       MenuType       `gorm:"type:varchar(20);not null;index:idx_menu_tenant_type"`
	Name           string         `gorm:"type:varchar(100);not null"`
	Description    string         `gorm:"type:text"`
	URL            string         `gorm:"type:varchar(500)"`
	Icon           string         `gorm:"type:varchar(50)"`
	LinkType       LinkType       `gorm:"type:varchar(20);not null;default:'internal'"`
	PermissionType PermissionType `gorm:"type:varchar(30);not null;default:'public'"`
	IsVisible      bool           `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MenuItem) TableName() string {
	return "menu_items"
}

// TreeNode exposes the embedded tree position for the engines
func (m *MenuItem) TreeNode() *tree.Node {
	return &m.Node
}

// Scope returns the (tenant, menu type) scope this item lives in
func (m *MenuItem) Scope() tree.Scope {
	return tree.Scope{TenantID: m.TenantID, Forest: string(m.MenuType)}
}

// New creates a root-positioned menu item; the mutation engine re-homes it
// under a parent during Create.
func New(tenantID uuid.UUID, menuType MenuType, code, name string, sortOrder int) (*MenuItem, error) {
	if !menuType.Valid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown menu type")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	node, err := tree.NewNode(tenantID, code, sortOrder)
	if err != nil {
		return nil, err
	}
	return &MenuItem{
		Node:           node,
		MenuType:       menuType,
		Name:           name,
		LinkType:       LinkInternal,
		PermissionType: PermissionPublic,
		IsVisible:      true,
	}, nil
}

// Update changes the item's display payload. Tree placement is owned by the
// mutation engine and is not touched here.
func (m *MenuItem) Update(name, description, url, icon string, linkType LinkType) error {
	if err := validateName(name); err != nil {
		return err
	}
	if !linkType.Valid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown link type")
	}
	m.Name = name
	m.Description = description
	m.URL = url
	m.Icon = icon
	m.LinkType = linkType
	return nil
}

// SetVisibility controls whether the item renders for viewers that pass its
// permission gate
func (m *MenuItem) SetVisibility(visible bool) {
	m.IsVisible = visible
}

// SetPermission changes the viewer gate
func (m *MenuItem) SetPermission(p PermissionType) error {
	if !p.Valid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown permission type")
	}
	m.PermissionType = p
	return nil
}

// VisibleTo reports whether the item should render for a viewer.
// Authenticated viewers see public and authenticated items; anonymous
// viewers see only public ones. Role- and permission-based items are
// resolved by the caller's authorization layer and hidden here.
func (m *MenuItem) VisibleTo(authenticated bool) bool {
	if !m.IsVisible || !m.Lifecycle.IsActive() {
		return false
	}
	switch m.PermissionType {
	case PermissionPublic:
		return true
	case PermissionAuthenticated:
		return authenticated
	}
	return false
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Menu name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Menu name cannot exceed 100 characters")
	}
	return nil
}
