// Package board defines the board aggregate. A board is the scope target
// for category forests: every category belongs to exactly one board and
// category codes are unique per board.
package board

import (
	"time"

	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BoardType determines a board's posting behavior
type BoardType string

const (
	BoardTypeNotice  BoardType = "notice"
	BoardTypeFree    BoardType = "free"
	BoardTypeQnA     BoardType = "qna"
	BoardTypeFAQ     BoardType = "faq"
	BoardTypeGallery BoardType = "gallery"
	BoardTypeReview  BoardType = "review"
)

// Valid reports whether t is a known board type
func (t BoardType) Valid() bool {
	switch t {
	case BoardTypeNotice, BoardTypeFree, BoardTypeQnA, BoardTypeFAQ, BoardTypeGallery, BoardTypeReview:
		return true
	}
	return false
}

// PermissionLevel gates read/write access to a board
type PermissionLevel string

const (
	PermissionPublic   PermissionLevel = "public"
	PermissionMember   PermissionLevel = "member"
	PermissionAdmin    PermissionLevel = "admin"
	PermissionDisabled PermissionLevel = "disabled"
)

// Board is a tenant-scoped container of posts and a category forest
type Board struct {
	shared.TenantAggregateRoot
	Code             string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_board_tenant_code,priority:2"`
	Name             string          `gorm:"type:varchar(100);not null"`
	Description      string          `gorm:"type:text"`
	Type             BoardType       `gorm:"type:varchar(20);not null;default:'free'"`
	ReadPermission   PermissionLevel `gorm:"type:varchar(20);not null;default:'public'"`
	WritePermission  PermissionLevel `gorm:"type:varchar(20);not null;default:'member'"`
	EnableCategories bool            `gorm:"not null;default:true"`
	DisplayOrder     int             `gorm:"not null;default:0"`
	IsActive         bool            `gorm:"not null;default:true;index"`
	IsDeleted        bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Board) TableName() string {
	return "boards"
}

// NewBoard creates an active board for a tenant
func NewBoard(tenantID uuid.UUID, code, name string, boardType BoardType) (*Board, error) {
	if err := validateBoardCode(code); err != nil {
		return nil, err
	}
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Board name must be 1-100 characters")
	}
	if !boardType.Valid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown board type")
	}
	return &Board{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Type:                boardType,
		ReadPermission:      PermissionPublic,
		WritePermission:     PermissionMember,
		EnableCategories:    true,
		IsActive:            true,
	}, nil
}

// Update changes the board's display information
func (b *Board) Update(name, description string) error {
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Board name must be 1-100 characters")
	}
	b.Name = name
	b.Description = description
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Writable reports whether the board accepts category mutations
func (b *Board) Writable() bool {
	return !b.IsDeleted && b.IsActive
}

// Archive soft-deletes the board
func (b *Board) Archive() {
	b.IsDeleted = true
	b.IsActive = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

func validateBoardCode(code string) error {
	if code == "" || len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Board code must be 1-50 characters")
	}
	for _, r := range code {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Board code may only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
