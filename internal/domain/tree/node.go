package tree

import (
	"fmt"

	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Lifecycle models the node's visibility state. A deleted node is invisible
// to every query and frees its code for reuse; an inactive node is hidden
// from consumer-facing listings but keeps its code reserved. The enum makes
// the "deleted but active" combination unrepresentable.
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "active"
	LifecycleInactive Lifecycle = "inactive"
	LifecycleDeleted  Lifecycle = "deleted"
)

// IsDeleted reports whether the node is soft-deleted
func (l Lifecycle) IsDeleted() bool {
	return l == LifecycleDeleted
}

// IsActive reports whether the node is visible to consumer-facing listings
func (l Lifecycle) IsActive() bool {
	return l == LifecycleActive
}

// Valid reports whether l is one of the known lifecycle states
func (l Lifecycle) Valid() bool {
	switch l {
	case LifecycleActive, LifecycleInactive, LifecycleDeleted:
		return true
	}
	return false
}

// Node is the embeddable tree position of a scoped entity. Entities add
// their scope column (board_id, menu_type) and domain payload around it.
//
// Invariants, maintained by MutationEngine: Depth == parent.Depth+1 (0 for
// roots) and Path == parent.Path + ID + "/" ("/ID/" for roots).
type Node struct {
	shared.TenantAggregateRoot
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	Depth     int        `gorm:"not null;default:0"`
	Path      string     `gorm:"type:varchar(500);not null;index"`
	Code      string     `gorm:"type:varchar(50);not null;index"`
	SortOrder int        `gorm:"not null;default:0"`
	Lifecycle Lifecycle  `gorm:"type:varchar(20);not null;default:'active';index"`
}

// NewNode creates a root-positioned node; the engine re-homes it under a
// parent during Create. The id is generated here, so the path is final
// before the first write.
func NewNode(tenantID uuid.UUID, code string, sortOrder int) (Node, error) {
	if err := ValidateCode(code); err != nil {
		return Node{}, err
	}
	node := Node{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		SortOrder:           sortOrder,
		Lifecycle:           LifecycleActive,
	}
	node.Path = RootPath(node.ID)
	return node, nil
}

// IsRoot returns true if the node has no parent
func (n *Node) IsRoot() bool {
	return n.ParentID == nil
}

// IsAncestorOf returns true if other lies strictly inside this node's subtree
func (n *Node) IsAncestorOf(other *Node) bool {
	if other == nil || other.ID == n.ID {
		return false
	}
	return IsDescendantOrSelf(n.Path, other.Path)
}

// SetPosition writes the tree placement fields as one unit. Only the
// mutation engine calls this.
func (n *Node) SetPosition(parentID *uuid.UUID, depth int, path string) {
	n.ParentID = parentID
	n.Depth = depth
	n.Path = path
}

// Activate makes the node visible to consumer-facing listings
func (n *Node) Activate() error {
	switch n.Lifecycle {
	case LifecycleDeleted:
		return shared.NewDomainError("INVALID_STATE", "Deleted node cannot be activated")
	case LifecycleActive:
		return shared.NewDomainError("INVALID_STATE", "Node is already active")
	}
	n.Lifecycle = LifecycleActive
	n.Touch()
	n.IncrementVersion()
	return nil
}

// Deactivate hides the node from consumer-facing listings without freeing
// its code
func (n *Node) Deactivate() error {
	switch n.Lifecycle {
	case LifecycleDeleted:
		return shared.NewDomainError("INVALID_STATE", "Deleted node cannot be deactivated")
	case LifecycleInactive:
		return shared.NewDomainError("INVALID_STATE", "Node is already inactive")
	}
	n.Lifecycle = LifecycleInactive
	n.Touch()
	n.IncrementVersion()
	return nil
}

// MarkDeleted soft-deletes the node
func (n *Node) MarkDeleted() {
	n.Lifecycle = LifecycleDeleted
	n.Touch()
	n.IncrementVersion()
}

// ValidateCode validates a node code: 1-50 characters, letters, digits,
// underscores and hyphens.
func ValidateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", fmt.Sprintf("Code %q may only contain letters, numbers, underscores, and hyphens", code))
		}
	}
	return nil
}
