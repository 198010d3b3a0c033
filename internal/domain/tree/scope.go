package tree

import (
	"context"

	"github.com/google/uuid"
)

// Scope is the boundary within which one forest of nodes lives: tenant plus
// a forest key (a board id for categories, a menu type for menus). Parent
// and child always share a scope; moves never cross scopes.
type Scope struct {
	TenantID uuid.UUID
	Forest   string
}

// String renders the scope as "tenant:forest", used for cache keys and logs
func (s Scope) String() string {
	return s.TenantID.String() + ":" + s.Forest
}

// ScopeGuard validates a scope and its code namespace before a mutation
// reaches the engine.
type ScopeGuard interface {
	// EnsureWritable verifies the scope identifies a real, writable forest.
	// Returns a NOT_FOUND domain error otherwise.
	EnsureWritable(ctx context.Context, scope Scope) error

	// CodeInUse reports whether code is already taken by a non-deleted node
	// in the scope.
	CodeInUse(ctx context.Context, scope Scope, code string) (bool, error)
}
