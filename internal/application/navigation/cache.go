package navigation

import (
	"context"

	"github.com/boardhub/backend/internal/domain/tree"
)

// MenuCache caches assembled visible menu trees. Rendering the site menu is
// by far the hottest read, so it gets a cache while management reads always
// hit storage. Implementations must treat a miss and an error alike as
// "rebuild from storage".
type MenuCache interface {
	// GetVisible returns the cached visible tree for the scope and viewer
	// class, with false on a miss
	GetVisible(ctx context.Context, scope tree.Scope, authenticated bool) ([]MenuTreeNode, bool, error)

	// SetVisible stores the visible tree for the scope and viewer class
	SetVisible(ctx context.Context, scope tree.Scope, authenticated bool, nodes []MenuTreeNode) error

	// Invalidate drops every cached tree for the scope, both viewer classes
	Invalidate(ctx context.Context, scope tree.Scope) error
}

// NoopMenuCache disables caching; every read rebuilds from storage
type NoopMenuCache struct{}

// GetVisible always misses
func (NoopMenuCache) GetVisible(context.Context, tree.Scope, bool) ([]MenuTreeNode, bool, error) {
	return nil, false, nil
}

// SetVisible does nothing
func (NoopMenuCache) SetVisible(context.Context, tree.Scope, bool, []MenuTreeNode) error {
	return nil
}

// Invalidate does nothing
func (NoopMenuCache) Invalidate(context.Context, tree.Scope) error {
	return nil
}
