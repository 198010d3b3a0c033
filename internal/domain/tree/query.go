package tree

import (
	"context"

	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TreeNode is one assembled node of a query result forest. Children are a
// derived view built from the adjacency map, never a stored back-reference.
type TreeNode[T Entity] struct {
	Item     T              `json:"item"`
	Children []*TreeNode[T] `json:"children"`
}

// QueryEngine answers read-only questions about one node table. It never
// writes.
type QueryEngine[T Entity] struct {
	repo Repository[T]
}

// NewQueryEngine creates a QueryEngine
func NewQueryEngine[T Entity](repo Repository[T]) *QueryEngine[T] {
	return &QueryEngine[T]{repo: repo}
}

// Get returns a single non-deleted node
func (q *QueryEngine[T]) Get(ctx context.Context, scope Scope, id uuid.UUID) (T, error) {
	return q.repo.FindByID(ctx, scope, id)
}

// Children lists the nodes directly under parentID (roots when nil),
// ordered by (sort_order, id)
func (q *QueryEngine[T]) Children(ctx context.Context, scope Scope, parentID *uuid.UUID, includeInactive bool) ([]T, error) {
	return q.repo.FindChildren(ctx, scope, parentID, includeInactive)
}

// Subtree lists a node followed by all of its descendants, via one
// path-prefix range query: O(subtree size), not O(forest size).
func (q *QueryEngine[T]) Subtree(ctx context.Context, scope Scope, id uuid.UUID) ([]T, error) {
	root, err := q.repo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	descendants, err := q.repo.FindDescendants(ctx, scope, root.TreeNode().Path)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(descendants)+1)
	out = append(out, root)
	out = append(out, descendants...)
	return out, nil
}

// Ancestors returns the chain from the forest root down to the node's
// parent, excluding the node itself. It walks parent links and is bounded
// by the node's stored depth, so it terminates even against malformed data.
func (q *QueryEngine[T]) Ancestors(ctx context.Context, scope Scope, id uuid.UUID) ([]T, error) {
	node, err := q.repo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	chain := make([]T, 0, node.TreeNode().Depth)
	current := node.TreeNode()
	for hops := 0; current.ParentID != nil && hops < node.TreeNode().Depth; hops++ {
		parent, err := q.repo.FindByID(ctx, scope, *current.ParentID)
		if err != nil {
			if isNotFound(err) {
				break
			}
			return nil, err
		}
		chain = append(chain, parent)
		current = parent.TreeNode()
	}

	// Walked child-to-root; callers want root first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Tree assembles the whole scoped forest in memory from a single query.
// Children lists inherit the repository's (sort_order, id) ordering.
func (q *QueryEngine[T]) Tree(ctx context.Context, scope Scope, includeInactive bool) ([]*TreeNode[T], error) {
	items, err := q.repo.FindForest(ctx, scope, includeInactive)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uuid.UUID]*TreeNode[T], len(items))
	for _, item := range items {
		nodes[item.TreeNode().ID] = &TreeNode[T]{Item: item, Children: []*TreeNode[T]{}}
	}

	roots := make([]*TreeNode[T], 0)
	for _, item := range items {
		n := item.TreeNode()
		if n.ParentID == nil {
			roots = append(roots, nodes[n.ID])
			continue
		}
		if parent, ok := nodes[*n.ParentID]; ok {
			parent.Children = append(parent.Children, nodes[n.ID])
		}
		// A child whose parent is filtered out (inactive) is dropped with it.
	}
	return roots, nil
}

// FlatPage lists the scope ordered by (path, sort_order) so every subtree
// stays contiguous and the listing reads as a pre-order traversal. Returns
// the page plus the total count. Restartable: no hidden cursor state.
func (q *QueryEngine[T]) FlatPage(ctx context.Context, scope Scope, skip, limit int, includeInactive bool) ([]T, int64, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		return nil, 0, shared.NewDomainError("INVALID_INPUT", "Page limit must be positive")
	}
	return q.repo.FlatPage(ctx, scope, includeInactive, skip, limit)
}

// Flatten walks a forest pre-order into a flat slice
func Flatten[T Entity](forest []*TreeNode[T]) []T {
	var out []T
	var walk func(nodes []*TreeNode[T])
	walk = func(nodes []*TreeNode[T]) {
		for _, n := range nodes {
			out = append(out, n.Item)
			walk(n.Children)
		}
	}
	walk(forest)
	return out
}
