package tree

import (
	"context"

	"github.com/google/uuid"
)

// Entity is implemented by any aggregate that participates in a tree:
// it exposes its embedded Node for the engines to read and reposition.
type Entity interface {
	TreeNode() *Node
}

// Repository is the persistence port for one node table. All lookups are
// scoped and exclude soft-deleted rows; ...ForUpdate variants take row locks
// so two concurrent moves on overlapping subtrees serialize (spec'd in the
// engine, provided by the storage layer).
type Repository[T Entity] interface {
	// Insert persists a new node with its final tree placement
	Insert(ctx context.Context, entity T) error

	// Update persists payload changes. Implementations must not write the
	// tree placement columns (parent_id, depth, path); those belong to
	// UpdateTreeFields.
	Update(ctx context.Context, entity T) error

	// UpdateTreeFields persists parent_id/depth/path/sort_order (plus audit
	// fields) for already-loaded rows, one statement per row inside the
	// caller's transaction.
	UpdateTreeFields(ctx context.Context, entities []T) error

	// FindByID finds a non-deleted node by id within the scope
	FindByID(ctx context.Context, scope Scope, id uuid.UUID) (T, error)

	// FindByIDForUpdate is FindByID with an exclusive row lock
	FindByIDForUpdate(ctx context.Context, scope Scope, id uuid.UUID) (T, error)

	// FindByCode finds a non-deleted node by code within the scope
	FindByCode(ctx context.Context, scope Scope, code string) (T, error)

	// FindChildren lists the non-deleted children of parentID (roots when
	// nil), ordered by (sort_order, id)
	FindChildren(ctx context.Context, scope Scope, parentID *uuid.UUID, includeInactive bool) ([]T, error)

	// FindDescendants lists every non-deleted node whose path starts with
	// pathPrefix, excluding the prefix node itself, ordered by (path,
	// sort_order)
	FindDescendants(ctx context.Context, scope Scope, pathPrefix string) ([]T, error)

	// FindDescendantsForUpdate is FindDescendants with exclusive row locks
	FindDescendantsForUpdate(ctx context.Context, scope Scope, pathPrefix string) ([]T, error)

	// FindForest lists the whole non-deleted scope, ordered by (sort_order,
	// id)
	FindForest(ctx context.Context, scope Scope, includeInactive bool) ([]T, error)

	// FlatPage lists the scope ordered by (path, sort_order) with
	// offset/limit pagination, returning the page and the total count
	FlatPage(ctx context.Context, scope Scope, includeInactive bool, offset, limit int) ([]T, int64, error)

	// CountChildren counts non-deleted children of parentID
	CountChildren(ctx context.Context, scope Scope, parentID uuid.UUID) (int64, error)

	// SoftDelete persists an entity whose node was marked deleted
	SoftDelete(ctx context.Context, entity T) error

	// HardDelete physically removes a row; the storage layer's ON DELETE
	// rules handle any stray references
	HardDelete(ctx context.Context, scope Scope, id uuid.UUID) error
}

// DependentsCounter reports how many externally-owned records still
// reference a node (posts in a category, for example). Delete refuses while
// the count is positive. The engine never queries foreign tables directly.
type DependentsCounter interface {
	CountDependents(ctx context.Context, scope Scope, nodeID uuid.UUID) (int64, error)
}

// NoDependents is a DependentsCounter for node kinds without external
// references.
type NoDependents struct{}

// CountDependents always returns zero
func (NoDependents) CountDependents(context.Context, Scope, uuid.UUID) (int64, error) {
	return 0, nil
}

// TxRunner executes a function inside one storage transaction. An error
// from fn rolls the whole transaction back; no partial write is ever
// visible to other transactions.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoTx runs the function without a transaction, for tests
type NoTx struct{}

// InTx calls fn directly
func (NoTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
