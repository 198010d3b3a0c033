package tree

import (
	"context"
	"errors"
	"fmt"

	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MutationEngine owns every structural change to one node table. All
// operations run inside a single storage transaction; depth and path are
// written here and nowhere else. The engine is generic over the entity type
// so categories and menus share one implementation instead of re-deriving
// the path math per entity kind.
type MutationEngine[T Entity] struct {
	repo     Repository[T]
	guard    ScopeGuard
	deps     DependentsCounter
	tx       TxRunner
	maxDepth int
	log      *zap.Logger
}

// NewMutationEngine creates a MutationEngine. maxDepth is the number of
// allowed levels (a ceiling of 5 permits depths 0 through 4).
func NewMutationEngine[T Entity](
	repo Repository[T],
	guard ScopeGuard,
	deps DependentsCounter,
	tx TxRunner,
	maxDepth int,
	log *zap.Logger,
) *MutationEngine[T] {
	if deps == nil {
		deps = NoDependents{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MutationEngine[T]{
		repo:     repo,
		guard:    guard,
		deps:     deps,
		tx:       tx,
		maxDepth: maxDepth,
		log:      log,
	}
}

// Create inserts entity into the scope, under parentID when given. The
// entity arrives with its payload and a root-positioned node; the engine
// validates the scope and code, re-homes the node under the parent and
// persists it. The id is generated at construction, so the path is final on
// the first write and no placeholder state ever hits storage.
func (e *MutationEngine[T]) Create(ctx context.Context, scope Scope, entity T, parentID *uuid.UUID, actor string) (T, error) {
	var zero T

	if err := e.guard.EnsureWritable(ctx, scope); err != nil {
		return zero, err
	}

	node := entity.TreeNode()

	err := e.tx.InTx(ctx, func(ctx context.Context) error {
		// Checked inside the transaction so a concurrent create of the same
		// code loses here instead of surfacing the unique index violation.
		inUse, err := e.guard.CodeInUse(ctx, scope, node.Code)
		if err != nil {
			return shared.NewStorageError(err)
		}
		if inUse {
			return shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Code %q is already in use in this scope", node.Code))
		}

		if parentID != nil {
			parent, err := e.repo.FindByID(ctx, scope, *parentID)
			if err != nil {
				if isNotFound(err) {
					return shared.NewDomainError("NOT_FOUND", "Parent node not found in scope")
				}
				return shared.NewStorageError(err)
			}
			p := parent.TreeNode()
			path, depth := ChildPath(p.Path, p.Depth, node.ID)
			if depth >= e.maxDepth {
				return shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Maximum depth of %d levels exceeded", e.maxDepth))
			}
			node.SetPosition(&p.ID, depth, path)
		}
		node.SetActor(actor)

		if err := e.repo.Insert(ctx, entity); err != nil {
			return shared.NewStorageError(err)
		}
		return nil
	})
	if err != nil {
		return zero, err
	}

	e.log.Debug("node created",
		zap.String("scope", scope.String()),
		zap.String("node_id", node.ID.String()),
		zap.Int("depth", node.Depth))

	return entity, nil
}

// Move reparents a node (nil newParentID makes it a root) and rewrites the
// depth and path of every descendant in the same transaction. The moved
// node and its whole descendant set are locked before the first write, so
// concurrent moves on overlapping subtrees serialize instead of corrupting
// each other.
func (e *MutationEngine[T]) Move(ctx context.Context, scope Scope, id uuid.UUID, newParentID *uuid.UUID, actor string) (T, error) {
	var moved T
	err := e.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		moved, err = e.move(ctx, scope, id, newParentID, actor)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return moved, nil
}

// move is the transactional body of Move; Reorder reuses it inside its own
// transaction.
func (e *MutationEngine[T]) move(ctx context.Context, scope Scope, id uuid.UUID, newParentID *uuid.UUID, actor string) (T, error) {
	var zero T

	entity, err := e.repo.FindByIDForUpdate(ctx, scope, id)
	if err != nil {
		if isNotFound(err) {
			return zero, shared.NewDomainError("NOT_FOUND", "Node not found in scope")
		}
		return zero, shared.NewStorageError(err)
	}
	node := entity.TreeNode()

	if newParentID != nil && *newParentID == node.ID {
		return zero, shared.NewDomainError("INVALID_OPERATION", "Node cannot be its own parent")
	}

	var newPath string
	var newDepth int
	if newParentID != nil {
		parent, err := e.repo.FindByIDForUpdate(ctx, scope, *newParentID)
		if err != nil {
			if isNotFound(err) {
				return zero, shared.NewDomainError("NOT_FOUND", "Parent node not found in scope")
			}
			return zero, shared.NewStorageError(err)
		}
		p := parent.TreeNode()
		if IsDescendantOrSelf(node.Path, p.Path) {
			return zero, shared.NewDomainError("INVALID_OPERATION", "Cannot move a node under its own descendant")
		}
		newPath, newDepth = ChildPath(p.Path, p.Depth, node.ID)
		if newDepth >= e.maxDepth {
			return zero, shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Maximum depth of %d levels exceeded", e.maxDepth))
		}
	} else {
		newPath = RootPath(node.ID)
		newDepth = 0
	}

	// Lock and load the whole descendant set before the first write.
	descendants, err := e.repo.FindDescendantsForUpdate(ctx, scope, node.Path)
	if err != nil {
		return zero, shared.NewStorageError(err)
	}

	oldPath := node.Path
	depthDelta := newDepth - node.Depth

	node.SetPosition(newParentID, newDepth, newPath)
	node.SetActor(actor)
	node.Touch()
	node.IncrementVersion()
	if err := e.repo.UpdateTreeFields(ctx, []T{entity}); err != nil {
		return zero, shared.NewStorageError(err)
	}

	for _, d := range descendants {
		dn := d.TreeNode()
		suffix, ok := RelativeSuffix(oldPath, dn.Path)
		if !ok {
			return zero, shared.NewStorageError(fmt.Errorf("descendant %s path %q does not extend subtree path %q", dn.ID, dn.Path, oldPath))
		}
		dn.Path = newPath + suffix
		dn.Depth += depthDelta
		dn.SetActor(actor)
		dn.Touch()
	}
	if len(descendants) > 0 {
		if err := e.repo.UpdateTreeFields(ctx, descendants); err != nil {
			return zero, shared.NewStorageError(err)
		}
	}

	e.log.Debug("node moved",
		zap.String("scope", scope.String()),
		zap.String("node_id", node.ID.String()),
		zap.String("old_path", oldPath),
		zap.String("new_path", newPath),
		zap.Int("descendants_rewritten", len(descendants)))

	return entity, nil
}

// Reorder changes a node's sort position among its siblings. When
// newParentID differs from the current parent it first performs a full Move
// in the same transaction. Sibling sort_order values are never renumbered;
// ties break by id at read time.
func (e *MutationEngine[T]) Reorder(ctx context.Context, scope Scope, id uuid.UUID, newParentID *uuid.UUID, newSortOrder int, actor string) (T, error) {
	var out T
	err := e.tx.InTx(ctx, func(ctx context.Context) error {
		entity, err := e.repo.FindByIDForUpdate(ctx, scope, id)
		if err != nil {
			if isNotFound(err) {
				return shared.NewDomainError("NOT_FOUND", "Node not found in scope")
			}
			return shared.NewStorageError(err)
		}
		node := entity.TreeNode()

		if !sameParent(node.ParentID, newParentID) {
			entity, err = e.move(ctx, scope, id, newParentID, actor)
			if err != nil {
				return err
			}
			node = entity.TreeNode()
		}

		node.SortOrder = newSortOrder
		node.SetActor(actor)
		node.Touch()
		if err := e.repo.UpdateTreeFields(ctx, []T{entity}); err != nil {
			return shared.NewStorageError(err)
		}
		out = entity
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Delete soft-deletes a node. It refuses while a non-deleted child or a
// positive dependent count remains; soft delete never cascades.
func (e *MutationEngine[T]) Delete(ctx context.Context, scope Scope, id uuid.UUID, actor string) error {
	return e.tx.InTx(ctx, func(ctx context.Context) error {
		entity, err := e.repo.FindByIDForUpdate(ctx, scope, id)
		if err != nil {
			if isNotFound(err) {
				return shared.NewDomainError("NOT_FOUND", "Node not found in scope")
			}
			return shared.NewStorageError(err)
		}

		children, err := e.repo.CountChildren(ctx, scope, id)
		if err != nil {
			return shared.NewStorageError(err)
		}
		if children > 0 {
			return shared.NewDomainError("HAS_CHILDREN", fmt.Sprintf("Cannot delete a node with %d child nodes", children))
		}

		dependents, err := e.deps.CountDependents(ctx, scope, id)
		if err != nil {
			return shared.NewStorageError(err)
		}
		if dependents > 0 {
			return shared.NewDomainError("HAS_DEPENDENTS", fmt.Sprintf("Cannot delete a node referenced by %d records", dependents))
		}

		node := entity.TreeNode()
		node.MarkDeleted()
		node.SetActor(actor)
		if err := e.repo.SoftDelete(ctx, entity); err != nil {
			return shared.NewStorageError(err)
		}
		return nil
	})
}

// DeleteSubtree soft-deletes a node and every descendant in one
// transaction, returning how many nodes were deleted. This is the explicit
// cascading variant used by menu management; single-node Delete never
// cascades.
func (e *MutationEngine[T]) DeleteSubtree(ctx context.Context, scope Scope, id uuid.UUID, actor string) (int, error) {
	deleted := 0
	err := e.tx.InTx(ctx, func(ctx context.Context) error {
		entity, err := e.repo.FindByIDForUpdate(ctx, scope, id)
		if err != nil {
			if isNotFound(err) {
				return shared.NewDomainError("NOT_FOUND", "Node not found in scope")
			}
			return shared.NewStorageError(err)
		}
		node := entity.TreeNode()

		descendants, err := e.repo.FindDescendantsForUpdate(ctx, scope, node.Path)
		if err != nil {
			return shared.NewStorageError(err)
		}

		node.MarkDeleted()
		node.SetActor(actor)
		if err := e.repo.SoftDelete(ctx, entity); err != nil {
			return shared.NewStorageError(err)
		}
		deleted = 1

		for _, d := range descendants {
			dn := d.TreeNode()
			dn.MarkDeleted()
			dn.SetActor(actor)
			if err := e.repo.SoftDelete(ctx, d); err != nil {
				return shared.NewStorageError(err)
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// HardDelete physically removes a node row for administrative cleanup. The
// caller must already have ensured the node has no children; the storage
// layer's ON DELETE rules cover any stray references.
func (e *MutationEngine[T]) HardDelete(ctx context.Context, scope Scope, id uuid.UUID) error {
	return e.tx.InTx(ctx, func(ctx context.Context) error {
		if err := e.repo.HardDelete(ctx, scope, id); err != nil {
			if isNotFound(err) {
				return shared.NewDomainError("NOT_FOUND", "Node not found in scope")
			}
			return shared.NewStorageError(err)
		}
		return nil
	})
}

// Save persists payload changes through the repository's Update, which
// excludes the tree placement columns. Field updates therefore can never
// drift depth or path.
func (e *MutationEngine[T]) Save(ctx context.Context, entity T, actor string) error {
	node := entity.TreeNode()
	node.SetActor(actor)
	node.Touch()
	node.IncrementVersion()
	return e.tx.InTx(ctx, func(ctx context.Context) error {
		if err := e.repo.Update(ctx, entity); err != nil {
			return shared.NewStorageError(err)
		}
		return nil
	})
}

// sameParent compares two optional parent ids
func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// isNotFound reports whether err carries the NOT_FOUND domain code
func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == "NOT_FOUND"
}
