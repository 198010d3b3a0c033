package persistence

import (
	"context"
	"errors"

	"github.com/boardhub/backend/internal/domain/category"
	"github.com/boardhub/backend/internal/domain/navigation"
	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// treeColumns are the placement columns owned by the mutation engine.
// Update must never write them; UpdateTreeFields writes them explicitly.
var treeColumns = []string{"parent_id", "depth", "path"}

// TreeRepository implements tree.Repository for any entity embedding
// tree.Node. One implementation backs both categories and menu items; the
// scope column (board_id, menu_type) is the only thing that differs.
type TreeRepository[T tree.Entity] struct {
	db          *gorm.DB
	scopeColumn string
	newFn       func() T
}

// NewTreeRepository creates a TreeRepository. scopeColumn names the column
// holding the scope's forest key; newFn produces an empty entity for GORM
// to scan into.
func NewTreeRepository[T tree.Entity](db *gorm.DB, scopeColumn string, newFn func() T) *TreeRepository[T] {
	return &TreeRepository[T]{db: db, scopeColumn: scopeColumn, newFn: newFn}
}

// NewCategoryRepository creates the category tree repository, scoped per
// board
func NewCategoryRepository(db *gorm.DB) *TreeRepository[*category.Category] {
	return NewTreeRepository(db, "board_id", func() *category.Category { return &category.Category{} })
}

// NewMenuItemRepository creates the menu item tree repository, scoped per
// menu type
func NewMenuItemRepository(db *gorm.DB) *TreeRepository[*navigation.MenuItem] {
	return NewTreeRepository(db, "menu_type", func() *navigation.MenuItem { return &navigation.MenuItem{} })
}

// scoped narrows a query to the scope's tenant and forest, excluding
// soft-deleted rows
func (r *TreeRepository[T]) scoped(db *gorm.DB, scope tree.Scope) *gorm.DB {
	return db.
		Where("tenant_id = ?", scope.TenantID).
		Where(r.scopeColumn+" = ?", scope.Forest).
		Where("lifecycle <> ?", tree.LifecycleDeleted)
}

func activeOnly(db *gorm.DB, includeInactive bool) *gorm.DB {
	if includeInactive {
		return db
	}
	return db.Where("lifecycle = ?", tree.LifecycleActive)
}

// Insert persists a new node with its final tree placement
func (r *TreeRepository[T]) Insert(ctx context.Context, entity T) error {
	return dbFrom(ctx, r.db).Create(entity).Error
}

// Update persists payload changes. The tree placement columns are omitted so
// a payload save can never drift depth or path.
func (r *TreeRepository[T]) Update(ctx context.Context, entity T) error {
	return dbFrom(ctx, r.db).Omit(treeColumns...).Save(entity).Error
}

// UpdateTreeFields persists placement and audit fields for already-loaded
// rows, one statement per row inside the caller's transaction
func (r *TreeRepository[T]) UpdateTreeFields(ctx context.Context, entities []T) error {
	db := dbFrom(ctx, r.db)
	for _, entity := range entities {
		n := entity.TreeNode()
		err := db.Model(r.newFn()).
			Where("id = ?", n.ID).
			Updates(map[string]interface{}{
				"parent_id":  n.ParentID,
				"depth":      n.Depth,
				"path":       n.Path,
				"sort_order": n.SortOrder,
				"updated_at": n.UpdatedAt,
				"updated_by": n.UpdatedBy,
				"version":    n.Version,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// FindByID finds a non-deleted node by id within the scope
func (r *TreeRepository[T]) FindByID(ctx context.Context, scope tree.Scope, id uuid.UUID) (T, error) {
	return r.findByID(dbFrom(ctx, r.db), scope, id)
}

// FindByIDForUpdate is FindByID with an exclusive row lock
func (r *TreeRepository[T]) FindByIDForUpdate(ctx context.Context, scope tree.Scope, id uuid.UUID) (T, error) {
	db := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.findByID(db, scope, id)
}

func (r *TreeRepository[T]) findByID(db *gorm.DB, scope tree.Scope, id uuid.UUID) (T, error) {
	entity := r.newFn()
	err := r.scoped(db, scope).Where("id = ?", id).First(entity).Error
	if err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, shared.ErrNotFound
		}
		return zero, err
	}
	return entity, nil
}

// FindByCode finds a non-deleted node by code within the scope
func (r *TreeRepository[T]) FindByCode(ctx context.Context, scope tree.Scope, code string) (T, error) {
	entity := r.newFn()
	err := r.scoped(dbFrom(ctx, r.db), scope).Where("code = ?", code).First(entity).Error
	if err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, shared.ErrNotFound
		}
		return zero, err
	}
	return entity, nil
}

// FindChildren lists the non-deleted children of parentID (roots when nil),
// ordered by (sort_order, id)
func (r *TreeRepository[T]) FindChildren(ctx context.Context, scope tree.Scope, parentID *uuid.UUID, includeInactive bool) ([]T, error) {
	q := activeOnly(r.scoped(dbFrom(ctx, r.db), scope), includeInactive)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}

	var items []T
	if err := q.Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindDescendants lists every non-deleted node whose path extends
// pathPrefix, excluding the prefix node itself, ordered by (path,
// sort_order)
func (r *TreeRepository[T]) FindDescendants(ctx context.Context, scope tree.Scope, pathPrefix string) ([]T, error) {
	return r.findDescendants(dbFrom(ctx, r.db), scope, pathPrefix)
}

// FindDescendantsForUpdate is FindDescendants with exclusive row locks
func (r *TreeRepository[T]) FindDescendantsForUpdate(ctx context.Context, scope tree.Scope, pathPrefix string) ([]T, error) {
	db := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.findDescendants(db, scope, pathPrefix)
}

func (r *TreeRepository[T]) findDescendants(db *gorm.DB, scope tree.Scope, pathPrefix string) ([]T, error) {
	var items []T
	err := r.scoped(db, scope).
		Where("path LIKE ?", likeEscape(pathPrefix)+"%").
		Where("path <> ?", pathPrefix).
		Order("path ASC, sort_order ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindForest lists the whole non-deleted scope, ordered by (sort_order, id)
func (r *TreeRepository[T]) FindForest(ctx context.Context, scope tree.Scope, includeInactive bool) ([]T, error) {
	var items []T
	err := activeOnly(r.scoped(dbFrom(ctx, r.db), scope), includeInactive).
		Order("sort_order ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FlatPage lists the scope ordered by (path, sort_order) with offset/limit
// pagination, returning the page and the total count
func (r *TreeRepository[T]) FlatPage(ctx context.Context, scope tree.Scope, includeInactive bool, offset, limit int) ([]T, int64, error) {
	db := dbFrom(ctx, r.db)

	var total int64
	err := activeOnly(r.scoped(db.Model(r.newFn()), scope), includeInactive).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var items []T
	err = activeOnly(r.scoped(db, scope), includeInactive).
		Order("path ASC, sort_order ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CountChildren counts non-deleted children of parentID
func (r *TreeRepository[T]) CountChildren(ctx context.Context, scope tree.Scope, parentID uuid.UUID) (int64, error) {
	var count int64
	err := r.scoped(dbFrom(ctx, r.db).Model(r.newFn()), scope).
		Where("parent_id = ?", parentID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SoftDelete persists an entity whose node was marked deleted
func (r *TreeRepository[T]) SoftDelete(ctx context.Context, entity T) error {
	n := entity.TreeNode()
	return dbFrom(ctx, r.db).Model(r.newFn()).
		Where("id = ?", n.ID).
		Updates(map[string]interface{}{
			"lifecycle":  n.Lifecycle,
			"updated_at": n.UpdatedAt,
			"updated_by": n.UpdatedBy,
			"version":    n.Version,
		}).Error
}

// HardDelete physically removes a row
func (r *TreeRepository[T]) HardDelete(ctx context.Context, scope tree.Scope, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).
		Where("tenant_id = ?", scope.TenantID).
		Where(r.scopeColumn+" = ?", scope.Forest).
		Where("id = ?", id).
		Delete(r.newFn())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// likeEscape escapes LIKE metacharacters in a path prefix. Paths only hold
// uuids and delimiters today, but escaping keeps the prefix query exact.
func likeEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

var _ tree.Repository[*category.Category] = (*TreeRepository[*category.Category])(nil)
var _ tree.Repository[*navigation.MenuItem] = (*TreeRepository[*navigation.MenuItem])(nil)
