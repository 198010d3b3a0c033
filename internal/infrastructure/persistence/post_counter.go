package persistence

import (
	"context"

	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostCounter reports how many non-deleted posts still reference a
// category. The category engine refuses to delete while the count is
// positive. Posts are owned by another service, so the counter reads the
// table directly instead of going through a domain repository.
type PostCounter struct {
	db *gorm.DB
}

// NewPostCounter creates a PostCounter
func NewPostCounter(db *gorm.DB) *PostCounter {
	return &PostCounter{db: db}
}

// CountDependents counts non-deleted posts in the category
func (c *PostCounter) CountDependents(ctx context.Context, scope tree.Scope, nodeID uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, c.db).Table("posts").
		Where("tenant_id = ? AND category_id = ? AND is_deleted = false", scope.TenantID, nodeID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

var _ tree.DependentsCounter = (*PostCounter)(nil)
