package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/boardhub/backend/internal/domain/board"
	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBoardRepository implements board.Repository using GORM
type GormBoardRepository struct {
	db *gorm.DB
}

// NewGormBoardRepository creates a new GormBoardRepository
func NewGormBoardRepository(db *gorm.DB) *GormBoardRepository {
	return &GormBoardRepository{db: db}
}

// FindByIDForTenant finds a non-deleted board by id within a tenant
func (r *GormBoardRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*board.Board, error) {
	var b board.Board
	err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND id = ? AND is_deleted = false", tenantID, id).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByCode finds a non-deleted board by code within a tenant
func (r *GormBoardRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*board.Board, error) {
	var b board.Board
	err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND code = ? AND is_deleted = false", tenantID, code).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindAllForTenant lists non-deleted boards for a tenant with the total
// count
func (r *GormBoardRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]board.Board, int64, error) {
	base := dbFrom(ctx, r.db).Model(&board.Board{}).
		Where("tenant_id = ? AND is_deleted = false", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base
	if filter.OrderBy != "" {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + dir)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var boards []board.Board
	if err := query.Find(&boards).Error; err != nil {
		return nil, 0, err
	}
	return boards, total, nil
}

// Save creates or updates a board
func (r *GormBoardRepository) Save(ctx context.Context, b *board.Board) error {
	return dbFrom(ctx, r.db).Save(b).Error
}

// ExistsByCode reports whether a non-deleted board with the code exists in
// the tenant
func (r *GormBoardRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&board.Board{}).
		Where("tenant_id = ? AND code = ? AND is_deleted = false", tenantID, code).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ board.Repository = (*GormBoardRepository)(nil)
