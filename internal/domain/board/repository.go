package board

import (
	"context"

	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for board persistence
type Repository interface {
	// FindByIDForTenant finds a non-deleted board by id within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Board, error)

	// FindByCode finds a non-deleted board by code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Board, error)

	// FindAllForTenant lists non-deleted boards for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Board, int64, error)

	// Save creates or updates a board
	Save(ctx context.Context, b *Board) error

	// ExistsByCode reports whether a non-deleted board with the code exists
	// in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}
