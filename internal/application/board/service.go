// Package board exposes board management as application operations. Boards
// are the scope targets of category trees, so this service is mostly plain
// CRUD plus the archive rule.
package board

import (
	"context"

	"github.com/boardhub/backend/internal/domain/board"
	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service handles board business operations
type Service struct {
	repo board.Repository
}

// NewService creates a new board Service
func NewService(repo board.Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new board for a tenant
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req CreateBoardRequest, actor string) (*BoardResponse, error) {
	exists, err := s.repo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Board with this code already exists")
	}

	b, err := board.NewBoard(tenantID, req.Code, req.Name, board.BoardType(req.Type))
	if err != nil {
		return nil, err
	}
	b.Description = req.Description
	if req.ReadPermission != "" {
		b.ReadPermission = board.PermissionLevel(req.ReadPermission)
	}
	if req.WritePermission != "" {
		b.WritePermission = board.PermissionLevel(req.WritePermission)
	}
	if req.EnableCategories != nil {
		b.EnableCategories = *req.EnableCategories
	}
	if req.DisplayOrder != nil {
		b.DisplayOrder = *req.DisplayOrder
	}
	b.SetActor(actor)

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return ToBoardResponse(b), nil
}

// GetByID retrieves a board by id
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*BoardResponse, error) {
	b, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToBoardResponse(b), nil
}

// GetByCode retrieves a board by its code
func (s *Service) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*BoardResponse, error) {
	b, err := s.repo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	return ToBoardResponse(b), nil
}

// List retrieves the tenant's boards with the total count
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter BoardListFilter) ([]BoardResponse, int64, error) {
	domainFilter := shared.Filter{
		Search:   filter.Search,
		OrderBy:  "display_order",
		OrderDir: "asc",
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	boards, total, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToBoardResponses(boards), total, nil
}

// Update updates a board's settings
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateBoardRequest, actor string) (*BoardResponse, error) {
	b, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	name := b.Name
	description := b.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := b.Update(name, description); err != nil {
		return nil, err
	}

	if req.ReadPermission != nil {
		b.ReadPermission = board.PermissionLevel(*req.ReadPermission)
	}
	if req.WritePermission != nil {
		b.WritePermission = board.PermissionLevel(*req.WritePermission)
	}
	if req.EnableCategories != nil {
		b.EnableCategories = *req.EnableCategories
	}
	if req.DisplayOrder != nil {
		b.DisplayOrder = *req.DisplayOrder
	}
	b.SetActor(actor)

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return ToBoardResponse(b), nil
}

// Archive soft-deletes a board. Its category tree stays in storage but the
// scope stops accepting mutations.
func (s *Service) Archive(ctx context.Context, tenantID, id uuid.UUID, actor string) error {
	b, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	b.Archive()
	b.SetActor(actor)
	return s.repo.Save(ctx, b)
}
