// Package category exposes board category management as application
// operations. Structural changes go through the shared tree mutation engine;
// this layer translates DTOs and owns nothing about path math.
package category

import (
	"context"

	"github.com/boardhub/backend/internal/domain/category"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
)

// Service handles category business operations for boards
type Service struct {
	mutations *tree.MutationEngine[*category.Category]
	queries   *tree.QueryEngine[*category.Category]
}

// NewService creates a new category Service
func NewService(
	mutations *tree.MutationEngine[*category.Category],
	queries *tree.QueryEngine[*category.Category],
) *Service {
	return &Service{
		mutations: mutations,
		queries:   queries,
	}
}

// scopeFor builds the (tenant, board) scope a category tree lives in
func scopeFor(tenantID, boardID uuid.UUID) tree.Scope {
	return tree.Scope{TenantID: tenantID, Forest: boardID.String()}
}

// Create creates a new category on a board, under req.ParentID when given
func (s *Service) Create(ctx context.Context, tenantID, boardID uuid.UUID, req CreateCategoryRequest, actor string) (*CategoryResponse, error) {
	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	c, err := category.New(tenantID, boardID, req.Code, req.Name, sortOrder)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Name, req.Description, req.Icon, req.Color); err != nil {
		return nil, err
	}
	if req.ReadPermission != "" || req.WritePermission != "" {
		read := c.ReadPermission
		write := c.WritePermission
		if req.ReadPermission != "" {
			read = category.Permission(req.ReadPermission)
		}
		if req.WritePermission != "" {
			write = category.Permission(req.WritePermission)
		}
		if err := c.SetPermissions(read, write); err != nil {
			return nil, err
		}
	}

	created, err := s.mutations.Create(ctx, scopeFor(tenantID, boardID), c, req.ParentID, actor)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(created), nil
}

// GetByID retrieves a category by id
func (s *Service) GetByID(ctx context.Context, tenantID, boardID, id uuid.UUID) (*CategoryResponse, error) {
	c, err := s.queries.Get(ctx, scopeFor(tenantID, boardID), id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(c), nil
}

// Update changes a category's display payload
func (s *Service) Update(ctx context.Context, tenantID, boardID, id uuid.UUID, req UpdateCategoryRequest, actor string) (*CategoryResponse, error) {
	scope := scopeFor(tenantID, boardID)
	c, err := s.queries.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	name := c.Name
	description := c.Description
	icon := c.Icon
	color := c.Color
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Icon != nil {
		icon = *req.Icon
	}
	if req.Color != nil {
		color = *req.Color
	}
	if err := c.Update(name, description, icon, color); err != nil {
		return nil, err
	}

	if req.ReadPermission != nil || req.WritePermission != nil {
		read := c.ReadPermission
		write := c.WritePermission
		if req.ReadPermission != nil {
			read = category.Permission(*req.ReadPermission)
		}
		if req.WritePermission != nil {
			write = category.Permission(*req.WritePermission)
		}
		if err := c.SetPermissions(read, write); err != nil {
			return nil, err
		}
	}

	if err := s.mutations.Save(ctx, c, actor); err != nil {
		return nil, err
	}
	return ToCategoryResponse(c), nil
}

// Move reparents a category; nil parent makes it a root. Every descendant's
// depth and path are rewritten in the same transaction.
func (s *Service) Move(ctx context.Context, tenantID, boardID, id uuid.UUID, req MoveCategoryRequest, actor string) (*CategoryResponse, error) {
	c, err := s.mutations.Move(ctx, scopeFor(tenantID, boardID), id, req.ParentID, actor)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(c), nil
}

// Reorder repositions a category among its siblings, reparenting first when
// req.ParentID differs from the current parent
func (s *Service) Reorder(ctx context.Context, tenantID, boardID, id uuid.UUID, req ReorderCategoryRequest, actor string) (*CategoryResponse, error) {
	c, err := s.mutations.Reorder(ctx, scopeFor(tenantID, boardID), id, req.ParentID, req.SortOrder, actor)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(c), nil
}

// Activate makes a category visible to consumer-facing listings
func (s *Service) Activate(ctx context.Context, tenantID, boardID, id uuid.UUID, actor string) (*CategoryResponse, error) {
	return s.setLifecycle(ctx, tenantID, boardID, id, actor, (*category.Category).Activate)
}

// Deactivate hides a category from consumer-facing listings
func (s *Service) Deactivate(ctx context.Context, tenantID, boardID, id uuid.UUID, actor string) (*CategoryResponse, error) {
	return s.setLifecycle(ctx, tenantID, boardID, id, actor, (*category.Category).Deactivate)
}

func (s *Service) setLifecycle(ctx context.Context, tenantID, boardID, id uuid.UUID, actor string, transition func(*category.Category) error) (*CategoryResponse, error) {
	c, err := s.queries.Get(ctx, scopeFor(tenantID, boardID), id)
	if err != nil {
		return nil, err
	}
	if err := transition(c); err != nil {
		return nil, err
	}
	if err := s.mutations.Save(ctx, c, actor); err != nil {
		return nil, err
	}
	return ToCategoryResponse(c), nil
}

// Delete soft-deletes a category. It fails while the category still has
// children or posts.
func (s *Service) Delete(ctx context.Context, tenantID, boardID, id uuid.UUID, actor string) error {
	return s.mutations.Delete(ctx, scopeFor(tenantID, boardID), id, actor)
}

// HardDelete physically removes a category row, for administrative cleanup
func (s *Service) HardDelete(ctx context.Context, tenantID, boardID, id uuid.UUID) error {
	return s.mutations.HardDelete(ctx, scopeFor(tenantID, boardID), id)
}

// GetTree retrieves the board's categories as a nested tree
func (s *Service) GetTree(ctx context.Context, tenantID, boardID uuid.UUID, includeInactive bool) ([]CategoryTreeNode, error) {
	forest, err := s.queries.Tree(ctx, scopeFor(tenantID, boardID), includeInactive)
	if err != nil {
		return nil, err
	}
	return ToCategoryTree(forest), nil
}

// GetChildren retrieves the direct children of a category; nil parentID
// lists the board's root categories
func (s *Service) GetChildren(ctx context.Context, tenantID, boardID uuid.UUID, parentID *uuid.UUID, includeInactive bool) ([]CategoryResponse, error) {
	children, err := s.queries.Children(ctx, scopeFor(tenantID, boardID), parentID, includeInactive)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(children), nil
}

// GetSubtree retrieves a category and all of its descendants
func (s *Service) GetSubtree(ctx context.Context, tenantID, boardID, id uuid.UUID) ([]CategoryResponse, error) {
	subtree, err := s.queries.Subtree(ctx, scopeFor(tenantID, boardID), id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(subtree), nil
}

// GetBreadcrumbs retrieves a category's ancestor chain, root first
func (s *Service) GetBreadcrumbs(ctx context.Context, tenantID, boardID, id uuid.UUID) ([]CategoryResponse, error) {
	ancestors, err := s.queries.Ancestors(ctx, scopeFor(tenantID, boardID), id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(ancestors), nil
}

// List retrieves a flat, tree-ordered page of the board's categories with
// the total count
func (s *Service) List(ctx context.Context, tenantID, boardID uuid.UUID, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
	page, total, err := s.queries.FlatPage(ctx, scopeFor(tenantID, boardID), filter.Skip, filter.Limit, filter.IncludeInactive)
	if err != nil {
		return nil, 0, err
	}
	return ToCategoryResponses(page), total, nil
}
