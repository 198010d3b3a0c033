// Package navigation exposes menu management as application operations.
// Structural changes go through the shared tree mutation engine; this layer
// adds the menu-only bulk operations and the viewer-facing visibility
// filtering.
package navigation

import (
	"context"
	"errors"

	"github.com/boardhub/backend/internal/domain/navigation"
	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles menu item business operations
type Service struct {
	mutations *tree.MutationEngine[*navigation.MenuItem]
	queries   *tree.QueryEngine[*navigation.MenuItem]
	tx        tree.TxRunner
	cache     MenuCache
	log       *zap.Logger
}

// NewService creates a new menu Service. The tx runner wraps the bulk
// operations so they commit or roll back as one unit; the per-item engine
// transactions join it through the context.
func NewService(
	mutations *tree.MutationEngine[*navigation.MenuItem],
	queries *tree.QueryEngine[*navigation.MenuItem],
	tx tree.TxRunner,
	cache MenuCache,
	log *zap.Logger,
) *Service {
	if cache == nil {
		cache = NoopMenuCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		mutations: mutations,
		queries:   queries,
		tx:        tx,
		cache:     cache,
		log:       log,
	}
}

// invalidate drops the scope's cached trees after a successful mutation. A
// failing invalidation is logged, not returned: the cache entries expire on
// their TTL anyway.
func (s *Service) invalidate(ctx context.Context, scope tree.Scope) {
	if err := s.cache.Invalidate(ctx, scope); err != nil {
		s.log.Warn("menu cache invalidation failed",
			zap.String("scope", scope.String()),
			zap.Error(err))
	}
}

// scopeFor builds the (tenant, menu type) scope a menu tree lives in
func scopeFor(tenantID uuid.UUID, menuType navigation.MenuType) tree.Scope {
	return tree.Scope{TenantID: tenantID, Forest: string(menuType)}
}

// Create creates a new menu item, under req.ParentID when given
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, req CreateMenuItemRequest, actor string) (*MenuItemResponse, error) {
	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	m, err := navigation.New(tenantID, menuType, req.Code, req.Name, sortOrder)
	if err != nil {
		return nil, err
	}

	linkType := m.LinkType
	if req.LinkType != "" {
		linkType = navigation.LinkType(req.LinkType)
	}
	if err := m.Update(req.Name, req.Description, req.URL, req.Icon, linkType); err != nil {
		return nil, err
	}
	if req.PermissionType != "" {
		if err := m.SetPermission(navigation.PermissionType(req.PermissionType)); err != nil {
			return nil, err
		}
	}
	if req.IsVisible != nil {
		m.SetVisibility(*req.IsVisible)
	}

	scope := scopeFor(tenantID, menuType)
	created, err := s.mutations.Create(ctx, scope, m, req.ParentID, actor)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, scope)
	return ToMenuItemResponse(created), nil
}

// GetByID retrieves a menu item by id
func (s *Service) GetByID(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, id uuid.UUID) (*MenuItemResponse, error) {
	m, err := s.queries.Get(ctx, scopeFor(tenantID, menuType), id)
	if err != nil {
		return nil, err
	}
	return ToMenuItemResponse(m), nil
}

// Update changes a menu item's display payload
func (s *Service) Update(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, id uuid.UUID, req UpdateMenuItemRequest, actor string) (*MenuItemResponse, error) {
	scope := scopeFor(tenantID, menuType)
	m, err := s.queries.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	name := m.Name
	description := m.Description
	url := m.URL
	icon := m.Icon
	linkType := m.LinkType
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.URL != nil {
		url = *req.URL
	}
	if req.Icon != nil {
		icon = *req.Icon
	}
	if req.LinkType != nil {
		linkType = navigation.LinkType(*req.LinkType)
	}
	if err := m.Update(name, description, url, icon, linkType); err != nil {
		return nil, err
	}

	if req.PermissionType != nil {
		if err := m.SetPermission(navigation.PermissionType(*req.PermissionType)); err != nil {
			return nil, err
		}
	}
	if req.IsVisible != nil {
		m.SetVisibility(*req.IsVisible)
	}

	if err := s.mutations.Save(ctx, m, actor); err != nil {
		return nil, err
	}
	s.invalidate(ctx, scope)
	return ToMenuItemResponse(m), nil
}

// Move reparents a menu item; nil parent makes it a root
func (s *Service) Move(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, id uuid.UUID, req MoveMenuItemRequest, actor string) (*MenuItemResponse, error) {
	scope := scopeFor(tenantID, menuType)
	m, err := s.mutations.Move(ctx, scope, id, req.ParentID, actor)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, scope)
	return ToMenuItemResponse(m), nil
}

// Reorder repositions a menu item among its siblings, reparenting first when
// req.ParentID differs from the current parent
func (s *Service) Reorder(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, id uuid.UUID, req ReorderMenuItemRequest, actor string) (*MenuItemResponse, error) {
	scope := scopeFor(tenantID, menuType)
	m, err := s.mutations.Reorder(ctx, scope, id, req.ParentID, req.SortOrder, actor)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, scope)
	return ToMenuItemResponse(m), nil
}

// BulkReorder applies a batch of reorder entries as one transaction, the
// shape a drag-and-drop editor submits. Any failing entry rolls back the
// whole batch.
func (s *Service) BulkReorder(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, req BulkReorderRequest, actor string) (int, error) {
	scope := scopeFor(tenantID, menuType)
	applied := 0
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		for _, item := range req.Items {
			if _, err := s.mutations.Reorder(ctx, scope, item.ID, item.ParentID, item.SortOrder, actor); err != nil {
				return err
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, scope)
	return applied, nil
}

// Delete soft-deletes a single menu item; it fails while children remain
func (s *Service) Delete(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, id uuid.UUID, actor string) error {
	scope := scopeFor(tenantID, menuType)
	if err := s.mutations.Delete(ctx, scope, id, actor); err != nil {
		return err
	}
	s.invalidate(ctx, scope)
	return nil
}

// DeleteSubtree soft-deletes a menu item and every descendant, returning how
// many items were removed
func (s *Service) DeleteSubtree(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, id uuid.UUID, actor string) (int, error) {
	scope := scopeFor(tenantID, menuType)
	deleted, err := s.mutations.DeleteSubtree(ctx, scope, id, actor)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, scope)
	return deleted, nil
}

// BulkDelete soft-deletes many menu items in one transaction. Ids that no
// longer exist are skipped; the returned count covers only items actually
// deleted. An item that still has children fails the whole batch.
func (s *Service) BulkDelete(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, req BulkDeleteRequest, actor string) (int, error) {
	scope := scopeFor(tenantID, menuType)
	deleted := 0
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		for _, id := range req.IDs {
			if err := s.mutations.Delete(ctx, scope, id, actor); err != nil {
				var domainErr *shared.DomainError
				if errors.As(err, &domainErr) && domainErr.Code == "NOT_FOUND" {
					continue
				}
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, scope)
	return deleted, nil
}

// GetTree retrieves a menu as a nested tree for management screens
func (s *Service) GetTree(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, includeInactive bool) ([]MenuTreeNode, error) {
	forest, err := s.queries.Tree(ctx, scopeFor(tenantID, menuType), includeInactive)
	if err != nil {
		return nil, err
	}
	return ToMenuTree(forest), nil
}

// GetChildren retrieves the direct children of a menu item; nil parentID
// lists the menu's roots
func (s *Service) GetChildren(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, parentID *uuid.UUID, includeInactive bool) ([]MenuItemResponse, error) {
	children, err := s.queries.Children(ctx, scopeFor(tenantID, menuType), parentID, includeInactive)
	if err != nil {
		return nil, err
	}
	return ToMenuItemResponses(children), nil
}

// List retrieves a flat, tree-ordered page of the menu with the total count
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, skip, limit int, includeInactive bool) ([]MenuItemResponse, int64, error) {
	page, total, err := s.queries.FlatPage(ctx, scopeFor(tenantID, menuType), skip, limit, includeInactive)
	if err != nil {
		return nil, 0, err
	}
	return ToMenuItemResponses(page), total, nil
}

// GetVisibleMenu retrieves the menu tree a viewer should see: hidden items
// and items behind a permission gate the viewer does not pass are pruned
// together with their subtrees.
func (s *Service) GetVisibleMenu(ctx context.Context, tenantID uuid.UUID, menuType navigation.MenuType, authenticated bool) ([]MenuTreeNode, error) {
	scope := scopeFor(tenantID, menuType)

	if cached, ok, err := s.cache.GetVisible(ctx, scope, authenticated); err == nil && ok {
		return cached, nil
	} else if err != nil {
		s.log.Warn("menu cache read failed",
			zap.String("scope", scope.String()),
			zap.Error(err))
	}

	forest, err := s.queries.Tree(ctx, scope, false)
	if err != nil {
		return nil, err
	}
	visible := toVisibleTree(forest, authenticated)

	if err := s.cache.SetVisible(ctx, scope, authenticated, visible); err != nil {
		s.log.Warn("menu cache write failed",
			zap.String("scope", scope.String()),
			zap.Error(err))
	}
	return visible, nil
}

func toVisibleTree(forest []*tree.TreeNode[*navigation.MenuItem], authenticated bool) []MenuTreeNode {
	out := make([]MenuTreeNode, 0, len(forest))
	for _, n := range forest {
		if !n.Item.VisibleTo(authenticated) {
			continue
		}
		out = append(out, MenuTreeNode{
			MenuItemResponse: *ToMenuItemResponse(n.Item),
			Children:         toVisibleTree(n.Children, authenticated),
		})
	}
	return out
}
