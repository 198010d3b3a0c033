package category

import (
	"context"
	"errors"

	"github.com/boardhub/backend/internal/domain/board"
	"github.com/boardhub/backend/internal/domain/category"
	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
)

// boardScopeGuard validates category scopes against the boards table. The
// forest key of a category scope is the board id.
type boardScopeGuard struct {
	boards board.Repository
	repo   tree.Repository[*category.Category]
}

// NewBoardScopeGuard creates the ScopeGuard used by the category engines
func NewBoardScopeGuard(boards board.Repository, repo tree.Repository[*category.Category]) tree.ScopeGuard {
	return &boardScopeGuard{boards: boards, repo: repo}
}

// EnsureWritable verifies the scope's board exists in the tenant, is not
// archived, and has categories enabled
func (g *boardScopeGuard) EnsureWritable(ctx context.Context, scope tree.Scope) error {
	boardID, err := uuid.Parse(scope.Forest)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Board not found")
	}

	b, err := g.boards.FindByIDForTenant(ctx, scope.TenantID, boardID)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "NOT_FOUND" {
			return shared.NewDomainError("NOT_FOUND", "Board not found")
		}
		return shared.NewStorageError(err)
	}
	if !b.Writable() {
		return shared.NewDomainError("INVALID_OPERATION", "Board is not writable")
	}
	if !b.EnableCategories {
		return shared.NewDomainError("INVALID_OPERATION", "Board does not have categories enabled")
	}
	return nil
}

// CodeInUse reports whether a non-deleted category already holds the code in
// this board
func (g *boardScopeGuard) CodeInUse(ctx context.Context, scope tree.Scope, code string) (bool, error) {
	_, err := g.repo.FindByCode(ctx, scope, code)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "NOT_FOUND" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
