package navigation

import (
	"context"
	"errors"

	"github.com/boardhub/backend/internal/domain/navigation"
	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/boardhub/backend/internal/domain/tree"
)

// menuScopeGuard validates menu scopes. The forest key of a menu scope is
// the menu type, so writability is a pure enum check.
type menuScopeGuard struct {
	repo tree.Repository[*navigation.MenuItem]
}

// NewMenuScopeGuard creates the ScopeGuard used by the menu engines
func NewMenuScopeGuard(repo tree.Repository[*navigation.MenuItem]) tree.ScopeGuard {
	return &menuScopeGuard{repo: repo}
}

// EnsureWritable verifies the scope names a known menu type
func (g *menuScopeGuard) EnsureWritable(_ context.Context, scope tree.Scope) error {
	if !navigation.MenuType(scope.Forest).Valid() {
		return shared.NewDomainError("NOT_FOUND", "Unknown menu type")
	}
	return nil
}

// CodeInUse reports whether a non-deleted menu item already holds the code
// in this menu
func (g *menuScopeGuard) CodeInUse(ctx context.Context, scope tree.Scope, code string) (bool, error) {
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
