package category

import (
	"context"
	"errors"
	"testing"

	"github.com/boardhub/backend/internal/domain/board"
	"github.com/boardhub/backend/internal/domain/category"
	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBoardRepository is a mock implementation of board.Repository
type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*board.Board, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.Board), args.Error(1)
}

func (m *MockBoardRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*board.Board, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.Board), args.Error(1)
}

func (m *MockBoardRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]board.Board, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]board.Board), args.Get(1).(int64), args.Error(2)
}

func (m *MockBoardRepository) Save(ctx context.Context, b *board.Board) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoardRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepository is a mock implementation of tree.Repository[*category.Category]
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Insert(ctx context.Context, entity *category.Category) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, entity *category.Category) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateTreeFields(ctx context.Context, entities []*category.Category) error {
	args := m.Called(ctx, entities)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, scope tree.Scope, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDForUpdate(ctx context.Context, scope tree.Scope, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByCode(ctx context.Context, scope tree.Scope, code string) (*category.Category, error) {
	args := m.Called(ctx, scope, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, scope tree.Scope, parentID *uuid.UUID, includeInactive bool) ([]*category.Category, error) {
	args := m.Called(ctx, scope, parentID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindDescendants(ctx context.Context, scope tree.Scope, pathPrefix string) ([]*category.Category, error) {
	args := m.Called(ctx, scope, pathPrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindDescendantsForUpdate(ctx context.Context, scope tree.Scope, pathPrefix string) ([]*category.Category, error) {
	args := m.Called(ctx, scope, pathPrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindForest(ctx context.Context, scope tree.Scope, includeInactive bool) ([]*category.Category, error) {
	args := m.Called(ctx, scope, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FlatPage(ctx context.Context, scope tree.Scope, includeInactive bool, offset, limit int) ([]*category.Category, int64, error) {
	args := m.Called(ctx, scope, includeInactive, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*category.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) CountChildren(ctx context.Context, scope tree.Scope, parentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, scope, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) SoftDelete(ctx context.Context, entity *category.Category) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCategoryRepository) HardDelete(ctx context.Context, scope tree.Scope, id uuid.UUID) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

// Test helpers

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.NewBoard(newTestTenantID(), "free-board", "Free Board", board.BoardTypeFree)
	assert.NoError(t, err)
	return b
}

func boardScope(boardID uuid.UUID) tree.Scope {
	return tree.Scope{TenantID: newTestTenantID(), Forest: boardID.String()}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

// Tests

func TestBoardScopeGuard_EnsureWritable_ActiveBoard(t *testing.T) {
	boards := new(MockBoardRepository)
	guard := NewBoardScopeGuard(boards, new(MockCategoryRepository))

	ctx := context.Background()
	b := newTestBoard(t)

	boards.On("FindByIDForTenant", ctx, newTestTenantID(), b.ID).Return(b, nil)

	assert.NoError(t, guard.EnsureWritable(ctx, boardScope(b.ID)))
}

func TestBoardScopeGuard_EnsureWritable_BoardNotFound(t *testing.T) {
	boards := new(MockBoardRepository)
	guard := NewBoardScopeGuard(boards, new(MockCategoryRepository))

	ctx := context.Background()
	boardID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	boards.On("FindByIDForTenant", ctx, newTestTenantID(), boardID).Return(nil, shared.ErrNotFound)

	err := guard.EnsureWritable(ctx, boardScope(boardID))
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestBoardScopeGuard_EnsureWritable_MalformedForestKey(t *testing.T) {
	boards := new(MockBoardRepository)
	guard := NewBoardScopeGuard(boards, new(MockCategoryRepository))

	err := guard.EnsureWritable(context.Background(), tree.Scope{
		TenantID: newTestTenantID(),
		Forest:   "not-a-board-id",
	})

	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	boards.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestBoardScopeGuard_EnsureWritable_ArchivedBoard(t *testing.T) {
	boards := new(MockBoardRepository)
	guard := NewBoardScopeGuard(boards, new(MockCategoryRepository))

	ctx := context.Background()
	b := newTestBoard(t)
	b.Archive()

	boards.On("FindByIDForTenant", ctx, newTestTenantID(), b.ID).Return(b, nil)

	err := guard.EnsureWritable(ctx, boardScope(b.ID))
	assert.Equal(t, "INVALID_OPERATION", domainCode(t, err))
}

func TestBoardScopeGuard_EnsureWritable_CategoriesDisabled(t *testing.T) {
	boards := new(MockBoardRepository)
	guard := NewBoardScopeGuard(boards, new(MockCategoryRepository))

	ctx := context.Background()
	b := newTestBoard(t)
	b.EnableCategories = false

	boards.On("FindByIDForTenant", ctx, newTestTenantID(), b.ID).Return(b, nil)

	err := guard.EnsureWritable(ctx, boardScope(b.ID))
	assert.Equal(t, "INVALID_OPERATION", domainCode(t, err))
}

func TestBoardScopeGuard_EnsureWritable_StorageFailure(t *testing.T) {
	boards := new(MockBoardRepository)
	guard := NewBoardScopeGuard(boards, new(MockCategoryRepository))

	ctx := context.Background()
	b := newTestBoard(t)

	boards.On("FindByIDForTenant", ctx, newTestTenantID(), b.ID).Return(nil, errors.New("connection refused"))

	err := guard.EnsureWritable(ctx, boardScope(b.ID))
	assert.True(t, shared.IsStorageError(err))
}

func TestBoardScopeGuard_CodeInUse(t *testing.T) {
	repo := new(MockCategoryRepository)
	guard := NewBoardScopeGuard(new(MockBoardRepository), repo)

	ctx := context.Background()
	b := newTestBoard(t)
	scope := boardScope(b.ID)
	existing, err := category.New(newTestTenantID(), b.ID, "general", "General", 0)
	assert.NoError(t, err)

	repo.On("FindByCode", ctx, scope, "general").Return(existing, nil)
	repo.On("FindByCode", ctx, scope, "fresh").Return(nil, shared.ErrNotFound)

	inUse, err := guard.CodeInUse(ctx, scope, "general")
	assert.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = guard.CodeInUse(ctx, scope, "fresh")
	assert.NoError(t, err)
	assert.False(t, inUse)
}

func TestBoardScopeGuard_CodeInUse_StorageFailure(t *testing.T) {
	repo := new(MockCategoryRepository)
	guard := NewBoardScopeGuard(new(MockBoardRepository), repo)

	ctx := context.Background()
	b := newTestBoard(t)
	scope := boardScope(b.ID)

	repo.On("FindByCode", ctx, scope, "general").Return(nil, errors.New("connection refused"))

	_, err := guard.CodeInUse(ctx, scope, "general")
	assert.Error(t, err)
}
