package category

import (
	"context"
	"testing"

	"github.com/boardhub/backend/internal/domain/category"
	"github.com/boardhub/backend/internal/domain/shared"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostCounter is a mock implementation of tree.DependentsCounter
type MockPostCounter struct {
	mock.Mock
}

func (m *MockPostCounter) CountDependents(ctx context.Context, scope tree.Scope, nodeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, scope, nodeID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(boards *MockBoardRepository, repo *MockCategoryRepository, posts tree.DependentsCounter) *Service {
	guard := NewBoardScopeGuard(boards, repo)
	mutations := tree.NewMutationEngine[*category.Category](repo, guard, posts, tree.NoTx{}, 10, nil)
	queries := tree.NewQueryEngine[*category.Category](repo)
	return NewService(mutations, queries)
}

func newTestCategory(t *testing.T, boardID uuid.UUID, code, name string, sortOrder int) *category.Category {
	t.Helper()
	c, err := category.New(newTestTenantID(), boardID, code, name, sortOrder)
	assert.NoError(t, err)
	return c
}

func TestCategoryService_Create_UnderParent(t *testing.T) {
	boards := new(MockBoardRepository)
	repo := new(MockCategoryRepository)
	service := newTestService(boards, repo, nil)

	ctx := context.Background()
	b := newTestBoard(t)
	scope := boardScope(b.ID)
	parent := newTestCategory(t, b.ID, "parent", "Parent", 0)

	boards.On("FindByIDForTenant", ctx, newTestTenantID(), b.ID).Return(b, nil)
	repo.On("FindByCode", ctx, scope, "child").Return(nil, shared.ErrNotFound)
	repo.On("FindByID", ctx, scope, parent.ID).Return(parent, nil)
	repo.On("Insert", ctx, mock.AnythingOfType("*category.Category")).Return(nil)

	resp, err := service.Create(ctx, newTestTenantID(), b.ID, CreateCategoryRequest{
		Code:     "child",
		Name:     "Child",
		ParentID: &parent.ID,
	}, "alice")

	assert.NoError(t, err)
	assert.Equal(t, "child", resp.Code)
	assert.Equal(t, 1, resp.Depth)
	assert.Equal(t, &parent.ID, resp.ParentID)
}

func TestCategoryService_Create_ArchivedBoardRefused(t *testing.T) {
	boards := new(MockBoardRepository)
	repo := new(MockCategoryRepository)
	service := newTestService(boards, repo, nil)

	ctx := context.Background()
	b := newTestBoard(t)
	b.Archive()

	boards.On("FindByIDForTenant", ctx, newTestTenantID(), b.ID).Return(b, nil)

	_, err := service.Create(ctx, newTestTenantID(), b.ID, CreateCategoryRequest{
		Code: "general",
		Name: "General",
	}, "alice")

	assert.Equal(t, "INVALID_OPERATION", domainCode(t, err))
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCategoryService_Create_DuplicateCode(t *testing.T) {
	boards := new(MockBoardRepository)
	repo := new(MockCategoryRepository)
	service := newTestService(boards, repo, nil)

	ctx := context.Background()
	b := newTestBoard(t)
	scope := boardScope(b.ID)
	existing := newTestCategory(t, b.ID, "general", "General", 0)

	boards.On("FindByIDForTenant", ctx, newTestTenantID(), b.ID).Return(b, nil)
	repo.On("FindByCode", ctx, scope, "general").Return(existing, nil)

	_, err := service.Create(ctx, newTestTenantID(), b.ID, CreateCategoryRequest{
		Code: "general",
		Name: "General Again",
	}, "alice")

	assert.Equal(t, "ALREADY_EXISTS", domainCode(t, err))
}

func TestCategoryService_Delete_RefusedWhilePostsRemain(t *testing.T) {
	boards := new(MockBoardRepository)
	repo := new(MockCategoryRepository)
	posts := new(MockPostCounter)
	service := newTestService(boards, repo, posts)

	ctx := context.Background()
	b := newTestBoard(t)
	scope := boardScope(b.ID)
	c := newTestCategory(t, b.ID, "general", "General", 0)

	repo.On("FindByIDForUpdate", ctx, scope, c.ID).Return(c, nil)
	repo.On("CountChildren", ctx, scope, c.ID).Return(int64(0), nil)
	posts.On("CountDependents", ctx, scope, c.ID).Return(int64(7), nil)

	err := service.Delete(ctx, newTestTenantID(), b.ID, c.ID, "alice")

	assert.Equal(t, "HAS_DEPENDENTS", domainCode(t, err))
	repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestCategoryService_Delete_EmptyCategory(t *testing.T) {
	boards := new(MockBoardRepository)
	repo := new(MockCategoryRepository)
	posts := new(MockPostCounter)
	service := newTestService(boards, repo, posts)

	ctx := context.Background()
	b := newTestBoard(t)
	scope := boardScope(b.ID)
	c := newTestCategory(t, b.ID, "general", "General", 0)

	repo.On("FindByIDForUpdate", ctx, scope, c.ID).Return(c, nil)
	repo.On("CountChildren", ctx, scope, c.ID).Return(int64(0), nil)
	posts.On("CountDependents", ctx, scope, c.ID).Return(int64(0), nil)
	repo.On("SoftDelete", ctx, c).Return(nil)

	assert.NoError(t, service.Delete(ctx, newTestTenantID(), b.ID, c.ID, "alice"))
	assert.Equal(t, tree.LifecycleDeleted, c.Lifecycle)
}

func TestCategoryService_Update_PartialPayload(t *testing.T) {
	boards := new(MockBoardRepository)
	repo := new(MockCategoryRepository)
	service := newTestService(boards, repo, nil)

	ctx := context.Background()
	b := newTestBoard(t)
	scope := boardScope(b.ID)
	c := newTestCategory(t, b.ID, "general", "General", 0)
	c.Icon = "chat"

	newName := "Announcements"

	repo.On("FindByID", ctx, scope, c.ID).Return(c, nil)
	repo.On("Update", ctx, c).Return(nil)

	resp, err := service.Update(ctx, newTestTenantID(), b.ID, c.ID, UpdateCategoryRequest{
		Name: &newName,
	}, "alice")

	assert.NoError(t, err)
	assert.Equal(t, "Announcements", resp.Name)
	// Untouched fields survive a partial update
	assert.Equal(t, "chat", resp.Icon)
}

func TestCategoryService_Update_InvalidPermission(t *testing.T) {
	boards := new(MockBoardRepository)
	repo := new(MockCategoryRepository)
	service := newTestService(boards, repo, nil)

	ctx := context.Background()
	b := newTestBoard(t)
	scope := boardScope(b.ID)
	c := newTestCategory(t, b.ID, "general", "General", 0)

	bogus := "bogus"
	repo.On("FindByID", ctx, scope, c.ID).Return(c, nil)

	_, err := service.Update(ctx, newTestTenantID(), b.ID, c.ID, UpdateCategoryRequest{
		ReadPermission: &bogus,
	}, "alice")

	assert.Equal(t, "INVALID_INPUT", domainCode(t, err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCategoryService_ActivateDeactivate(t *testing.T) {
	boards := new(MockBoardRepository)
	repo := new(MockCategoryRepository)
	service := newTestService(boards, repo, nil)

	ctx := context.Background()
	b := newTestBoard(t)
	scope := boardScope(b.ID)
	c := newTestCategory(t, b.ID, "general", "General", 0)

	repo.On("FindByID", ctx, scope, c.ID).Return(c, nil)
	repo.On("Update", ctx, c).Return(nil)

	resp, err := service.Deactivate(ctx, newTestTenantID(), b.ID, c.ID, "alice")
	assert.NoError(t, err)
	assert.Equal(t, string(tree.LifecycleInactive), resp.Lifecycle)

	resp, err = service.Activate(ctx, newTestTenantID(), b.ID, c.ID, "alice")
	assert.NoError(t, err)
	assert.Equal(t, string(tree.LifecycleActive), resp.Lifecycle)

	// A second activation is not a valid transition
	_, err = service.Activate(ctx, newTestTenantID(), b.ID, c.ID, "alice")
	assert.Error(t, err)
}
