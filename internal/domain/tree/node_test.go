package tree

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewNode(t *testing.T) {
	tenantID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	node, err := NewNode(tenantID, "general", 3)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, node.ID)
	assert.Equal(t, tenantID, node.TenantID)
	assert.Nil(t, node.ParentID)
	assert.Equal(t, 0, node.Depth)
	assert.Equal(t, RootPath(node.ID), node.Path)
	assert.Equal(t, 3, node.SortOrder)
	assert.Equal(t, LifecycleActive, node.Lifecycle)
}

func TestNewNode_InvalidCode(t *testing.T) {
	tenantID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	cases := []string{"", "has space", "bad/slash", "ünïcode"}
	for _, code := range cases {
		_, err := NewNode(tenantID, code, 0)
		assert.Error(t, err, "code %q", code)
	}
}

func TestValidateCode_Boundaries(t *testing.T) {
	assert.NoError(t, ValidateCode("a"))
	assert.NoError(t, ValidateCode("my_code-01"))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidateCode(string(long)))
	assert.NoError(t, ValidateCode(string(long[:50])))
}

func TestNode_LifecycleTransitions(t *testing.T) {
	tenantID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	node, _ := NewNode(tenantID, "general", 0)

	// Active twice is invalid
	assert.Error(t, node.Activate())

	assert.NoError(t, node.Deactivate())
	assert.Equal(t, LifecycleInactive, node.Lifecycle)
	assert.Error(t, node.Deactivate())

	assert.NoError(t, node.Activate())
	assert.Equal(t, LifecycleActive, node.Lifecycle)

	node.MarkDeleted()
	assert.Equal(t, LifecycleDeleted, node.Lifecycle)
	assert.Error(t, node.Activate())
	assert.Error(t, node.Deactivate())
}

func TestNode_IsAncestorOf(t *testing.T) {
	tenantID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	parent, _ := NewNode(tenantID, "parent", 0)
	child, _ := NewNode(tenantID, "child", 0)
	path, depth := ChildPath(parent.Path, parent.Depth, child.ID)
	child.SetPosition(&parent.ID, depth, path)

	assert.True(t, parent.IsAncestorOf(&child))
	assert.False(t, child.IsAncestorOf(&parent))
	assert.False(t, parent.IsAncestorOf(&parent))
	assert.False(t, parent.IsAncestorOf(nil))
}
