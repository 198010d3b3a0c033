package navigation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newMenuItem(t *testing.T) *MenuItem {
	t.Helper()
	m, err := New(uuid.MustParse("11111111-1111-1111-1111-111111111111"), MenuTypeSite, "home", "Home", 0)
	assert.NoError(t, err)
	return m
}

func TestNew_Defaults(t *testing.T) {
	m := newMenuItem(t)

	assert.Equal(t, MenuTypeSite, m.MenuType)
	assert.Equal(t, LinkInternal, m.LinkType)
	assert.Equal(t, PermissionPublic, m.PermissionType)
	assert.True(t, m.IsVisible)
	assert.Equal(t, 0, m.Depth)
}

func TestNew_UnknownMenuType(t *testing.T) {
	_, err := New(uuid.New(), MenuType("sidebar"), "home", "Home", 0)
	assert.Error(t, err)
}

func TestMenuItem_VisibleTo(t *testing.T) {
	tests := []struct {
		name          string
		permission    PermissionType
		visible       bool
		authenticated bool
		want          bool
	}{
		{"public to anonymous", PermissionPublic, true, false, true},
		{"public to authenticated", PermissionPublic, true, true, true},
		{"authenticated to anonymous", PermissionAuthenticated, true, false, false},
		{"authenticated to authenticated", PermissionAuthenticated, true, true, true},
		{"role based hidden from everyone", PermissionRoleBased, true, true, false},
		{"permission based hidden from everyone", PermissionPermissionBased, true, true, false},
		{"hidden item never renders", PermissionPublic, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMenuItem(t)
			assert.NoError(t, m.SetPermission(tt.permission))
			m.SetVisibility(tt.visible)

			assert.Equal(t, tt.want, m.VisibleTo(tt.authenticated))
		})
	}
}

func TestMenuItem_VisibleTo_InactiveNeverRenders(t *testing.T) {
	m := newMenuItem(t)
	assert.NoError(t, m.Deactivate())

	assert.False(t, m.VisibleTo(true))
}

func TestMenuItem_Update_RejectsUnknownLinkType(t *testing.T) {
	m := newMenuItem(t)
	err := m.Update("Home", "", "/", "", LinkType("popup"))
	assert.Error(t, err)
}
