package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasRole(t *testing.T) {
	claims := &Claims{UserID: 3, Roles: []string{RoleMember, RoleTrainer}}

	assert.True(t, claims.HasRole(RoleMember))
	assert.True(t, claims.HasRole(RoleTrainer))
	assert.False(t, claims.HasRole(RoleAdmin))
	assert.False(t, claims.IsAdmin())
	assert.True(t, claims.IsTrainer())
}

func TestIsOwnerOrAdmin(t *testing.T) {
	owner := &Claims{UserID: 3, Roles: []string{RoleMember}}
	other := &Claims{UserID: 4, Roles: []string{RoleMember}}
	admin := &Claims{UserID: 9, Roles: []string{RoleAdmin}}

	assert.True(t, owner.IsOwnerOrAdmin(3))
	assert.False(t, other.IsOwnerOrAdmin(3))
	assert.True(t, admin.IsOwnerOrAdmin(3))
}

func TestCanManageClass(t *testing.T) {
	trainer := &Claims{UserID: 5, Roles: []string{RoleTrainer}}
	admin := &Claims{UserID: 9, Roles: []string{RoleAdmin}}
	member := &Claims{UserID: 2, Roles: []string{RoleMember}}

	assert.True(t, trainer.CanManageClass(5))
	assert.False(t, trainer.CanManageClass(6))
	assert.True(t, admin.CanManageClass(5))
	assert.False(t, member.CanManageClass(5))
}

func TestResolveOwner(t *testing.T) {
	admin := &Claims{UserID: 9, Roles: []string{RoleAdmin}}
	member := &Claims{UserID: 3, Roles: []string{RoleMember}}

	// Admin may create on behalf of someone else.
	assert.Equal(t, 4, admin.ResolveOwner(4))
	assert.Equal(t, 9, admin.ResolveOwner(0))

	// Non-admins always get their own ID substituted.
	assert.Equal(t, 3, member.ResolveOwner(4))
	assert.Equal(t, 3, member.ResolveOwner(0))
}
