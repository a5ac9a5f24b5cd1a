package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyMatrix(t *testing.T) {
	cases := []struct {
		role    Role
		op      Operation
		allowed bool
	}{
		{RoleAdmin, OpRead, true},
		{RoleAdmin, OpWrite, true},
		{RoleAdmin, OpManageUsers, true},
		{RoleUser, OpRead, true},
		{RoleUser, OpWrite, true},
		{RoleUser, OpManageUsers, false},
		{RoleSuperviseur, OpRead, true},
		{RoleSuperviseur, OpWrite, false},
		{RoleSuperviseur, OpManageUsers, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, Allowed(tc.role, tc.op), "role %s op %s", tc.role, tc.op)
	}
}

func TestPolicyCoversEveryRoleAndOperation(t *testing.T) {
	ops := []Operation{OpRead, OpWrite, OpManageUsers}

	assert.Len(t, Roles(), 3)

	for _, role := range Roles() {
		for _, op := range ops {
			// every cell must be decidable without panicking
			_ = Allowed(role, op)
		}
	}
}

func TestUnknownRoleIsDenied(t *testing.T) {
	for _, op := range []Operation{OpRead, OpWrite, OpManageUsers} {
		assert.False(t, Allowed(Role("intern"), op))
	}
	assert.False(t, Allowed(Role(""), OpRead))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("admin"))
	assert.True(t, ValidRole("user"))
	assert.True(t, ValidRole("superviseur"))
	assert.False(t, ValidRole("root"))
	assert.False(t, ValidRole(""))
}
