package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"Администратор", RoleAdministrator},
		{"Administrator", RoleAdministrator},
		{"Сотрудник", RoleEmployee},
		{"Employee", RoleEmployee},
		{"Пользователь", RoleRegularUser},
		{"User", RoleRegularUser},
		{"", RoleUnknown},
		{"Director", RoleUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.in), "role %q", tt.in)
	}
}

func TestRoleIDRoundTrip(t *testing.T) {
	for _, r := range []Role{RoleAdministrator, RoleEmployee, RoleRegularUser} {
		assert.Equal(t, r, RoleFromID(r.ID()))
	}
	assert.Equal(t, RoleUnknown, RoleFromID(0))
	assert.Equal(t, RoleUnknown, RoleFromID(99))
	assert.Equal(t, 0, RoleUnknown.ID())
}

// Exhaustive enumeration: every role gets exactly its documented set.
func TestCapabilitiesFor(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want Capabilities
	}{
		{
			name: "administrator",
			role: RoleAdministrator,
			want: Capabilities{Sidebar: SidebarAdmin, CanCreateVacancy: true, CanModerate: true},
		},
		{
			name: "employee",
			role: RoleEmployee,
			want: Capabilities{Sidebar: SidebarEmployee, CanCreateVacancy: true},
		},
		{
			name: "regular user",
			role: RoleRegularUser,
			want: Capabilities{Sidebar: SidebarUser, CanApply: true},
		},
		{
			name: "unknown gets minimal set",
			role: RoleUnknown,
			want: Capabilities{Sidebar: SidebarNone},
		},
		{
			name: "out of range role gets minimal set",
			role: Role(42),
			want: Capabilities{Sidebar: SidebarNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapabilitiesFor(Identity{Role: tt.role}))
		})
	}
}

func TestCanDeleteVacancy(t *testing.T) {
	admin := Identity{Role: RoleAdministrator, Login: "root@portal"}
	owner := Identity{Role: RoleEmployee, Login: "hr@corp.example"}
	other := Identity{Role: RoleEmployee, Login: "hr@other.example"}
	user := Identity{Role: RoleRegularUser, Login: "hr@corp.example"}

	assert.True(t, CanDeleteVacancy(admin, "hr@corp.example"))
	assert.True(t, CanDeleteVacancy(owner, "hr@corp.example"))
	assert.False(t, CanDeleteVacancy(other, "hr@corp.example"))
	assert.False(t, CanDeleteVacancy(user, "hr@corp.example"))
	assert.False(t, CanDeleteVacancy(Identity{}, ""))
}
