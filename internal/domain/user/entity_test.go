package user

import "testing"

func TestRoleValid(t *testing.T) {
	valid := []Role{RoleAdmin, RoleTeacher, RoleStudent}
	invalid := []Role{"", "principal", "Admin", "staff"}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("Role(%q).Valid() = false, want true", r)
		}
	}
	for _, r := range invalid {
		if r.Valid() {
			t.Errorf("Role(%q).Valid() = true, want false", r)
		}
	}
}

func TestRolePrivileges(t *testing.T) {
	cases := []struct {
		role       Role
		isAdmin    bool
		canConfirm bool
	}{
		{RoleAdmin, true, true},
		{RoleTeacher, false, true},
		{RoleStudent, false, false},
		{Role(""), false, false},
	}
	for _, c := range cases {
		if got := c.role.IsAdmin(); got != c.isAdmin {
			t.Errorf("Role(%q).IsAdmin() = %v, want %v", c.role, got, c.isAdmin)
		}
		if got := c.role.CanConfirm(); got != c.canConfirm {
			t.Errorf("Role(%q).CanConfirm() = %v, want %v", c.role, got, c.canConfirm)
		}
	}
}
