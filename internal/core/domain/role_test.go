package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParsePermission(t *testing.T) {
	cases := map[string]struct {
		want Permission
		ok   bool
	}{
		"read_users_permission": {PermReadUsers, true},
		"read_users":            {PermReadUsers, true},
		" Update_Roles ":        {PermUpdateRoles, true},
		"add_user":              {PermAddUser, true},
		"launch_rockets":        {"", false},
		"_permission":           {"", false},
		"":                      {"", false},
	}
	for in, tc := range cases {
		got, ok := ParsePermission(in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParsePermission(%q) = (%q, %v), want (%q, %v)", in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleAccess_Allows(t *testing.T) {
	a := RoleAccess{ReadUsers: true, UpdateRoles: true}

	if !a.Allows(PermReadUsers) || !a.Allows(PermUpdateRoles) {
		t.Fatalf("expected granted flags to be allowed")
	}
	if a.Allows(PermAddUser) || a.Allows(Permission("bogus")) {
		t.Fatalf("expected other flags to be denied")
	}

	var missing *RoleAccess
	if missing.Allows(PermReadUsers) {
		t.Fatalf("nil access must deny")
	}
}

func TestRoleAccess_Map(t *testing.T) {
	full := FullAccess()
	m := full.Map()
	if len(m) != len(AllPermissions) {
		t.Fatalf("expected %d entries, got %d", len(AllPermissions), len(m))
	}
	for _, p := range AllPermissions {
		if !m[string(p)] {
			t.Fatalf("expected %s to be true", p)
		}
	}

	var missing *RoleAccess
	if len(missing.Map()) != 0 {
		t.Fatalf("expected empty map for nil access")
	}
}

func TestUser_Validate(t *testing.T) {
	valid := User{
		ID:             1,
		Username:       "alice",
		FullName:       "Alice",
		Email:          "alice@example.com",
		RegisteredDate: time.Now(),
		Role:           RoleUser,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid user, got %v", err)
	}

	broken := valid
	broken.Email = ""
	if err := broken.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestForbiddenError(t *testing.T) {
	err := Forbidden("update roles")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected errors.Is ErrForbidden")
	}
	if err.Error() != "you do not have permission to update roles" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
