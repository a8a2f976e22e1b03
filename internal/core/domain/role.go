package domain

import "strings"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Role is a named bundle of permission flags.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Permission names a single RoleAccess flag. Values match the role_access columns.
type Permission string

const (
	PermAddUser     Permission = "add_user_permission"
	PermReadUsers   Permission = "read_users_permission"
	PermUpdateUsers Permission = "update_users_permission"
	PermDeleteUsers Permission = "delete_users_permission"
	PermReadRoles   Permission = "read_roles_permission"
	PermUpdateRoles Permission = "update_roles_permission"
)

// AllPermissions lists every flag in column order.
var AllPermissions = []Permission{
	PermAddUser,
	PermReadUsers,
	PermUpdateUsers,
	PermDeleteUsers,
	PermReadRoles,
	PermUpdateRoles,
}

// ParsePermission accepts both the column name and its short form
// ("read_users"). ok is false for anything else.
func ParsePermission(name string) (Permission, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	if !strings.HasSuffix(name, "_permission") {
		name += "_permission"
	}
	for _, p := range AllPermissions {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// RoleAccess holds the six permission flags of one role.
type RoleAccess struct {
	AddUser     bool `json:"add_user_permission" bson:"add_user_permission"`
	ReadUsers   bool `json:"read_users_permission" bson:"read_users_permission"`
	UpdateUsers bool `json:"update_users_permission" bson:"update_users_permission"`
	DeleteUsers bool `json:"delete_users_permission" bson:"delete_users_permission"`
	ReadRoles   bool `json:"read_roles_permission" bson:"read_roles_permission"`
	UpdateRoles bool `json:"update_roles_permission" bson:"update_roles_permission"`
}

// FullAccess grants every flag.
func FullAccess() RoleAccess {
	return RoleAccess{true, true, true, true, true, true}
}

// Allows reports the flag for p. Unknown permissions are denied.
func (a *RoleAccess) Allows(p Permission) bool {
	if a == nil {
		return false
	}
	switch p {
	case PermAddUser:
		return a.AddUser
	case PermReadUsers:
		return a.ReadUsers
	case PermUpdateUsers:
		return a.UpdateUsers
	case PermDeleteUsers:
		return a.DeleteUsers
	case PermReadRoles:
		return a.ReadRoles
	case PermUpdateRoles:
		return a.UpdateRoles
	default:
		return false
	}
}

// Map returns the flags keyed by permission name.
func (a *RoleAccess) Map() map[string]bool {
	m := make(map[string]bool, len(AllPermissions))
	if a == nil {
		return m
	}
	for _, p := range AllPermissions {
		m[string(p)] = a.Allows(p)
	}
	return m
}

// RoleWithAccess pairs a role with its flags.
type RoleWithAccess struct {
	Role        Role       `json:"role"`
	Permissions RoleAccess `json:"permissions"`
}
