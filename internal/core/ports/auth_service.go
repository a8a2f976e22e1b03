package ports

import (
	"context"

	"github.com/usermgmt/user-service/internal/core/domain"
)

// AuthService covers login, sign-up and self-deactivation.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Token, error)
	Register(ctx context.Context, reg domain.Registration, isAdmin bool) (*domain.User, error)
	DeactivateSelf(ctx context.Context, user *domain.User) error
}

// IdentityResolver turns a raw bearer token into the active user it names.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// PermissionEvaluator answers whether a user holds a named permission.
// It never fails: missing data means no.
type PermissionEvaluator interface {
	Check(ctx context.Context, userID int64, permission string) bool
}

// UserService exposes permission-gated user reads.
type UserService interface {
	ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error)
}

// RoleService exposes permission-gated role reads and writes.
type RoleService interface {
	ListRoles(ctx context.Context, actor *domain.User) ([]domain.RoleWithAccess, error)
	GetRolePermissions(ctx context.Context, actor *domain.User, roleID int64) (*domain.RoleAccess, error)
	UpdateRolePermissions(ctx context.Context, actor *domain.User, roleID int64, access domain.RoleAccess) (*domain.RoleAccess, error)
}
