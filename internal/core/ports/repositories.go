package ports

import (
	"context"

	"github.com/usermgmt/user-service/internal/core/domain"
)

// UserRepository persists users and their role association.
type UserRepository interface {
	// Add binds the new user to the "admin" or "user" role. It fails with
	// domain.ErrRoleNotFound when that role is missing and with
	// domain.ErrUsernameTaken on a uniqueness violation.
	Add(ctx context.Context, reg domain.Registration, hashedPassword string, isAdmin bool) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// List skips rows that fail domain.User.Validate.
	List(ctx context.Context) ([]*domain.User, error)
	// Deactivate is idempotent.
	Deactivate(ctx context.Context, id int64) error
	// GetPermissions returns an empty map when the user's role has no access row.
	GetPermissions(ctx context.Context, userID int64) (map[string]bool, error)
}

// RoleRepository persists roles and their access flags.
type RoleRepository interface {
	// ListWithPermissions omits roles that have no access row.
	ListWithPermissions(ctx context.Context) ([]domain.RoleWithAccess, error)
	// GetPermissions returns domain.ErrRoleNotFound when no access row exists.
	GetPermissions(ctx context.Context, roleID int64) (*domain.RoleAccess, error)
	// UpdatePermissions overwrites all flags.
	UpdatePermissions(ctx context.Context, roleID int64, access domain.RoleAccess) (*domain.RoleAccess, error)
}
