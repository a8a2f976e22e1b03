package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/usermgmt/user-service/internal/core/domain"
)

const accessColumns = `add_user_permission, read_users_permission, update_users_permission, delete_users_permission, read_roles_permission, update_roles_permission`

type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func accessDest(a *domain.RoleAccess) []any {
	return []any{&a.AddUser, &a.ReadUsers, &a.UpdateUsers, &a.DeleteUsers, &a.ReadRoles, &a.UpdateRoles}
}

func getRoleAccess(ctx context.Context, db *sql.DB, roleID int64) (*domain.RoleAccess, error) {
	var a domain.RoleAccess
	err := db.QueryRowContext(ctx, `SELECT `+accessColumns+` FROM role_access WHERE role_id = $1`, roleID).Scan(accessDest(&a)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role access: %w", err)
	}
	return &a, nil
}

func (r *RoleRepository) ListWithPermissions(ctx context.Context) ([]domain.RoleWithAccess, error) {
	const q = `
SELECT r.id, r.name, a.add_user_permission, a.read_users_permission, a.update_users_permission,
       a.delete_users_permission, a.read_roles_permission, a.update_roles_permission
FROM roles r
JOIN role_access a ON a.role_id = r.id
ORDER BY r.id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RoleWithAccess, 0)
	for rows.Next() {
		var rw domain.RoleWithAccess
		dest := append([]any{&rw.Role.ID, &rw.Role.Name}, accessDest(&rw.Permissions)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return out, nil
}

func (r *RoleRepository) GetPermissions(ctx context.Context, roleID int64) (*domain.RoleAccess, error) {
	return getRoleAccess(ctx, r.db, roleID)
}

// UpdatePermissions overwrites all six flags. A role without an access row
// yields domain.ErrRoleNotFound.
func (r *RoleRepository) UpdatePermissions(ctx context.Context, roleID int64, access domain.RoleAccess) (*domain.RoleAccess, error) {
	const q = `
UPDATE role_access
SET add_user_permission = $2,
    read_users_permission = $3,
    update_users_permission = $4,
    delete_users_permission = $5,
    read_roles_permission = $6,
    update_roles_permission = $7
WHERE role_id = $1;
`
	res, err := r.db.ExecContext(ctx, q, roleID,
		access.AddUser, access.ReadUsers, access.UpdateUsers,
		access.DeleteUsers, access.ReadRoles, access.UpdateRoles,
	)
	if err != nil {
		return nil, fmt.Errorf("update role access: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update role access: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrRoleNotFound
	}
	return &access, nil
}
