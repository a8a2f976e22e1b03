package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/internal/core/domain"
)

type UserRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewUserRepository(db *sql.DB, log zerolog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

func (r *UserRepository) Add(ctx context.Context, reg domain.Registration, hashedPassword string, isAdmin bool) (*domain.User, error) {
	roleName := domain.RoleUser
	if isAdmin {
		roleName = domain.RoleAdmin
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin add user: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var roleID int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM roles WHERE name = $1`, roleName).Scan(&roleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRoleNotFound, roleName)
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	const q = `
INSERT INTO users (username, full_name, email, hashed_password, role_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, registered_date, is_active;
`
	user := &domain.User{
		Username:       reg.Username,
		FullName:       reg.FullName,
		Email:          reg.Email,
		HashedPassword: hashedPassword,
		RoleID:         roleID,
		Role:           roleName,
	}
	var registered sql.NullTime
	var active sql.NullBool
	err = tx.QueryRowContext(ctx, q, reg.Username, reg.FullName, reg.Email, hashedPassword, roleID).
		Scan(&user.ID, &registered, &active)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add user: %w", err)
	}

	user.RegisteredDate = registered.Time.UTC()
	user.IsActive = !active.Valid || active.Bool
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.username = $1 LIMIT 1`
	return r.getOne(ctx, q, username)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = $1 LIMIT 1`
	return r.getOne(ctx, q, id)
}

func (r *UserRepository) getOne(ctx context.Context, q string, arg any) (*domain.User, error) {
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(ur), nil
}

// List returns every user joined with its role name. Rows that cannot be
// scanned or fail validation are skipped and logged.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id ORDER BY u.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		ur, err := scanUserRow(rows)
		if err != nil {
			r.log.Warn().Err(err).Msg("skipping unreadable user row")
			continue
		}
		user := toDomainUser(ur)
		if err := user.Validate(); err != nil {
			r.log.Warn().Err(err).Int64("user_id", ur.ID).Msg("skipping invalid user row")
			continue
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetPermissions(ctx context.Context, userID int64) (map[string]bool, error) {
	var roleID int64
	if err := r.db.QueryRowContext(ctx, `SELECT role_id FROM users WHERE id = $1`, userID).Scan(&roleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user role: %w", err)
	}

	access, err := getRoleAccess(ctx, r.db, roleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return map[string]bool{}, nil
		}
		return nil, err
	}
	return access.Map(), nil
}
