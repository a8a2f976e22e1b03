package postgres

import (
	"database/sql"

	"github.com/usermgmt/user-service/internal/core/domain"
)

// userRow mirrors the users ⋈ roles projection. Columns without NOT NULL are
// scanned into sql.Null* so a bad row can be detected instead of aborting a scan.
type userRow struct {
	ID             int64
	Username       string
	FullName       sql.NullString
	Email          sql.NullString
	RegisteredDate sql.NullTime
	HashedPassword string
	RoleID         int64
	RoleName       string
	IsActive       sql.NullBool
}

const userColumns = `u.id, u.username, u.full_name, u.email, u.registered_date, u.hashed_password, u.role_id, r.name, u.is_active`

type scanner interface {
	Scan(dest ...any) error
}

func scanUserRow(s scanner) (userRow, error) {
	var ur userRow
	err := s.Scan(
		&ur.ID,
		&ur.Username,
		&ur.FullName,
		&ur.Email,
		&ur.RegisteredDate,
		&ur.HashedPassword,
		&ur.RoleID,
		&ur.RoleName,
		&ur.IsActive,
	)
	return ur, err
}

func toDomainUser(ur userRow) *domain.User {
	return &domain.User{
		ID:             ur.ID,
		Username:       ur.Username,
		FullName:       ur.FullName.String,
		Email:          ur.Email.String,
		RegisteredDate: ur.RegisteredDate.Time.UTC(),
		HashedPassword: ur.HashedPassword,
		RoleID:         ur.RoleID,
		Role:           ur.RoleName,
		IsActive:       ur.IsActive.Valid && ur.IsActive.Bool,
	}
}
