package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/core/ports"
)

// PermissionEvaluator resolves a user's role flags in one store lookup and
// fails closed on unknown permissions, unknown users and missing access rows.
type PermissionEvaluator struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewPermissionEvaluator(users ports.UserRepository, log zerolog.Logger) *PermissionEvaluator {
	return &PermissionEvaluator{users: users, log: log}
}

func (e *PermissionEvaluator) Check(ctx context.Context, userID int64, permission string) bool {
	perm, ok := domain.ParsePermission(permission)
	if !ok {
		return false
	}

	flags, err := e.users.GetPermissions(ctx, userID)
	if err != nil {
		e.log.Debug().Err(err).Int64("user_id", userID).Msg("permission check: permission lookup failed")
		return false
	}
	return flags[string(perm)]
}
