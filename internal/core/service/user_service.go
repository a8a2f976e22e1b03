package service

import (
	"context"

	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/core/ports"
)

type UserService struct {
	users ports.UserRepository
	perms ports.PermissionEvaluator
}

func NewUserService(users ports.UserRepository, perms ports.PermissionEvaluator) *UserService {
	return &UserService{users: users, perms: perms}
}

// ListUsers requires read_users_permission.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if err := authorize(ctx, s.perms, actor, domain.PermReadUsers, "view users"); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// authorize returns a ForbiddenError naming action when actor lacks perm.
func authorize(ctx context.Context, perms ports.PermissionEvaluator, actor *domain.User, perm domain.Permission, action string) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if !perms.Check(ctx, actor.ID, string(perm)) {
		return domain.Forbidden(action)
	}
	return nil
}
