package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/core/ports"
)

type RoleService struct {
	roles ports.RoleRepository
	perms ports.PermissionEvaluator
	log   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, perms ports.PermissionEvaluator, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, perms: perms, log: log}
}

func (s *RoleService) ListRoles(ctx context.Context, actor *domain.User) ([]domain.RoleWithAccess, error) {
	if err := authorize(ctx, s.perms, actor, domain.PermReadRoles, "read roles"); err != nil {
		return nil, err
	}
	return s.roles.ListWithPermissions(ctx)
}

func (s *RoleService) GetRolePermissions(ctx context.Context, actor *domain.User, roleID int64) (*domain.RoleAccess, error) {
	if err := authorize(ctx, s.perms, actor, domain.PermReadRoles, "read roles"); err != nil {
		return nil, err
	}
	return s.roles.GetPermissions(ctx, roleID)
}

// UpdateRolePermissions overwrites every flag of the role. A missing role
// yields domain.ErrRoleNotFound.
func (s *RoleService) UpdateRolePermissions(ctx context.Context, actor *domain.User, roleID int64, access domain.RoleAccess) (*domain.RoleAccess, error) {
	if err := authorize(ctx, s.perms, actor, domain.PermUpdateRoles, "update roles"); err != nil {
		return nil, err
	}

	updated, err := s.roles.UpdatePermissions(ctx, roleID, access)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("role_id", roleID).Int64("actor_id", actor.ID).Msg("role permissions updated")
	return updated, nil
}
