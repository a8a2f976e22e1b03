package service

import (
	"context"
	"errors"

	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/core/ports"
)

// IdentityResolver maps a bearer token to the active user it was issued for.
// Inactive accounts are rejected here so that no token-only route can bypass
// deactivation.
type IdentityResolver struct {
	tokens ports.TokenCodec
	users  ports.UserRepository
}

func NewIdentityResolver(tokens ports.TokenCodec, users ports.UserRepository) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	username, err := r.tokens.Decode(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if !user.CanAuthenticate() {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
