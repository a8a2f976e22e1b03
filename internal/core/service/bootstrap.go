package service

import (
	"context"
	"errors"

	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/core/ports"
)

// EnsureAdmin registers reg with the admin role. An existing account with the
// same username is left untouched, so repeated startups are safe.
func EnsureAdmin(ctx context.Context, auth ports.AuthService, reg domain.Registration) (created bool, err error) {
	if _, err := auth.Register(ctx, reg, true); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
