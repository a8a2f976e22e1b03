package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/core/ports"
)

// LoginTokenTTL is the lifetime of tokens minted at login. There is no refresh
// flow, so tokens are long-lived.
const LoginTokenTTL = 7 * 24 * time.Hour

// AuthService implements login, registration and self-deactivation.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenCodec
	guard  ports.RegistrationGuard
	log    zerolog.Logger
	ttl    time.Duration

	// decoy is verified against when the username is unknown.
	decoyOnce sync.Once
	decoy     string
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithTokenTTL overrides LoginTokenTTL. Non-positive values are ignored.
func WithTokenTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewAuthService wires the service. guard may be nil, in which case only the
// store's uniqueness constraint protects concurrent sign-ups.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenCodec,
	guard ports.RegistrationGuard,
	log zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{users: users, hasher: hasher, tokens: tokens, guard: guard, log: log, ttl: LoginTokenTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies credentials and mints a token. Unknown user, inactive account
// and wrong password all return domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Token, error) {
	if username == "" || password == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.decoyDigest())
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.HashedPassword) || !user.CanAuthenticate() {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.Mint(user.Username, s.ttl)
	if err != nil {
		return nil, err
	}
	return &domain.Token{AccessToken: token, TokenType: domain.TokenTypeBearer}, nil
}

func (s *AuthService) decoyDigest() string {
	s.decoyOnce.Do(func() {
		digest, err := s.hasher.Hash("decoy-password-for-unknown-users")
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to prepare decoy digest")
			return
		}
		s.decoy = digest
	})
	return s.decoy
}

// Register creates a user bound to the "user" role, or "admin" when isAdmin.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration, isAdmin bool) (*domain.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	if reg.Username == "" || reg.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if s.guard != nil {
		claimed, err := s.guard.Claim(ctx, reg.Username)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("username", reg.Username).Msg("registration guard unavailable, relying on store constraint")
		case !claimed:
			return nil, domain.ErrUsernameTaken
		default:
			defer func() {
				if err := s.guard.Release(context.WithoutCancel(ctx), reg.Username); err != nil {
					s.log.Warn().Err(err).Str("username", reg.Username).Msg("failed to release registration claim")
				}
			}()
		}
	}

	existing, err := s.users.GetByUsername(ctx, reg.Username)
	if err == nil && existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Add(ctx, reg, hash, isAdmin)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// DeactivateSelf soft-deletes the caller's own account.
func (s *AuthService) DeactivateSelf(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	return s.users.Deactivate(ctx, user.ID)
}
