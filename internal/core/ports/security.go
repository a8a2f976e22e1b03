package ports

import (
	"context"
	"time"
)

// PasswordHasher hashes and verifies passwords. Verify returns false for
// malformed digests instead of failing.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenCodec mints and decodes signed, expiring bearer tokens.
type TokenCodec interface {
	Mint(subject string, ttl time.Duration) (string, error)
	Decode(token string) (string, error)
}

// RegistrationGuard serialises concurrent sign-ups of the same username.
type RegistrationGuard interface {
	Claim(ctx context.Context, username string) (bool, error)
	Release(ctx context.Context, username string) error
}
