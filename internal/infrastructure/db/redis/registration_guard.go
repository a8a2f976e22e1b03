package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const claimTTL = 30 * time.Second

// RegistrationGuard serialises concurrent sign-ups for the same username.
// Key format: register:<username>
type RegistrationGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistrationGuard creates a RegistrationGuard wrapping the given Redis client.
func NewRegistrationGuard(client *redis.Client) *RegistrationGuard {
	return &RegistrationGuard{client: client, ttl: claimTTL}
}

// Claim reports whether the caller now holds the username. The claim expires
// after claimTTL if it is never released.
func (g *RegistrationGuard) Claim(ctx context.Context, username string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(username), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("registration claim: %w", err)
	}
	return ok, nil
}

// Release drops a claim taken by Claim.
func (g *RegistrationGuard) Release(ctx context.Context, username string) error {
	if err := g.client.Del(ctx, g.key(username)).Err(); err != nil {
		return fmt.Errorf("registration release: %w", err)
	}
	return nil
}

func (g *RegistrationGuard) key(username string) string {
	return "register:" + username
}
