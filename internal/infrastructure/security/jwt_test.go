package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/usermgmt/user-service/internal/core/domain"
)

func TestJWTCodec_MintAndDecode(t *testing.T) {
	t.Parallel()

	c := NewJWTCodec("secret")
	tok, err := c.Mint("alice", time.Minute)
	if err != nil {
		t.Fatalf("mint err: %v", err)
	}

	sub, err := c.Decode(tok)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if sub != "alice" {
		t.Fatalf("expected subject alice, got %q", sub)
	}
}

func TestJWTCodec_Mint_DefaultTTL(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewJWTCodec("secret")
	c.now = func() time.Time { return fixed }

	tok, err := c.Mint("alice", 0)
	if err != nil {
		t.Fatalf("mint err: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(fixed.Add(DefaultTokenTTL)) {
		t.Fatalf("expected exp %v, got %v", fixed.Add(DefaultTokenTTL), claims.ExpiresAt.Time)
	}
}

func TestJWTCodec_Decode_Expired(t *testing.T) {
	t.Parallel()

	c := NewJWTCodec("secret")
	c.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := c.Mint("alice", time.Hour)
	if err != nil {
		t.Fatalf("mint err: %v", err)
	}

	c.now = time.Now
	if _, err := c.Decode(tok); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_Decode_TamperedSignature(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTCodec("secret1").Mint("alice", time.Minute)
	if err != nil {
		t.Fatalf("mint err: %v", err)
	}

	if _, err := NewJWTCodec("secret2").Decode(tok); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	tampered := tok[:len(tok)-2] + "xx"
	if _, err := NewJWTCodec("secret1").Decode(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestJWTCodec_Decode_MissingSubject(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	if _, err := NewJWTCodec("secret").Decode(tok); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_Decode_MissingExpiry(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{Subject: "alice"}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	if _, err := NewJWTCodec("secret").Decode(tok); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_Decode_AlgNoneRejected(t *testing.T) {
	t.Parallel()

	claims := jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	if _, err := NewJWTCodec("secret").Decode(unsigned); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_Decode_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTCodec("secret").Decode("not.a.jwt"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
