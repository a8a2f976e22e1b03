package service

import (
	"context"
	"errors"
	"testing"

	"github.com/usermgmt/user-service/internal/core/domain"
)

func TestEnsureAdmin(t *testing.T) {
	store := newMemStore()
	svc := newTestAuthService(store)
	reg := registration("root", "toor")

	created, err := EnsureAdmin(context.Background(), svc, reg)
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}

	created, err = EnsureAdmin(context.Background(), svc, reg)
	if err != nil || created {
		t.Fatalf("second call: created=%v err=%v", created, err)
	}

	user, err := store.GetByUsername(context.Background(), "root")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", user.Role)
	}
}

func TestEnsureAdmin_PropagatesFailures(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("database down")
	svc := newTestAuthService(store)

	if _, err := EnsureAdmin(context.Background(), svc, registration("root", "toor")); err == nil {
		t.Fatalf("expected error")
	}
}
