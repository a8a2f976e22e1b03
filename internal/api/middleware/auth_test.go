package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-service/internal/core/domain"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	return s.resolveFn(ctx, token)
}

func resolverFor(valid string, user *domain.User) *stubResolver {
	return &stubResolver{resolveFn: func(_ context.Context, token string) (*domain.User, error) {
		if token != valid {
			return nil, domain.ErrUnauthorized
		}
		return user, nil
	}}
}

func runAuth(t *testing.T, resolver *stubResolver, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Auth(resolver)(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	alice := &domain.User{ID: 1, Username: "alice", IsActive: true}

	called := false
	rec := runAuth(t, resolverFor("good", alice), "Bearer good", func(c echo.Context) error {
		called = true
		if CurrentUser(c) != alice {
			t.Fatalf("user not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	alice := &domain.User{ID: 1, Username: "alice", IsActive: true}

	rec := runAuth(t, resolverFor("good", alice), "bearer good", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"empty token", "Bearer "},
		{"unknown token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runAuth(t, resolverFor("good", &domain.User{}), tt.header, func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_StoreFailureIsNotUnauthorized(t *testing.T) {
	resolver := &stubResolver{resolveFn: func(context.Context, string) (*domain.User, error) {
		return nil, errors.New("database down")
	}}

	rec := runAuth(t, resolver, "Bearer good", func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if CurrentUser(c) != nil {
		t.Fatalf("expected nil user")
	}
}
