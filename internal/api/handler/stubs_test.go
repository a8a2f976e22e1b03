package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-service/internal/api/middleware"
	"github.com/usermgmt/user-service/internal/core/domain"
)

type stubAuthService struct {
	loginFn      func(ctx context.Context, username, password string) (*domain.Token, error)
	registerFn   func(ctx context.Context, reg domain.Registration, isAdmin bool) (*domain.User, error)
	deactivateFn func(ctx context.Context, user *domain.User) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.Token, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Register(ctx context.Context, reg domain.Registration, isAdmin bool) (*domain.User, error) {
	return s.registerFn(ctx, reg, isAdmin)
}

func (s *stubAuthService) DeactivateSelf(ctx context.Context, user *domain.User) error {
	return s.deactivateFn(ctx, user)
}

type stubUserService struct {
	listFn func(ctx context.Context, actor *domain.User) ([]*domain.User, error)
}

func (s *stubUserService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	return s.listFn(ctx, actor)
}

type stubRoleService struct {
	listFn   func(ctx context.Context, actor *domain.User) ([]domain.RoleWithAccess, error)
	getFn    func(ctx context.Context, actor *domain.User, roleID int64) (*domain.RoleAccess, error)
	updateFn func(ctx context.Context, actor *domain.User, roleID int64, access domain.RoleAccess) (*domain.RoleAccess, error)
}

func (s *stubRoleService) ListRoles(ctx context.Context, actor *domain.User) ([]domain.RoleWithAccess, error) {
	return s.listFn(ctx, actor)
}

func (s *stubRoleService) GetRolePermissions(ctx context.Context, actor *domain.User, roleID int64) (*domain.RoleAccess, error) {
	return s.getFn(ctx, actor, roleID)
}

func (s *stubRoleService) UpdateRolePermissions(ctx context.Context, actor *domain.User, roleID int64, access domain.RoleAccess) (*domain.RoleAccess, error) {
	return s.updateFn(ctx, actor, roleID, access)
}

// newTestContext builds an echo context with the validator installed and,
// when actor is non-nil, the authenticated user set.
func newTestContext(method, target string, body io.Reader, contentType string, actor *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.UserKey, actor)
	}
	return c, rec
}

// httpCode extracts the status of an *echo.HTTPError, or 0.
func httpCode(err error) int {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return 0
	}
	return he.Code
}
