package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory store backing both repository ports
// ---------------------------------------------------------------------------

type memStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
	roles  map[int64]string
	access map[int64]*domain.RoleAccess

	getErr  error // if set, GetByUsername returns this error
	permErr error // if set, GetPermissions returns this error
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[int64]*domain.User),
		roles: map[int64]string{1: domain.RoleUser, 2: domain.RoleAdmin},
		access: map[int64]*domain.RoleAccess{
			1: {},
			2: func() *domain.RoleAccess { a := domain.FullAccess(); return &a }(),
		},
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (s *memStore) roleID(name string) (int64, bool) {
	for id, n := range s.roles {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

func (s *memStore) Add(_ context.Context, reg domain.Registration, hashedPassword string, isAdmin bool) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := domain.RoleUser
	if isAdmin {
		name = domain.RoleAdmin
	}
	rid, ok := s.roleID(name)
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	for _, u := range s.users {
		if u.Username == reg.Username {
			return nil, domain.ErrUsernameTaken
		}
	}

	s.nextID++
	u := &domain.User{
		ID:             s.nextID,
		Username:       reg.Username,
		FullName:       reg.FullName,
		Email:          reg.Email,
		RegisteredDate: time.Now().UTC(),
		HashedPassword: hashedPassword,
		RoleID:         rid,
		Role:           name,
		IsActive:       true,
	}
	s.users[u.ID] = u
	return cloneUser(u), nil
}

func (s *memStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *memStore) List(_ context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (s *memStore) Deactivate(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.IsActive = false
	}
	return nil
}

func (s *memStore) GetPermissions(ctx context.Context, userID int64) (map[string]bool, error) {
	if s.permErr != nil {
		return nil, s.permErr
	}
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.access[u.RoleID]
	if !ok {
		return map[string]bool{}, nil
	}
	return a.Map(), nil
}

// roleRepo adapts memStore to ports.RoleRepository; its GetPermissions is
// keyed by role id rather than user id.
type roleRepo struct{ *memStore }

func (r roleRepo) ListWithPermissions(_ context.Context) ([]domain.RoleWithAccess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RoleWithAccess
	for id, name := range r.roles {
		a, ok := r.access[id]
		if !ok {
			continue
		}
		out = append(out, domain.RoleWithAccess{Role: domain.Role{ID: id, Name: name}, Permissions: *a})
	}
	return out, nil
}

func (r roleRepo) GetPermissions(_ context.Context, roleID int64) (*domain.RoleAccess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.access[roleID]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *a
	return &clone, nil
}

func (r roleRepo) UpdatePermissions(_ context.Context, roleID int64, access domain.RoleAccess) (*domain.RoleAccess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.access[roleID]; !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := access
	r.access[roleID] = &clone
	return &access, nil
}

// ---------------------------------------------------------------------------
// Stub registration guard
// ---------------------------------------------------------------------------

type stubGuard struct {
	claimFn  func(ctx context.Context, username string) (bool, error)
	released []string
}

func (g *stubGuard) Claim(ctx context.Context, username string) (bool, error) {
	return g.claimFn(ctx, username)
}

func (g *stubGuard) Release(_ context.Context, username string) error {
	g.released = append(g.released, username)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()
