// Package services contains the application services of the training
// portal client: the session store and the video/category catalog.
// This file defines the session service, which tracks who is signed in,
// persists that identity in the encrypted cache and performs user
// management calls on behalf of the presentation layer.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/trainingportal/internal/client/cache"
	"github.com/dmitrijs2005/trainingportal/internal/client/client"
	"github.com/dmitrijs2005/trainingportal/internal/client/models"
	"github.com/dmitrijs2005/trainingportal/internal/common"
	"github.com/dmitrijs2005/trainingportal/internal/logging"
)

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// SessionService is the single source of truth for the current identity.
//
// Contract:
//   - Init: restore a cached identity, if any.
//   - Login: authenticate; on failure the session is anonymous.
//   - Logout: forget the identity locally and in the cache. Never fails.
//   - Register/UpdateUser/DeleteUser/ListUsers/GetUserByID: user management.
//   - Identity/IsAuthenticated/IsAdmin: read the current state.
//
// Implementations are safe for concurrent use.
type SessionService interface {
	Init(ctx context.Context)
	Login(ctx context.Context, login string, password []byte) error
	Logout(ctx context.Context)
	Register(ctx context.Context, in models.UserInput) (*models.Identity, error)
	UpdateUser(ctx context.Context, id string, in models.UserInput) (*models.Identity, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]models.Identity, error)
	GetUserByID(ctx context.Context, id string) (*models.Identity, error)
	Ping(ctx context.Context) error
	Identity() *models.Identity
	IsAuthenticated() bool
	IsAdmin() bool
}

type sessionService struct {
	api    client.Client
	cache  *cache.Cache
	logger logging.Logger

	mu      sync.RWMutex
	current *models.Identity
}

// NewSessionService returns an anonymous session. Call Init to restore a
// previously cached identity.
func NewSessionService(api client.Client, c *cache.Cache, logger logging.Logger) SessionService {
	return &sessionService{api: api, cache: c, logger: logger.With("component", "session")}
}

func (s *sessionService) Init(ctx context.Context) {
	cached := cache.Get(ctx, s.cache, common.CurrentUserKey, (*models.Identity)(nil))

	s.mu.Lock()
	s.current = cached
	s.mu.Unlock()

	if cached != nil {
		s.logger.Info(ctx, "session restored", "user_id", cached.ID, "role", cached.Role)
	}
}

// Login authenticates against the API. Any previously held identity is
// dropped first, so a failed attempt always leaves the session anonymous.
func (s *sessionService) Login(ctx context.Context, login string, password []byte) error {
	s.setCurrent(ctx, nil)

	resp, err := s.api.Login(ctx, login, password)
	if err != nil {
		s.logger.Warn(ctx, "login failed", "login", login, "error", err)
		return fmt.Errorf("login error: %w", err)
	}

	identity := identityFromLogin(login, resp.User)
	s.setCurrent(ctx, identity)
	s.logger.Info(ctx, "logged in", "user_id", identity.ID, "role", identity.Role)
	return nil
}

func identityFromLogin(login string, u client.LoginUser) *models.Identity {
	role := u.Role
	if role == "" {
		role = models.RoleUser
	}
	return &models.Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Login: login,
		Role:  role,
	}
}

func (s *sessionService) Logout(ctx context.Context) {
	s.api.Logout()
	s.setCurrent(ctx, nil)
}

// setCurrent replaces the in-memory identity and mirrors it to the cache.
// nil removes the cache entry.
func (s *sessionService) setCurrent(ctx context.Context, identity *models.Identity) {
	s.mu.Lock()
	s.current = identity
	s.mu.Unlock()

	if identity == nil {
		s.cache.Remove(ctx, common.CurrentUserKey)
		return
	}
	cache.Set(ctx, s.cache, common.CurrentUserKey, identity)
}

// Register creates an account. It does not sign the new user in.
func (s *sessionService) Register(ctx context.Context, in models.UserInput) (*models.Identity, error) {
	in = normalizeUser(in)
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if err := validateUser(in, true); err != nil {
		return nil, err
	}

	created, err := s.api.CreateUser(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return created, nil
}

// UpdateUser saves in for user id. When id is the signed-in user the
// session identity is refreshed from the response.
func (s *sessionService) UpdateUser(ctx context.Context, id string, in models.UserInput) (*models.Identity, error) {
	in = normalizeUser(in)
	if err := validateUser(in, false); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateUser(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update user error: %w", err)
	}

	if current := s.Identity(); current != nil && updated.ID == current.ID {
		refreshed := *updated
		if refreshed.Login == "" {
			refreshed.Login = current.Login
		}
		s.setCurrent(ctx, &refreshed)
	}
	return updated, nil
}

// DeleteUser removes user id. Deleting yourself ends the session.
func (s *sessionService) DeleteUser(ctx context.Context, id string) error {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user error: %w", err)
	}

	if current := s.Identity(); current != nil && current.ID == id {
		s.logger.Info(ctx, "deleted own account, logging out", "user_id", id)
		s.Logout(ctx)
	}
	return nil
}

func (s *sessionService) ListUsers(ctx context.Context) ([]models.Identity, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users error: %w", err)
	}
	return users, nil
}

func (s *sessionService) GetUserByID(ctx context.Context, id string) (*models.Identity, error) {
	user, err := s.api.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user error: %w", err)
	}
	return user, nil
}

// Ping proxies a liveness check to the API.
func (s *sessionService) Ping(ctx context.Context) error {
	return s.api.Ping(ctx)
}

// Identity returns a copy of the current identity, or nil when anonymous.
func (s *sessionService) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

func (s *sessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *sessionService) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsAdmin()
}

func normalizeUser(in models.UserInput) models.UserInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Login = strings.TrimSpace(in.Login)
	return in
}

// validateUser checks in before it is sent. A password is only mandatory
// when the account is being created.
func validateUser(in models.UserInput, create bool) error {
	verr := validateStruct(in)
	if create && in.Password == "" {
		verr = verr.add("password", "required")
	}
	return verr.asError()
}
