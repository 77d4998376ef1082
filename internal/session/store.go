// Package session tracks who is logged in for each principal
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/repositories/localstate"
)

// Config holds configuration for a session store
type Config struct {
	// Principal is the identity the store acts for
	Principal string

	LocalState localstate.Repository

	// API is the unbound client; the store binds it to itself
	API *api.Client

	Clock  clock.Clock
	Logger *slog.Logger
}

// Store is the single source of truth for the logged in user of one
// principal. The persisted token lives in the local state repository; the
// user only in memory.
type Store struct {
	principal string
	state     localstate.Repository
	public    *api.Client
	client    *api.Client
	clock     clock.Clock
	logger    *slog.Logger

	resolveOnce sync.Once

	mu       sync.RWMutex
	user     *models.User
	loading  bool
	resolved bool
}

// New creates a session store. Call Resolve before reading User.
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Principal == "" {
		return nil, ErrEmptyPrincipal
	}
	if cfg.LocalState == nil {
		return nil, ErrNilLocalState
	}
	if cfg.API == nil {
		return nil, ErrNilAPIClient
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New(nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		principal: cfg.Principal,
		state:     cfg.LocalState,
		public:    cfg.API,
		clock:     c,
		logger:    logger.With("principal", cfg.Principal),
	}
	s.client = cfg.API.WithAuth(s)
	return s, nil
}

// Principal returns the identity this store acts for
func (s *Store) Principal() string {
	return s.principal
}

// Client returns the API client that authenticates as this store
func (s *Store) Client() *api.Client {
	return s.client
}

// PublicClient returns the client without the session's token, for calls
// such as login whose 401 must not end the current session
func (s *Store) PublicClient() *api.Client {
	return s.public
}

// User returns a copy of the logged in user, or nil
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether a user is present
func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Loading is true while the startup resolution is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Resolved reports whether Resolve has completed
func (s *Store) Resolved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}

// Resolve restores the user from the persisted token. It runs once per
// store; later calls return the outcome of the first. Failures never reach
// the caller: an invalid or expired token is cleared and the store is left
// logged out.
func (s *Store) Resolve(ctx context.Context) *models.User {
	s.resolveOnce.Do(func() {
		s.setLoading(true)
		defer s.finishResolve()
		s.resolve(ctx)
	})
	return s.User()
}

func (s *Store) resolve(ctx context.Context) {
	token, err := s.Token(ctx)
	if err != nil {
		s.logger.Error("failed to read persisted token", "error", err)
		return
	}
	if token == "" {
		return
	}

	if TokenExpired(token, s.clock.Now()) {
		s.logger.Info("persisted token expired, clearing")
		s.clearToken(ctx)
		return
	}

	var user models.User
	err = s.client.Do(ctx, &api.Request{Path: "/api/me"}, &user)
	switch {
	case err == nil:
		s.mu.Lock()
		s.user = &user
		s.mu.Unlock()
	case api.IsConnectivity(err), ctx.Err() != nil:
		// the token may still be good; try again next start
		s.logger.Warn("could not resolve session", "error", err)
	default:
		s.logger.Info("persisted token rejected, clearing", "error", err)
		s.clearToken(ctx)
	}
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Store) finishResolve() {
	s.mu.Lock()
	s.loading = false
	s.resolved = true
	s.mu.Unlock()
}

// Login records the user returned by a successful authentication call. The
// caller persists the token.
func (s *Store) Login(_ context.Context, user *models.User) error {
	if user == nil {
		return ErrNilUser
	}

	u := *user
	s.mu.Lock()
	s.user = &u
	s.resolved = true
	s.mu.Unlock()
	return nil
}

// SetUser replaces the in-memory user after a profile update. It does
// nothing when logged out.
func (s *Store) SetUser(user *models.User) {
	if user == nil {
		return
	}
	u := *user
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		s.user = &u
	}
}

// Logout clears the in-memory user and the persisted token
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	return s.state.DeleteToken(ctx, &localstate.DeleteTokenInput{Principal: s.principal})
}

// Invalidate logs out after the server rejected the token
func (s *Store) Invalidate(ctx context.Context) {
	s.logger.Info("session invalidated by server")
	if err := s.Logout(ctx); err != nil {
		s.logger.Error("failed to clear token", "error", err)
	}
}

// Token returns the persisted token, or "" when there is none
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.state.GetToken(ctx, &localstate.GetTokenInput{Principal: s.principal})
	if err != nil {
		if errors.Is(err, localstate.ErrTokenNotFound) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (s *Store) clearToken(ctx context.Context) {
	if err := s.state.DeleteToken(ctx, &localstate.DeleteTokenInput{Principal: s.principal}); err != nil {
		s.logger.Error("failed to clear token", "error", err)
	}
}
