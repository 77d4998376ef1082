package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/repositories/localstate"
)

// ManagerConfig holds configuration for a session manager
type ManagerConfig struct {
	LocalState localstate.Repository
	API        *api.Client
	Clock      clock.Clock
	Logger     *slog.Logger
}

// Manager owns one Store per principal for surfaces that serve many users
type Manager struct {
	cfg ManagerConfig

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a session manager
func NewManager(cfg *ManagerConfig) (*Manager, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.LocalState == nil {
		return nil, ErrNilLocalState
	}
	if cfg.API == nil {
		return nil, ErrNilAPIClient
	}

	return &Manager{
		cfg:    *cfg,
		stores: make(map[string]*Store),
	}, nil
}

// Get returns the principal's store, creating and resolving it on first use
func (m *Manager) Get(ctx context.Context, principal string) (*Store, error) {
	m.mu.Lock()
	store, ok := m.stores[principal]
	if !ok {
		var err error
		store, err = New(&Config{
			Principal:  principal,
			LocalState: m.cfg.LocalState,
			API:        m.cfg.API,
			Clock:      m.cfg.Clock,
			Logger:     m.cfg.Logger,
		})
		if err != nil {
			m.mu.Unlock()
			return nil, err
		}
		m.stores[principal] = store
	}
	m.mu.Unlock()

	// resolve outside m.mu
	store.Resolve(ctx)
	return store, nil
}

// Forget drops the principal's store; the next Get resolves afresh
func (m *Manager) Forget(principal string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, principal)
}
