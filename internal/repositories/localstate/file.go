package localstate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"gopkg.in/yaml.v3"
)

// FileConfig holds configuration for the YAML file state repository
type FileConfig struct {
	// Path of the state file; its directory is created on first save
	Path string
}

type principalState struct {
	Token string       `yaml:"token,omitempty"`
	Theme models.Theme `yaml:"theme,omitempty"`
}

type stateFile struct {
	Principals map[string]principalState `yaml:"principals"`
}

type fileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a state repository backed by a YAML file. The file is
// read on every call and rewritten atomically on every change.
func NewFile(cfg *FileConfig) (*fileRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Path == "" {
		return nil, ErrNoPath
	}
	return &fileRepository{path: cfg.Path}, nil
}

func (r *fileRepository) GetToken(_ context.Context, input *GetTokenInput) (string, error) {
	if input == nil || input.Principal == "" {
		return "", ErrEmptyPrincipal
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.load()
	if err != nil {
		return "", err
	}
	token := state.Principals[input.Principal].Token
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (r *fileRepository) SaveToken(_ context.Context, input *SaveTokenInput) error {
	if input == nil || input.Principal == "" {
		return ErrEmptyPrincipal
	}
	if input.Token == "" {
		return ErrEmptyToken
	}

	return r.update(input.Principal, func(p *principalState) {
		p.Token = input.Token
	})
}

func (r *fileRepository) DeleteToken(_ context.Context, input *DeleteTokenInput) error {
	if input == nil || input.Principal == "" {
		return ErrEmptyPrincipal
	}

	return r.update(input.Principal, func(p *principalState) {
		p.Token = ""
	})
}

func (r *fileRepository) GetTheme(_ context.Context, input *GetThemeInput) (models.Theme, error) {
	if input == nil || input.Principal == "" {
		return "", ErrEmptyPrincipal
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.load()
	if err != nil {
		return "", err
	}
	if theme := state.Principals[input.Principal].Theme; theme.Valid() {
		return theme, nil
	}
	return models.ThemeLight, nil
}

func (r *fileRepository) SaveTheme(_ context.Context, input *SaveThemeInput) error {
	if input == nil || input.Principal == "" {
		return ErrEmptyPrincipal
	}
	if !input.Theme.Valid() {
		return ErrInvalidTheme
	}

	return r.update(input.Principal, func(p *principalState) {
		p.Theme = input.Theme
	})
}

func (r *fileRepository) update(principal string, fn func(*principalState)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.load()
	if err != nil {
		return err
	}

	p := state.Principals[principal]
	fn(&p)
	if p == (principalState{}) {
		delete(state.Principals, principal)
	} else {
		state.Principals[principal] = p
	}

	return r.save(state)
}

// load must be called with mu held. A missing file is an empty state.
func (r *fileRepository) load() (*stateFile, error) {
	state := &stateFile{}

	data, err := os.ReadFile(r.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, state); err != nil {
			return nil, fmt.Errorf("failed to parse state file %s: %w", r.path, err)
		}
	}

	if state.Principals == nil {
		state.Principals = make(map[string]principalState)
	}
	return state, nil
}

// save must be called with mu held
func (r *fileRepository) save(state *stateFile) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set state permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
