package settings

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

type service struct {
	requester api.Requester
	viewer    session.Viewer
	logger    *slog.Logger
	settings  *resource.Resource[models.Settings]

	mu       sync.Mutex
	revealed bool
}

func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Requester == nil {
		return nil, ErrNilRequester
	}
	if cfg.Viewer == nil {
		return nil, ErrNilViewer
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		requester: cfg.Requester,
		viewer:    cfg.Viewer,
		logger:    logger,
		settings: resource.New[models.Settings](&resource.Config{
			Clock:     cfg.Clock,
			BannerTTL: cfg.BannerTTL,
		}),
	}, nil
}

// Load fetches the chapter name and access code
func (s *service) Load(ctx context.Context) error {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}

	return s.settings.Load(ctx, func(ctx context.Context) (models.Settings, error) {
		var settings models.Settings
		err := s.requester.Do(ctx, &api.Request{Path: "/api/admin/settings"}, &settings)
		return settings, err
	})
}

// Snapshot returns the current view state
func (s *service) Snapshot() *Snapshot {
	snap := s.settings.Snapshot()

	s.mu.Lock()
	revealed := s.revealed
	s.mu.Unlock()

	return &Snapshot{
		Status:    snap.Status,
		Settings:  snap.Data,
		Revealed:  revealed,
		Err:       snap.Err,
		ActionErr: snap.ActionErr,
		Banner:    snap.Banner,
	}
}

// UpdateChapterName renames the chapter
func (s *service) UpdateChapterName(ctx context.Context, name string) error {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrChapterNameRequired
	}

	return s.settings.Mutate(ctx, &resource.Mutation[models.Settings]{
		Call: func(ctx context.Context) error {
			return s.requester.Do(ctx, &api.Request{
				Method: http.MethodPut,
				Path:   "/api/admin/settings",
				Body:   map[string]string{"chapter_name": name},
			}, nil)
		},
		Patch: func(settings models.Settings) models.Settings {
			settings.ChapterName = name
			return settings
		},
		Banner: "Settings saved.",
	})
}

// RegenerateAccessCode issues a new access code and reveals it
func (s *service) RegenerateAccessCode(ctx context.Context) (string, error) {
	if _, err := session.RequireOwner(s.viewer); err != nil {
		return "", err
	}

	var code string
	err := s.settings.Mutate(ctx, &resource.Mutation[models.Settings]{
		Call: func(ctx context.Context) error {
			var resp struct {
				AccessCode string `json:"access_code"`
			}
			err := s.requester.Do(ctx, &api.Request{
				Method: http.MethodPut,
				Path:   "/api/admin/settings/access-code",
			}, &resp)
			code = resp.AccessCode
			return err
		},
		Patch: func(settings models.Settings) models.Settings {
			settings.AccessCode = code
			return settings
		},
		Banner: "Access code regenerated successfully.",
	})
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.revealed = true
	s.mu.Unlock()

	s.logger.Info("access code regenerated")
	return code, nil
}

// ToggleReveal shows or masks the access code
func (s *service) ToggleReveal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revealed = !s.revealed
	return s.revealed
}

// Close discards the view
func (s *service) Close() {
	s.settings.Close()
}
