package analytics

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

type service struct {
	requester api.Requester
	viewer    session.Viewer
	logger    *slog.Logger
	analytics *resource.Resource[*models.Analytics]
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
		analytics: resource.New[*models.Analytics](&resource.Config{Clock: cfg.Clock}),
	}, nil
}

// Load fetches the chapter analytics
func (s *service) Load(ctx context.Context) error {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}

	return s.analytics.Load(ctx, func(ctx context.Context) (*models.Analytics, error) {
		var a models.Analytics
		if err := s.requester.Do(ctx, &api.Request{Path: "/api/admin/analytics"}, &a); err != nil {
			return nil, err
		}
		return &a, nil
	})
}

// Snapshot returns the current view state
func (s *service) Snapshot() resource.Snapshot[*models.Analytics] {
	return s.analytics.Snapshot()
}

// Close discards the view
func (s *service) Close() {
	s.analytics.Close()
}
