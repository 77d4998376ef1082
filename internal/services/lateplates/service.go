package lateplates

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

type service struct {
	requester api.Requester
	viewer    session.Viewer
	logger    *slog.Logger
	plates    *resource.Resource[[]models.LatePlate]
}

// New creates the late plate queue
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
		plates: resource.New[[]models.LatePlate](&resource.Config{
			Clock:     cfg.Clock,
			BannerTTL: cfg.BannerTTL,
		}),
	}, nil
}

// Load fetches today's late plate requests
func (s *service) Load(ctx context.Context) error {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}

	return s.plates.Load(ctx, func(ctx context.Context) ([]models.LatePlate, error) {
		var resp struct {
			LatePlates []models.LatePlate `json:"late_plates"`
		}
		if err := s.requester.Do(ctx, &api.Request{Path: "/api/admin/late-plates/today"}, &resp); err != nil {
			return nil, err
		}
		return resp.LatePlates, nil
	})
}

// Snapshot returns the current view state
func (s *service) Snapshot() *Snapshot {
	snap := s.plates.Snapshot()
	return &Snapshot{
		Status:     snap.Status,
		LatePlates: snap.Data,
		Groups:     GroupByDish(snap.Data),
		Err:        snap.Err,
		ActionErr:  snap.ActionErr,
		Banner:     snap.Banner,
	}
}

// SetStatus approves or denies a request
func (s *service) SetStatus(ctx context.Context, id int, status models.LatePlateStatus) error {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}

	return s.plates.Mutate(ctx, &resource.Mutation[[]models.LatePlate]{
		Call: func(ctx context.Context) error {
			return s.requester.Do(ctx, &api.Request{
				Method: http.MethodPut,
				Path:   fmt.Sprintf("/api/admin/late-plates/%d/status", id),
				Body:   map[string]models.LatePlateStatus{"status": status},
			}, nil)
		},
		Patch: func(plates []models.LatePlate) []models.LatePlate {
			out := make([]models.LatePlate, len(plates))
			copy(out, plates)
			for i := range out {
				if out[i].ID == id {
					out[i].Status = status
				}
			}
			return out
		},
		Banner: fmt.Sprintf("Late plate %s.", status),
	})
}

// PendingCount asks the server how many requests await a decision
func (s *service) PendingCount(ctx context.Context) (int, error) {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return 0, err
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := s.requester.Do(ctx, &api.Request{Path: "/api/admin/late-plates/pending-count"}, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// Close discards the view
func (s *service) Close() {
	s.plates.Close()
}
