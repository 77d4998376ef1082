package moderation

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
	reviews   *resource.Resource[[]models.Review]
}

// New creates the moderation view. Every operation requires an owner.
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
		reviews: resource.New[[]models.Review](&resource.Config{
			Clock:     cfg.Clock,
			BannerTTL: cfg.BannerTTL,
		}),
	}, nil
}

// Load fetches every review, hidden ones included
func (s *service) Load(ctx context.Context) error {
	if _, err := session.RequireOwner(s.viewer); err != nil {
		return err
	}

	return s.reviews.Load(ctx, func(ctx context.Context) ([]models.Review, error) {
		var resp struct {
			Reviews []models.Review `json:"reviews"`
		}
		if err := s.requester.Do(ctx, &api.Request{Path: "/api/admin/reviews"}, &resp); err != nil {
			return nil, err
		}
		return resp.Reviews, nil
	})
}

// Snapshot returns the current view state
func (s *service) Snapshot() *Snapshot {
	snap := s.reviews.Snapshot()
	return &Snapshot{
		Status:    snap.Status,
		Reviews:   snap.Data,
		Err:       snap.Err,
		ActionErr: snap.ActionErr,
		Banner:    snap.Banner,
	}
}

// ToggleHidden hides a review or shows it again
func (s *service) ToggleHidden(ctx context.Context, reviewID int) error {
	if _, err := session.RequireOwner(s.viewer); err != nil {
		return err
	}
	current, err := s.find(reviewID)
	if err != nil {
		return err
	}

	hidden := !current.IsHidden
	banner := "Review restored."
	if hidden {
		banner = "Review hidden."
	}

	return s.reviews.Mutate(ctx, &resource.Mutation[[]models.Review]{
		Call: func(ctx context.Context) error {
			var resp struct {
				IsHidden *bool `json:"is_hidden"`
			}
			err := s.requester.Do(ctx, &api.Request{
				Method: http.MethodPut,
				Path:   fmt.Sprintf("/api/admin/reviews/%d/hide", reviewID),
			}, &resp)
			if err != nil {
				return err
			}
			if resp.IsHidden != nil {
				hidden = *resp.IsHidden
			}
			return nil
		},
		Patch: func(reviews []models.Review) []models.Review {
			out := make([]models.Review, len(reviews))
			copy(out, reviews)
			for i := range out {
				if out[i].ID == reviewID {
					out[i].IsHidden = hidden
				}
			}
			return out
		},
		Banner: banner,
	})
}

// Delete removes a review
func (s *service) Delete(ctx context.Context, reviewID int) error {
	if _, err := session.RequireOwner(s.viewer); err != nil {
		return err
	}

	return s.reviews.Mutate(ctx, &resource.Mutation[[]models.Review]{
		Call: func(ctx context.Context) error {
			return s.requester.Do(ctx, &api.Request{
				Method: http.MethodDelete,
				Path:   fmt.Sprintf("/api/admin/reviews/%d", reviewID),
			}, nil)
		},
		Patch: func(reviews []models.Review) []models.Review {
			out := make([]models.Review, 0, len(reviews))
			for _, r := range reviews {
				if r.ID != reviewID {
					out = append(out, r)
				}
			}
			return out
		},
		Banner: "Review deleted.",
	})
}

// Close discards the view
func (s *service) Close() {
	s.reviews.Close()
}

func (s *service) find(reviewID int) (models.Review, error) {
	for _, r := range s.reviews.Snapshot().Data {
		if r.ID == reviewID {
			return r, nil
		}
	}
	return models.Review{}, ErrReviewNotFound
}
