package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

type service struct {
	requester api.Requester
	viewer    session.Viewer
	logger    *slog.Logger
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
	}, nil
}

// Submit sends a dish suggestion to the kitchen
func (s *service) Submit(ctx context.Context, input *SubmitInput) error {
	if input == nil {
		return ErrNilInput
	}
	if _, err := session.RequireUser(s.viewer); err != nil {
		return err
	}

	name := strings.TrimSpace(input.MealName)
	if name == "" {
		return ErrMealNameRequired
	}
	link := strings.TrimSpace(input.Link)
	if link != "" && !validLink(link) {
		return ErrInvalidLink
	}

	return s.requester.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/api/recommendations",
		Body: map[string]string{
			"meal_name":   name,
			"description": strings.TrimSpace(input.Description),
			"link":        link,
		},
	}, nil)
}

// List returns every suggestion
func (s *service) List(ctx context.Context) ([]models.Recommendation, error) {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return nil, err
	}

	var recs []models.Recommendation
	if err := s.requester.Do(ctx, &api.Request{Path: "/api/admin/recommendations"}, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Delete removes a suggestion
func (s *service) Delete(ctx context.Context, id int) error {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}

	return s.requester.Do(ctx, &api.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/api/admin/recommendations/%d", id),
	}, nil)
}

func validLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
