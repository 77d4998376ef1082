package attendance

import (
	"context"
	"fmt"
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
	records   *resource.Resource[[]models.AttendanceRecord]
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
		records:   resource.New[[]models.AttendanceRecord](&resource.Config{Clock: cfg.Clock}),
	}, nil
}

// List fetches attendance for recent meals
func (s *service) List(ctx context.Context) error {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}

	return s.records.Load(ctx, func(ctx context.Context) ([]models.AttendanceRecord, error) {
		var resp struct {
			Attendance []models.AttendanceRecord `json:"attendance"`
		}
		if err := s.requester.Do(ctx, &api.Request{Path: "/api/admin/attendance"}, &resp); err != nil {
			return nil, err
		}
		return resp.Attendance, nil
	})
}

// Snapshot returns the current view state
func (s *service) Snapshot() resource.Snapshot[[]models.AttendanceRecord] {
	return s.records.Snapshot()
}

// Details returns who attended one meal
func (s *service) Details(ctx context.Context, mealID int) (*models.AttendanceDetails, error) {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return nil, err
	}

	var details models.AttendanceDetails
	err := s.requester.Do(ctx, &api.Request{
		Path: fmt.Sprintf("/api/admin/meals/%d/attendance-details", mealID),
	}, &details)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// Close discards the view
func (s *service) Close() {
	s.records.Close()
}
