package members

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
	users     *resource.Resource[[]models.User]
}

// New creates the roster view
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
		users: resource.New[[]models.User](&resource.Config{
			Clock:     cfg.Clock,
			BannerTTL: cfg.BannerTTL,
		}),
	}, nil
}

// Load fetches the chapter members
func (s *service) Load(ctx context.Context) error {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}

	return s.users.Load(ctx, func(ctx context.Context) ([]models.User, error) {
		var resp struct {
			Users []models.User `json:"users"`
		}
		if err := s.requester.Do(ctx, &api.Request{Path: "/api/admin/users"}, &resp); err != nil {
			return nil, err
		}
		return resp.Users, nil
	})
}

// Snapshot returns the current view state
func (s *service) Snapshot() *Snapshot {
	snap := s.users.Snapshot()
	return &Snapshot{
		Status:    snap.Status,
		Users:     snap.Data,
		Err:       snap.Err,
		ActionErr: snap.ActionErr,
		Banner:    snap.Banner,
	}
}

// SetRole makes a member an admin or a regular member
func (s *service) SetRole(ctx context.Context, userID int, role models.Role) error {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}
	if role != models.RoleAdmin && role != models.RoleMember {
		return ErrInvalidRole
	}

	return s.users.Mutate(ctx, &resource.Mutation[[]models.User]{
		Call: func(ctx context.Context) error {
			return s.requester.Do(ctx, &api.Request{
				Method: http.MethodPut,
				Path:   fmt.Sprintf("/api/admin/users/%d/role", userID),
				Body:   map[string]models.Role{"role": role},
			}, nil)
		},
		Patch: func(users []models.User) []models.User {
			out := make([]models.User, len(users))
			copy(out, users)
			for i := range out {
				if out[i].ID == userID {
					out[i].IsAdmin = role == models.RoleAdmin
				}
			}
			return out
		},
		Banner: "Role updated.",
	})
}

// Remove takes a member out of the chapter
func (s *service) Remove(ctx context.Context, userID int) error {
	me, err := session.RequireStaff(s.viewer)
	if err != nil {
		return err
	}
	if me.ID == userID {
		return ErrRemoveSelf
	}

	return s.users.Mutate(ctx, &resource.Mutation[[]models.User]{
		Call: func(ctx context.Context) error {
			return s.requester.Do(ctx, &api.Request{
				Method: http.MethodDelete,
				Path:   fmt.Sprintf("/api/admin/users/%d", userID),
			}, nil)
		},
		Patch: func(users []models.User) []models.User {
			out := make([]models.User, 0, len(users))
			for _, u := range users {
				if u.ID != userID {
					out = append(out, u)
				}
			}
			return out
		},
		Banner: "Member removed.",
	})
}

// Close discards the view
func (s *service) Close() {
	s.users.Close()
}
