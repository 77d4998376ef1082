package discord

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/repositories/localstate"
	"github.com/KirkDiggler/chapterplate/internal/services/account"
	"github.com/KirkDiggler/chapterplate/internal/services/analytics"
	"github.com/KirkDiggler/chapterplate/internal/services/attendance"
	"github.com/KirkDiggler/chapterplate/internal/services/lateplates"
	"github.com/KirkDiggler/chapterplate/internal/services/members"
	"github.com/KirkDiggler/chapterplate/internal/services/menu"
	"github.com/KirkDiggler/chapterplate/internal/services/moderation"
	"github.com/KirkDiggler/chapterplate/internal/services/presets"
	"github.com/KirkDiggler/chapterplate/internal/services/recommendation"
	"github.com/KirkDiggler/chapterplate/internal/services/reviews"
	"github.com/KirkDiggler/chapterplate/internal/services/settings"
	"github.com/KirkDiggler/chapterplate/internal/session"
	"github.com/KirkDiggler/chapterplate/internal/widgets"
)

// ViewsConfig holds what every per-user view is built from
type ViewsConfig struct {
	Sessions   *session.Manager
	LocalState localstate.Repository
	Clock      clock.Clock
	Location   *time.Location
	BannerTTL  time.Duration
	Logger     *slog.Logger
}

// Views keeps the open views of every Discord user. A user's views live
// until they log out.
type Views struct {
	cfg ViewsConfig

	mu    sync.Mutex
	users map[string]*UserViews
}

func NewViews(cfg *ViewsConfig) (*Views, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Sessions == nil {
		return nil, ErrNilSessions
	}
	if cfg.LocalState == nil {
		return nil, ErrNilLocalState
	}

	c := *cfg
	if c.Clock == nil {
		c.Clock = clock.New(c.Location)
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	return &Views{
		cfg:   c,
		users: make(map[string]*UserViews),
	}, nil
}

// For returns the user's views, resolving their session on first use
func (v *Views) For(ctx context.Context, userID string) (*UserViews, error) {
	store, err := v.cfg.Sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if uv, ok := v.users[userID]; ok && uv.store == store {
		return uv, nil
	}

	acct, err := account.New(&account.Config{
		Requester:       store.Client(),
		PublicRequester: store.PublicClient(),
		Session:         store,
		LocalState:      v.cfg.LocalState,
		Logger:          v.cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	uv := &UserViews{
		cfg:     &v.cfg,
		store:   store,
		account: acct,
		menus:   make(map[menu.Listing]menu.Service),
	}
	v.users[userID] = uv
	return uv, nil
}

// Close discards the user's views and session. In-flight calls are
// cancelled.
func (v *Views) Close(userID string) {
	v.mu.Lock()
	uv, ok := v.users[userID]
	delete(v.users, userID)
	v.mu.Unlock()

	if ok {
		uv.close()
	}
	v.cfg.Sessions.Forget(userID)
}

// CloseAll discards every open view
func (v *Views) CloseAll() {
	v.mu.Lock()
	users := v.users
	v.users = make(map[string]*UserViews)
	v.mu.Unlock()

	for id, uv := range users {
		uv.close()
		v.cfg.Sessions.Forget(id)
	}
}

// UserViews are the views one user has opened, created on demand
type UserViews struct {
	cfg     *ViewsConfig
	store   *session.Store
	account account.Service

	mu             sync.Mutex
	menus          map[menu.Listing]menu.Service
	presets        presets.Service
	reviews        reviews.Service
	lateplates     lateplates.Service
	moderation     moderation.Service
	members        members.Service
	settings       settings.Service
	analytics      analytics.Service
	attendance     attendance.Service
	recommendation recommendation.Service
	closers        []func()

	// dialog is the modal last shown to the user
	dialog widgets.Modal
}

func (uv *UserViews) Session() *session.Store {
	return uv.store
}

func (uv *UserViews) Account() account.Service {
	return uv.account
}

func (uv *UserViews) Menu(listing menu.Listing) (menu.Service, error) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if svc, ok := uv.menus[listing]; ok {
		return svc, nil
	}

	svc, err := menu.New(&menu.Config{
		Requester: uv.store.Client(),
		Listing:   listing,
		Clock:     uv.cfg.Clock,
		Location:  uv.cfg.Location,
		BannerTTL: uv.cfg.BannerTTL,
		Logger:    uv.cfg.Logger,
	})
	if err != nil {
		return nil, err
	}
	uv.menus[listing] = svc
	uv.closers = append(uv.closers, svc.Close)
	return svc, nil
}

func (uv *UserViews) Presets() (presets.Service, error) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if uv.presets == nil {
		svc, err := presets.New(&presets.Config{
			Requester: uv.store.Client(),
			Clock:     uv.cfg.Clock,
			Logger:    uv.cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		uv.presets = svc
		uv.closers = append(uv.closers, svc.Close)
	}
	return uv.presets, nil
}

func (uv *UserViews) Reviews() (reviews.Service, error) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if uv.reviews == nil {
		svc, err := reviews.New(&reviews.Config{
			Requester: uv.store.Client(),
			Clock:     uv.cfg.Clock,
			Logger:    uv.cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		uv.reviews = svc
		uv.closers = append(uv.closers, svc.Close)
	}
	return uv.reviews, nil
}

func (uv *UserViews) LatePlates() (lateplates.Service, error) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if uv.lateplates == nil {
		svc, err := lateplates.New(&lateplates.Config{
			Requester: uv.store.Client(),
			Viewer:    uv.store,
			Clock:     uv.cfg.Clock,
			BannerTTL: uv.cfg.BannerTTL,
			Logger:    uv.cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		uv.lateplates = svc
		uv.closers = append(uv.closers, svc.Close)
	}
	return uv.lateplates, nil
}

func (uv *UserViews) Moderation() (moderation.Service, error) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if uv.moderation == nil {
		svc, err := moderation.New(&moderation.Config{
			Requester: uv.store.Client(),
			Viewer:    uv.store,
			Clock:     uv.cfg.Clock,
			BannerTTL: uv.cfg.BannerTTL,
			Logger:    uv.cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		uv.moderation = svc
		uv.closers = append(uv.closers, svc.Close)
	}
	return uv.moderation, nil
}

func (uv *UserViews) Members() (members.Service, error) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if uv.members == nil {
		svc, err := members.New(&members.Config{
			Requester: uv.store.Client(),
			Viewer:    uv.store,
			Clock:     uv.cfg.Clock,
			BannerTTL: uv.cfg.BannerTTL,
			Logger:    uv.cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		uv.members = svc
		uv.closers = append(uv.closers, svc.Close)
	}
	return uv.members, nil
}

func (uv *UserViews) Settings() (settings.Service, error) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if uv.settings == nil {
		svc, err := settings.New(&settings.Config{
			Requester: uv.store.Client(),
			Viewer:    uv.store,
			Clock:     uv.cfg.Clock,
			BannerTTL: uv.cfg.BannerTTL,
			Logger:    uv.cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		uv.settings = svc
		uv.closers = append(uv.closers, svc.Close)
	}
	return uv.settings, nil
}

func (uv *UserViews) Analytics() (analytics.Service, error) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if uv.analytics == nil {
		svc, err := analytics.New(&analytics.Config{
			Requester: uv.store.Client(),
			Viewer:    uv.store,
			Clock:     uv.cfg.Clock,
			Logger:    uv.cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		uv.analytics = svc
		uv.closers = append(uv.closers, svc.Close)
	}
	return uv.analytics, nil
}

func (uv *UserViews) Attendance() (attendance.Service, error) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if uv.attendance == nil {
		svc, err := attendance.New(&attendance.Config{
			Requester: uv.store.Client(),
			Viewer:    uv.store,
			Clock:     uv.cfg.Clock,
			Logger:    uv.cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		uv.attendance = svc
		uv.closers = append(uv.closers, svc.Close)
	}
	return uv.attendance, nil
}

func (uv *UserViews) Recommendations() (recommendation.Service, error) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if uv.recommendation == nil {
		svc, err := recommendation.New(&recommendation.Config{
			Requester: uv.store.Client(),
			Viewer:    uv.store,
			Logger:    uv.cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		uv.recommendation = svc
	}
	return uv.recommendation, nil
}

// OpenDialog records that a modal was shown
func (uv *UserViews) OpenDialog(title string) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	uv.dialog.Open(title)
}

// CloseDialog marks the open modal as submitted and returns its title. ok is
// false when no modal was recorded, e.g. one opened before a restart.
func (uv *UserViews) CloseDialog() (title string, ok bool) {
	uv.mu.Lock()
	defer uv.mu.Unlock()
	if !uv.dialog.IsOpen() {
		return "", false
	}
	uv.dialog.Close()
	return uv.dialog.Title(), true
}

func (uv *UserViews) close() {
	uv.mu.Lock()
	closers := uv.closers
	uv.closers = nil
	uv.mu.Unlock()

	for _, c := range closers {
		c()
	}
}
