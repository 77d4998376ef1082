package members

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

type Config struct {
	Requester api.Requester
	Viewer    session.Viewer
	Clock     clock.Clock
	BannerTTL time.Duration
	Logger    *slog.Logger
}

type Snapshot struct {
	Status    resource.Status
	Users     []models.User
	Err       error
	ActionErr error
	Banner    string
}
