package settings

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
	Status   resource.Status
	Settings models.Settings

	// Revealed is true when the access code should be shown in full
	Revealed bool

	Err       error
	ActionErr error
	Banner    string
}
