package attendance

import (
	"log/slog"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

type Config struct {
	Requester api.Requester
	Viewer    session.Viewer
	Clock     clock.Clock
	Logger    *slog.Logger
}
