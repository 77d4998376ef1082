package analytics

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

// Bar is one row of a horizontal bar chart. Fraction is in [0, 1].
type Bar struct {
	Label    string
	Value    float64
	Fraction float64
}
