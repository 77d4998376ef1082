package recommendation

import (
	"log/slog"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

type Config struct {
	Requester api.Requester
	Viewer    session.Viewer
	Logger    *slog.Logger
}

type SubmitInput struct {
	MealName    string
	Description string
	Link        string
}
