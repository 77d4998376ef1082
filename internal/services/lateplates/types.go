package lateplates

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

// UnknownMeal labels requests whose meal name the server left out
const UnknownMeal = "Unknown Meal"

type Config struct {
	Requester api.Requester
	Viewer    session.Viewer
	Clock     clock.Clock
	BannerTTL time.Duration
	Logger    *slog.Logger
}

type Snapshot struct {
	Status     resource.Status
	LatePlates []models.LatePlate
	Groups     []Group
	Err        error
	ActionErr  error
	Banner     string
}

// Group is the requests for one dish
type Group struct {
	DishName   string
	LatePlates []models.LatePlate
}
