package presets

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
)

// DefaultBannerTTL is how long the apply message stays up
const DefaultBannerTTL = 4 * time.Second

// Config holds configuration for the presets view
type Config struct {
	Requester api.Requester
	Clock     clock.Clock
	BannerTTL time.Duration
	Logger    *slog.Logger
}

type Snapshot struct {
	Status    resource.Status
	Presets   []models.WeeklyPreset
	Grid      []GridDay
	Err       error
	ActionErr error
	Banner    string
}

// GridDay is one row of the presets grid
type GridDay struct {
	// DayOfWeek counts from Monday (0)
	DayOfWeek int
	Name      string
	Slots     []GridSlot
}

// GridSlot is a servable meal slot and its preset, if one exists
type GridSlot struct {
	MealType models.MealType
	Preset   *models.WeeklyPreset
}

// SaveInput is the preset form. DayOfWeek and MealType are only sent when
// creating.
type SaveInput struct {
	ID         int
	DayOfWeek  int
	MealType   models.MealType
	Attending  bool
	LatePlate  bool
	Notes      string
	PickupTime string
	Enabled    bool
}

type SaveOutput struct {
	Preset  models.WeeklyPreset
	Created bool
}

type DeleteInput struct {
	ID int
}

type ApplyOutput struct {
	Message string
}
