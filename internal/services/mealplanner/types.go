package mealplanner

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

const (
	LunchHour  = 12
	DinnerHour = 17
)

// Config holds configuration for the meal planner
type Config struct {
	Requester api.Requester
	Viewer    session.Viewer

	// Location is where slot times are laid out; defaults to time.Local
	Location *time.Location
	Logger   *slog.Logger
}

// Image is a picture attached to a meal
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Slot is one drafted meal of a generated week
type Slot struct {
	// Key identifies the slot within the draft, e.g. lunch-1
	Key         string
	MealDate    time.Time
	MealType    models.MealType
	DishName    string
	Description string
	Image       *Image
}

// SetSlotInput overwrites the editable fields of a drafted slot
type SetSlotInput struct {
	Key         string
	DishName    string
	Description string
	Image       *Image
}

type SaveAllOutput struct {
	Saved   int
	Message string
}

// UpdateMealInput replaces a meal. A new Image wins over ImageURL.
type UpdateMealInput struct {
	ID          int
	MealDate    time.Time
	MealType    models.MealType
	DishName    string
	Description string
	Image       *Image
	ImageURL    string
}
