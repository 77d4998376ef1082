package mealplanner

import (
	"context"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// Service is the admin meal authoring view
type Service interface {
	// GenerateWeek replaces the draft with the empty slots of the week
	// containing start
	GenerateWeek(start time.Time) []Slot

	// Slots returns the current draft
	Slots() []Slot

	SetSlot(input *SetSlotInput) error

	// SaveAll uploads every drafted slot with a dish name and clears the draft
	SaveAll(ctx context.Context) (*SaveAllOutput, error)

	GetMeal(ctx context.Context, id int) (*models.Meal, error)

	UpdateMeal(ctx context.Context, input *UpdateMealInput) error

	DeleteMeal(ctx context.Context, id int) error

	Search(ctx context.Context, query string) ([]models.Meal, error)
}
