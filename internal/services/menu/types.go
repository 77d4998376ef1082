package menu

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
)

// Listing selects which meals a view shows
type Listing string

const (
	// ListingWeek is the current weekly menu
	ListingWeek Listing = "week"

	// ListingToday is the meals served today
	ListingToday Listing = "today"

	// ListingPast is previously served meals, where reviews happen
	ListingPast Listing = "past"
)

// Path returns the endpoint that serves the listing
func (l Listing) Path() (string, error) {
	switch l {
	case ListingWeek:
		return "/api/menu", nil
	case ListingToday:
		return "/api/today-meals", nil
	case ListingPast:
		return "/api/past-meals", nil
	default:
		return "", ErrUnknownListing
	}
}

// Config holds configuration for a menu view
type Config struct {
	Requester api.Requester
	Listing   Listing

	Clock clock.Clock

	// Location decides which calendar day a meal falls on
	Location *time.Location

	BannerTTL time.Duration
	Logger    *slog.Logger
}

// Snapshot is the rendered state of a listing
type Snapshot struct {
	Status    resource.Status
	Meals     []models.Meal
	Days      []Day
	Err       error
	ActionErr error
	Banner    string
}

// Day is one calendar day of the grouped menu
type Day struct {
	// Date is midnight of the day in the view's location
	Date   time.Time
	Lunch  *models.Meal
	Dinner *models.Meal
}

// Slots returns the filled slots, lunch first
func (d *Day) Slots() []*models.Meal {
	slots := make([]*models.Meal, 0, 2)
	if d.Lunch != nil {
		slots = append(slots, d.Lunch)
	}
	if d.Dinner != nil {
		slots = append(slots, d.Dinner)
	}
	return slots
}

// MealView is a meal plus the time-relative state the view derives from it
type MealView struct {
	Meal models.Meal

	// Past is set once the meal's scheduled time has passed
	Past bool
}

type ToggleAttendanceInput struct {
	MealID int
}

type ToggleAttendanceOutput struct {
	Meal models.Meal

	// LatePlateCancelled is set when a late plate was withdrawn to attend
	LatePlateCancelled bool
}

type RequestLatePlateInput struct {
	MealID int
	Notes  string

	// PickupTime is optional, HH:MM
	PickupTime string
}

type RequestLatePlateOutput struct {
	Meal models.Meal

	// AttendanceWithdrawn is set when attendance was removed first
	AttendanceWithdrawn bool
}

type CancelLatePlateInput struct {
	MealID int
}

type ConfirmAttendanceInput struct {
	MealID int
}

type SubmitReviewInput struct {
	MealID  int
	Rating  float64
	Comment string
}

type SubmitReviewOutput struct {
	Review models.Review

	// Edited is set when an existing review was updated
	Edited bool
}

type DeleteReviewInput struct {
	MealID int
}
