// Package widgets holds presentation state for meal cards, rating stars,
// modals and forms. Nothing here performs I/O.
package widgets

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/services/menu"
)

// CardState is everything a surface needs to draw one meal card
type CardState struct {
	Title    string
	When     string
	MealType models.MealType
	ImageURL string
	IsToday  bool
	IsPast   bool

	AttendLabel string
	CanAttend   bool

	LatePlateLabel string
	CanLatePlate   bool

	ReviewLabel string
	CanReview   bool

	// CanConfirm is offered once a meal the viewer signed up for has started
	CanConfirm bool

	ShowAttendanceCount bool
	AttendanceLabel     string

	// ShowEdit links staff to the meal editor
	ShowEdit bool
}

// MealCard gates the card actions on the meal's time relative to now.
// Attendance and late plates close once the meal starts; reviews open then.
func MealCard(meal *models.Meal, viewer *models.User, now time.Time, loc *time.Location) CardState {
	if meal == nil {
		return CardState{}
	}
	if loc == nil {
		loc = time.Local
	}

	past := menu.IsPast(meal, now)
	when := meal.MealDate.In(loc)
	today := now.In(loc)

	state := CardState{
		Title:       meal.DishName,
		When:        when.Format("Monday, January 2"),
		MealType:    meal.MealType,
		ImageURL:    meal.ImageURL,
		IsPast:      past,
		IsToday:     sameDay(when, today),
		AttendLabel: "Not Attending",
		CanAttend:   !past,

		LatePlateLabel: "Late Plate",
		CanLatePlate:   !past,

		ReviewLabel: "Review",
		CanReview:   past,

		CanConfirm: past && meal.IsAttending && !meal.AttendanceConfirmed,

		ShowAttendanceCount: viewer.IsStaff(),
		ShowEdit:            viewer.IsStaff(),
	}
	if meal.IsAttending {
		state.AttendLabel = "Attending"
	}
	if meal.HasLatePlate {
		state.LatePlateLabel = fmt.Sprintf("Late Plate (%s)", meal.LatePlateStatus)
	}
	if meal.HasReview() {
		state.ReviewLabel = "Edit Review"
	}
	if state.ShowAttendanceCount {
		state.AttendanceLabel = fmt.Sprintf("%d Attending", meal.AttendanceCount)
	}
	return state
}

// ReviewModalTitle names the review dialog for the meal
func ReviewModalTitle(meal *models.Meal) string {
	if meal.HasReview() {
		return "Edit Review"
	}
	return "Leave a Review"
}

// ReviewSubmitLabel is the submit button text of the review dialog
func ReviewSubmitLabel(meal *models.Meal) string {
	if meal.HasReview() {
		return "Update Review"
	}
	return "Submit Review"
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
