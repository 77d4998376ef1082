package widgets

import (
	"testing"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/stretchr/testify/assert"
)

var cardNow = time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC)

func TestMealCardUpcoming(t *testing.T) {
	meal := &models.Meal{
		ID:              1,
		DishName:        "Tacos",
		MealType:        models.MealTypeDinner,
		MealDate:        models.NewTime(time.Date(2025, 10, 14, 17, 0, 0, 0, time.UTC)),
		IsAttending:     true,
		AttendanceCount: 12,
	}

	card := MealCard(meal, &models.User{ID: 2}, cardNow, time.UTC)

	assert.True(t, card.CanAttend)
	assert.True(t, card.CanLatePlate)
	assert.False(t, card.CanReview)
	assert.False(t, card.CanConfirm)
	assert.True(t, card.IsToday)
	assert.Equal(t, "Attending", card.AttendLabel)
	assert.Equal(t, "Tuesday, October 14", card.When)
	assert.False(t, card.ShowAttendanceCount)
	assert.False(t, card.ShowEdit)
	assert.Empty(t, card.AttendanceLabel)
}

func TestMealCardPast(t *testing.T) {
	meal := &models.Meal{
		ID:          2,
		DishName:    "Soup",
		MealDate:    models.NewTime(time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)),
		IsAttending: true,
		UserReview:  &models.Review{ID: 8, Rating: 4},
	}

	card := MealCard(meal, nil, cardNow, time.UTC)

	assert.False(t, card.CanAttend)
	assert.False(t, card.CanLatePlate)
	assert.True(t, card.CanReview)
	assert.True(t, card.CanConfirm)
	assert.Equal(t, "Edit Review", card.ReviewLabel)

	meal.AttendanceConfirmed = true
	assert.False(t, MealCard(meal, nil, cardNow, time.UTC).CanConfirm)
}

func TestMealCardStaff(t *testing.T) {
	meal := &models.Meal{
		MealDate:        models.NewTime(time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)),
		AttendanceCount: 7,
		HasLatePlate:    true,
		LatePlateStatus: models.LatePlatePending,
	}

	card := MealCard(meal, &models.User{ID: 1, IsAdmin: true}, cardNow, time.UTC)

	assert.True(t, card.ShowAttendanceCount)
	assert.True(t, card.ShowEdit)
	assert.Equal(t, "7 Attending", card.AttendanceLabel)
	assert.Equal(t, "Late Plate (pending)", card.LatePlateLabel)
	assert.False(t, card.IsToday)
}

func TestMealCardNil(t *testing.T) {
	assert.Equal(t, CardState{}, MealCard(nil, nil, cardNow, time.UTC))
}

func TestReviewModalText(t *testing.T) {
	fresh := &models.Meal{ID: 1}
	reviewed := &models.Meal{ID: 1, UserReview: &models.Review{ID: 3}}

	assert.Equal(t, "Leave a Review", ReviewModalTitle(fresh))
	assert.Equal(t, "Submit Review", ReviewSubmitLabel(fresh))
	assert.Equal(t, "Edit Review", ReviewModalTitle(reviewed))
	assert.Equal(t, "Update Review", ReviewSubmitLabel(reviewed))
}
