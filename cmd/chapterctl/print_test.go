package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/services/lateplates"
	"github.com/KirkDiggler/chapterplate/internal/services/mealplanner"
	"github.com/KirkDiggler/chapterplate/internal/services/menu"
	"github.com/KirkDiggler/chapterplate/internal/services/presets"
	"github.com/KirkDiggler/chapterplate/internal/services/reviews"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

func TestPrintMenu(t *testing.T) {
	tacos := models.Meal{
		ID:          7,
		MealDate:    models.NewTime(time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC)),
		MealType:    models.MealTypeLunch,
		DishName:    "Tacos",
		IsAttending: true,
		UserReview:  &models.Review{ID: 3, Rating: 4},
	}
	lasagna := models.Meal{
		ID:              8,
		MealDate:        models.NewTime(time.Date(2025, 10, 14, 17, 0, 0, 0, time.UTC)),
		MealType:        models.MealTypeDinner,
		DishName:        "Lasagna",
		Description:     "extra cheese",
		HasLatePlate:    true,
		LatePlateStatus: models.LatePlatePending,
	}
	meals := []models.Meal{tacos, lasagna}
	snap := &menu.Snapshot{Meals: meals, Days: menu.GroupByDay(meals, time.UTC)}

	var buf bytes.Buffer
	printMenu(&buf, plain, snap, &models.User{ID: 1}, testNow, time.UTC)
	out := buf.String()

	assert.Contains(t, out, "Monday, October 13")
	assert.Contains(t, out, "#7     Lunch   Tacos")
	assert.Contains(t, out, "Attended (confirm with `attend --confirm`)")
	assert.Contains(t, out, "★★★★☆")
	assert.Contains(t, out, "Tuesday, October 14")
	assert.Contains(t, out, "extra cheese")
	assert.Contains(t, out, "Not Attending · Late Plate (pending)")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintMenuShowsCountsToStaff(t *testing.T) {
	meal := models.Meal{
		ID:              9,
		MealDate:        models.NewTime(time.Date(2025, 10, 15, 17, 0, 0, 0, time.UTC)),
		MealType:        models.MealTypeDinner,
		DishName:        "Curry",
		AttendanceCount: 12,
	}
	snap := &menu.Snapshot{Days: menu.GroupByDay([]models.Meal{meal}, time.UTC)}

	var buf bytes.Buffer
	printMenu(&buf, plain, snap, &models.User{ID: 1, IsAdmin: true}, testNow, time.UTC)

	assert.Contains(t, buf.String(), "12 Attending")
}

func TestPresetSummary(t *testing.T) {
	pickup := "18:30:00"
	assert.Equal(t, "not set", presetSummary(nil))
	assert.Equal(t, "off", presetSummary(&models.WeeklyPreset{Attending: true}))
	assert.Equal(t, "attending", presetSummary(&models.WeeklyPreset{Attending: true, Enabled: true}))
	assert.Equal(t, "late plate at 18:30 (no onions)", presetSummary(&models.WeeklyPreset{
		LatePlate:           true,
		Enabled:             true,
		LatePlatePickupTime: &pickup,
		LatePlateNotes:      "no onions",
	}))
	assert.Equal(t, "not attending", presetSummary(&models.WeeklyPreset{Enabled: true}))
}

func TestPrintPresets(t *testing.T) {
	grid := presets.Grid([]models.WeeklyPreset{
		{ID: 4, DayOfWeek: 0, MealType: models.MealTypeDinner, Attending: true, Enabled: true},
	})

	var buf bytes.Buffer
	printPresets(&buf, plain, &presets.Snapshot{Grid: grid})
	out := buf.String()

	assert.Contains(t, out, "Monday")
	assert.Contains(t, out, "#4    attending")
	assert.NotContains(t, out, "Saturday")
}

func TestPrintReviewFeed(t *testing.T) {
	meal := models.Meal{ID: 7, DishName: "Tacos"}
	snap := &reviews.Snapshot{Feed: reviews.Feed{
		Items: []reviews.Item{
			{Meal: meal, Review: models.Review{Rating: 5, Comment: "great", User: &models.UserRef{Name: "Pat"}}},
			{Meal: meal, Review: models.Review{Rating: 3.5}},
		},
		Summaries: []reviews.MealSummary{{Meal: meal, ReviewCount: 2}},
	}}

	var buf bytes.Buffer
	printReviewFeed(&buf, plain, snap)
	out := buf.String()

	assert.Contains(t, out, "Tacos  not enough reviews  (2)")
	assert.Contains(t, out, "★★★★★ Pat: great")
	assert.Contains(t, out, "★★★½☆ Anonymous")

	buf.Reset()
	printReviewFeed(&buf, plain, &reviews.Snapshot{})
	assert.Equal(t, "No reviews yet.\n", buf.String())
}

func TestPrintUser(t *testing.T) {
	var buf bytes.Buffer
	printUser(&buf, nil)
	assert.Equal(t, "Not logged in.\n", buf.String())

	buf.Reset()
	printUser(&buf, &models.User{FirstName: "Pat", LastName: "Lee", Email: "pat@chapter.org", IsOwner: true, ChapterName: "Alpha"})
	assert.Equal(t, "Pat Lee <pat@chapter.org> (owner)\nChapter: Alpha\n", buf.String())
}

func TestPrintSlots(t *testing.T) {
	slots := mealplanner.WeekSlots(time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC), time.UTC)
	slots[0].DishName = "Tacos"
	slots[0].Image = &mealplanner.Image{Filename: "tacos.jpg"}

	var buf bytes.Buffer
	printSlots(&buf, slots)
	out := buf.String()

	assert.Contains(t, out, "dinner-sun Sun Oct 12 Dinner Tacos [tacos.jpg]")
	assert.Contains(t, out, "(skipped)")
}

func TestPrintLatePlates(t *testing.T) {
	plates := []models.LatePlate{
		{ID: 1, UserName: "Pat", MealDishName: "Tacos", Status: models.LatePlatePending, PickupTime: "19:00", Notes: "no onions"},
		{ID: 2, UserName: "Sam", MealDishName: "Tacos", Status: models.LatePlateApproved},
	}

	var buf bytes.Buffer
	printLatePlates(&buf, plain, &lateplates.Snapshot{Groups: lateplates.GroupByDish(plates)})
	out := buf.String()

	assert.Contains(t, out, "Tacos (2)")
	assert.Contains(t, out, "#1     Pat  pending  pickup 19:00")
	assert.Contains(t, out, "no onions")
	assert.Contains(t, out, "#2     Sam  approved")
}

func TestPaletteForTheme(t *testing.T) {
	dark := paletteFor(models.ThemeDark)
	require.NotEqual(t, plain, dark)
	assert.Equal(t, "\x1b[1;96mMenu\x1b[0m", dark.Heading("Menu"))
	assert.Equal(t, "Menu", plain.Heading("Menu"))
}

func TestMealID(t *testing.T) {
	id, err := mealID([]string{"#12"})
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = mealID([]string{"twelve"})
	assert.ErrorIs(t, err, ErrBadMealID)

	_, err = mealID([]string{"0"})
	assert.ErrorIs(t, err, ErrBadMealID)
}

func TestDayIndexAndMealType(t *testing.T) {
	i, err := dayIndex("wed")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = dayIndex("Sunday")
	require.NoError(t, err)
	assert.Equal(t, 6, i)

	_, err = dayIndex("someday")
	assert.Error(t, err)

	mt, err := mealTypeOf("lunch")
	require.NoError(t, err)
	assert.Equal(t, models.MealTypeLunch, mt)

	_, err = mealTypeOf("brunch")
	assert.Error(t, err)
}
