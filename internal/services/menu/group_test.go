package menu

import (
	"testing"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meal(id int, mealType models.MealType, at time.Time, dish string) models.Meal {
	return models.Meal{
		ID:       id,
		MealType: mealType,
		MealDate: models.NewTime(at),
		DishName: dish,
	}
}

func TestGroupByDayOrdersLunchBeforeDinner(t *testing.T) {
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	meals := []models.Meal{
		meal(2, models.MealTypeDinner, day.Add(17*time.Hour), "Tacos"),
		meal(1, models.MealTypeLunch, day.Add(12*time.Hour), "Soup"),
	}

	days := GroupByDay(meals, time.UTC)

	require.Len(t, days, 1)
	assert.Equal(t, day, days[0].Date)
	require.Len(t, days[0].Slots(), 2)
	assert.Equal(t, "Soup", days[0].Slots()[0].DishName)
	assert.Equal(t, "Tacos", days[0].Slots()[1].DishName)
}

func TestGroupByDaySortsDaysAscending(t *testing.T) {
	meals := []models.Meal{
		meal(1, models.MealTypeLunch, time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC), "C"),
		meal(2, models.MealTypeLunch, time.Date(2025, 10, 12, 12, 0, 0, 0, time.UTC), "A"),
		meal(3, models.MealTypeDinner, time.Date(2025, 10, 14, 17, 0, 0, 0, time.UTC), "B"),
	}

	days := GroupByDay(meals, time.UTC)

	require.Len(t, days, 3)
	assert.Equal(t, 12, days[0].Date.Day())
	assert.Equal(t, 14, days[1].Date.Day())
	assert.Equal(t, 17, days[2].Date.Day())
	assert.Nil(t, days[1].Lunch)
	assert.Equal(t, "B", days[1].Dinner.DishName)
}

func TestGroupByDayLastDuplicateWins(t *testing.T) {
	at := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	meals := []models.Meal{
		meal(1, models.MealTypeLunch, at, "First"),
		meal(2, models.MealTypeLunch, at.Add(30*time.Minute), "Second"),
	}

	days := GroupByDay(meals, time.UTC)

	require.Len(t, days, 1)
	assert.Equal(t, 2, days[0].Lunch.ID)
	assert.Len(t, days[0].Slots(), 1)
}

func TestGroupByDayIgnoresOtherMealTypes(t *testing.T) {
	meals := []models.Meal{
		meal(1, "Breakfast", time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC), "Eggs"),
		meal(2, models.MealTypeDinner, time.Date(2025, 10, 16, 17, 0, 0, 0, time.UTC), "Pasta"),
	}

	days := GroupByDay(meals, time.UTC)

	require.Len(t, days, 1)
	assert.Equal(t, 16, days[0].Date.Day())
}

func TestGroupByDayUsesLocation(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// 02:00 UTC on the 16th is the evening of the 15th in Chicago
	meals := []models.Meal{
		meal(1, models.MealTypeDinner, time.Date(2025, 10, 16, 2, 0, 0, 0, time.UTC), "Late Dinner"),
	}

	days := GroupByDay(meals, chicago)

	require.Len(t, days, 1)
	assert.Equal(t, 15, days[0].Date.Day())
}

func TestGroupByDayEmpty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil, time.UTC))
}
