package menu

import (
	"sort"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// GroupByDay arranges meals into one entry per calendar day in loc, days
// ascending, each with a lunch and a dinner slot. When two meals claim the
// same slot the later one in the input wins. Meals of any other type are
// left out.
func GroupByDay(meals []models.Meal, loc *time.Location) []Day {
	if loc == nil {
		loc = time.Local
	}

	byDate := make(map[time.Time]*Day)
	for i := range meals {
		m := meals[i]
		if !m.MealType.Valid() || m.MealDate.IsZero() {
			continue
		}

		t := m.MealDate.In(loc)
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)

		day, ok := byDate[date]
		if !ok {
			day = &Day{Date: date}
			byDate[date] = day
		}

		switch m.MealType {
		case models.MealTypeLunch:
			day.Lunch = &m
		case models.MealTypeDinner:
			day.Dinner = &m
		}
	}

	days := make([]Day, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}
