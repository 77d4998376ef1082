package mealplanner

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// WeekStart returns midnight of the Sunday on or before t, in loc
func WeekStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekSlots lays out the served meals of the week containing start:
// Sunday dinner, Monday through Thursday lunch and dinner, Friday lunch
func WeekSlots(start time.Time, loc *time.Location) []Slot {
	sunday := WeekStart(start, loc)
	at := func(days, hour int) time.Time {
		d := sunday.AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
	}

	slots := []Slot{{
		Key:      "dinner-sun",
		MealDate: at(0, DinnerHour),
		MealType: models.MealTypeDinner,
	}}
	for i := 1; i <= 4; i++ {
		slots = append(slots,
			Slot{
				Key:      fmt.Sprintf("lunch-%d", i),
				MealDate: at(i, LunchHour),
				MealType: models.MealTypeLunch,
			},
			Slot{
				Key:      fmt.Sprintf("dinner-%d", i),
				MealDate: at(i, DinnerHour),
				MealType: models.MealTypeDinner,
			},
		)
	}
	slots = append(slots, Slot{
		Key:      "lunch-fri",
		MealDate: at(5, LunchHour),
		MealType: models.MealTypeLunch,
	})
	return slots
}
