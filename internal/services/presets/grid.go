package presets

import "github.com/KirkDiggler/chapterplate/internal/models"

const (
	dayFriday   = 4
	daySaturday = 5
	daySunday   = 6
)

// SlotServed reports whether the chapter serves a meal in the slot. No
// meals on Saturday, Friday dinner or Sunday lunch.
func SlotServed(day int, mealType models.MealType) bool {
	switch {
	case day < 0 || day > daySunday:
		return false
	case day == daySaturday:
		return false
	case day == dayFriday && mealType == models.MealTypeDinner:
		return false
	case day == daySunday && mealType == models.MealTypeLunch:
		return false
	}
	return mealType.Valid()
}

// Grid lays presets out Monday to Sunday over the served slots
func Grid(presets []models.WeeklyPreset) []GridDay {
	var days []GridDay
	for day, name := range models.PresetDayNames {
		if day == daySaturday {
			continue
		}

		row := GridDay{DayOfWeek: day, Name: name}
		for _, mealType := range models.MealTypes {
			if !SlotServed(day, mealType) {
				continue
			}
			row.Slots = append(row.Slots, GridSlot{
				MealType: mealType,
				Preset:   find(presets, day, mealType),
			})
		}
		days = append(days, row)
	}
	return days
}

func find(presets []models.WeeklyPreset, day int, mealType models.MealType) *models.WeeklyPreset {
	for i := range presets {
		if presets[i].DayOfWeek == day && presets[i].MealType == mealType {
			p := presets[i]
			return &p
		}
	}
	return nil
}
