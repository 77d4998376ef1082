package models

import "time"

// WeeklyPreset is a per-slot default the server applies when it generates a
// new week. DayOfWeek counts from Monday (0) to Sunday (6).
type WeeklyPreset struct {
	ID                  int      `json:"id,omitempty"`
	DayOfWeek           int      `json:"day_of_week"`
	MealType            MealType `json:"meal_type"`
	Attending           bool     `json:"attending"`
	LatePlate           bool     `json:"late_plate"`
	LatePlateNotes      string   `json:"late_plate_notes,omitempty"`
	LatePlatePickupTime *string  `json:"late_plate_pickup_time"`
	Enabled             bool     `json:"enabled"`
}

// Weekday converts the Monday-based index to a time.Weekday
func (p *WeeklyPreset) Weekday() time.Weekday {
	return time.Weekday((p.DayOfWeek + 1) % 7)
}

// PresetDayNames are the Monday-based day labels used for presets
var PresetDayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
