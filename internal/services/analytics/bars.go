package analytics

import (
	"fmt"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// TrendBars scales weekly attendance against the busiest week. The scale
// never drops below one attendee so a quiet chapter does not show full bars.
func TrendBars(trend []models.TrendPoint) []Bar {
	maxValue := 1.0
	for _, p := range trend {
		if p.AvgAttendees > maxValue {
			maxValue = p.AvgAttendees
		}
	}

	bars := make([]Bar, 0, len(trend))
	for _, p := range trend {
		label := "Unknown week"
		if !p.Week.IsZero() {
			label = p.Week.Format("Jan 2")
		}
		bars = append(bars, Bar{
			Label:    label,
			Value:    p.AvgAttendees,
			Fraction: clamp(p.AvgAttendees / maxValue),
		})
	}
	return bars
}

// PopularityBars shows the share of members attending each dish, capped at
// a full bar
func PopularityBars(meals []models.PopularMeal) []Bar {
	bars := make([]Bar, 0, len(meals))
	for _, m := range meals {
		bars = append(bars, Bar{
			Label:    m.DishName,
			Value:    m.AttendancePct,
			Fraction: clamp(m.AttendancePct / 100),
		})
	}
	return bars
}

// FormatAverage renders the summary rating, or a dash when there are no
// reviews yet
func FormatAverage(avg *float64) string {
	if avg == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f", *avg)
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
