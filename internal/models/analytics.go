package models

// Analytics is the admin dashboard payload
type Analytics struct {
	Summary         AnalyticsSummary `json:"summary"`
	AttendanceTrend []TrendPoint     `json:"attendance_trend"`
	PopularMeals    []PopularMeal    `json:"popular_meals"`
	HighestRated    []RatedMeal      `json:"highest_rated"`
	LowestRated     []RatedMeal      `json:"lowest_rated"`
}

// AnalyticsSummary holds the headline counters. AvgRating is nil when the
// chapter has no reviews yet.
type AnalyticsSummary struct {
	TotalMembers int      `json:"total_members"`
	TotalMeals   int      `json:"total_meals"`
	TotalReviews int      `json:"total_reviews"`
	AvgRating    *float64 `json:"avg_rating"`
}

// TrendPoint is the average attendance for the week starting at Week
type TrendPoint struct {
	Week         Time    `json:"week"`
	AvgAttendees float64 `json:"avg_attendees"`
}

type PopularMeal struct {
	DishName      string  `json:"dish_name"`
	AttendancePct float64 `json:"attendance_pct"`
}

type RatedMeal struct {
	DishName    string  `json:"dish_name"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}
