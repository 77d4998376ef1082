package models

// MealType is the serving slot of a meal
type MealType string

const (
	// MealTypeLunch is served at noon
	MealTypeLunch MealType = "Lunch"

	// MealTypeDinner is served in the evening
	MealTypeDinner MealType = "Dinner"
)

// MealTypes lists the slots in display order
var MealTypes = []MealType{MealTypeLunch, MealTypeDinner}

// Valid reports whether the meal type is one of the known slots
func (t MealType) Valid() bool {
	return t == MealTypeLunch || t == MealTypeDinner
}

// Order returns the sort position of the slot within a day, lunch first.
// Unknown types sort last.
func (t MealType) Order() int {
	switch t {
	case MealTypeLunch:
		return 1
	case MealTypeDinner:
		return 2
	default:
		return 3
	}
}

// Meal is a scheduled meal as seen by the current viewer
type Meal struct {
	// ID is the server identifier of the meal
	ID int `json:"id"`

	// MealDate is the scheduled serving time
	MealDate Time `json:"meal_date"`

	// MealType is the slot (lunch or dinner)
	MealType MealType `json:"meal_type"`

	DishName    string `json:"dish_name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`

	// IsAttending is the viewer's attendance state
	IsAttending bool `json:"is_attending"`

	// AttendanceCount is the number of members attending
	AttendanceCount int `json:"attendance_count"`

	// AttendanceConfirmed is set once the viewer confirmed they actually ate
	AttendanceConfirmed bool `json:"attendance_confirmed,omitempty"`

	// HasLatePlate is set when the viewer has a late plate request
	HasLatePlate    bool            `json:"has_late_plate"`
	LatePlateID     int             `json:"late_plate_id,omitempty"`
	LatePlateStatus LatePlateStatus `json:"late_plate_status,omitempty"`

	// UserReview is the viewer's own review, if any
	UserReview *Review `json:"user_review,omitempty"`
}

// HasReview reports whether the viewer already reviewed this meal
func (m *Meal) HasReview() bool {
	return m != nil && m.UserReview != nil && m.UserReview.ID != 0
}

// MealRef is the abbreviated meal embedded in reviews and late plates
type MealRef struct {
	ID       int      `json:"id"`
	DishName string   `json:"dish_name"`
	MealType MealType `json:"meal_type,omitempty"`
	MealDate Time     `json:"meal_date,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}
