package models

// Review is a member's rating of a meal
type Review struct {
	ID      int     `json:"id"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
	MealID  int     `json:"meal_id,omitempty"`

	// IsHidden is set by an owner moderating the review
	IsHidden bool `json:"is_hidden,omitempty"`

	User      *UserRef `json:"user,omitempty"`
	Meal      *MealRef `json:"meal,omitempty"`
	CreatedAt Time     `json:"created_at,omitempty"`
}

const (
	MinRating = 1.0
	MaxRating = 5.0
)

// ValidRating reports whether r is between 1 and 5 in half steps
func ValidRating(r float64) bool {
	if r < MinRating || r > MaxRating {
		return false
	}
	doubled := r * 2
	return doubled == float64(int(doubled))
}
