package models

// Recommendation is a dish a member suggests adding to the rotation
type Recommendation struct {
	ID          int      `json:"id"`
	MealName    string   `json:"meal_name"`
	Description string   `json:"description,omitempty"`
	Link        string   `json:"link,omitempty"`
	User        *UserRef `json:"user,omitempty"`
	CreatedAt   Time     `json:"created_at,omitempty"`
}
