package models

// AttendanceRecord is one row of the admin attendance log
type AttendanceRecord struct {
	ID         int      `json:"id"`
	User       *UserRef `json:"user"`
	Meal       *MealRef `json:"meal"`
	AttendedAt Time     `json:"attended_at,omitempty"`
}

// AttendanceDetails breaks down who is and is not eating a given meal
type AttendanceDetails struct {
	Meal              MealRef   `json:"meal"`
	AttendingUsers    []UserRef `json:"attending_users"`
	NotAttendingUsers []UserRef `json:"not_attending_users"`
	AttendingCount    int       `json:"attending_count"`
	NotAttendingCount int       `json:"not_attending_count"`
	TotalUsers        int       `json:"total_users"`
}
