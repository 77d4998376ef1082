package models

import "time"

// LatePlateStatus is the moderation state of a late plate request
type LatePlateStatus string

const (
	LatePlatePending  LatePlateStatus = "pending"
	LatePlateApproved LatePlateStatus = "approved"
	LatePlateDenied   LatePlateStatus = "denied"
)

// Valid reports whether the status is one the server accepts
func (s LatePlateStatus) Valid() bool {
	switch s {
	case LatePlatePending, LatePlateApproved, LatePlateDenied:
		return true
	}
	return false
}

// LatePlate is a request to have food kept aside for later pickup
type LatePlate struct {
	ID           int             `json:"id"`
	MealID       int             `json:"meal_id"`
	UserID       int             `json:"user_id,omitempty"`
	UserName     string          `json:"user_name,omitempty"`
	MealDishName string          `json:"meal_dish_name,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	PickupTime   string          `json:"pickup_time,omitempty"`
	Status       LatePlateStatus `json:"status"`
	RequestTime  Time            `json:"request_time,omitempty"`
	Meal         *MealRef        `json:"meal,omitempty"`
}

// ValidPickupTime reports whether s is a 24 hour HH:MM clock time
func ValidPickupTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}
