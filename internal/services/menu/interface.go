package menu

import "context"

// Service is the view state of one meal listing
type Service interface {
	// Load fetches the listing, replacing whatever was shown
	Load(ctx context.Context) error

	// Snapshot returns the current view state
	Snapshot() *Snapshot

	// Meal returns the loaded meal with the given ID
	Meal(id int) (*MealView, error)

	// ToggleAttendance flips the viewer's attendance. Turning it on cancels
	// an existing late plate first.
	ToggleAttendance(ctx context.Context, input *ToggleAttendanceInput) (*ToggleAttendanceOutput, error)

	// RequestLatePlate asks for food to be kept aside. Attendance is
	// withdrawn first when set.
	RequestLatePlate(ctx context.Context, input *RequestLatePlateInput) (*RequestLatePlateOutput, error)

	// CancelLatePlate withdraws the viewer's late plate request
	CancelLatePlate(ctx context.Context, input *CancelLatePlateInput) error

	// ConfirmAttendance records that the viewer actually ate. Refused while
	// a late plate is requested for the meal.
	ConfirmAttendance(ctx context.Context, input *ConfirmAttendanceInput) error

	// SubmitReview creates the viewer's review, or edits it when one exists
	SubmitReview(ctx context.Context, input *SubmitReviewInput) (*SubmitReviewOutput, error)

	// DeleteReview removes the viewer's review
	DeleteReview(ctx context.Context, input *DeleteReviewInput) error

	// Close discards the view; late results are dropped
	Close()
}
