package mealplanner

// PlannerError is a custom error type for meal authoring errors
type PlannerError string

// Error implements the error interface
func (e PlannerError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        PlannerError = "config cannot be nil"
	ErrNilRequester     PlannerError = "requester cannot be nil"
	ErrNilViewer        PlannerError = "viewer cannot be nil"
	ErrNilInput         PlannerError = "input cannot be nil"
	ErrUnknownSlot      PlannerError = "slot not found"
	ErrNoMealsToSave    PlannerError = "Please fill in at least one dish name."
	ErrDishNameRequired PlannerError = "Dish name is required."
	ErrInvalidMealType  PlannerError = "meal type must be Lunch or Dinner"
	ErrMissingMealDate  PlannerError = "meal date is required"
	ErrEmptyQuery       PlannerError = "search query cannot be empty"
)
