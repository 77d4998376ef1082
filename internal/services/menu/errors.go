package menu

// MenuError is a custom error type for menu errors
type MenuError string

// Error implements the error interface
func (e MenuError) Error() string {
	return string(e)
}

const (
	ErrNilConfig         MenuError = "config cannot be nil"
	ErrNilRequester      MenuError = "requester cannot be nil"
	ErrUnknownListing    MenuError = "unknown meal listing"
	ErrNilInput          MenuError = "input cannot be nil"
	ErrMealNotFound      MenuError = "meal not found"
	ErrMealInPast        MenuError = "this meal has already been served"
	ErrMealNotPast       MenuError = "meals can only be reviewed after they are served"
	ErrMealNotStarted    MenuError = "attendance can be confirmed once the meal has started"
	ErrInvalidRating     MenuError = "rating must be between 1.0 and 5.0 in half star increments"
	ErrInvalidPickupTime MenuError = "pickup time must look like 18:30"
	ErrLatePlateExists   MenuError = "you have already requested a late plate for this meal"
	ErrNoLatePlate       MenuError = "you have not requested a late plate for this meal"
	ErrNoReview          MenuError = "you have not reviewed this meal"
)
