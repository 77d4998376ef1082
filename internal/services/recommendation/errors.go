package recommendation

// RecommendationError is a custom error type for recommendation errors
type RecommendationError string

// Error implements the error interface
func (e RecommendationError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        RecommendationError = "config cannot be nil"
	ErrNilRequester     RecommendationError = "requester cannot be nil"
	ErrNilViewer        RecommendationError = "viewer cannot be nil"
	ErrNilInput         RecommendationError = "input cannot be nil"
	ErrMealNameRequired RecommendationError = "Meal name is required."
	ErrInvalidLink      RecommendationError = "link must be an http or https URL"
)
