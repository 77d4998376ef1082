package reviews

// ReviewsError is a custom error type for review feed errors
type ReviewsError string

// Error implements the error interface
func (e ReviewsError) Error() string {
	return string(e)
}

const (
	ErrNilConfig    ReviewsError = "config cannot be nil"
	ErrNilRequester ReviewsError = "requester cannot be nil"
)
