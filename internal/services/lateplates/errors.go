package lateplates

// LatePlateError is a custom error type for late plate moderation errors
type LatePlateError string

// Error implements the error interface
func (e LatePlateError) Error() string {
	return string(e)
}

const (
	ErrNilConfig     LatePlateError = "config cannot be nil"
	ErrNilRequester  LatePlateError = "requester cannot be nil"
	ErrNilViewer     LatePlateError = "viewer cannot be nil"
	ErrInvalidStatus LatePlateError = "status must be pending, approved or denied"
)
