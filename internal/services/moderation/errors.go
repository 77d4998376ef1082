package moderation

// ModerationError is a custom error type for moderation errors
type ModerationError string

// Error implements the error interface
func (e ModerationError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      ModerationError = "config cannot be nil"
	ErrNilRequester   ModerationError = "requester cannot be nil"
	ErrNilViewer      ModerationError = "viewer cannot be nil"
	ErrReviewNotFound ModerationError = "review not found"
)
