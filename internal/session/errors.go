package session

// SessionError is a custom error type for session errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      SessionError = "config cannot be nil"
	ErrEmptyPrincipal SessionError = "principal cannot be empty"
	ErrNilLocalState  SessionError = "local state repository cannot be nil"
	ErrNilAPIClient   SessionError = "api client cannot be nil"
	ErrNilUser        SessionError = "user cannot be nil"
)
