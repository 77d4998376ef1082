package localstate

// StateError is a custom error type for local state errors
type StateError string

// Error implements the error interface
func (e StateError) Error() string {
	return string(e)
}

const (
	ErrTokenNotFound  StateError = "token not found"
	ErrNilConfig      StateError = "config cannot be nil"
	ErrNilRedisClient StateError = "redis client cannot be nil"
	ErrNoPath         StateError = "state file path is required"
	ErrEmptyPrincipal StateError = "principal cannot be empty"
	ErrEmptyToken     StateError = "token cannot be empty"
	ErrInvalidTheme   StateError = "theme must be light or dark"
)
