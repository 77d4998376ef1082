package account

// AccountError is a custom error type for account errors
type AccountError string

// Error implements the error interface
func (e AccountError) Error() string {
	return string(e)
}

const (
	ErrNilConfig     AccountError = "config cannot be nil"
	ErrNilRequester  AccountError = "requester cannot be nil"
	ErrNilSession    AccountError = "session cannot be nil"
	ErrNilLocalState AccountError = "local state cannot be nil"
	ErrNilInput      AccountError = "input cannot be nil"

	ErrEmailRequired           AccountError = "Email is required."
	ErrPasswordRequired        AccountError = "Password is required."
	ErrNameRequired            AccountError = "First and last name are required."
	ErrAccessCodeRequired      AccountError = "An access code is required to join a chapter."
	ErrTokenRequired           AccountError = "No token found. Please use the link from your email."
	ErrPasswordTooShort        AccountError = "Password must be at least 6 characters."
	ErrPasswordMismatch        AccountError = "Passwords do not match."
	ErrCurrentPasswordRequired AccountError = "Current password is required to set a new password."
	ErrMissingToken            AccountError = "login response did not include a token"
)
