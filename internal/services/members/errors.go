package members

// MemberError is a custom error type for roster errors
type MemberError string

// Error implements the error interface
func (e MemberError) Error() string {
	return string(e)
}

const (
	ErrNilConfig    MemberError = "config cannot be nil"
	ErrNilRequester MemberError = "requester cannot be nil"
	ErrNilViewer    MemberError = "viewer cannot be nil"
	ErrInvalidRole  MemberError = "role must be admin or member"
	ErrRemoveSelf   MemberError = "you cannot remove yourself"
)
