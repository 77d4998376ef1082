package attendance

// AttendanceError is a custom error type for attendance errors
type AttendanceError string

// Error implements the error interface
func (e AttendanceError) Error() string {
	return string(e)
}

const (
	ErrNilConfig    AttendanceError = "config cannot be nil"
	ErrNilRequester AttendanceError = "requester cannot be nil"
	ErrNilViewer    AttendanceError = "viewer cannot be nil"
)
