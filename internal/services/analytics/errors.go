package analytics

// AnalyticsError is a custom error type for analytics errors
type AnalyticsError string

// Error implements the error interface
func (e AnalyticsError) Error() string {
	return string(e)
}

const (
	ErrNilConfig    AnalyticsError = "config cannot be nil"
	ErrNilRequester AnalyticsError = "requester cannot be nil"
	ErrNilViewer    AnalyticsError = "viewer cannot be nil"
)
