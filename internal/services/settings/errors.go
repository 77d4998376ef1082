package settings

// SettingsError is a custom error type for settings errors
type SettingsError string

// Error implements the error interface
func (e SettingsError) Error() string {
	return string(e)
}

const (
	ErrNilConfig           SettingsError = "config cannot be nil"
	ErrNilRequester        SettingsError = "requester cannot be nil"
	ErrNilViewer           SettingsError = "viewer cannot be nil"
	ErrChapterNameRequired SettingsError = "chapter name cannot be empty"
)
