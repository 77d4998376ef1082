package localstate

import "github.com/KirkDiggler/chapterplate/internal/models"

// GetTokenInput contains parameters for reading a token
type GetTokenInput struct {
	Principal string
}

// SaveTokenInput contains parameters for persisting a token
type SaveTokenInput struct {
	Principal string
	Token     string
}

// DeleteTokenInput contains parameters for clearing a token
type DeleteTokenInput struct {
	Principal string
}

// GetThemeInput contains parameters for reading a theme preference
type GetThemeInput struct {
	Principal string
}

// SaveThemeInput contains parameters for persisting a theme preference
type SaveThemeInput struct {
	Principal string
	Theme     models.Theme
}
