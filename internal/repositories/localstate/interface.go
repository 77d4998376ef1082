package localstate

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/chapterplate/internal/repositories/localstate Repository

import (
	"context"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// Repository persists the per-principal client state that survives
// restarts: the auth token and the theme preference
type Repository interface {
	// GetToken returns ErrTokenNotFound when the principal is logged out
	GetToken(ctx context.Context, input *GetTokenInput) (string, error)

	SaveToken(ctx context.Context, input *SaveTokenInput) error

	// DeleteToken is a no-op when no token is stored
	DeleteToken(ctx context.Context, input *DeleteTokenInput) error

	// GetTheme returns light when nothing has been saved
	GetTheme(ctx context.Context, input *GetThemeInput) (models.Theme, error)

	SaveTheme(ctx context.Context, input *SaveThemeInput) error
}
