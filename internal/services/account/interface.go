package account

import (
	"context"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// Service covers the account lifecycle of one principal
type Service interface {
	Register(ctx context.Context, input *RegisterInput) (*MessageOutput, error)

	// Login authenticates, persists the token and fills the session
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	Logout(ctx context.Context) error

	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) (*MessageOutput, error)

	ResetPassword(ctx context.Context, input *ResetPasswordInput) (*MessageOutput, error)

	VerifyEmail(ctx context.Context, input *VerifyEmailInput) (*MessageOutput, error)

	ResendVerification(ctx context.Context, input *ResendVerificationInput) (*MessageOutput, error)

	// UpdateProfile changes names and optionally the password
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error)

	Theme(ctx context.Context) (models.Theme, error)

	// ToggleTheme flips and persists the theme, returning the new one
	ToggleTheme(ctx context.Context) (models.Theme, error)
}

// Session is the part of the session store account operations change
type Session interface {
	Principal() string
	User() *models.User
	Login(ctx context.Context, user *models.User) error
	SetUser(user *models.User)
	Logout(ctx context.Context) error
}
