package account

import (
	"log/slog"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/repositories/localstate"
)

// MinPasswordLength applies to new and reset passwords
const MinPasswordLength = 6

// Config holds configuration for the account service
type Config struct {
	// Requester is bound to the session and serves profile changes
	Requester api.Requester

	// PublicRequester carries the unauthenticated calls: register, login
	// and the password and verification flows. Defaults to Requester.
	PublicRequester api.Requester

	Session    Session
	LocalState localstate.Repository
	Logger     *slog.Logger
}

type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	AccessCode string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User    *models.User
	Message string
}

type ForgotPasswordInput struct {
	Email string
}

type ResetPasswordInput struct {
	Token    string
	Password string
	Confirm  string
}

type VerifyEmailInput struct {
	Token string
}

type ResendVerificationInput struct {
	Email string
}

// UpdateProfileInput changes names; NewPassword is optional
type UpdateProfileInput struct {
	FirstName       string
	LastName        string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

type UpdateProfileOutput struct {
	User    *models.User
	Message string
}

// MessageOutput carries the confirmation shown to the user
type MessageOutput struct {
	Message string
}
