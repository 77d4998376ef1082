package account

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/repositories/localstate"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

type service struct {
	requester api.Requester
	public    api.Requester
	session   Session
	state     localstate.Repository
	logger    *slog.Logger
}

// New creates an account service for one session
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Requester == nil {
		return nil, ErrNilRequester
	}
	if cfg.Session == nil {
		return nil, ErrNilSession
	}
	if cfg.LocalState == nil {
		return nil, ErrNilLocalState
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	public := cfg.PublicRequester
	if public == nil {
		public = cfg.Requester
	}

	return &service{
		requester: cfg.Requester,
		public:    public,
		session:   cfg.Session,
		state:     cfg.LocalState,
		logger:    logger,
	}, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates an account with the chapter access code
func (s *service) Register(ctx context.Context, input *RegisterInput) (*MessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	email := strings.TrimSpace(input.Email)
	first := strings.TrimSpace(input.FirstName)
	last := strings.TrimSpace(input.LastName)
	code := strings.TrimSpace(input.AccessCode)

	switch {
	case code == "":
		return nil, ErrAccessCodeRequired
	case first == "" || last == "":
		return nil, ErrNameRequired
	case email == "":
		return nil, ErrEmailRequired
	case input.Password == "":
		return nil, ErrPasswordRequired
	}

	var resp messageResponse
	err := s.public.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/api/register",
		Body: map[string]string{
			"email":       email,
			"password":    input.Password,
			"first_name":  first,
			"last_name":   last,
			"access_code": code,
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Message: orDefault(resp.Message, "Registration successful. Check your email to verify your account.")}, nil
}

// Login authenticates, saves the token and fills the session
func (s *service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	var resp struct {
		Message string       `json:"message"`
		Token   string       `json:"token"`
		User    *models.User `json:"user"`
	}
	err := s.public.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/api/login",
		Body: map[string]string{
			"email":    email,
			"password": input.Password,
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return nil, ErrMissingToken
	}

	err = s.state.SaveToken(ctx, &localstate.SaveTokenInput{
		Principal: s.session.Principal(),
		Token:     resp.Token,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}
	if err := s.session.Login(ctx, resp.User); err != nil {
		return nil, err
	}

	s.logger.Info("logged in", "principal", s.session.Principal(), "user_id", resp.User.ID)
	return &LoginOutput{User: resp.User, Message: resp.Message}, nil
}

// Logout clears the saved token and the session user
func (s *service) Logout(ctx context.Context) error {
	return s.session.Logout(ctx)
}

// ForgotPassword asks the server to email a reset link
func (s *service) ForgotPassword(ctx context.Context, input *ForgotPasswordInput) (*MessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	var resp messageResponse
	err := s.public.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/api/forgot-password",
		Body:   map[string]string{"email": email},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Message: orDefault(resp.Message, "A reset link is on its way. Check your inbox.")}, nil
}

// ResetPassword sets a new password using an emailed token
func (s *service) ResetPassword(ctx context.Context, input *ResetPasswordInput) (*MessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Token == "" {
		return nil, ErrTokenRequired
	}
	if len(input.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if input.Password != input.Confirm {
		return nil, ErrPasswordMismatch
	}

	var resp messageResponse
	err := s.public.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/api/reset-password",
		Body: map[string]string{
			"token":    input.Token,
			"password": input.Password,
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Message: orDefault(resp.Message, "Password reset. You can log in now.")}, nil
}

// VerifyEmail confirms an address with its emailed token
func (s *service) VerifyEmail(ctx context.Context, input *VerifyEmailInput) (*MessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Token == "" {
		return nil, ErrTokenRequired
	}

	var resp messageResponse
	err := s.public.Do(ctx, &api.Request{
		Path:  "/api/verify-email",
		Query: url.Values{"token": {input.Token}},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Message: orDefault(resp.Message, "Email verified.")}, nil
}

// ResendVerification sends another verification email
func (s *service) ResendVerification(ctx context.Context, input *ResendVerificationInput) (*MessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	var resp messageResponse
	err := s.public.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/api/resend-verification",
		Body:   map[string]string{"email": email},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Message: orDefault(resp.Message, "Verification email sent.")}, nil
}

// UpdateProfile changes names and optionally the password
func (s *service) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if _, err := session.RequireUser(s.session); err != nil {
		return nil, err
	}

	body := map[string]string{
		"first_name": strings.TrimSpace(input.FirstName),
		"last_name":  strings.TrimSpace(input.LastName),
	}
	if input.NewPassword != "" {
		switch {
		case input.NewPassword != input.ConfirmPassword:
			return nil, ErrPasswordMismatch
		case len(input.NewPassword) < MinPasswordLength:
			return nil, ErrPasswordTooShort
		case input.CurrentPassword == "":
			return nil, ErrCurrentPasswordRequired
		}
		body["current_password"] = input.CurrentPassword
		body["new_password"] = input.NewPassword
	}

	var resp struct {
		User *models.User `json:"user"`
	}
	err := s.requester.Do(ctx, &api.Request{
		Method: http.MethodPut,
		Path:   "/api/me",
		Body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.User != nil {
		s.session.SetUser(resp.User)
	}
	return &UpdateProfileOutput{User: s.session.User(), Message: "Profile updated successfully."}, nil
}

// Theme returns the saved theme, light when none is saved
func (s *service) Theme(ctx context.Context) (models.Theme, error) {
	return s.state.GetTheme(ctx, &localstate.GetThemeInput{Principal: s.session.Principal()})
}

// ToggleTheme switches between light and dark and saves the choice
func (s *service) ToggleTheme(ctx context.Context) (models.Theme, error) {
	current, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}

	next := current.Toggle()
	err = s.state.SaveTheme(ctx, &localstate.SaveThemeInput{
		Principal: s.session.Principal(),
		Theme:     next,
	})
	if err != nil {
		return "", err
	}
	return next, nil
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
