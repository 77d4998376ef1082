package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/common/uuid"
	"github.com/KirkDiggler/chapterplate/internal/config"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/repositories/localstate"
	"github.com/KirkDiggler/chapterplate/internal/services/account"
	"github.com/KirkDiggler/chapterplate/internal/session"
	"github.com/spf13/cobra"
)

// options are the persistent flags
type options struct {
	statePath string
	logLevel  string
	apiURL    string
}

// app is everything one command invocation needs
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	state    localstate.Repository
	store    *session.Store
	account  account.Service
	clock    clock.Clock
	location *time.Location
	out      io.Writer
}

func newApp(ctx context.Context, cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		if level, err = config.ParseLevel(opts.logLevel); err != nil {
			return nil, err
		}
	}
	logger := config.NewLogger(level)

	if opts.apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(opts.apiURL, "/")
	}

	state, err := localstate.NewFile(&localstate.FileConfig{Path: opts.statePath})
	if err != nil {
		return nil, fmt.Errorf("open state file: %w", err)
	}

	client, err := api.New(&api.Config{
		BaseURL:       cfg.API.BaseURL,
		Logger:        logger,
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		return nil, err
	}

	appClock := clock.New(cfg.UI.Location)
	store, err := session.New(&session.Config{
		Principal:  principal,
		LocalState: state,
		API:        client,
		Clock:      appClock,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	store.Resolve(ctx)

	acct, err := account.New(&account.Config{
		Requester:       store.Client(),
		PublicRequester: store.PublicClient(),
		Session:         store,
		LocalState:      state,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		state:    state,
		store:    store,
		account:  acct,
		clock:    appClock,
		location: cfg.UI.Location,
		out:      cmd.OutOrStdout(),
	}, nil
}

// run wraps a command body with a ready app and a signal-aware context
func run(opts *options, fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := newApp(ctx, cmd, opts)
		if err != nil {
			return err
		}
		return fn(ctx, a, args)
	}
}

func (a *app) theme(ctx context.Context) models.Theme {
	theme, err := a.account.Theme(ctx)
	if err != nil {
		a.logger.Warn("failed to read theme", "error", err)
		return models.ThemeLight
	}
	return theme
}

func (a *app) palette(ctx context.Context) palette {
	return colors(a.theme(ctx))
}

// colors is the theme palette, or plain when NO_COLOR is set
func colors(theme models.Theme) palette {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return plain
	}
	return paletteFor(theme)
}

// failure turns err into what the user reads
func failure(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrNotLoggedIn):
		return fmt.Errorf("%w; run `chapterctl login`", err)
	}
	return errors.New(api.UserMessage(err, ""))
}
