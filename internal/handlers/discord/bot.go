// Package discord serves the chapter meal plan as Discord slash commands.
// Each Discord user is a separate principal with their own session.
package discord

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	handlers   *interactions
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	Views *Views

	Clock clock.Clock

	// Location is the chapter's timezone
	Location *time.Location

	// Timeout bounds the server calls of one interaction
	Timeout time.Duration

	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Token == "" {
		return nil, ErrEmptyToken
	}
	if cfg.Views == nil {
		return nil, ErrNilViews
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		handlers:   newInteractions(cfg),
		config:     cfg,
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

func newInteractions(cfg *Config) *interactions {
	h := &interactions{
		views:    cfg.Views,
		clock:    cfg.Clock,
		location: cfg.Location,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
	}
	if h.location == nil {
		h.location = time.Local
	}
	if h.clock == nil {
		h.clock = clock.New(h.location)
	}
	if h.timeout <= 0 {
		h.timeout = DefaultTimeout
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range []CommandHandler{
		newMealsCommand(b.handlers),
		newAdminCommand(b.handlers),
	} {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	b.handlers.logger.Info("bot is running")
	return nil
}

// Stop removes the commands, closes every user's views and disconnects
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.handlers.logger.Error("failed to delete command", "command", cmdName, "id", cmdID, "error", err)
		} else {
			b.handlers.logger.Info("deleted command", "command", cmdName, "id", cmdID)
		}
	}

	b.handlers.views.CloseAll()
	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord. Commands are global
// unless a guild ID is configured.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	logger := b.handlers.logger.With("command", cmd.GetName())
	if b.config.GuildID != "" {
		logger = logger.With("guild", b.config.GuildID)
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	logger.Info("registered command", "id", createdCmd.ID)

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	logger := b.handlers.logger
	if u := interactionUser(i); u != nil {
		logger = logger.With("user", u.ID)
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				logger.Error("error handling command", "command", name, "error", err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handlers.HandleComponent(s, i); err != nil {
			logger.Error("error handling component", "custom_id", i.MessageComponentData().CustomID, "error", err)
		}
	case discordgo.InteractionModalSubmit:
		if err := b.handlers.HandleModal(s, i); err != nil {
			logger.Error("error handling modal", "custom_id", i.ModalSubmitData().CustomID, "error", err)
		}
	}
}
