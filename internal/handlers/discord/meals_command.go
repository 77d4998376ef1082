package discord

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/chapterplate/internal/services/account"
	"github.com/KirkDiggler/chapterplate/internal/services/menu"
	"github.com/KirkDiggler/chapterplate/internal/session"
	"github.com/bwmarrin/discordgo"
)

// MealsCommand is /meals, what every member uses
type MealsCommand struct {
	BaseCommand
	*interactions
}

func newMealsCommand(h *interactions) *MealsCommand {
	return &MealsCommand{
		BaseCommand: BaseCommand{
			Name:        "meals",
			Description: "Chapter meal plan",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("login", "Log in to your chapter account"),
				subcommand("logout", "Log out"),
				subcommand("whoami", "Show who you are logged in as"),
				subcommand("register", "Join your chapter with its access code"),
				subcommand("profile", "Edit your name or password"),
				subcommand("menu", "This week's menu"),
				subcommand("today", "Today's meals"),
				subcommand("past", "Past meals, to review"),
				subcommand("reviews", "Recent reviews"),
				subcommand("presets", "Your weekly presets"),
				subcommand("apply-presets", "Apply your presets to upcoming meals"),
				subcommand("theme", "Switch between light and dark embeds"),
				subcommand("recommend", "Recommend a meal to the kitchen"),
				subcommand("forgot-password", "Email yourself a password reset link",
					stringOption("email", "Your account email", true)),
				subcommand("reset-password", "Set a new password with your reset token",
					stringOption("token", "Token from the reset email", false)),
				subcommand("verify-email", "Verify your email address",
					stringOption("token", "Token from the verification email", true)),
				subcommand("resend-verification", "Send the verification email again",
					stringOption("email", "Your account email", true)),
			},
		},
		interactions: h,
	}
}

func subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func intOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

// options indexes a subcommand's arguments by name
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func subcommandOf(i *discordgo.InteractionCreate) (string, options, error) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return "", nil, ErrUnknownSubcommand
	}
	sub := data.Options[0]
	opts := make(options, len(sub.Options))
	for _, o := range sub.Options {
		opts[o.Name] = o
	}
	return sub.Name, opts, nil
}

func (o options) string(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (o options) int(name string) (int, bool) {
	if opt, ok := o[name]; ok {
		return int(opt.IntValue()), true
	}
	return 0, false
}

// Handle processes /meals
func (c *MealsCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	name, opts, err := subcommandOf(i)
	if err != nil {
		return err
	}

	switch name {
	case "login":
		return RespondWithModal(s, i, loginModal())
	case "register":
		return RespondWithModal(s, i, registerModal())
	case "recommend":
		return RespondWithModal(s, i, recommendModal())
	case "reset-password":
		return RespondWithModal(s, i, resetPasswordModal(opts.string("token")))
	case "profile":
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		uv, err := c.userViews(ctx, i)
		if err != nil {
			return RespondWithError(s, i, userMessage(err))
		}
		u := uv.Session().User()
		if u == nil {
			return RespondWithError(s, i, userMessage(session.ErrNotLoggedIn))
		}
		return RespondWithModal(s, i, profileModal(u))

	case "logout":
		return c.deferred(s, i, false, c.logout)
	case "whoami":
		return c.deferred(s, i, false, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			return renderWhoAmI(uv.Session().User(), c.theme(ctx, uv))
		})
	case "menu":
		return c.deferred(s, i, false, c.listing(menu.ListingWeek))
	case "today":
		return c.deferred(s, i, false, c.listing(menu.ListingToday))
	case "past":
		return c.deferred(s, i, false, c.listing(menu.ListingPast))
	case "reviews":
		return c.deferred(s, i, false, c.reviews)
	case "presets":
		return c.deferred(s, i, false, c.presets)
	case "apply-presets":
		return c.deferred(s, i, false, c.applyPresets)
	case "theme":
		return c.deferred(s, i, false, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			theme, err := uv.Account().ToggleTheme(ctx)
			if err != nil {
				return errorData(userMessage(err))
			}
			return messageData(fmt.Sprintf("Embeds now use the %s theme.", theme))
		})
	case "forgot-password":
		return c.deferred(s, i, false, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			out, err := uv.Account().ForgotPassword(ctx, &account.ForgotPasswordInput{Email: opts.string("email")})
			if err != nil {
				return errorData(userMessage(err))
			}
			return messageData(out.Message)
		})
	case "verify-email":
		return c.deferred(s, i, false, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			out, err := uv.Account().VerifyEmail(ctx, &account.VerifyEmailInput{Token: opts.string("token")})
			if err != nil {
				return errorData(userMessage(err))
			}
			return messageData(out.Message)
		})
	case "resend-verification":
		return c.deferred(s, i, false, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			out, err := uv.Account().ResendVerification(ctx, &account.ResendVerificationInput{Email: opts.string("email")})
			if err != nil {
				return errorData(userMessage(err))
			}
			return messageData(out.Message)
		})
	}
	return fmt.Errorf("%w: %s", ErrUnknownSubcommand, name)
}

func (c *MealsCommand) logout(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
	if err := uv.Account().Logout(ctx); err != nil {
		c.logger.Error("failed to clear token", "principal", uv.Session().Principal(), "error", err)
	}
	c.views.Close(uv.Session().Principal())
	return messageData("Logged out.")
}

func (c *MealsCommand) listing(listing menu.Listing) reply {
	return func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
		if uv.Session().User() == nil {
			return errorData(userMessage(session.ErrNotLoggedIn))
		}
		svc, err := uv.Menu(listing)
		if err != nil {
			return errorData(userMessage(err))
		}
		if err := svc.Load(ctx); err != nil {
			c.logger.Warn("failed to load menu", "listing", listing, "error", err)
		}

		day := 0
		if listing == menu.ListingWeek {
			day = todayIndex(svc.Snapshot(), c.clock.Now(), c.location)
		}
		return c.renderMenuDay(ctx, uv, svc, listing, day)
	}
}

func (c *MealsCommand) reviews(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
	svc, err := uv.Reviews()
	if err != nil {
		return errorData(userMessage(err))
	}
	if err := svc.Load(ctx); err != nil {
		c.logger.Warn("failed to load reviews", "error", err)
	}
	return renderReviewFeed(svc.Snapshot(), c.theme(ctx, uv))
}

func (c *MealsCommand) presets(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
	if uv.Session().User() == nil {
		return errorData(userMessage(session.ErrNotLoggedIn))
	}
	svc, err := uv.Presets()
	if err != nil {
		return errorData(userMessage(err))
	}
	if err := svc.Load(ctx); err != nil {
		c.logger.Warn("failed to load presets", "error", err)
	}
	return renderPresets(svc.Snapshot(), c.theme(ctx, uv))
}
