package discord

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/bwmarrin/discordgo"
)

// AdminCommand is /mealadmin, for chapter staff. The server and the
// services both refuse non-staff, so the command is registered for
// everyone.
type AdminCommand struct {
	BaseCommand
	*interactions
}

func newAdminCommand(h *interactions) *AdminCommand {
	roleOption := stringOption("role", "New role", true)
	roleOption.Choices = []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Admin", Value: string(models.RoleAdmin)},
		{Name: "Member", Value: string(models.RoleMember)},
	}

	return &AdminCommand{
		BaseCommand: BaseCommand{
			Name:        "mealadmin",
			Description: "Run the chapter kitchen",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("lateplates", "Today's late plate requests"),
				subcommand("pending", "How many late plates await a decision"),
				subcommand("analytics", "Attendance and rating trends"),
				subcommand("access-code", "Chapter name and access code"),
				subcommand("rename", "Rename the chapter",
					stringOption("name", "New chapter name", true)),
				subcommand("regenerate-code", "Issue a new access code (owner only)"),
				subcommand("users", "List chapter members"),
				subcommand("set-role", "Make a member an admin or back",
					intOption("user_id", "Member ID from /mealadmin users", true), roleOption),
				subcommand("remove-user", "Remove a member from the chapter",
					intOption("user_id", "Member ID from /mealadmin users", true)),
				subcommand("reviews", "Hide or delete reviews (owner only)"),
				subcommand("recommendations", "Meal recommendations from members"),
				subcommand("delete-recommendation", "Delete a recommendation",
					intOption("id", "Recommendation ID", true)),
				subcommand("attendance", "Attendance records, or one meal's details",
					intOption("meal_id", "Show who is coming to this meal", false)),
			},
		},
		interactions: h,
	}
}

// Handle processes /mealadmin
func (c *AdminCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	name, opts, err := subcommandOf(i)
	if err != nil {
		return err
	}

	var fn reply
	switch name {
	case "lateplates":
		fn = c.latePlates
	case "pending":
		fn = c.pending
	case "analytics":
		fn = c.analytics
	case "access-code":
		fn = c.settings
	case "rename":
		fn = c.rename(opts.string("name"))
	case "regenerate-code":
		fn = c.regenerateCode
	case "users":
		fn = c.members(func(ctx context.Context, uv *UserViews) error { return nil })
	case "set-role":
		userID, _ := opts.int("user_id")
		role := models.Role(opts.string("role"))
		fn = c.members(func(ctx context.Context, uv *UserViews) error {
			svc, err := uv.Members()
			if err != nil {
				return err
			}
			return svc.SetRole(ctx, userID, role)
		})
	case "remove-user":
		userID, _ := opts.int("user_id")
		fn = c.members(func(ctx context.Context, uv *UserViews) error {
			svc, err := uv.Members()
			if err != nil {
				return err
			}
			return svc.Remove(ctx, userID)
		})
	case "reviews":
		fn = c.moderation
	case "recommendations":
		fn = c.recommendations(0)
	case "delete-recommendation":
		id, _ := opts.int("id")
		fn = c.recommendations(id)
	case "attendance":
		mealID, _ := opts.int("meal_id")
		fn = c.attendance(mealID)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSubcommand, name)
	}
	return c.deferred(s, i, false, fn)
}

func (c *AdminCommand) latePlates(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
	svc, err := uv.LatePlates()
	if err != nil {
		return errorData(userMessage(err))
	}
	if err := svc.Load(ctx); err != nil {
		return errorData(userMessage(err))
	}
	return renderLatePlates(svc.Snapshot(), c.theme(ctx, uv))
}

func (c *AdminCommand) pending(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
	svc, err := uv.LatePlates()
	if err != nil {
		return errorData(userMessage(err))
	}
	n, err := svc.PendingCount(ctx)
	if err != nil {
		return errorData(userMessage(err))
	}
	if n == 0 {
		return messageData("No late plates are waiting.")
	}
	return messageData(fmt.Sprintf("%d late plates are waiting. Use `/mealadmin lateplates`.", n))
}

func (c *AdminCommand) analytics(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
	svc, err := uv.Analytics()
	if err != nil {
		return errorData(userMessage(err))
	}
	if err := svc.Load(ctx); err != nil {
		return errorData(userMessage(err))
	}
	return renderAnalytics(svc.Snapshot(), c.theme(ctx, uv))
}

func (c *AdminCommand) settings(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
	svc, err := uv.Settings()
	if err != nil {
		return errorData(userMessage(err))
	}
	if err := svc.Load(ctx); err != nil {
		return errorData(userMessage(err))
	}
	return renderSettings(svc.Snapshot(), c.theme(ctx, uv))
}

func (c *AdminCommand) rename(name string) reply {
	return func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
		svc, err := uv.Settings()
		if err != nil {
			return errorData(userMessage(err))
		}
		if err := svc.Load(ctx); err != nil {
			return errorData(userMessage(err))
		}
		if err := svc.UpdateChapterName(ctx, name); err != nil {
			return errorData(userMessage(err))
		}
		return renderSettings(svc.Snapshot(), c.theme(ctx, uv))
	}
}

func (c *AdminCommand) regenerateCode(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
	svc, err := uv.Settings()
	if err != nil {
		return errorData(userMessage(err))
	}
	if err := svc.Load(ctx); err != nil {
		return errorData(userMessage(err))
	}
	if _, err := svc.RegenerateAccessCode(ctx); err != nil {
		return errorData(userMessage(err))
	}
	return renderSettings(svc.Snapshot(), c.theme(ctx, uv))
}

// members loads the member list, runs action against it and shows the result
func (c *AdminCommand) members(action func(ctx context.Context, uv *UserViews) error) reply {
	return func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
		svc, err := uv.Members()
		if err != nil {
			return errorData(userMessage(err))
		}
		if err := svc.Load(ctx); err != nil {
			return errorData(userMessage(err))
		}
		actionErr := action(ctx, uv)
		data := renderMembers(svc.Snapshot(), c.theme(ctx, uv))
		if actionErr != nil {
			data.Content = "⚠️ " + userMessage(actionErr)
		}
		return data
	}
}

func (c *AdminCommand) moderation(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
	svc, err := uv.Moderation()
	if err != nil {
		return errorData(userMessage(err))
	}
	if err := svc.Load(ctx); err != nil {
		return errorData(userMessage(err))
	}
	snap := svc.Snapshot()
	return renderModeration(snap.Reviews, snap.Banner, snap.ActionErr, c.theme(ctx, uv))
}

// recommendations lists recommendations, deleting one first when id is set
func (c *AdminCommand) recommendations(id int) reply {
	return func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
		svc, err := uv.Recommendations()
		if err != nil {
			return errorData(userMessage(err))
		}
		var banner string
		if id != 0 {
			if err := svc.Delete(ctx, id); err != nil {
				return errorData(userMessage(err))
			}
			banner = "Recommendation deleted."
		}
		recs, err := svc.List(ctx)
		if err != nil {
			return errorData(userMessage(err))
		}
		data := renderRecommendations(recs, c.theme(ctx, uv))
		if banner != "" {
			data.Content = banner
		}
		return data
	}
}

func (c *AdminCommand) attendance(mealID int) reply {
	return func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
		svc, err := uv.Attendance()
		if err != nil {
			return errorData(userMessage(err))
		}
		if mealID != 0 {
			details, err := svc.Details(ctx, mealID)
			if err != nil {
				return errorData(userMessage(err))
			}
			return renderAttendanceDetails(details, c.theme(ctx, uv))
		}
		if err := svc.List(ctx); err != nil {
			return errorData(userMessage(err))
		}
		return renderAttendance(svc.Snapshot(), c.theme(ctx, uv))
	}
}
