package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
	"github.com/KirkDiggler/chapterplate/internal/services/account"
	"github.com/KirkDiggler/chapterplate/internal/services/menu"
	"github.com/KirkDiggler/chapterplate/internal/services/recommendation"
	"github.com/KirkDiggler/chapterplate/internal/session"
	"github.com/KirkDiggler/chapterplate/internal/widgets"
	"github.com/bwmarrin/discordgo"
)

// DefaultTimeout bounds the server calls made for one interaction
const DefaultTimeout = 10 * time.Second

// interactions holds what every command, button and modal handler shares
type interactions struct {
	views    *Views
	clock    clock.Clock
	location *time.Location
	timeout  time.Duration
	logger   *slog.Logger
}

// reply is the body of a deferred interaction
type reply func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData

// deferred acknowledges the interaction then fills in the reply
func (h *interactions) deferred(s *discordgo.Session, i *discordgo.InteractionCreate, update bool, fn reply) error {
	var err error
	if update {
		err = DeferUpdate(s, i)
	} else {
		err = DeferEphemeral(s, i)
	}
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	uv, err := h.userViews(ctx, i)
	if err != nil {
		return EditResponse(s, i, errorData(userMessage(err)))
	}
	return EditResponse(s, i, fn(ctx, uv))
}

func (h *interactions) userViews(ctx context.Context, i *discordgo.InteractionCreate) (*UserViews, error) {
	u := interactionUser(i)
	if u == nil {
		return nil, ErrNoUser
	}
	return h.views.For(ctx, u.ID)
}

func (h *interactions) theme(ctx context.Context, uv *UserViews) models.Theme {
	theme, err := uv.Account().Theme(ctx)
	if err != nil {
		h.logger.Warn("failed to read theme", "principal", uv.Session().Principal(), "error", err)
		return models.ThemeLight
	}
	return theme
}

// userMessage is what the user is told when an interaction fails
func userMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrNotLoggedIn):
		return "You need to log in first. Use `/meals login`."
	case errors.Is(err, session.ErrForbidden):
		return "You don't have permission to do that."
	case errors.Is(err, ErrNoUser):
		return "Could not tell who you are."
	}
	return api.UserMessage(err, "")
}

// menuView returns the listing's view, loading it when it has not been
func (h *interactions) menuView(ctx context.Context, uv *UserViews, listing menu.Listing) (menu.Service, error) {
	svc, err := uv.Menu(listing)
	if err != nil {
		return nil, err
	}
	if needsLoad(svc.Snapshot().Status) {
		// a failed load is kept in the snapshot for the renderer
		if err := svc.Load(ctx); err != nil {
			h.logger.Warn("failed to load menu", "listing", listing, "error", err)
		}
	}
	return svc, nil
}

func (h *interactions) renderMenuDay(ctx context.Context, uv *UserViews, svc menu.Service, listing menu.Listing, day int) *discordgo.InteractionResponseData {
	return renderMenu(&menuPage{
		Listing:  listing,
		Snapshot: svc.Snapshot(),
		Day:      day,
		Viewer:   uv.Session().User(),
		Now:      h.clock.Now(),
		Location: h.location,
		Theme:    h.theme(ctx, uv),
	})
}

func needsLoad(status resource.Status) bool {
	return status == resource.StatusIdle || status == resource.StatusFailed
}

// afterMenuAction redraws the meal's day. Errors raised before any request
// was made are not in the snapshot, so they are shown here.
func (h *interactions) afterMenuAction(ctx context.Context, uv *UserViews, svc menu.Service, id customID, err error) *discordgo.InteractionResponseData {
	data := h.renderMenuDay(ctx, uv, svc, id.Listing, dayOf(svc.Snapshot(), id.N))
	if err != nil {
		h.logger.Info("meal action failed", "action", id.Action, "meal_id", id.N, "error", err)
		data.Content = "⚠️ " + userMessage(err)
	}
	return data
}

// dayOf finds the grouped day holding the meal
func dayOf(snap *menu.Snapshot, mealID int) int {
	for d, day := range snap.Days {
		for _, m := range day.Slots() {
			if m.ID == mealID {
				return d
			}
		}
	}
	return 0
}

// todayIndex opens the week on today, or the first day after it
func todayIndex(snap *menu.Snapshot, now time.Time, loc *time.Location) int {
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for idx, day := range snap.Days {
		if !day.Date.Before(today) {
			return idx
		}
	}
	return 0
}

// HandleComponent routes button clicks
func (h *interactions) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	id, err := parseCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		return err
	}

	switch id.Scope {
	case scopeMenu:
		return h.handleMenuButton(s, i, id)
	case scopeLate:
		return h.handleLatePlateButton(s, i, id)
	case scopeReview:
		return h.handleModerationButton(s, i, id)
	case scopePresets:
		return h.deferred(s, i, true, h.applyPresets)
	case scopeSettings:
		return h.deferred(s, i, true, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			svc, err := uv.Settings()
			if err != nil {
				return errorData(userMessage(err))
			}
			svc.ToggleReveal()
			return renderSettings(svc.Snapshot(), h.theme(ctx, uv))
		})
	}
	return fmt.Errorf("%w: %s", ErrUnknownComponent, id)
}

func (h *interactions) handleMenuButton(s *discordgo.Session, i *discordgo.InteractionCreate, id customID) error {
	switch id.Action {
	case actionPage:
		return h.deferred(s, i, true, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			svc, err := h.menuView(ctx, uv, id.Listing)
			if err != nil {
				return errorData(userMessage(err))
			}
			return h.renderMenuDay(ctx, uv, svc, id.Listing, id.N)
		})

	case actionAttend, actionConfirm:
		return h.deferred(s, i, true, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			svc, err := h.menuView(ctx, uv, id.Listing)
			if err != nil {
				return errorData(userMessage(err))
			}
			if id.Action == actionAttend {
				_, err = svc.ToggleAttendance(ctx, &menu.ToggleAttendanceInput{MealID: id.N})
			} else {
				err = svc.ConfirmAttendance(ctx, &menu.ConfirmAttendanceInput{MealID: id.N})
			}
			return h.afterMenuAction(ctx, uv, svc, id, err)
		})

	case actionLatePlate, actionReview:
		// modals must be the first response, so the meal is looked up first
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		uv, err := h.userViews(ctx, i)
		if err != nil {
			return RespondWithError(s, i, userMessage(err))
		}
		svc, err := h.menuView(ctx, uv, id.Listing)
		if err != nil {
			return RespondWithError(s, i, userMessage(err))
		}
		view, err := svc.Meal(id.N)
		if err != nil {
			return RespondWithError(s, i, "That meal is no longer on the menu.")
		}

		if id.Action == actionReview {
			return h.openDialog(s, i, uv, reviewModal(id.Listing, &view.Meal))
		}
		if !view.Meal.HasLatePlate {
			return h.openDialog(s, i, uv, latePlateModal(id.Listing, &view.Meal))
		}

		return h.deferred(s, i, true, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			err := svc.CancelLatePlate(ctx, &menu.CancelLatePlateInput{MealID: id.N})
			return h.afterMenuAction(ctx, uv, svc, id, err)
		})
	}
	return fmt.Errorf("%w: %s", ErrUnknownComponent, id)
}

func (h *interactions) handleLatePlateButton(s *discordgo.Session, i *discordgo.InteractionCreate, id customID) error {
	status := models.LatePlateApproved
	if id.Action == actionDeny {
		status = models.LatePlateDenied
	}
	return h.deferred(s, i, true, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
		svc, err := uv.LatePlates()
		if err != nil {
			return errorData(userMessage(err))
		}
		if needsLoad(svc.Snapshot().Status) {
			if err := svc.Load(ctx); err != nil {
				return errorData(userMessage(err))
			}
		}
		if err := svc.SetStatus(ctx, id.N, status); err != nil {
			h.logger.Info("late plate update failed", "late_plate_id", id.N, "error", err)
		}
		return renderLatePlates(svc.Snapshot(), h.theme(ctx, uv))
	})
}

func (h *interactions) handleModerationButton(s *discordgo.Session, i *discordgo.InteractionCreate, id customID) error {
	return h.deferred(s, i, true, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
		svc, err := uv.Moderation()
		if err != nil {
			return errorData(userMessage(err))
		}
		if needsLoad(svc.Snapshot().Status) {
			if err := svc.Load(ctx); err != nil {
				return errorData(userMessage(err))
			}
		}

		if id.Action == actionDelete {
			err = svc.Delete(ctx, id.N)
		} else {
			err = svc.ToggleHidden(ctx, id.N)
		}
		if err != nil {
			h.logger.Info("moderation failed", "action", id.Action, "review_id", id.N, "error", err)
		}
		snap := svc.Snapshot()
		return renderModeration(snap.Reviews, snap.Banner, snap.ActionErr, h.theme(ctx, uv))
	})
}

func (h *interactions) applyPresets(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
	svc, err := uv.Presets()
	if err != nil {
		return errorData(userMessage(err))
	}
	if _, err := svc.Apply(ctx); err != nil {
		return errorData(userMessage(err))
	}
	if err := svc.Load(ctx); err != nil {
		h.logger.Warn("failed to reload presets", "error", err)
	}
	return renderPresets(svc.Snapshot(), h.theme(ctx, uv))
}

func (h *interactions) openDialog(s *discordgo.Session, i *discordgo.InteractionCreate, uv *UserViews, data *discordgo.InteractionResponseData) error {
	uv.OpenDialog(data.Title)
	return RespondWithModal(s, i, data)
}

func (h *interactions) closeDialog(uv *UserViews, id customID) {
	title, ok := uv.CloseDialog()
	if !ok {
		h.logger.Debug("modal submitted without a recorded dialog", "custom_id", id.String())
		return
	}
	h.logger.Debug("modal submitted", "title", title)
}

// HandleModal routes modal submissions
func (h *interactions) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	id, err := parseCustomID(data.CustomID)
	if err != nil {
		return err
	}
	values := modalValues(data)

	switch id.Action {
	case actionLogin:
		return h.deferred(s, i, false, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			out, err := uv.Account().Login(ctx, &account.LoginInput{
				Email:    values[inputEmail],
				Password: values[inputPassword],
			})
			if err != nil {
				return errorData(userMessage(err))
			}
			return messageData(fmt.Sprintf("Welcome back, %s!", out.User.DisplayName()))
		})

	case actionRegister:
		return h.deferred(s, i, false, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			out, err := uv.Account().Register(ctx, &account.RegisterInput{
				Email:      values[inputEmail],
				Password:   values[inputPassword],
				FirstName:  values[inputFirstName],
				LastName:   values[inputLastName],
				AccessCode: values[inputAccessCode],
			})
			if err != nil {
				return errorData(userMessage(err))
			}
			return messageData(out.Message)
		})

	case actionReset:
		return h.deferred(s, i, false, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			out, err := uv.Account().ResetPassword(ctx, &account.ResetPasswordInput{
				Token:    values["token"],
				Password: values[inputPassword],
				Confirm:  values["confirm"],
			})
			if err != nil {
				return errorData(userMessage(err))
			}
			return messageData(out.Message)
		})

	case actionProfile:
		return h.deferred(s, i, false, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			out, err := uv.Account().UpdateProfile(ctx, &account.UpdateProfileInput{
				FirstName:       values[inputFirstName],
				LastName:        values[inputLastName],
				CurrentPassword: values["current_password"],
				NewPassword:     values["new_password"],
				ConfirmPassword: values["confirm"],
			})
			if err != nil {
				return errorData(userMessage(err))
			}
			return messageData(out.Message)
		})

	case actionRecommend:
		return h.deferred(s, i, false, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			svc, err := uv.Recommendations()
			if err != nil {
				return errorData(userMessage(err))
			}
			err = svc.Submit(ctx, &recommendation.SubmitInput{
				MealName:    values[inputMealName],
				Description: values[inputDesc],
				Link:        values[inputLink],
			})
			if err != nil {
				return errorData(userMessage(err))
			}
			return messageData("Thanks! Your recommendation was sent to the kitchen.")
		})

	case actionReview:
		picker := widgets.NewStarPicker(0)
		rating, err := strconv.ParseFloat(values[inputRating], 64)
		if err != nil || !picker.Set(rating) {
			return RespondWithError(s, i, "Rating must be a number from 1 to 5 in half steps.")
		}
		return h.deferred(s, i, true, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			svc, err := h.menuView(ctx, uv, id.Listing)
			if err != nil {
				return errorData(userMessage(err))
			}
			h.closeDialog(uv, id)
			_, err = svc.SubmitReview(ctx, &menu.SubmitReviewInput{
				MealID:  id.N,
				Rating:  picker.Value(),
				Comment: values[inputComment],
			})
			return h.afterMenuAction(ctx, uv, svc, id, err)
		})

	case actionLatePlate:
		return h.deferred(s, i, true, func(ctx context.Context, uv *UserViews) *discordgo.InteractionResponseData {
			svc, err := h.menuView(ctx, uv, id.Listing)
			if err != nil {
				return errorData(userMessage(err))
			}
			h.closeDialog(uv, id)
			_, err = svc.RequestLatePlate(ctx, &menu.RequestLatePlateInput{
				MealID:     id.N,
				Notes:      values[inputNotes],
				PickupTime: values[inputPickup],
			})
			return h.afterMenuAction(ctx, uv, svc, id, err)
		})
	}
	return fmt.Errorf("%w: %s", ErrUnknownComponent, id)
}
