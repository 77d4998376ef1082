package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/services/account"
	"github.com/KirkDiggler/chapterplate/internal/services/menu"
	"github.com/KirkDiggler/chapterplate/internal/services/presets"
	"github.com/KirkDiggler/chapterplate/internal/services/recommendation"
	"github.com/KirkDiggler/chapterplate/internal/services/reviews"
	"github.com/KirkDiggler/chapterplate/internal/widgets"
	"github.com/spf13/cobra"
)

// ErrBadMealID is returned for a meal argument that is not a number
var ErrBadMealID = errors.New("meal ID must be a number")

func mealID(args []string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || id <= 0 {
		return 0, ErrBadMealID
	}
	return id, nil
}

// readSecret prompts for a value that was not given as a flag
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func loginCmd(opts *options) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to your chapter account",
		Args:  cobra.NoArgs,
		RunE: run(opts, func(ctx context.Context, a *app, _ []string) error {
			if password == "" {
				var err error
				if password, err = readSecret("Password: "); err != nil {
					return err
				}
			}
			out, err := a.account.Login(ctx, &account.LoginInput{Email: email, Password: password})
			if err != nil {
				return failure(err)
			}
			fmt.Fprintf(a.out, "Welcome back, %s!\n", out.User.DisplayName())
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Password; prompted for when empty")
	return cmd
}

func logoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved login",
		Args:  cobra.NoArgs,
		RunE: run(opts, func(ctx context.Context, a *app, _ []string) error {
			if err := a.account.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		}),
	}
}

func whoamiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who you are logged in as",
		Args:  cobra.NoArgs,
		RunE: run(opts, func(_ context.Context, a *app, _ []string) error {
			printUser(a.out, a.store.User())
			return nil
		}),
	}
}

func registerCmd(opts *options) *cobra.Command {
	in := &account.RegisterInput{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Join your chapter with its access code",
		Args:  cobra.NoArgs,
		RunE: run(opts, func(ctx context.Context, a *app, _ []string) error {
			if in.Password == "" {
				var err error
				if in.Password, err = readSecret("Password: "); err != nil {
					return err
				}
			}
			out, err := a.account.Register(ctx, in)
			if err != nil {
				return failure(err)
			}
			fmt.Fprintln(a.out, out.Message)
			return nil
		}),
	}
	cmd.Flags().StringVar(&in.AccessCode, "access-code", "", "Chapter access code")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password; prompted for when empty")
	return cmd
}

func listingFor(name string) menu.Listing {
	switch name {
	case "today":
		return menu.ListingToday
	case "past":
		return menu.ListingPast
	default:
		return menu.ListingWeek
	}
}

// loadMenu opens and loads a listing view
func (a *app) loadMenu(ctx context.Context, listing menu.Listing) (menu.Service, error) {
	svc, err := menu.New(&menu.Config{
		Requester: a.store.Client(),
		Listing:   listing,
		Clock:     a.clock,
		Location:  a.location,
		Logger:    a.logger,
	})
	if err != nil {
		return nil, err
	}
	if err := svc.Load(ctx); err != nil {
		svc.Close()
		return nil, failure(err)
	}
	return svc, nil
}

func listingCmd(opts *options, name, short string) *cobra.Command {
	listing := listingFor(name)
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: run(opts, func(ctx context.Context, a *app, _ []string) error {
			svc, err := a.loadMenu(ctx, listing)
			if err != nil {
				return err
			}
			defer svc.Close()

			snap := svc.Snapshot()
			if len(snap.Days) == 0 {
				fmt.Fprintln(a.out, "No meals to show.")
				return nil
			}
			printMenu(a.out, a.palette(ctx), snap, a.store.User(), a.clock.Now(), a.location)
			return nil
		}),
	}
}

func attendCmd(opts *options) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "attend MEAL_ID",
		Short: "Toggle your attendance, or confirm you ate a past meal",
		Args:  cobra.ExactArgs(1),
		RunE: run(opts, func(ctx context.Context, a *app, args []string) error {
			id, err := mealID(args)
			if err != nil {
				return err
			}

			listing := menu.ListingWeek
			if confirm {
				listing = menu.ListingPast
			}
			svc, err := a.loadMenu(ctx, listing)
			if err != nil {
				return err
			}
			defer svc.Close()

			if confirm {
				if err := svc.ConfirmAttendance(ctx, &menu.ConfirmAttendanceInput{MealID: id}); err != nil {
					return failure(err)
				}
				fmt.Fprintln(a.out, "Attendance confirmed.")
				return nil
			}

			out, err := svc.ToggleAttendance(ctx, &menu.ToggleAttendanceInput{MealID: id})
			if err != nil {
				return failure(err)
			}
			if out.LatePlateCancelled {
				fmt.Fprintln(a.out, "Your late plate was cancelled.")
			}
			if out.Meal.IsAttending {
				fmt.Fprintf(a.out, "You are attending %s.\n", out.Meal.DishName)
			} else {
				fmt.Fprintf(a.out, "You are no longer attending %s.\n", out.Meal.DishName)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm you ate a meal that has been served")
	return cmd
}

func latePlateCmd(opts *options) *cobra.Command {
	var notes, pickup string
	var cancel bool
	cmd := &cobra.Command{
		Use:   "late-plate MEAL_ID",
		Short: "Ask for a plate to be kept aside",
		Args:  cobra.ExactArgs(1),
		RunE: run(opts, func(ctx context.Context, a *app, args []string) error {
			id, err := mealID(args)
			if err != nil {
				return err
			}
			svc, err := a.loadMenu(ctx, menu.ListingWeek)
			if err != nil {
				return err
			}
			defer svc.Close()

			if cancel {
				if err := svc.CancelLatePlate(ctx, &menu.CancelLatePlateInput{MealID: id}); err != nil {
					return failure(err)
				}
				fmt.Fprintln(a.out, "Late plate cancelled.")
				return nil
			}

			out, err := svc.RequestLatePlate(ctx, &menu.RequestLatePlateInput{
				MealID:     id,
				Notes:      notes,
				PickupTime: pickup,
			})
			if err != nil {
				return failure(err)
			}
			if out.AttendanceWithdrawn {
				fmt.Fprintln(a.out, "Your attendance was withdrawn.")
			}
			fmt.Fprintf(a.out, "Late plate requested for %s.\n", out.Meal.DishName)
			return nil
		}),
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the kitchen")
	cmd.Flags().StringVar(&pickup, "pickup", "", "Pickup time, HH:MM")
	cmd.Flags().BoolVar(&cancel, "cancel", false, "Cancel your late plate instead")
	return cmd
}

func reviewCmd(opts *options) *cobra.Command {
	var rating float64
	var comment string
	var remove bool
	cmd := &cobra.Command{
		Use:   "review MEAL_ID",
		Short: "Review a meal you ate, or edit your review",
		Args:  cobra.ExactArgs(1),
		RunE: run(opts, func(ctx context.Context, a *app, args []string) error {
			id, err := mealID(args)
			if err != nil {
				return err
			}
			svc, err := a.loadMenu(ctx, menu.ListingPast)
			if err != nil {
				return err
			}
			defer svc.Close()

			if remove {
				if err := svc.DeleteReview(ctx, &menu.DeleteReviewInput{MealID: id}); err != nil {
					return failure(err)
				}
				fmt.Fprintln(a.out, "Review deleted.")
				return nil
			}

			picker := widgets.NewStarPicker(0)
			if !picker.Set(rating) {
				return fmt.Errorf("rating must be between %.0f and %.0f in half steps", models.MinRating, models.MaxRating)
			}
			view, err := svc.Meal(id)
			if err != nil {
				return err
			}
			label := widgets.ReviewSubmitLabel(&view.Meal)

			out, err := svc.SubmitReview(ctx, &menu.SubmitReviewInput{
				MealID:  id,
				Rating:  picker.Value(),
				Comment: comment,
			})
			if err != nil {
				return failure(err)
			}
			fmt.Fprintf(a.out, "%s: %s %s\n", label, view.Meal.DishName, widgets.Stars(out.Review.Rating))
			return nil
		}),
	}
	cmd.Flags().Float64Var(&rating, "rating", 0, "Rating from 1 to 5, halves allowed")
	cmd.Flags().StringVar(&comment, "comment", "", "What you thought")
	cmd.Flags().BoolVar(&remove, "delete", false, "Delete your review instead")
	return cmd
}

func reviewsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reviews",
		Short: "Recent reviews of the latest meals",
		Args:  cobra.NoArgs,
		RunE: run(opts, func(ctx context.Context, a *app, _ []string) error {
			svc, err := reviews.New(&reviews.Config{
				Requester: a.store.Client(),
				Clock:     a.clock,
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Load(ctx); err != nil {
				return failure(err)
			}
			printReviewFeed(a.out, a.palette(ctx), svc.Snapshot())
			return nil
		}),
	}
}

func (a *app) presets(ctx context.Context) (presets.Service, error) {
	svc, err := presets.New(&presets.Config{
		Requester: a.store.Client(),
		Clock:     a.clock,
		Logger:    a.logger,
	})
	if err != nil {
		return nil, err
	}
	if err := svc.Load(ctx); err != nil {
		svc.Close()
		return nil, failure(err)
	}
	return svc, nil
}

func presetsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Weekly attendance presets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show your presets",
		Args:  cobra.NoArgs,
		RunE: run(opts, func(ctx context.Context, a *app, _ []string) error {
			svc, err := a.presets(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()
			printPresets(a.out, a.palette(ctx), svc.Snapshot())
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Apply your presets to upcoming meals",
		Args:  cobra.NoArgs,
		RunE: run(opts, func(ctx context.Context, a *app, _ []string) error {
			svc, err := a.presets(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()
			out, err := svc.Apply(ctx)
			if err != nil {
				return failure(err)
			}
			fmt.Fprintln(a.out, out.Message)
			return nil
		}),
	})

	cmd.AddCommand(presetSetCmd(opts), presetDeleteCmd(opts))
	return cmd
}

// dayIndex maps a day name to the Monday-based preset index
func dayIndex(name string) (int, error) {
	for i, day := range models.PresetDayNames {
		if strings.EqualFold(day, name) || strings.EqualFold(day[:3], name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", name)
}

func mealTypeOf(name string) (models.MealType, error) {
	for _, t := range models.MealTypes {
		if strings.EqualFold(string(t), name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown meal %q; use lunch or dinner", name)
}

func presetSetCmd(opts *options) *cobra.Command {
	var day, meal, notes, pickup string
	var latePlate, notAttending, disabled bool
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or change the preset for a day and meal",
		Args:  cobra.NoArgs,
		RunE: run(opts, func(ctx context.Context, a *app, _ []string) error {
			dayOfWeek, err := dayIndex(day)
			if err != nil {
				return err
			}
			mealType, err := mealTypeOf(meal)
			if err != nil {
				return err
			}

			svc, err := a.presets(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			var existing *models.WeeklyPreset
			for _, d := range svc.Snapshot().Grid {
				for _, slot := range d.Slots {
					if d.DayOfWeek == dayOfWeek && slot.MealType == mealType {
						existing = slot.Preset
					}
				}
			}

			form := widgets.NewPresetForm(existing)
			form.DayOfWeek = dayOfWeek
			form.MealType = mealType
			form.Enabled = !disabled
			switch {
			case latePlate:
				form.SetLatePlate(true)
				form.Notes = notes
				form.PickupTime = pickup
			case notAttending:
				form.SetAttending(false)
				form.SetLatePlate(false)
			default:
				form.SetAttending(true)
			}

			out, err := svc.Save(ctx, form.Input())
			if err != nil {
				return failure(err)
			}
			verb := "updated"
			if out.Created {
				verb = "created"
			}
			fmt.Fprintf(a.out, "Preset %s: %s %s, %s.\n", verb, models.PresetDayNames[dayOfWeek], mealType, presetSummary(&out.Preset))
			return nil
		}),
	}
	cmd.Flags().StringVar(&day, "day", "Monday", "Day of the week")
	cmd.Flags().StringVar(&meal, "meal", "dinner", "lunch or dinner")
	cmd.Flags().BoolVar(&latePlate, "late-plate", false, "Request a late plate instead of attending")
	cmd.Flags().BoolVar(&notAttending, "not-attending", false, "Neither attend nor request a late plate")
	cmd.Flags().StringVar(&notes, "notes", "", "Late plate notes")
	cmd.Flags().StringVar(&pickup, "pickup", "", "Late plate pickup time, HH:MM")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Keep the preset but skip it when applying")
	cmd.MarkFlagsMutuallyExclusive("late-plate", "not-attending")
	return cmd
}

func presetDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PRESET_ID",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: run(opts, func(ctx context.Context, a *app, args []string) error {
			id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
			if err != nil {
				return fmt.Errorf("preset ID must be a number")
			}
			svc, err := a.presets(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()
			if err := svc.Delete(ctx, &presets.DeleteInput{ID: id}); err != nil {
				return failure(err)
			}
			fmt.Fprintln(a.out, "Preset deleted.")
			return nil
		}),
	}
}

func themeCmd(opts *options) *cobra.Command {
	var toggle bool
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the light/dark theme",
		Args:  cobra.NoArgs,
		RunE: run(opts, func(ctx context.Context, a *app, _ []string) error {
			theme := a.theme(ctx)
			if toggle {
				var err error
				if theme, err = a.account.ToggleTheme(ctx); err != nil {
					return err
				}
			}
			fmt.Fprintln(a.out, colors(theme).Heading("Theme: "+string(theme)))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&toggle, "toggle", false, "Switch to the other theme")
	return cmd
}

func recommendCmd(opts *options) *cobra.Command {
	in := &recommendation.SubmitInput{}
	cmd := &cobra.Command{
		Use:   "recommend MEAL_NAME",
		Short: "Recommend a meal to the kitchen",
		Args:  cobra.ExactArgs(1),
		RunE: run(opts, func(ctx context.Context, a *app, args []string) error {
			svc, err := recommendation.New(&recommendation.Config{
				Requester: a.store.Client(),
				Viewer:    a.store,
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}
			in.MealName = args[0]
			if err := svc.Submit(ctx, in); err != nil {
				return failure(err)
			}
			fmt.Fprintln(a.out, "Thanks! Your recommendation was sent to the kitchen.")
			return nil
		}),
	}
	cmd.Flags().StringVar(&in.Description, "description", "", "Why we should make it")
	cmd.Flags().StringVar(&in.Link, "link", "", "Recipe link")
	return cmd
}
