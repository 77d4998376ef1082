package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
)

type service struct {
	requester api.Requester
	listing   Listing
	path      string
	clock     clock.Clock
	location  *time.Location
	logger    *slog.Logger
	meals     *resource.Resource[[]models.Meal]
}

// New creates a menu view. Nothing is fetched until Load.
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Requester == nil {
		return nil, ErrNilRequester
	}

	listing := cfg.Listing
	if listing == "" {
		listing = ListingWeek
	}
	path, err := listing.Path()
	if err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New(cfg.Location)
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		requester: cfg.Requester,
		listing:   listing,
		path:      path,
		clock:     c,
		location:  loc,
		logger:    logger.With("listing", string(listing)),
		meals: resource.New[[]models.Meal](&resource.Config{
			Clock:     c,
			BannerTTL: cfg.BannerTTL,
		}),
	}, nil
}

type mealsResponse struct {
	Meals []models.Meal `json:"meals"`
}

// Load fetches the listing, replacing what was shown
func (s *service) Load(ctx context.Context) error {
	return s.meals.Load(ctx, func(ctx context.Context) ([]models.Meal, error) {
		var resp mealsResponse
		if err := s.requester.Do(ctx, &api.Request{Path: s.path}, &resp); err != nil {
			return nil, err
		}
		return resp.Meals, nil
	})
}

// Snapshot returns the current view state
func (s *service) Snapshot() *Snapshot {
	snap := s.meals.Snapshot()
	return &Snapshot{
		Status:    snap.Status,
		Meals:     snap.Data,
		Days:      GroupByDay(snap.Data, s.location),
		Err:       snap.Err,
		ActionErr: snap.ActionErr,
		Banner:    snap.Banner,
	}
}

// Meal returns the loaded meal with the given ID
func (s *service) Meal(id int) (*MealView, error) {
	meal, ok := findMeal(s.meals.Snapshot().Data, id)
	if !ok {
		return nil, ErrMealNotFound
	}
	return &MealView{
		Meal: meal,
		Past: s.isPast(&meal),
	}, nil
}

// Close discards the view; late results are dropped
func (s *service) Close() {
	s.meals.Close()
}

// ToggleAttendance flips attendance, cancelling a late plate first when needed
func (s *service) ToggleAttendance(ctx context.Context, input *ToggleAttendanceInput) (*ToggleAttendanceOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	meal, err := s.lookup(input.MealID)
	if err != nil {
		return nil, err
	}
	if s.isPast(&meal) {
		return nil, ErrMealInPast
	}

	attending := !meal.IsAttending
	cancelLatePlate := attending && meal.HasLatePlate
	partial := false

	err = s.meals.Mutate(ctx, &resource.Mutation[[]models.Meal]{
		Call: func(ctx context.Context) error {
			if cancelLatePlate {
				if err := s.deleteLatePlate(ctx, meal.ID); err != nil {
					return err
				}
			}
			if err := s.setAttendance(ctx, meal.ID, attending); err != nil {
				partial = cancelLatePlate
				return err
			}
			return nil
		},
		Patch: func(meals []models.Meal) []models.Meal {
			return patchMeal(meals, meal.ID, func(m *models.Meal) {
				if cancelLatePlate {
					clearLatePlate(m)
				}
				setAttending(m, attending)
			})
		},
		Banner: attendanceBanner(meal.DishName, attending),
	})
	if err != nil {
		s.reconcile(ctx, partial, err)
		return nil, err
	}

	updated, _ := s.lookup(meal.ID)
	return &ToggleAttendanceOutput{
		Meal:               updated,
		LatePlateCancelled: cancelLatePlate,
	}, nil
}

// RequestLatePlate asks for a plate, withdrawing attendance first when set
func (s *service) RequestLatePlate(ctx context.Context, input *RequestLatePlateInput) (*RequestLatePlateOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.PickupTime != "" && !models.ValidPickupTime(input.PickupTime) {
		return nil, ErrInvalidPickupTime
	}
	meal, err := s.lookup(input.MealID)
	if err != nil {
		return nil, err
	}
	if s.isPast(&meal) {
		return nil, ErrMealInPast
	}
	if meal.HasLatePlate {
		return nil, ErrLatePlateExists
	}

	withdraw := meal.IsAttending
	partial := false
	var created struct {
		LatePlateID int `json:"late_plate_id"`
	}

	err = s.meals.Mutate(ctx, &resource.Mutation[[]models.Meal]{
		Call: func(ctx context.Context) error {
			if withdraw {
				if err := s.setAttendance(ctx, meal.ID, false); err != nil {
					return err
				}
			}
			body := map[string]string{"notes": input.Notes}
			if input.PickupTime != "" {
				body["pickup_time"] = input.PickupTime
			}
			if err := s.requester.Do(ctx, &api.Request{
				Method: http.MethodPost,
				Path:   fmt.Sprintf("/api/meals/%d/late-plates", meal.ID),
				Body:   body,
			}, &created); err != nil {
				partial = withdraw
				return err
			}
			return nil
		},
		Patch: func(meals []models.Meal) []models.Meal {
			return patchMeal(meals, meal.ID, func(m *models.Meal) {
				if withdraw {
					setAttending(m, false)
				}
				m.HasLatePlate = true
				m.LatePlateID = created.LatePlateID
				m.LatePlateStatus = models.LatePlatePending
			})
		},
		Banner: fmt.Sprintf("Late plate requested for %s.", meal.DishName),
	})
	if err != nil {
		s.reconcile(ctx, partial, err)
		return nil, err
	}

	updated, _ := s.lookup(meal.ID)
	return &RequestLatePlateOutput{
		Meal:                updated,
		AttendanceWithdrawn: withdraw,
	}, nil
}

// CancelLatePlate withdraws the viewer's late plate
func (s *service) CancelLatePlate(ctx context.Context, input *CancelLatePlateInput) error {
	if input == nil {
		return ErrNilInput
	}
	meal, err := s.lookup(input.MealID)
	if err != nil {
		return err
	}
	if !meal.HasLatePlate {
		return ErrNoLatePlate
	}

	return s.meals.Mutate(ctx, &resource.Mutation[[]models.Meal]{
		Call: func(ctx context.Context) error {
			return s.deleteLatePlate(ctx, meal.ID)
		},
		Patch: func(meals []models.Meal) []models.Meal {
			return patchMeal(meals, meal.ID, clearLatePlate)
		},
		Banner: "Late plate cancelled.",
	})
}

// ConfirmAttendance records that the viewer ate a meal that has started
func (s *service) ConfirmAttendance(ctx context.Context, input *ConfirmAttendanceInput) error {
	if input == nil {
		return ErrNilInput
	}
	meal, err := s.lookup(input.MealID)
	if err != nil {
		return err
	}
	if meal.MealDate.After(s.clock.Now()) {
		return ErrMealNotStarted
	}
	if meal.HasLatePlate {
		return ErrLatePlateExists
	}

	return s.meals.Mutate(ctx, &resource.Mutation[[]models.Meal]{
		Call: func(ctx context.Context) error {
			return s.requester.Do(ctx, &api.Request{
				Method: http.MethodPost,
				Path:   fmt.Sprintf("/api/meals/%d/attendance/confirm", meal.ID),
			}, nil)
		},
		Patch: func(meals []models.Meal) []models.Meal {
			return patchMeal(meals, meal.ID, func(m *models.Meal) {
				m.AttendanceConfirmed = true
				setAttending(m, true)
			})
		},
		Banner: "Attendance confirmed.",
	})
}

// SubmitReview creates a review, or edits the viewer's existing one
func (s *service) SubmitReview(ctx context.Context, input *SubmitReviewInput) (*SubmitReviewOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if !models.ValidRating(input.Rating) {
		return nil, ErrInvalidRating
	}
	meal, err := s.lookup(input.MealID)
	if err != nil {
		return nil, err
	}
	if !s.isPast(&meal) {
		return nil, ErrMealNotPast
	}

	edit := meal.HasReview()
	review := models.Review{
		Rating:  input.Rating,
		Comment: input.Comment,
		MealID:  meal.ID,
	}
	body := map[string]any{"rating": input.Rating, "comment": input.Comment}

	var req *api.Request
	if edit {
		review.ID = meal.UserReview.ID
		req = &api.Request{
			Method: http.MethodPut,
			Path:   fmt.Sprintf("/api/meals/%d/reviews/%d", meal.ID, review.ID),
			Body:   body,
		}
	} else {
		req = &api.Request{
			Method: http.MethodPost,
			Path:   fmt.Sprintf("/api/meals/%d/reviews", meal.ID),
			Body:   body,
		}
	}

	banner := "Review submitted."
	if edit {
		banner = "Review updated."
	}

	err = s.meals.Mutate(ctx, &resource.Mutation[[]models.Meal]{
		Call: func(ctx context.Context) error {
			var created struct {
				ReviewID int `json:"review_id"`
			}
			if err := s.requester.Do(ctx, req, &created); err != nil {
				return err
			}
			if !edit {
				review.ID = created.ReviewID
			}
			return nil
		},
		Patch: func(meals []models.Meal) []models.Meal {
			return patchMeal(meals, meal.ID, func(m *models.Meal) {
				r := review
				m.UserReview = &r
			})
		},
		Banner: banner,
	})
	if err != nil {
		return nil, err
	}

	return &SubmitReviewOutput{
		Review: review,
		Edited: edit,
	}, nil
}

// DeleteReview removes the viewer's review
func (s *service) DeleteReview(ctx context.Context, input *DeleteReviewInput) error {
	if input == nil {
		return ErrNilInput
	}
	meal, err := s.lookup(input.MealID)
	if err != nil {
		return err
	}
	if !meal.HasReview() {
		return ErrNoReview
	}

	return s.meals.Mutate(ctx, &resource.Mutation[[]models.Meal]{
		Call: func(ctx context.Context) error {
			return s.requester.Do(ctx, &api.Request{
				Method: http.MethodDelete,
				Path:   fmt.Sprintf("/api/meals/%d/reviews/%d", meal.ID, meal.UserReview.ID),
			}, nil)
		},
		Patch: func(meals []models.Meal) []models.Meal {
			return patchMeal(meals, meal.ID, func(m *models.Meal) {
				m.UserReview = nil
			})
		},
		Banner: "Review deleted.",
	})
}

func (s *service) setAttendance(ctx context.Context, mealID int, attending bool) error {
	return s.requester.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/meals/%d/attendance", mealID),
		Body:   map[string]bool{"attending": attending},
	}, nil)
}

func (s *service) deleteLatePlate(ctx context.Context, mealID int) error {
	return s.requester.Do(ctx, &api.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/api/meals/%d/late-plates", mealID),
	}, nil)
}

// reconcile refetches after a two-step change failed halfway, since the
// server now differs from what is shown
func (s *service) reconcile(ctx context.Context, partial bool, cause error) {
	if !partial || errors.Is(cause, resource.ErrClosed) || api.IsUnauthorized(cause) {
		return
	}
	s.logger.Warn("two-step change failed halfway, reloading", "error", cause)
	if err := s.Load(ctx); err != nil {
		s.logger.Error("failed to reload after partial failure", "error", err)
	}
}

func (s *service) lookup(id int) (models.Meal, error) {
	meal, ok := findMeal(s.meals.Snapshot().Data, id)
	if !ok {
		return models.Meal{}, ErrMealNotFound
	}
	return meal, nil
}

func (s *service) isPast(m *models.Meal) bool {
	return IsPast(m, s.clock.Now())
}

// IsPast reports whether the meal's scheduled time is before now
func IsPast(m *models.Meal, now time.Time) bool {
	return m.MealDate.Before(now)
}

func findMeal(meals []models.Meal, id int) (models.Meal, bool) {
	for _, m := range meals {
		if m.ID == id {
			return m, true
		}
	}
	return models.Meal{}, false
}

// patchMeal returns a copy of meals with fn applied to the meal with id.
// The input slice is never modified so earlier snapshots stay valid.
func patchMeal(meals []models.Meal, id int, fn func(*models.Meal)) []models.Meal {
	out := make([]models.Meal, len(meals))
	copy(out, meals)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
		}
	}
	return out
}

func setAttending(m *models.Meal, attending bool) {
	if m.IsAttending == attending {
		return
	}
	m.IsAttending = attending
	if attending {
		m.AttendanceCount++
	} else if m.AttendanceCount > 0 {
		m.AttendanceCount--
	}
}

func clearLatePlate(m *models.Meal) {
	m.HasLatePlate = false
	m.LatePlateID = 0
	m.LatePlateStatus = ""
}

func attendanceBanner(dish string, attending bool) string {
	if attending {
		return fmt.Sprintf("You're in for %s.", dish)
	}
	return fmt.Sprintf("You're out for %s.", dish)
}
