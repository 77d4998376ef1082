package reviews

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
)

type service struct {
	requester api.Requester
	logger    *slog.Logger
	feedMeals int
	perMeal   int
	minAvg    int
	feed      *resource.Resource[Feed]
}

// New creates a review feed view
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Requester == nil {
		return nil, ErrNilRequester
	}

	s := &service{
		requester: cfg.Requester,
		logger:    cfg.Logger,
		feedMeals: cfg.FeedMeals,
		perMeal:   cfg.ReviewsPerMeal,
		minAvg:    cfg.MinReviewsForAverage,
		feed:      resource.New[Feed](&resource.Config{Clock: cfg.Clock}),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.feedMeals <= 0 {
		s.feedMeals = DefaultFeedMeals
	}
	if s.perMeal <= 0 {
		s.perMeal = DefaultReviewsPerMeal
	}
	if s.minAvg <= 0 {
		s.minAvg = DefaultMinReviewsForAverage
	}
	return s, nil
}

// Load fetches the menu and the latest reviews of its first meals
func (s *service) Load(ctx context.Context) error {
	return s.feed.Load(ctx, s.fetch)
}

func (s *service) fetch(ctx context.Context) (Feed, error) {
	var menu struct {
		Meals []models.Meal `json:"meals"`
	}
	if err := s.requester.Do(ctx, &api.Request{Path: "/api/menu"}, &menu); err != nil {
		return Feed{}, err
	}

	meals := menu.Meals
	if len(meals) > s.feedMeals {
		meals = meals[:s.feedMeals]
	}

	var feed Feed
	for _, meal := range meals {
		var resp struct {
			Reviews []models.Review `json:"reviews"`
		}
		err := s.requester.Do(ctx, &api.Request{
			Path: fmt.Sprintf("/api/meals/%d/reviews", meal.ID),
		}, &resp)
		if err != nil {
			if ctx.Err() != nil {
				return Feed{}, ctx.Err()
			}
			s.logger.Debug("skipping meal reviews", "meal_id", meal.ID, "error", err)
			continue
		}

		visible := Visible(resp.Reviews)
		avg, ok := Average(visible, s.minAvg)
		feed.Summaries = append(feed.Summaries, MealSummary{
			Meal:        meal,
			ReviewCount: len(visible),
			Average:     avg,
			HasAverage:  ok,
		})

		shown := visible
		if len(shown) > s.perMeal {
			shown = shown[:s.perMeal]
		}
		for _, r := range shown {
			feed.Items = append(feed.Items, Item{Meal: meal, Review: r})
		}
	}
	return feed, nil
}

// Snapshot returns the current feed
func (s *service) Snapshot() *Snapshot {
	snap := s.feed.Snapshot()
	return &Snapshot{
		Status: snap.Status,
		Feed:   snap.Data,
		Err:    snap.Err,
	}
}

// Close discards the view
func (s *service) Close() {
	s.feed.Close()
}

// Visible drops reviews an owner has hidden
func Visible(reviews []models.Review) []models.Review {
	out := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if !r.IsHidden {
			out = append(out, r)
		}
	}
	return out
}

// Average is the mean rating of visible reviews, reported only when there
// are at least min of them
func Average(reviews []models.Review, min int) (float64, bool) {
	var sum float64
	count := 0
	for _, r := range reviews {
		if r.IsHidden {
			continue
		}
		sum += r.Rating
		count++
	}
	if count == 0 || count < min {
		return 0, false
	}
	return sum / float64(count), true
}
