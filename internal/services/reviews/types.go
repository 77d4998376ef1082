package reviews

import (
	"log/slog"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
)

const (
	DefaultFeedMeals            = 7
	DefaultReviewsPerMeal       = 3
	DefaultMinReviewsForAverage = 3
)

// Config holds configuration for the review feed
type Config struct {
	Requester api.Requester
	Clock     clock.Clock
	Logger    *slog.Logger

	// FeedMeals is how many menu meals are looked at
	FeedMeals int

	// ReviewsPerMeal caps the reviews shown for each meal
	ReviewsPerMeal int

	// MinReviewsForAverage hides a meal's average until it has this many
	// visible reviews
	MinReviewsForAverage int
}

// Item is one review in the feed alongside the meal it is about
type Item struct {
	Meal   models.Meal
	Review models.Review
}

// MealSummary is the rating summary of one meal in the feed
type MealSummary struct {
	Meal        models.Meal
	ReviewCount int

	// Average is only set once the meal has enough reviews
	Average    float64
	HasAverage bool
}

// Feed is what the view renders
type Feed struct {
	Items     []Item
	Summaries []MealSummary
}

type Snapshot struct {
	Status resource.Status
	Feed   Feed
	Err    error
}
