package reviews

import (
	"context"
	"strconv"
	"testing"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/api/mocks"
	"github.com/KirkDiggler/chapterplate/internal/apitest"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReviewsServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockRequester *mocks.MockRequester
	service       *service
	ctx           context.Context
}

func (s *ReviewsServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRequester = mocks.NewMockRequester(s.mockCtrl)
	s.ctx = context.Background()

	svc, err := New(&Config{Requester: s.mockRequester})
	s.Require().NoError(err)
	s.service = svc
}

func TestReviewsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewsServiceTestSuite))
}

func (s *ReviewsServiceTestSuite) expectMenu(n int) {
	meals := make([]models.Meal, n)
	for i := range meals {
		meals[i] = models.Meal{ID: i + 1, DishName: "Dish", MealType: models.MealTypeDinner}
	}
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Path: "/api/menu"}, gomock.Any()).
		DoAndReturn(apitest.Reply(map[string]any{"meals": meals}))
}

func (s *ReviewsServiceTestSuite) expectReviews(mealID int, ratings ...float64) {
	reviews := make([]models.Review, len(ratings))
	for i, r := range ratings {
		reviews[i] = models.Review{ID: mealID*100 + i, Rating: r}
	}
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Path: "/api/meals/" + strconv.Itoa(mealID) + "/reviews"}, gomock.Any()).
		DoAndReturn(apitest.Reply(map[string]any{"reviews": reviews}))
}

func (s *ReviewsServiceTestSuite) TestFeedLimitsMealsAndReviews() {
	s.expectMenu(9)
	for id := 1; id <= 7; id++ {
		s.expectReviews(id, 5, 4, 3, 2)
	}

	s.Require().NoError(s.service.Load(s.ctx))

	snap := s.service.Snapshot()
	s.Equal(resource.StatusReady, snap.Status)
	s.Len(snap.Feed.Items, 21)
	s.Len(snap.Feed.Summaries, 7)
	s.Equal(4, snap.Feed.Summaries[0].ReviewCount)
	s.True(snap.Feed.Summaries[0].HasAverage)
	s.Equal(3.5, snap.Feed.Summaries[0].Average)
}

func (s *ReviewsServiceTestSuite) TestFailedMealIsSkipped() {
	s.expectMenu(3)
	s.expectReviews(1, 4)
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Path: "/api/meals/2/reviews"}, gomock.Any()).
		Return(&api.Error{Status: 404, Message: "Meal not found."})
	s.expectReviews(3, 5, 5)

	s.Require().NoError(s.service.Load(s.ctx))

	snap := s.service.Snapshot()
	s.Len(snap.Feed.Items, 3)
	s.Len(snap.Feed.Summaries, 2)
	s.False(snap.Feed.Summaries[1].HasAverage)
}

func (s *ReviewsServiceTestSuite) TestMenuFailureFailsFeed() {
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Path: "/api/menu"}, gomock.Any()).
		Return(&api.Error{Status: 500, Message: "Failed to fetch meals."})

	s.Error(s.service.Load(s.ctx))
	s.Equal(resource.StatusFailed, s.service.Snapshot().Status)
}

func (s *ReviewsServiceTestSuite) TestAverageNeedsMinimum() {
	reviews := []models.Review{{Rating: 5}, {Rating: 4}, {Rating: 1, IsHidden: true}}

	_, ok := Average(reviews, 3)
	s.False(ok)

	avg, ok := Average(reviews, 2)
	s.True(ok)
	s.Equal(4.5, avg)

	_, ok = Average(nil, 0)
	s.False(ok)
}

func (s *ReviewsServiceTestSuite) TestVisibleDropsHidden() {
	out := Visible([]models.Review{{ID: 1}, {ID: 2, IsHidden: true}})
	s.Len(out, 1)
	s.Equal(1, out[0].ID)
}
