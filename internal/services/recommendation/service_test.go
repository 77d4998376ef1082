package recommendation

import (
	"context"
	"net/http"
	"testing"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/api/mocks"
	"github.com/KirkDiggler/chapterplate/internal/apitest"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/session"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RecommendationServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockRequester *mocks.MockRequester
	viewer        *session.StaticViewer
	service       *service
	ctx           context.Context
}

func (s *RecommendationServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRequester = mocks.NewMockRequester(s.mockCtrl)
	s.viewer = &session.StaticViewer{U: &models.User{ID: 5}}
	s.ctx = context.Background()

	svc, err := New(&Config{Requester: s.mockRequester, Viewer: s.viewer})
	s.Require().NoError(err)
	s.service = svc
}

func (s *RecommendationServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRecommendationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecommendationServiceTestSuite))
}

func (s *RecommendationServiceTestSuite) TestSubmit() {
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{
			Method: http.MethodPost,
			Path:   "/api/recommendations",
			Body: map[string]string{
				"meal_name":   "Shakshuka",
				"description": "great for brunch",
				"link":        "https://example.com/shakshuka",
			},
		}, nil).
		Return(nil)

	err := s.service.Submit(s.ctx, &SubmitInput{
		MealName:    " Shakshuka ",
		Description: "great for brunch",
		Link:        "https://example.com/shakshuka",
	})
	s.NoError(err)
}

func (s *RecommendationServiceTestSuite) TestSubmitValidation() {
	s.ErrorIs(s.service.Submit(s.ctx, nil), ErrNilInput)
	s.ErrorIs(s.service.Submit(s.ctx, &SubmitInput{MealName: " "}), ErrMealNameRequired)
	s.ErrorIs(s.service.Submit(s.ctx, &SubmitInput{MealName: "Soup", Link: "javascript:alert(1)"}), ErrInvalidLink)

	s.viewer.U = nil
	s.ErrorIs(s.service.Submit(s.ctx, &SubmitInput{MealName: "Soup"}), session.ErrNotLoggedIn)
}

func (s *RecommendationServiceTestSuite) TestListIsStaffOnly() {
	_, err := s.service.List(s.ctx)
	s.ErrorIs(err, session.ErrForbidden)
	s.ErrorIs(s.service.Delete(s.ctx, 1), session.ErrForbidden)
}

func (s *RecommendationServiceTestSuite) TestListAndDelete() {
	s.viewer.U = &models.User{ID: 1, IsAdmin: true}

	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Path: "/api/admin/recommendations"}, gomock.Any()).
		DoAndReturn(apitest.Reply([]models.Recommendation{{ID: 3, MealName: "Pho"}}))
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Method: http.MethodDelete, Path: "/api/admin/recommendations/3"}, nil).
		Return(nil)

	recs, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(recs, 1)
	s.Equal("Pho", recs[0].MealName)

	s.NoError(s.service.Delete(s.ctx, 3))
}
