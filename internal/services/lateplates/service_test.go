package lateplates

import (
	"context"
	"net/http"
	"testing"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/api/mocks"
	"github.com/KirkDiggler/chapterplate/internal/apitest"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LatePlatesServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockRequester *mocks.MockRequester
	viewer        *session.StaticViewer
	service       *service
	ctx           context.Context
}

func (s *LatePlatesServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRequester = mocks.NewMockRequester(s.mockCtrl)
	s.viewer = &session.StaticViewer{U: &models.User{ID: 1, IsAdmin: true}}
	s.ctx = context.Background()

	svc, err := New(&Config{Requester: s.mockRequester, Viewer: s.viewer})
	s.Require().NoError(err)
	s.service = svc

	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Path: "/api/admin/late-plates/today"}, gomock.Any()).
		DoAndReturn(apitest.Reply(map[string]any{"late_plates": []models.LatePlate{
			{ID: 1, MealDishName: "Tacos", UserName: "Jo", Status: models.LatePlatePending},
			{ID: 2, MealDishName: "Chili", UserName: "Ana", Status: models.LatePlatePending},
			{ID: 3, UserName: "Sam", Status: models.LatePlateApproved},
			{ID: 4, MealDishName: "Tacos", UserName: "Lee", Status: models.LatePlateDenied},
		}}))
	s.Require().NoError(s.service.Load(s.ctx))
}

func (s *LatePlatesServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLatePlatesServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LatePlatesServiceTestSuite))
}

func (s *LatePlatesServiceTestSuite) TestGroups() {
	groups := s.service.Snapshot().Groups

	s.Require().Len(groups, 3)
	s.Equal("Chili", groups[0].DishName)
	s.Equal("Tacos", groups[1].DishName)
	s.Len(groups[1].LatePlates, 2)
	s.Equal(UnknownMeal, groups[2].DishName)
}

func (s *LatePlatesServiceTestSuite) TestSetStatus() {
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{
			Method: http.MethodPut,
			Path:   "/api/admin/late-plates/1/status",
			Body:   map[string]models.LatePlateStatus{"status": models.LatePlateApproved},
		}, nil).
		Return(nil)

	s.Require().NoError(s.service.SetStatus(s.ctx, 1, models.LatePlateApproved))

	snap := s.service.Snapshot()
	s.Equal(models.LatePlateApproved, snap.LatePlates[0].Status)
	s.Equal("Late plate approved.", snap.Banner)
}

func (s *LatePlatesServiceTestSuite) TestSetStatusRejectsUnknown() {
	s.ErrorIs(s.service.SetStatus(s.ctx, 1, "eaten"), ErrInvalidStatus)
}

func (s *LatePlatesServiceTestSuite) TestPendingCount() {
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Path: "/api/admin/late-plates/pending-count"}, gomock.Any()).
		DoAndReturn(apitest.Reply(map[string]int{"count": 2}))

	count, err := s.service.PendingCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *LatePlatesServiceTestSuite) TestMembersAreRefused() {
	s.viewer.U = &models.User{ID: 2}

	s.ErrorIs(s.service.Load(s.ctx), session.ErrForbidden)
	_, err := s.service.PendingCount(s.ctx)
	s.ErrorIs(err, session.ErrForbidden)
}

func TestGroupByDishEmpty(t *testing.T) {
	assert.Empty(t, GroupByDish(nil))
}
