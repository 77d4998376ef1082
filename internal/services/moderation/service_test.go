package moderation

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/api/mocks"
	"github.com/KirkDiggler/chapterplate/internal/apitest"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
	"github.com/KirkDiggler/chapterplate/internal/session"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ModerationServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockRequester *mocks.MockRequester
	viewer        *session.StaticViewer
	service       *service
	ctx           context.Context
}

func (s *ModerationServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRequester = mocks.NewMockRequester(s.mockCtrl)
	s.viewer = &session.StaticViewer{U: &models.User{ID: 1, IsAdmin: true, IsOwner: true}}
	s.ctx = context.Background()

	svc, err := New(&Config{Requester: s.mockRequester, Viewer: s.viewer})
	s.Require().NoError(err)
	s.service = svc

	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Path: "/api/admin/reviews"}, gomock.Any()).
		DoAndReturn(apitest.Reply(map[string]any{"reviews": []models.Review{
			{ID: 1, Rating: 2, Comment: "cold", User: &models.UserRef{ID: 4, Name: "Jo"}},
			{ID: 2, Rating: 5, IsHidden: true},
		}}))
	s.Require().NoError(s.service.Load(s.ctx))
}

func (s *ModerationServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestModerationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ModerationServiceTestSuite))
}

func (s *ModerationServiceTestSuite) TestLoad() {
	snap := s.service.Snapshot()
	s.Equal(resource.StatusReady, snap.Status)
	s.Len(snap.Reviews, 2)
	s.Equal("Jo", snap.Reviews[0].User.Name)
}

func (s *ModerationServiceTestSuite) TestAdminsAreRefused() {
	s.viewer.U = &models.User{ID: 3, IsAdmin: true}

	s.ErrorIs(s.service.Load(s.ctx), session.ErrForbidden)
	s.ErrorIs(s.service.ToggleHidden(s.ctx, 1), session.ErrForbidden)
	s.ErrorIs(s.service.Delete(s.ctx, 1), session.ErrForbidden)
}

func (s *ModerationServiceTestSuite) TestToggleHidden() {
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Method: http.MethodPut, Path: "/api/admin/reviews/1/hide"}, gomock.Any()).
		Return(nil)
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Method: http.MethodPut, Path: "/api/admin/reviews/2/hide"}, gomock.Any()).
		Return(nil)

	s.Require().NoError(s.service.ToggleHidden(s.ctx, 1))
	s.Equal("Review hidden.", s.service.Snapshot().Banner)
	s.Require().NoError(s.service.ToggleHidden(s.ctx, 2))

	snap := s.service.Snapshot()
	s.True(snap.Reviews[0].IsHidden)
	s.False(snap.Reviews[1].IsHidden)
	s.Equal("Review restored.", snap.Banner)
}

func (s *ModerationServiceTestSuite) TestToggleHiddenTrustsServerState() {
	s.mockRequester.EXPECT().
		Do(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(apitest.Reply(map[string]bool{"is_hidden": true}))

	s.Require().NoError(s.service.ToggleHidden(s.ctx, 2))
	s.True(s.service.Snapshot().Reviews[1].IsHidden)
}

func (s *ModerationServiceTestSuite) TestToggleUnknownReview() {
	s.ErrorIs(s.service.ToggleHidden(s.ctx, 99), ErrReviewNotFound)
}

func (s *ModerationServiceTestSuite) TestDelete() {
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Method: http.MethodDelete, Path: "/api/admin/reviews/1"}, nil).
		Return(nil)

	s.Require().NoError(s.service.Delete(s.ctx, 1))

	snap := s.service.Snapshot()
	s.Require().Len(snap.Reviews, 1)
	s.Equal(2, snap.Reviews[0].ID)
}

func (s *ModerationServiceTestSuite) TestDeleteFailureKeepsReview() {
	s.mockRequester.EXPECT().
		Do(gomock.Any(), gomock.Any(), nil).
		Return(errors.New("boom"))

	s.Error(s.service.Delete(s.ctx, 1))
	s.Len(s.service.Snapshot().Reviews, 2)
}
