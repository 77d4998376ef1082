package members

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

type MembersServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockRequester *mocks.MockRequester
	viewer        *session.StaticViewer
	service       *service
	ctx           context.Context
}

func (s *MembersServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRequester = mocks.NewMockRequester(s.mockCtrl)
	s.viewer = &session.StaticViewer{U: &models.User{ID: 1, IsAdmin: true}}
	s.ctx = context.Background()

	svc, err := New(&Config{Requester: s.mockRequester, Viewer: s.viewer})
	s.Require().NoError(err)
	s.service = svc

	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Path: "/api/admin/users"}, gomock.Any()).
		DoAndReturn(apitest.Reply(map[string]any{"users": []models.User{
			{ID: 1, Email: "me@example.com", IsAdmin: true},
			{ID: 2, Email: "pat@example.com"},
		}}))
	s.Require().NoError(s.service.Load(s.ctx))
}

func (s *MembersServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMembersServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MembersServiceTestSuite))
}

func (s *MembersServiceTestSuite) TestMembersAreRefused() {
	s.viewer.U = &models.User{ID: 2}

	s.ErrorIs(s.service.Load(s.ctx), session.ErrForbidden)
	s.ErrorIs(s.service.SetRole(s.ctx, 2, models.RoleAdmin), session.ErrForbidden)
	s.ErrorIs(s.service.Remove(s.ctx, 2), session.ErrForbidden)
}

func (s *MembersServiceTestSuite) TestSetRole() {
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{
			Method: http.MethodPut,
			Path:   "/api/admin/users/2/role",
			Body:   map[string]models.Role{"role": models.RoleAdmin},
		}, nil).
		Return(nil)

	s.Require().NoError(s.service.SetRole(s.ctx, 2, models.RoleAdmin))
	s.True(s.service.Snapshot().Users[1].IsAdmin)
}

func (s *MembersServiceTestSuite) TestSetRoleRejectsUnknownRole() {
	s.ErrorIs(s.service.SetRole(s.ctx, 2, "owner"), ErrInvalidRole)
}

func (s *MembersServiceTestSuite) TestRemove() {
	s.mockRequester.EXPECT().
		Do(gomock.Any(), &api.Request{Method: http.MethodDelete, Path: "/api/admin/users/2"}, nil).
		Return(nil)

	s.Require().NoError(s.service.Remove(s.ctx, 2))
	s.Len(s.service.Snapshot().Users, 1)
	s.Equal("Member removed.", s.service.Snapshot().Banner)
}

func (s *MembersServiceTestSuite) TestRemoveSelf() {
	s.ErrorIs(s.service.Remove(s.ctx, 1), ErrRemoveSelf)
}
