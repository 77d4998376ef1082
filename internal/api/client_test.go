package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/api/mocks"
	"github.com/KirkDiggler/chapterplate/internal/apitest"
	uuidMocks "github.com/KirkDiggler/chapterplate/internal/common/uuid/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ClientTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockAuth *mocks.MockAuthenticator
	mockUUID *uuidMocks.MockUUID
	server   *apitest.Server
	metrics  *api.Metrics
	client   *api.Client
	ctx      context.Context
}

func (s *ClientTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockAuth = mocks.NewMockAuthenticator(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockUUID.EXPECT().NewUUID().Return("test-request-id").AnyTimes()
	s.server = apitest.New(s.T())
	s.ctx = context.Background()

	metrics, err := api.NewMetrics(prometheus.NewRegistry())
	s.Require().NoError(err)
	s.metrics = metrics

	client, err := api.New(&api.Config{
		BaseURL:       s.server.URL + "/",
		Metrics:       metrics,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestNewRequiresBaseURL() {
	_, err := api.New(nil)
	s.ErrorIs(err, api.ErrNilConfig)

	_, err = api.New(&api.Config{})
	s.ErrorIs(err, api.ErrNoBaseURL)
}

func (s *ClientTestSuite) TestAnonymousRequestHasNoAuthorizationHeader() {
	s.server.Router.Post("/api/register", apitest.Respond(http.StatusCreated, map[string]string{"message": "ok"}))
	s.mockAuth.EXPECT().Token(gomock.Any()).Return("", nil)

	var out struct {
		Message string `json:"message"`
	}
	err := s.client.WithAuth(s.mockAuth).Do(s.ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/api/register",
		Body:   map[string]string{"email": "a@b.c"},
	}, &out)

	s.Require().NoError(err)
	s.Equal("ok", out.Message)
	last := s.server.Last()
	s.Empty(last.Authorization)
	s.Equal("application/json", last.ContentType)
	s.JSONEq(`{"email":"a@b.c"}`, string(last.Body))
}

func (s *ClientTestSuite) TestUnboundClientSendsNoToken() {
	s.server.Router.Get("/api/menu", apitest.Respond(http.StatusOK, []any{}))

	s.Require().NoError(s.client.Do(s.ctx, &api.Request{Path: "/api/menu"}, nil))
	s.Empty(s.server.Last().Authorization)
	s.Equal(http.MethodGet, s.server.Last().Method)
}

func (s *ClientTestSuite) TestBearerTokenAttached() {
	s.server.Router.Get("/api/me", apitest.Respond(http.StatusOK, map[string]any{"id": 7}))
	s.mockAuth.EXPECT().Token(gomock.Any()).Return("tok-123", nil)

	var out struct {
		ID int `json:"id"`
	}
	s.Require().NoError(s.client.WithAuth(s.mockAuth).Do(s.ctx, &api.Request{Path: "/api/me"}, &out))

	s.Equal(7, out.ID)
	s.Equal("Bearer tok-123", s.server.Last().Authorization)
	s.Equal("test-request-id", s.server.Last().RequestID)
}

func (s *ClientTestSuite) TestTokenReadFailureStopsRequest() {
	s.mockAuth.EXPECT().Token(gomock.Any()).Return("", errors.New("redis down"))

	err := s.client.WithAuth(s.mockAuth).Do(s.ctx, &api.Request{Path: "/api/me"}, nil)
	s.ErrorContains(err, "redis down")
	s.Empty(s.server.Requests())
}

func (s *ClientTestSuite) TestQueryEncoded() {
	s.server.Router.Get("/api/meals/search", apitest.Respond(http.StatusOK, []any{}))

	err := s.client.Do(s.ctx, &api.Request{
		Path:  "/api/meals/search",
		Query: url.Values{"q": []string{"mac and cheese"}},
	}, nil)
	s.Require().NoError(err)
	s.Equal("q=mac+and+cheese", s.server.Last().RawQuery)
}

func (s *ClientTestSuite) TestMultipartLeavesContentTypeToWriter() {
	s.server.Router.Post("/api/meals/bulk", func(w http.ResponseWriter, r *http.Request) {
		s.NoError(r.ParseMultipartForm(1 << 20))
		s.Equal(`[{"dish_name":"Tacos"}]`, r.FormValue("meals"))
		file, header, err := r.FormFile("image_0")
		if !s.NoError(err) {
			return
		}
		defer file.Close()
		s.Equal("tacos.jpg", header.Filename)
		apitest.WriteJSON(w, http.StatusCreated, map[string]any{"created": 1})
	})

	form := &api.Form{}
	form.AddField("meals", `[{"dish_name":"Tacos"}]`)
	form.AddFile(api.FormFile{Field: "image_0", Filename: "tacos.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")})

	err := s.client.Do(s.ctx, &api.Request{
		Method:    http.MethodPost,
		Path:      "/api/meals/bulk",
		Body:      map[string]string{"ignored": "true"},
		Multipart: form,
	}, nil)

	s.Require().NoError(err)
	s.True(strings.HasPrefix(s.server.Last().ContentType, "multipart/form-data; boundary="))
}

func (s *ClientTestSuite) TestServerErrorMessageSurfaced() {
	s.server.Router.Post("/api/meals/{id}/reviews", apitest.Respond(http.StatusConflict, map[string]string{"error": "You already reviewed this meal"}))

	err := s.client.Do(s.ctx, &api.Request{Method: http.MethodPost, Path: "/api/meals/3/reviews"}, nil)

	var apiErr *api.Error
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusConflict, apiErr.Status)
	s.Equal("You already reviewed this meal", apiErr.Message)
	s.Equal("You already reviewed this meal", api.UserMessage(err, "fallback"))
}

func (s *ClientTestSuite) TestErrorWithoutBodyUsesStatusMessage() {
	s.server.Router.Get("/api/menu", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	err := s.client.Do(s.ctx, &api.Request{Path: "/api/menu"}, nil)
	s.EqualError(err, "request failed with status 500")
	s.Equal(500, api.StatusOf(err))
}

func (s *ClientTestSuite) TestUnauthorizedInvalidatesSession() {
	s.server.Router.Get("/api/me", apitest.Respond(http.StatusUnauthorized, map[string]string{"error": "invalid token"}))
	s.mockAuth.EXPECT().Token(gomock.Any()).Return("stale", nil)
	s.mockAuth.EXPECT().Invalidate(gomock.Any()).Times(1)

	err := s.client.WithAuth(s.mockAuth).Do(s.ctx, &api.Request{Path: "/api/me"}, nil)
	s.True(api.IsUnauthorized(err))
	s.EqualError(err, "invalid token")
}

func (s *ClientTestSuite) TestUnauthorizedWithoutTokenDoesNotInvalidate() {
	s.server.Router.Post("/api/login", apitest.Respond(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"}))
	s.mockAuth.EXPECT().Token(gomock.Any()).Return("", nil)

	err := s.client.WithAuth(s.mockAuth).Do(s.ctx, &api.Request{Method: http.MethodPost, Path: "/api/login"}, nil)
	s.True(api.IsUnauthorized(err))
}

func (s *ClientTestSuite) TestEmptyAndNonJSONBodiesTolerated() {
	s.server.Router.Delete("/api/meals/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	s.server.Router.Post("/api/weekly-presets/apply", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("done"))
	})

	out := map[string]any{"kept": true}
	s.Require().NoError(s.client.Do(s.ctx, &api.Request{Method: http.MethodDelete, Path: "/api/meals/4"}, &out))
	s.Require().NoError(s.client.Do(s.ctx, &api.Request{Method: http.MethodPost, Path: "/api/weekly-presets/apply"}, &out))
	s.Equal(map[string]any{"kept": true}, out)
}

func (s *ClientTestSuite) TestConnectivityFailure() {
	s.server.Close()

	err := s.client.Do(s.ctx, &api.Request{Path: "/api/menu"}, nil)
	s.True(api.IsConnectivity(err))
	s.Equal(api.ConnectivityMessage, api.UserMessage(err, ""))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RequestsVec().WithLabelValues(http.MethodGet, "error")))
}

func (s *ClientTestSuite) TestCancelledContextIsNotConnectivity() {
	s.server.Router.Get("/api/menu", apitest.Respond(http.StatusOK, []any{}))
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.client.Do(ctx, &api.Request{Path: "/api/menu"}, nil)
	s.ErrorIs(err, context.Canceled)
	s.False(api.IsConnectivity(err))
}

func (s *ClientTestSuite) TestMetricsCountedPerStatus() {
	s.server.Router.Get("/api/menu", apitest.Respond(http.StatusOK, []any{}))
	s.server.Router.Get("/api/admin/analytics", apitest.Respond(http.StatusForbidden, map[string]string{"error": "Admin only"}))

	s.Require().NoError(s.client.Do(s.ctx, &api.Request{Path: "/api/menu"}, nil))
	s.Require().NoError(s.client.Do(s.ctx, &api.Request{Path: "/api/menu"}, nil))
	s.Require().Error(s.client.Do(s.ctx, &api.Request{Path: "/api/admin/analytics"}, nil))

	s.Equal(2.0, testutil.ToFloat64(s.metrics.RequestsVec().WithLabelValues(http.MethodGet, "200")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RequestsVec().WithLabelValues(http.MethodGet, "403")))
}

func (s *ClientTestSuite) TestRejectsRelativePath() {
	s.ErrorIs(s.client.Do(s.ctx, &api.Request{Path: "api/menu"}, nil), api.ErrNoPath)
	s.ErrorIs(s.client.Do(s.ctx, nil, nil), api.ErrNilRequest)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", api.UserMessage(nil, "x"))
	assert.Equal(t, "Failed to load menu", api.UserMessage(errors.New("boom"), "Failed to load menu"))
	assert.Equal(t, "boom", api.UserMessage(errors.New("boom"), ""))
	assert.Equal(t, api.ConnectivityMessage, api.UserMessage(fmt.Errorf("load: %w", &api.ConnectivityError{Err: errors.New("refused")}), "x"))
	assert.Equal(t, "Meal not found", api.UserMessage(fmt.Errorf("load: %w", &api.Error{Status: 404, Message: "Meal not found"}), "x"))
}
