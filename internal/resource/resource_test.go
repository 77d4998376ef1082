package resource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/common/clock/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ResourceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	res       *Resource[[]string]
	ctx       context.Context
	now       time.Time
}

func (s *ResourceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.now = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()

	s.res = New[[]string](&Config{Clock: s.mockClock, BannerTTL: 4 * time.Second})
	s.ctx = context.Background()
}

func TestResourceTestSuite(t *testing.T) {
	suite.Run(t, new(ResourceTestSuite))
}

func (s *ResourceTestSuite) fetch(items ...string) func(context.Context) ([]string, error) {
	return func(context.Context) ([]string, error) {
		return items, nil
	}
}

func (s *ResourceTestSuite) TestStartsIdle() {
	snap := s.res.Snapshot()
	s.Equal(StatusIdle, snap.Status)
	s.False(snap.Loaded())
}

func (s *ResourceTestSuite) TestLoadSuccess() {
	s.Require().NoError(s.res.Load(s.ctx, s.fetch("a", "b")))

	snap := s.res.Snapshot()
	s.Equal(StatusReady, snap.Status)
	s.Equal([]string{"a", "b"}, snap.Data)
	s.NoError(snap.Err)
}

func (s *ResourceTestSuite) TestLoadFailure() {
	err := s.res.Load(s.ctx, func(context.Context) ([]string, error) {
		return nil, errors.New("Failed to load menu")
	})
	s.Error(err)

	snap := s.res.Snapshot()
	s.Equal(StatusFailed, snap.Status)
	s.EqualError(snap.Err, "Failed to load menu")
}

func (s *ResourceTestSuite) TestMutateBeforeLoadRefused() {
	err := s.res.Mutate(s.ctx, &Mutation[[]string]{Call: func(context.Context) error { return nil }})
	s.ErrorIs(err, ErrNotReady)
}

func (s *ResourceTestSuite) TestMutatePatchesOnSuccess() {
	s.Require().NoError(s.res.Load(s.ctx, s.fetch("a")))

	err := s.res.Mutate(s.ctx, &Mutation[[]string]{
		Call:   func(context.Context) error { return nil },
		Patch:  func(d []string) []string { return append(d, "b") },
		Banner: "Saved",
	})
	s.Require().NoError(err)

	snap := s.res.Snapshot()
	s.Equal(StatusReady, snap.Status)
	s.Equal([]string{"a", "b"}, snap.Data)
	s.Equal("Saved", snap.Banner)
}

func (s *ResourceTestSuite) TestFailedMutationLeavesDataUntouched() {
	s.Require().NoError(s.res.Load(s.ctx, s.fetch("a")))
	patched := false

	err := s.res.Mutate(s.ctx, &Mutation[[]string]{
		Call: func(context.Context) error { return errors.New("You already reviewed this meal") },
		Patch: func(d []string) []string {
			patched = true
			return nil
		},
	})
	s.Error(err)

	snap := s.res.Snapshot()
	s.False(patched)
	s.Equal(StatusReady, snap.Status)
	s.Equal([]string{"a"}, snap.Data)
	s.EqualError(snap.ActionErr, "You already reviewed this meal")
	s.Empty(snap.Banner)
}

func (s *ResourceTestSuite) TestSubmittingWhileCallInFlight() {
	s.Require().NoError(s.res.Load(s.ctx, s.fetch("a")))
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)

	go func() {
		done <- s.res.Mutate(s.ctx, &Mutation[[]string]{
			Call: func(context.Context) error {
				close(started)
				<-release
				return nil
			},
		})
	}()

	<-started
	s.Equal(StatusSubmitting, s.res.Snapshot().Status)
	close(release)
	s.NoError(<-done)
	s.Equal(StatusReady, s.res.Snapshot().Status)
}

func (s *ResourceTestSuite) TestBannerClearsAfterTTL() {
	s.Require().NoError(s.res.Load(s.ctx, s.fetch("a")))
	s.res.SetBanner("Presets applied to 5 meals")

	s.now = s.now.Add(3 * time.Second)
	s.Equal("Presets applied to 5 meals", s.res.Snapshot().Banner)

	s.now = s.now.Add(time.Second)
	s.Empty(s.res.Snapshot().Banner)
}

func (s *ResourceTestSuite) TestCloseDiscardsLateLoad() {
	started := make(chan struct{})
	done := make(chan error)

	go func() {
		done <- s.res.Load(s.ctx, func(ctx context.Context) ([]string, error) {
			close(started)
			<-ctx.Done()
			return []string{"late"}, nil
		})
	}()

	<-started
	s.res.Close()

	s.ErrorIs(<-done, ErrClosed)
	s.Nil(s.res.Snapshot().Data)
	s.True(s.res.Closed())
}

func (s *ResourceTestSuite) TestCallsAfterCloseRefused() {
	s.Require().NoError(s.res.Load(s.ctx, s.fetch("a")))
	s.res.Close()

	s.ErrorIs(s.res.Load(s.ctx, s.fetch("b")), ErrClosed)
	s.ErrorIs(s.res.Mutate(s.ctx, &Mutation[[]string]{Call: func(context.Context) error { return nil }}), ErrClosed)
	s.Equal([]string{"a"}, s.res.Snapshot().Data)
}

func (s *ResourceTestSuite) TestNilMutation() {
	s.ErrorIs(s.res.Mutate(s.ctx, nil), ErrNilMutation)
}
