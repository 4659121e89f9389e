package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	item := &models.Item{ID: 10, Name: "Drill", OwnerID: 1}
	filter := models.BookingFilter{State: models.StateAll, Now: now}

	t.Run("NeverRented", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewCommentService(repo, nil, testLogger())
		svc.now = fixedClock(now)

		repo.On("GetItemByID", ctx, int64(10)).Return(item, nil).Once()
		repo.On("GetBookingsByBooker", ctx, int64(2), filter).Return([]*models.Booking{}, nil).Once()

		_, err := svc.AddComment(ctx, "Great", 2, 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
	})

	t.Run("AnyUnfinishedBookingBlocks", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewCommentService(repo, nil, testLogger())
		svc.now = fixedClock(now)

		repo.On("GetItemByID", ctx, int64(10)).Return(item, nil).Once()
		repo.On("GetBookingsByBooker", ctx, int64(2), filter).Return([]*models.Booking{
			{ID: 1, ItemID: 10, End: now.Add(-time.Hour)},
			{ID: 2, ItemID: 77, End: now.Add(time.Hour)},
		}, nil).Once()

		_, err := svc.AddComment(ctx, "Great", 2, 10)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		bus := new(mockEventBus)
		svc := NewCommentService(repo, bus, testLogger())
		svc.now = fixedClock(now)

		repo.On("GetItemByID", ctx, int64(10)).Return(item, nil).Once()
		repo.On("GetBookingsByBooker", ctx, int64(2), filter).Return([]*models.Booking{
			{ID: 1, ItemID: 10, End: now.Add(-time.Hour)},
		}, nil).Once()
		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2, Name: "Booker"}, nil).Once()
		repo.On("CreateComment", ctx, mock.AnythingOfType("*models.Comment")).
			Run(func(args mock.Arguments) { args.Get(1).(*models.Comment).ID = 5 }).
			Return(nil).Once()
		bus.On("PublishJSON", events.EventCommentAdded, mock.MatchedBy(func(p events.CommentEventPayload) bool {
			return p.CommentID == 5 && p.AuthorName == "Booker"
		})).Return(nil).Once()

		comment, err := svc.AddComment(ctx, " Great drill ", 2, 10)
		require.NoError(t, err)
		assert.Equal(t, "Great drill", comment.Text)
		assert.Equal(t, "Booker", comment.AuthorName)
		assert.True(t, comment.Created.Equal(now))
		repo.AssertExpectations(t)
		bus.AssertExpectations(t)
	})

	t.Run("BlankText", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewCommentService(repo, nil, testLogger())

		_, err := svc.AddComment(ctx, "  ", 2, 10)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("MissingItem", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewCommentService(repo, nil, testLogger())

		repo.On("GetItemByID", ctx, int64(99)).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.AddComment(ctx, "Great", 2, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// The eligibility check and the insert are not atomic: two concurrent comments
// from an eligible author are both stored.
func TestCommentService_ConcurrentComments(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	repo := new(mockRepo)
	svc := NewCommentService(repo, nil, testLogger())
	svc.now = fixedClock(now)

	repo.On("GetItemByID", ctx, int64(10)).Return(&models.Item{ID: 10, OwnerID: 1}, nil)
	repo.On("GetBookingsByBooker", ctx, int64(2), mock.Anything).Return([]*models.Booking{
		{ID: 1, ItemID: 10, End: now.Add(-time.Hour)},
	}, nil)
	repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2, Name: "Booker"}, nil)
	repo.On("CreateComment", ctx, mock.Anything).Return(nil)

	const n = 5
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddComment(ctx, "Great", 2, 10)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	repo.AssertNumberOfCalls(t, "CreateComment", n)
}
