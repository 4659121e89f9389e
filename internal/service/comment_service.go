package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type CommentService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewCommentService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *CommentService {
	return &CommentService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// AddComment stores a comment once every booking the author ever made has ended.
// The check covers all of the author's bookings, not only those of itemID.
func (s *CommentService) AddComment(ctx context.Context, text string, authorID, itemID int64) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationError("text is required")
	}

	if _, err := s.repo.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := s.now()
	bookings, err := s.repo.GetBookingsByBooker(ctx, authorID, models.BookingFilter{State: models.StateAll, Now: now})
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, notFound("user %d has never rented anything", authorID)
	}
	for _, b := range bookings {
		if b.End.After(now) {
			return nil, conflict("booking %d has not ended yet", b.ID)
		}
	}

	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:       text,
		AuthorName: author.Name,
		Created:    now.UTC(),
		ItemID:     itemID,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment added")
	s.publishEvent(comment, authorID)

	return comment, nil
}

func (s *CommentService) GetComments(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	return s.repo.GetCommentsByItem(ctx, itemID)
}

func (s *CommentService) publishEvent(comment *models.Comment, authorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.CommentEventPayload{
		CommentID:  comment.ID,
		ItemID:     comment.ItemID,
		AuthorID:   authorID,
		AuthorName: comment.AuthorName,
		Text:       comment.Text,
	}
	if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
		s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
	}
}
