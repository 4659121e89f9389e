package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, itemID int64, start, end time.Time, bookerID int64) (*models.Booking, error) {
	if start.IsZero() || end.IsZero() {
		return nil, validationError("start and end are required")
	}
	if !end.After(start) {
		return nil, validationError("end must be after start")
	}

	booker, err := s.repo.GetUserByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	// Доступность проверяется только при создании
	if !item.Available {
		return nil, badRequest("item %d is not available", itemID)
	}

	booking := &models.Booking{
		Start:    start.UTC(),
		End:      end.UTC(),
		Status:   models.StatusWaiting,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Item:     item,
		Booker:   booker,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", itemID).
		Int64("booker_id", bookerID).
		Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking, bookerID)

	return booking, nil
}

// SetApproval records the owner's decision on a WAITING booking.
func (s *BookingService) SetApproval(ctx context.Context, bookingID int64, approved bool, userID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.ownerOf(ctx, booking)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, badRequest("user %d is not the owner of item %d", userID, booking.ItemID)
	}
	if booking.Status != models.StatusWaiting {
		return nil, badRequest("booking %d is already %s", bookingID, booking.Status)
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, models.StatusWaiting, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.logger.Info().
		Int64("booking_id", bookingID).
		Str("status", string(status)).
		Int64("owner_id", userID).
		Msg("booking decided")
	s.publishEvent(eventType, booking, userID)

	return booking, nil
}

func (s *BookingService) ownerOf(ctx context.Context, booking *models.Booking) (int64, error) {
	if booking.Item != nil {
		return booking.Item.OwnerID, nil
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return 0, err
	}
	booking.Item = item
	return item.OwnerID, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) filter(state string) (models.BookingFilter, error) {
	parsed, ok := models.ParseBookingState(state)
	if !ok {
		return models.BookingFilter{}, badRequest("unknown state: %s", state)
	}
	return models.BookingFilter{State: parsed, Now: s.now()}, nil
}

func (s *BookingService) GetBookingsByBooker(ctx context.Context, bookerID int64, state string) ([]*models.Booking, error) {
	filter, err := s.filter(state)
	if err != nil {
		return nil, err
	}
	return s.repo.GetBookingsByBooker(ctx, bookerID, filter)
}

// GetBookingsByOwner lists bookings across all items of the owner. An owner
// without items is reported as not found.
func (s *BookingService) GetBookingsByOwner(ctx context.Context, ownerID int64, state string) ([]*models.Booking, error) {
	filter, err := s.filter(state)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, notFound("user %d has no items", ownerID)
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return s.repo.GetBookingsByItems(ctx, ids, filter)
}

func (s *BookingService) GetBookingsByItem(ctx context.Context, itemID int64) ([]*models.Booking, error) {
	return s.repo.GetBookingsByItem(ctx, itemID)
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, actorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
		ActorID:   actorID,
	}
	if booking.Item != nil {
		payload.ItemName = booking.Item.Name
		payload.OwnerID = booking.Item.OwnerID
	}
	if booking.Booker != nil {
		payload.BookerName = booking.Booker.Name
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
