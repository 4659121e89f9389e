package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo   domain.Repository
	logger *zerolog.Logger
	now    func() time.Time
}

func NewItemService(repo domain.Repository, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func validateItemInput(input models.ItemInput) error {
	if isBlank(input.Name) {
		return validationError("name is required")
	}
	if isBlank(input.Description) {
		return validationError("description is required")
	}
	if input.Available == nil {
		return validationError("available is required")
	}
	return nil
}

func (s *ItemService) AddItem(ctx context.Context, input models.ItemInput, ownerID int64) (*models.Item, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if input.RequestID != nil {
		if _, err := s.repo.GetRequest(ctx, *input.RequestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Available:   *input.Available,
		OwnerID:     ownerID,
		RequestID:   input.RequestID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return item, nil
}

// UpdateItem overwrites the item with a full re-submission and makes the acting
// user its owner. The previous owner is not checked.
func (s *ItemService) UpdateItem(ctx context.Context, itemID int64, input models.ItemInput, userID int64) (*models.Item, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Description = strings.TrimSpace(input.Description)
	item.Available = *input.Available
	item.OwnerID = userID

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", itemID).Int64("user_id", userID).Msg("item updated")
	return item, nil
}

func (s *ItemService) GetItemDetail(ctx context.Context, itemID, viewerID int64) (*models.ItemDetail, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.GetCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	detail := &models.ItemDetail{Item: *item, Comments: comments}

	// Время бронирований видит только владелец
	if viewerID != item.OwnerID {
		return detail, nil
	}

	bookings, err := s.repo.GetBookingsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	detail.LastBooking, detail.NextBooking = bookingBounds(bookings, s.now())
	return detail, nil
}

// bookingBounds returns the latest end before now and the earliest start after now.
func bookingBounds(bookings []*models.Booking, now time.Time) (last, next *time.Time) {
	for _, b := range bookings {
		if b.End.Before(now) && (last == nil || b.End.After(*last)) {
			end := b.End
			last = &end
		}
		if b.Start.After(now) && (next == nil || b.Start.Before(*next)) {
			start := b.Start
			next = &start
		}
	}
	return last, next
}

func (s *ItemService) GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	return s.repo.GetItemsByOwner(ctx, ownerID)
}

// SearchItems returns available items whose name or description contains text.
// Blank text matches nothing.
func (s *ItemService) SearchItems(ctx context.Context, text string) ([]*models.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*models.Item{}, nil
	}
	return s.repo.SearchAvailableItems(ctx, text)
}

func (s *ItemService) GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error) {
	return s.repo.GetItemsByRequest(ctx, requestID)
}
