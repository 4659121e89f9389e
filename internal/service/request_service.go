package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
	now    func() time.Time
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *RequestService) AddRequest(ctx context.Context, description string, requesterID int64) (*models.Request, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, validationError("description is required")
	}

	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}

	request := &models.Request{
		Description: description,
		RequesterID: requesterID,
		Created:     s.now().UTC(),
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requester_id", requesterID).Msg("request created")
	return request, nil
}

func (s *RequestService) GetOwnRequests(ctx context.Context, userID int64) ([]*models.Request, error) {
	return s.repo.GetRequestsByRequester(ctx, userID)
}

func (s *RequestService) GetOtherRequests(ctx context.Context, userID int64) ([]*models.Request, error) {
	return s.repo.GetRequestsExcept(ctx, userID)
}

// GetRequestDetail is visible to any user.
func (s *RequestService) GetRequestDetail(ctx context.Context, requestID, viewerID int64) (*models.RequestDetail, error) {
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Item{}
	}

	s.logger.Debug().Int64("request_id", requestID).Int64("viewer_id", viewerID).Int("items", len(items)).Msg("request detail")
	return &models.RequestDetail{Request: *request, Items: items}, nil
}
