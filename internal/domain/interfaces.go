package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)
	SearchAvailableItems(ctx context.Context, text string) ([]*models.Item, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error
	GetBookingsByBooker(ctx context.Context, bookerID int64, filter models.BookingFilter) ([]*models.Booking, error)
	GetBookingsByItems(ctx context.Context, itemIDs []int64, filter models.BookingFilter) ([]*models.Booking, error)
	GetBookingsByItem(ctx context.Context, itemID int64) ([]*models.Booking, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *models.Request) error
	GetRequest(ctx context.Context, id int64) (*models.Request, error)
	GetRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.Request, error)
	GetRequestsExcept(ctx context.Context, requesterID int64) ([]*models.Request, error)
}

// Repository is the full storage surface implemented by database.DB.
type Repository interface {
	UserRepository
	ItemRepository
	BookingRepository
	CommentRepository
	RequestRepository
	PingContext(ctx context.Context) error
}

type QuotaStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemService interface {
	AddItem(ctx context.Context, input models.ItemInput, ownerID int64) (*models.Item, error)
	UpdateItem(ctx context.Context, itemID int64, input models.ItemInput, userID int64) (*models.Item, error)
	GetItemDetail(ctx context.Context, itemID, viewerID int64) (*models.ItemDetail, error)
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string) ([]*models.Item, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, itemID int64, start, end time.Time, bookerID int64) (*models.Booking, error)
	SetApproval(ctx context.Context, bookingID int64, approved bool, userID int64) (*models.Booking, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingsByBooker(ctx context.Context, bookerID int64, state string) ([]*models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, state string) ([]*models.Booking, error)
	GetBookingsByItem(ctx context.Context, itemID int64) ([]*models.Booking, error)
}

type CommentService interface {
	AddComment(ctx context.Context, text string, authorID, itemID int64) (*models.Comment, error)
	GetComments(ctx context.Context, itemID int64) ([]*models.Comment, error)
}

type RequestService interface {
	AddRequest(ctx context.Context, description string, requesterID int64) (*models.Request, error)
	GetOwnRequests(ctx context.Context, userID int64) ([]*models.Request, error)
	GetOtherRequests(ctx context.Context, userID int64) ([]*models.Request, error)
	GetRequestDetail(ctx context.Context, requestID, viewerID int64) (*models.RequestDetail, error)
}
