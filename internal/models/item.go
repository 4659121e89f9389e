package models

import "time"

type Item struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Available   bool   `json:"available" yaml:"available"`
	OwnerID     int64  `json:"ownerId" yaml:"owner_id"`
	RequestID   *int64 `json:"requestId,omitempty" yaml:"request_id"`
}

// ItemInput is the payload for creating or fully re-submitting an item.
// Available is a pointer so that an omitted flag can be told apart from false.
type ItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// ItemDetail is the item view with comments and, for the owner only,
// the surrounding booking times.
type ItemDetail struct {
	Item
	LastBooking *time.Time `json:"lastBooking"`
	NextBooking *time.Time `json:"nextBooking"`
	Comments    []*Comment `json:"comments"`
}
