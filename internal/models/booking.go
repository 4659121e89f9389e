package models

import "time"

type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`
	ItemID   int64         `json:"-"`
	BookerID int64         `json:"-"`
	Item     *Item         `json:"item,omitempty"`
	Booker   *User         `json:"booker,omitempty"`
}

// BookingFilter narrows a booking listing by temporal or approval state
// evaluated against Now.
type BookingFilter struct {
	State BookingState
	Now   time.Time
}
