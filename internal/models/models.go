package models

import "time"

type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
	ItemID     int64     `json:"itemId"`
}

type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	RequesterID int64     `json:"requesterId"`
}

// RequestDetail is a request together with the items listed in response to it.
type RequestDetail struct {
	Request
	Items []*Item `json:"items"`
}
