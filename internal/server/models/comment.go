package models

import "time"

type Comment struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	AuthorID  int64
	ListingID int64
}
