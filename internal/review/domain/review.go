package domain

import (
	"errors"
	"time"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Review struct {
	ID        int64
	BookID    int64
	UserID    int64
	Reviewer  string // display name of the author, resolved at read time
	Rating    int
	Body      string
	CreatedAt time.Time
}
