package domain

import "time"

// Meeting belongs to a user and optionally references one of that user's
// clients. A meeting must never reference a client owned by another user.
type Meeting struct {
	ID       int64
	Revenue  int64
	Date     time.Time
	Duration float64
	UserID   int64
	ClientID *int64
}
