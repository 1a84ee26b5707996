package domain

import "time"

// User is the root of ownership for clients and meetings. Created once at
// registration and never mutated afterwards.
type User struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}
