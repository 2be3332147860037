package domain

import "time"

// User is the domain entity for a user account. The username is unique and
// immutable after registration; PasswordHash never leaves the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
