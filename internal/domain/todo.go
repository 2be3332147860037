package domain

import "time"

// Todo is the domain entity for a task item. UserID is the owner, fixed at
// creation and never reassigned.
type Todo struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Completed   bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
