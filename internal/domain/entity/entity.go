package entity

import "time"

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Birthday is a friend's birthday tracked by a user. Recurrence only uses the
// month and day of BirthDate; the year records the original occurrence and
// feeds the age shown in reminders.
type Birthday struct {
	ID          int64
	UserID      int64
	CategoryID  *int64
	FriendName  string
	BirthDate   time.Time
	FriendEmail string
	Notes       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Category struct {
	ID        int64
	UserID    int64
	Name      string
	Color     string
	CreatedAt time.Time
}
