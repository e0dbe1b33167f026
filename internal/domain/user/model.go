package user

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	AccessToken  *string
	RefreshToken *string
	TokenExpiry  *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// HasCalendarToken reports whether the user completed the Google consent
// flow and can have todos synced to their calendar.
func (u *User) HasCalendarToken() bool {
	return u.AccessToken != nil && *u.AccessToken != ""
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
	Expiry       *time.Time
}
