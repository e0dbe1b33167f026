package push

import "time"

type Subscription struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	UserID       int64  `gorm:"index;not null"`
	Endpoint     string `gorm:"uniqueIndex;not null"`
	P256dh       string `gorm:"not null"`
	Auth         string `gorm:"not null"`
	LastNotified *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// Message is the payload templated into each web-push notification.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type SubscribeInput struct {
	UserID   int64
	Endpoint string
	P256dh   string
	Auth     string
}
