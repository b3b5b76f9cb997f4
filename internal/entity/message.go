package entity

import "time"

type Message struct {
	ID        uint      `gorm:"primaryKey"`
	Content   string    `gorm:"not null"`
	UserID    uint      `gorm:"not null;index"`
	ChatID    uint      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// MessageWithAuthor is a message row joined with its author's username,
// the shape the chat page displays.
type MessageWithAuthor struct {
	ID        uint
	Content   string
	UserID    uint
	ChatID    uint
	CreatedAt time.Time
	Username  string
}
