package entity

import "time"

// ChatMember authorizes a user to read and post in a chat.
// The unique index is the only guard against concurrent duplicate adds.
type ChatMember struct {
	ID       uint      `gorm:"primaryKey"`
	ChatID   uint      `gorm:"not null;uniqueIndex:chat_user_index"`
	UserID   uint      `gorm:"not null;uniqueIndex:chat_user_index"`
	JoinedAt time.Time `gorm:"not null"`
}
