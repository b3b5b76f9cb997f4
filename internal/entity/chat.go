package entity

import "time"

// Chat is either the single seeded public room (IsPublic), a user-created
// group, or a two-member private chat (IsGroup false, CreatedBy NULL).
type Chat struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;index"`
	IsGroup   bool      `gorm:"not null"`
	IsPublic  bool      `gorm:"not null"`
	CreatedBy *uint     `gorm:"index"`
	CreatedAt time.Time `gorm:"not null;index"`
}
