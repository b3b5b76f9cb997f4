package repository

import (
	"messenger/internal/entity"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *entity.Message) error
	ListByChat(chatID uint) ([]entity.MessageWithAuthor, error)
}

type SQLiteMessageRepository struct {
	db *gorm.DB
}

func NewSQLiteMessageRepository(db *gorm.DB) MessageRepository {
	return &SQLiteMessageRepository{db}
}

func (repo *SQLiteMessageRepository) Create(message *entity.Message) error {
	return repo.db.Create(message).Error
}

// ListByChat returns the chat's messages oldest first, each joined with its
// author's username.
func (repo *SQLiteMessageRepository) ListByChat(chatID uint) ([]entity.MessageWithAuthor, error) {
	var messages []entity.MessageWithAuthor
	err := repo.db.Table("messages").
		Select("messages.id, messages.content, messages.user_id, messages.chat_id, messages.created_at, users.username").
		Joins("JOIN users ON users.id = messages.user_id").
		Where("messages.chat_id = ?", chatID).
		Order("messages.created_at ASC").
		Scan(&messages).Error
	return messages, err
}
