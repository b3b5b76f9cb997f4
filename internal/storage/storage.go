package storage

import (
	"errors"
	"fmt"
	"time"

	"messenger/internal/entity"
	"messenger/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PublicChatName is the name of the room every registered user joins.
const PublicChatName = "Общий чат"

// Open connects to the SQLite database and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("storage.Open: %w", err)
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Chat{},
		&entity.ChatMember{},
		&entity.Message{},
	); err != nil {
		return nil, fmt.Errorf("storage.Open: migrate: %w", err)
	}

	return db, nil
}

// Storage gathers the repositories in a single container.
type Storage struct {
	db *gorm.DB

	users    repository.UserRepository
	chats    repository.ChatRepository
	messages repository.MessageRepository
}

// New builds the repositories and seeds the public chat if it is absent.
func New(db *gorm.DB) (*Storage, error) {
	s := &Storage{
		db:       db,
		users:    repository.NewSQLiteUserRepository(db),
		chats:    repository.NewSQLiteChatRepository(db),
		messages: repository.NewSQLiteMessageRepository(db),
	}

	if _, err := s.chats.GetPublic(); err != nil {
		if !errors.Is(err, entity.ErrChatNotFound) {
			return nil, fmt.Errorf("storage.New: %w", err)
		}
		public := entity.Chat{
			Name:      PublicChatName,
			IsGroup:   true,
			IsPublic:  true,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&public).Error; err != nil {
			return nil, fmt.Errorf("storage.New: seed public chat: %w", err)
		}
	}

	return s, nil
}

func (s *Storage) Users() repository.UserRepository {
	return s.users
}

func (s *Storage) Chats() repository.ChatRepository {
	return s.chats
}

func (s *Storage) Messages() repository.MessageRepository {
	return s.messages
}
