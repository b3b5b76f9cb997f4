package repository

import (
	"errors"
	"time"

	"messenger/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository interface {
	CreateGroup(chat *entity.Chat, creatorID uint, memberIDs []uint) error
	CreatePrivate(chat *entity.Chat, firstID, secondID uint) error

	GetByID(id uint) (*entity.Chat, error)
	GetPublic() (*entity.Chat, error)
	FindPrivateBetween(firstID, secondID uint) (*entity.Chat, error)
	ListForUser(userID uint) ([]entity.Chat, error)

	AddMember(chatID, userID uint) error
	IsMember(chatID, userID uint) (bool, error)
	ListMembers(chatID uint) ([]entity.User, error)
	ListNonMembers(chatID, excludeID uint) ([]entity.User, error)
}

type SQLiteChatRepository struct {
	db *gorm.DB
}

func NewSQLiteChatRepository(db *gorm.DB) ChatRepository {
	return &SQLiteChatRepository{db}
}

// CreateGroup inserts the chat, its creator and the invited members in one
// transaction. Duplicate member ids are dropped by the (chat_id, user_id)
// unique index, not rechecked here.
func (repo *SQLiteChatRepository) CreateGroup(chat *entity.Chat, creatorID uint, memberIDs []uint) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}

		now := time.Now()
		members := []entity.ChatMember{{ChatID: chat.ID, UserID: creatorID, JoinedAt: now}}
		for _, id := range memberIDs {
			members = append(members, entity.ChatMember{ChatID: chat.ID, UserID: id, JoinedAt: now})
		}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&members).Error
	})
}

func (repo *SQLiteChatRepository) CreatePrivate(chat *entity.Chat, firstID, secondID uint) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}

		now := time.Now()
		members := []entity.ChatMember{
			{ChatID: chat.ID, UserID: firstID, JoinedAt: now},
			{ChatID: chat.ID, UserID: secondID, JoinedAt: now},
		}
		return tx.Create(&members).Error
	})
}

func (repo *SQLiteChatRepository) GetByID(id uint) (*entity.Chat, error) {
	var chat entity.Chat
	if err := repo.db.First(&chat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (repo *SQLiteChatRepository) GetPublic() (*entity.Chat, error) {
	var chat entity.Chat
	err := repo.db.Where("is_public = ? AND is_group = ?", true, true).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// FindPrivateBetween keys the lookup on the is_group discriminant plus both
// memberships, so a reused pair always resolves to the same chat.
func (repo *SQLiteChatRepository) FindPrivateBetween(firstID, secondID uint) (*entity.Chat, error) {
	var chat entity.Chat
	err := repo.db.
		Joins("JOIN chat_members cm1 ON cm1.chat_id = chats.id AND cm1.user_id = ?", firstID).
		Joins("JOIN chat_members cm2 ON cm2.chat_id = chats.id AND cm2.user_id = ?", secondID).
		Where("chats.is_group = ?", false).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// ListForUser returns the user's chats with the public room first,
// the rest newest first.
func (repo *SQLiteChatRepository) ListForUser(userID uint) ([]entity.Chat, error) {
	var chats []entity.Chat
	err := repo.db.
		Joins("JOIN chat_members ON chat_members.chat_id = chats.id").
		Where("chat_members.user_id = ?", userID).
		Order("chats.is_public DESC, chats.created_at DESC").
		Find(&chats).Error
	return chats, err
}

// AddMember is insert-or-ignore: a concurrent duplicate add dies on the
// unique index and is swallowed, never surfaced.
func (repo *SQLiteChatRepository) AddMember(chatID, userID uint) error {
	member := entity.ChatMember{ChatID: chatID, UserID: userID, JoinedAt: time.Now()}
	return repo.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error
}

func (repo *SQLiteChatRepository) IsMember(chatID, userID uint) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}

func (repo *SQLiteChatRepository) ListMembers(chatID uint) ([]entity.User, error) {
	var users []entity.User
	err := repo.db.
		Joins("JOIN chat_members ON chat_members.user_id = users.id").
		Where("chat_members.chat_id = ?", chatID).
		Order("users.username ASC").
		Find(&users).Error
	return users, err
}

func (repo *SQLiteChatRepository) ListNonMembers(chatID, excludeID uint) ([]entity.User, error) {
	memberIDs := repo.db.Model(&entity.ChatMember{}).
		Select("user_id").
		Where("chat_id = ?", chatID)

	var users []entity.User
	err := repo.db.
		Where("id NOT IN (?) AND id <> ?", memberIDs, excludeID).
		Order("username ASC").
		Find(&users).Error
	return users, err
}
