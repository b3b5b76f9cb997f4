package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"messenger/internal/entity"
	"messenger/internal/repository"
)

type MessageService interface {
	// Send stores a message in the chat. Whitespace-only content is
	// dropped silently: no row, no error.
	Send(userID, chatID uint, content string) error
}

type messageService struct {
	log      *slog.Logger
	chats    repository.ChatRepository
	messages repository.MessageRepository
}

func NewMessageService(log *slog.Logger, chats repository.ChatRepository, messages repository.MessageRepository) MessageService {
	return &messageService{
		log:      log,
		chats:    chats,
		messages: messages,
	}
}

func (s *messageService) Send(userID, chatID uint, content string) error {
	const op = "service.message.Send"

	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	member, err := s.chats.IsMember(chatID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !member {
		return entity.ErrNotMember
	}

	message := &entity.Message{
		Content:   content,
		UserID:    userID,
		ChatID:    chatID,
		CreatedAt: time.Now(),
	}
	if err := s.messages.Create(message); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
