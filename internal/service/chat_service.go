package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"messenger/internal/entity"
	"messenger/internal/repository"
)

// ChatView is everything the chat page needs: the chat itself, its messages
// with author names, the current members and the users still invitable.
type ChatView struct {
	Chat      *entity.Chat
	Messages  []entity.MessageWithAuthor
	Members   []entity.User
	Available []entity.User
}

type ChatService interface {
	ListForUser(userID uint) ([]entity.Chat, error)
	CreateGroup(creator *entity.User, name string, memberIDs []uint) (*entity.Chat, error)
	// CreateOrReusePrivate returns the private chat between the two users,
	// creating it on first request. The bool reports whether it was created.
	CreateOrReusePrivate(requester *entity.User, otherID uint) (*entity.Chat, bool, error)
	View(userID, chatID uint) (*ChatView, error)
	AddMember(actorID, chatID, targetID uint) (*entity.User, error)
}

type chatService struct {
	log      *slog.Logger
	users    repository.UserRepository
	chats    repository.ChatRepository
	messages repository.MessageRepository
}

func NewChatService(log *slog.Logger, users repository.UserRepository, chats repository.ChatRepository, messages repository.MessageRepository) ChatService {
	return &chatService{
		log:      log,
		users:    users,
		chats:    chats,
		messages: messages,
	}
}

func (s *chatService) ListForUser(userID uint) ([]entity.Chat, error) {
	const op = "service.chat.ListForUser"

	chats, err := s.chats.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return chats, nil
}

func (s *chatService) CreateGroup(creator *entity.User, name string, memberIDs []uint) (*entity.Chat, error) {
	const op = "service.chat.CreateGroup"

	createdBy := creator.ID
	chat := &entity.Chat{
		Name:      name,
		IsGroup:   true,
		CreatedBy: &createdBy,
		CreatedAt: time.Now(),
	}
	if err := s.chats.CreateGroup(chat, creator.ID, memberIDs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("group chat created",
		slog.String("op", op),
		slog.Uint64("chat_id", uint64(chat.ID)),
		slog.Uint64("creator_id", uint64(creator.ID)))
	return chat, nil
}

func (s *chatService) CreateOrReusePrivate(requester *entity.User, otherID uint) (*entity.Chat, bool, error) {
	const op = "service.chat.CreateOrReusePrivate"

	chat, err := s.chats.FindPrivateBetween(requester.ID, otherID)
	if err == nil {
		return chat, false, nil
	}
	if !errors.Is(err, entity.ErrChatNotFound) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	other, err := s.users.GetByID(otherID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, false, entity.ErrUserNotFound
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	// Private chats carry no creator, only the is_group flag marks them.
	chat = &entity.Chat{
		Name:      requester.Username + " и " + other.Username,
		IsGroup:   false,
		CreatedAt: time.Now(),
	}
	if err := s.chats.CreatePrivate(chat, requester.ID, other.ID); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("private chat created",
		slog.String("op", op),
		slog.Uint64("chat_id", uint64(chat.ID)),
		slog.Uint64("requester_id", uint64(requester.ID)),
		slog.Uint64("other_id", uint64(other.ID)))
	return chat, true, nil
}

func (s *chatService) View(userID, chatID uint) (*ChatView, error) {
	const op = "service.chat.View"

	member, err := s.chats.IsMember(chatID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !member {
		return nil, entity.ErrNotMember
	}

	chat, err := s.chats.GetByID(chatID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	messages, err := s.messages.ListByChat(chatID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	members, err := s.chats.ListMembers(chatID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	available, err := s.chats.ListNonMembers(chatID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ChatView{
		Chat:      chat,
		Messages:  messages,
		Members:   members,
		Available: available,
	}, nil
}

// AddMember adds targetID to the chat on behalf of actorID, who must be a
// member. An already-present target fails softly with ErrAlreadyMember.
func (s *chatService) AddMember(actorID, chatID, targetID uint) (*entity.User, error) {
	const op = "service.chat.AddMember"

	member, err := s.chats.IsMember(chatID, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !member {
		return nil, entity.ErrNotMember
	}

	target, err := s.users.GetByID(targetID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	already, err := s.chats.IsMember(chatID, targetID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if already {
		return target, entity.ErrAlreadyMember
	}

	// A concurrent add of the same pair lands on the unique index and is
	// ignored there.
	if err := s.chats.AddMember(chatID, targetID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return target, nil
}
