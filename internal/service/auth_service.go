package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"messenger/internal/entity"
	"messenger/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(username, password string) (*entity.User, error)
	Login(username, password string) (*entity.User, error)
}

type authService struct {
	log   *slog.Logger
	users repository.UserRepository
	chats repository.ChatRepository
}

func NewAuthService(log *slog.Logger, users repository.UserRepository, chats repository.ChatRepository) AuthService {
	return &authService{
		log:   log,
		users: users,
		chats: chats,
	}
}

// Register creates the user and joins them to the public chat.
// A taken username fails with ErrUserExists and changes nothing.
func (s *authService) Register(username, password string) (*entity.User, error) {
	const op = "service.auth.Register"
	log := s.log.With(slog.String("op", op), slog.String("username", username))

	if _, err := s.users.GetByUsername(username); err == nil {
		return nil, entity.ErrUserExists
	} else if !errors.Is(err, entity.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &entity.User{
		Username:  username,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(user); err != nil {
		// The unique index catches a registration racing this one.
		if errors.Is(err, entity.ErrUserExists) {
			return nil, entity.ErrUserExists
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.joinPublicChat(user.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	return user, nil
}

// Login validates credentials without revealing whether the username or the
// password was wrong, and re-ensures public-chat membership.
func (s *authService) Login(username, password string) (*entity.User, error) {
	const op = "service.auth.Login"

	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	if err := s.joinPublicChat(user.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *authService) joinPublicChat(userID uint) error {
	public, err := s.chats.GetPublic()
	if err != nil {
		return err
	}
	// Insert-or-ignore: membership may already exist.
	return s.chats.AddMember(public.ID, userID)
}
