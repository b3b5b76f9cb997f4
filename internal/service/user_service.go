package service

import (
	"fmt"

	"messenger/internal/entity"
	"messenger/internal/repository"
)

// UserService backs the users directory and invitation pickers.
type UserService interface {
	ListOthers(excludeID uint) ([]entity.User, error)
	GetByID(id uint) (*entity.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) ListOthers(excludeID uint) ([]entity.User, error) {
	const op = "service.user.ListOthers"

	users, err := s.users.ListOthers(excludeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func (s *userService) GetByID(id uint) (*entity.User, error) {
	const op = "service.user.GetByID"

	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
