package repository

import (
	"errors"

	"messenger/internal/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	ListOthers(excludeID uint) ([]entity.User, error)
}

type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

func (repo *SQLiteUserRepository) Create(user *entity.User) error {
	if err := repo.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrUserExists
		}
		return err
	}
	return nil
}

func (repo *SQLiteUserRepository) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := repo.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) ListOthers(excludeID uint) ([]entity.User, error) {
	var users []entity.User
	err := repo.db.Where("id <> ?", excludeID).Order("username ASC").Find(&users).Error
	return users, err
}
