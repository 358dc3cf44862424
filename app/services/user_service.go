package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/pkg/orm"
)

// UserService covers the admin side of account management.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{users: repositories.NewUserRepository()}
}

// List returns one page of users, optionally narrowed by a free-text
// search over name/email/phone and by the admin flag.
func (s *UserService) List(search string, isAdmin *bool, page, limit int) ([]models.User, orm.Pagination, error) {
	return s.users.Search(search, isAdmin, page, limit)
}

// UserUpdate carries the fields an admin may change on an account.
// Pointers distinguish "leave alone" from "set to zero value".
type UserUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	IsAdmin *bool
}

// Update applies an admin edit to a user.
func (s *UserService) Update(id uint, in UserUpdate) (models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}

	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(id uint) error {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.users.Delete(&user)
}
