package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/drivehub/app/jobs"
	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/pkg/auth"
	"github.com/shashiranjanraj/drivehub/pkg/logger"
	"github.com/shashiranjanraj/drivehub/pkg/queue"
)

var (
	ErrUserExists         = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserNotFound       = errors.New("User not found")
)

// AuthService handles registration, login and account maintenance.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates a customer account with a generated password and
// queues the welcome email carrying it. Accounts created here are never
// admins; promotion is a separate admin operation.
func (s *AuthService) Register(name, email, phone string) (models.User, error) {
	if _, err := s.users.FindByEmail(email); err == nil {
		return models.User{}, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	password := auth.RandomPassword(10)
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: hash,
		IsAdmin:  false,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, err
	}

	if err := queue.Dispatch(jobs.WelcomeEmailJob{
		Email:    user.Email,
		Name:     user.Name,
		Password: password,
	}); err != nil {
		logger.Error("auth: welcome email dispatch failed", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a JWT. Unknown email and
// wrong password yield the same error so the response never reveals
// which accounts exist.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Profile returns the account behind a token's user ID.
func (s *AuthService) Profile(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile lets a user change their own name and phone. Email and
// admin flag stay untouched here.
func (s *AuthService) UpdateProfile(userID uint, name, phone string) (models.User, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return models.User{}, err
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ChangePassword swaps the password after verifying the current one.
func (s *AuthService) ChangePassword(userID uint, current, next string) error {
	user, err := s.Profile(userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, current) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.users.Update(&user)
}
