package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/services"
	"github.com/shashiranjanraj/drivehub/pkg/auth"
)

func TestRegisterCreatesCustomerAccount(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)

	svc := services.NewAuthService()
	user, err := svc.Register("Jamie", "jamie@example.com", "5551234")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.False(t, user.IsAdmin, "registration must never create admins")
	assert.NotEmpty(t, user.Password, "a generated password must be stored hashed")
	assert.NotEqual(t, "jamie@example.com", user.Password)

	var stored models.User
	require.NoError(t, db.Where("email = ?", "jamie@example.com").First(&stored).Error)
	assert.Equal(t, "Jamie", stored.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupDB(t)
	useFakeMail(t)

	svc := services.NewAuthService()
	_, err := svc.Register("Jamie", "jamie@example.com", "")
	require.NoError(t, err)

	_, err = svc.Register("Other", "jamie@example.com", "")
	assert.ErrorIs(t, err, services.ErrUserExists)
}

func TestLogin(t *testing.T) {
	db := setupDB(t)

	hash, err := auth.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Name:     "Jamie",
		Email:    "jamie@example.com",
		Password: hash,
	}).Error)

	svc := services.NewAuthService()

	token, user, err := svc.Login("jamie@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jamie@example.com", user.Email)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)

	_, _, err = svc.Login("jamie@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	db := setupDB(t)

	hash, err := auth.HashPassword("originalpass")
	require.NoError(t, err)
	user := models.User{Name: "Jamie", Email: "jamie@example.com", Password: hash}
	require.NoError(t, db.Create(&user).Error)

	svc := services.NewAuthService()

	err = svc.ChangePassword(user.ID, "wrongcurrent", "newpassword1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(user.ID, "originalpass", "newpassword1"))

	_, _, err = svc.Login("jamie@example.com", "newpassword1")
	assert.NoError(t, err)
}
