package repositories

import (
	"strings"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// Delete removes a user record.
func (r *UserRepository) Delete(user *models.User) error {
	return orm.DB().Delete(user)
}

// Search returns a page of users, optionally filtered by a free-text
// search across name/email/phone and by admin flag.
func (r *UserRepository) Search(search string, isAdmin *bool, page, limit int) ([]models.User, orm.Pagination, error) {
	q := orm.DB().Model(&models.User{})

	if isAdmin != nil {
		q = q.Where("is_admin = ?", *isAdmin)
	}
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?", term, term, term)
	}

	var users []models.User
	pagination, err := q.Order("created_at desc").GetWithPagination(&users, page, limit)
	return users, pagination, err
}

// All returns every user. Used by the bulk email sender.
func (r *UserRepository) All() ([]models.User, error) {
	var users []models.User
	err := orm.DB().Model(&models.User{}).Get(&users)
	return users, err
}

// Count returns the total number of users.
func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.User{}).Count(&n)
	return n, err
}
