package repositories

import (
	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/pkg/orm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// All returns every category, newest first.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().Model(&models.Category{}).Order("created_at desc").Get(&categories)
	return categories, err
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := orm.DB().Model(&models.Category{}).Where("id = ?", id).First(&category)
	return category, err
}

// Create persists a new category.
func (r *CategoryRepository) Create(category *models.Category) error {
	return orm.DB().Create(category)
}

// Update persists changes to an existing category.
func (r *CategoryRepository) Update(category *models.Category) error {
	return orm.DB().Save(category)
}

// Delete removes a category.
func (r *CategoryRepository) Delete(category *models.Category) error {
	return orm.DB().Delete(category)
}
