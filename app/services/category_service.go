package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/pkg/cache"
)

var ErrCategoryNotFound = errors.New("Category not found")

const categoryCacheKey = "categories:all"

// CategoryService manages the car categories. The public list is cached
// because it sits on every catalog page; writes bust the cache.
type CategoryService struct {
	categories *repositories.CategoryRepository
}

func NewCategoryService() *CategoryService {
	return &CategoryService{categories: repositories.NewCategoryRepository()}
}

func (s *CategoryService) All() ([]models.Category, error) {
	var cached []models.Category
	if cache.Get(categoryCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.categories.All()
	if err != nil {
		return nil, err
	}
	_ = cache.Set(categoryCacheKey, categories, 10*time.Minute)
	return categories, nil
}

func (s *CategoryService) Find(id uint) (models.Category, error) {
	category, err := s.categories.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, ErrCategoryNotFound
	}
	return category, err
}

func (s *CategoryService) Create(name, description string) (models.Category, error) {
	category := models.Category{Name: name, Description: description}
	if err := s.categories.Create(&category); err != nil {
		return models.Category{}, err
	}
	_ = cache.Forget(categoryCacheKey)
	return category, nil
}

func (s *CategoryService) Update(id uint, name, description string) (models.Category, error) {
	category, err := s.Find(id)
	if err != nil {
		return models.Category{}, err
	}

	category.Name = name
	category.Description = description
	if err := s.categories.Update(&category); err != nil {
		return models.Category{}, err
	}
	_ = cache.Forget(categoryCacheKey)
	return category, nil
}

func (s *CategoryService) Delete(id uint) error {
	category, err := s.Find(id)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(&category); err != nil {
		return err
	}
	return cache.Forget(categoryCacheKey)
}
