package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/pkg/orm"
	"github.com/shashiranjanraj/drivehub/pkg/storage"
)

var ErrCarNotFound = errors.New("Car not found")

// MaxCarImages caps how many images one listing may carry.
const MaxCarImages = 4

// CarService manages the catalog.
type CarService struct {
	cars *repositories.CarRepository
}

func NewCarService() *CarService {
	return &CarService{cars: repositories.NewCarRepository()}
}

// List returns one catalog page with category, status, search, and sort
// applied.
func (s *CarService) List(f repositories.CarFilter) ([]models.Car, orm.Pagination, error) {
	return s.cars.Filter(f)
}

// Find returns a single listing with its category.
func (s *CarService) Find(id uint) (models.Car, error) {
	car, err := s.cars.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Car{}, ErrCarNotFound
	}
	return car, err
}

// CarInput carries the writable listing fields.
type CarInput struct {
	Title        string
	Brand        string
	Model        string
	Year         int
	Fuel         string
	Mileage      int
	Transmission string
	SalePrice    float64
	RentPrice    float64
	CategoryID   uint
	WithDriver   bool
}

// Create stores a new listing and uploads its images. Listings always
// start Available.
func (s *CarService) Create(in CarInput, files []*multipart.FileHeader) (models.Car, error) {
	images, err := s.uploadImages(files)
	if err != nil {
		return models.Car{}, err
	}

	car := models.Car{
		Title:        in.Title,
		Brand:        in.Brand,
		CarModel:     in.Model,
		Year:         in.Year,
		Fuel:         in.Fuel,
		Mileage:      in.Mileage,
		Transmission: in.Transmission,
		SalePrice:    in.SalePrice,
		RentPrice:    in.RentPrice,
		CategoryID:   in.CategoryID,
		WithDriver:   in.WithDriver,
		Status:       models.CarAvailable,
		Images:       images,
	}
	if len(images) > 0 {
		car.Image = images[0]
	}

	if err := s.cars.Create(&car); err != nil {
		return models.Car{}, err
	}
	return s.Find(car.ID)
}

// Update rewrites a listing's fields. Newly uploaded images replace the
// stored set; with no uploads the existing images stay.
func (s *CarService) Update(id uint, in CarInput, files []*multipart.FileHeader) (models.Car, error) {
	car, err := s.Find(id)
	if err != nil {
		return models.Car{}, err
	}

	if len(files) > 0 {
		images, err := s.uploadImages(files)
		if err != nil {
			return models.Car{}, err
		}
		car.Images = images
		car.Image = images[0]
	}

	car.Title = in.Title
	car.Brand = in.Brand
	car.CarModel = in.Model
	car.Year = in.Year
	car.Fuel = in.Fuel
	car.Mileage = in.Mileage
	car.Transmission = in.Transmission
	car.SalePrice = in.SalePrice
	car.RentPrice = in.RentPrice
	car.CategoryID = in.CategoryID
	car.WithDriver = in.WithDriver

	if err := s.cars.Update(&car); err != nil {
		return models.Car{}, err
	}
	return s.Find(car.ID)
}

// Delete removes a listing.
func (s *CarService) Delete(id uint) error {
	car, err := s.Find(id)
	if err != nil {
		return err
	}
	return s.cars.Delete(&car)
}

func (s *CarService) uploadImages(files []*multipart.FileHeader) (models.StringList, error) {
	if len(files) > MaxCarImages {
		files = files[:MaxCarImages]
	}

	var urls models.StringList
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
		}

		key := imageKey(fh.Filename)
		if err := storage.Put(key, content); err != nil {
			return nil, fmt.Errorf("store upload %s: %w", fh.Filename, err)
		}
		urls = append(urls, storage.URL(key))
	}
	return urls, nil
}

// imageKey builds a collision-free storage path that keeps the original
// extension.
func imageKey(filename string) string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("cars/%d_%s%s", time.Now().UnixNano(), hex.EncodeToString(buf), ext)
}
