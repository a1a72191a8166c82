package service

import (
	"strings"

	"github.com/casafin/casafin-backend/internal/domain"
)

// CategoryService handles spending category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Categories lists categories, optionally only active ones
func (s *CategoryService) Categories(activeOnly bool) ([]*domain.Category, error) {
	return s.categoryRepo.GetAll(activeOnly)
}

// Add creates a category. Adding an existing name (case-insensitive) is a
// no-op that returns the stored row.
func (s *CategoryService) Add(name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	return s.categoryRepo.GetOrCreate(name)
}

// AddBatch seeds several categories at once, skipping blank lines and
// tolerating duplicates. Returns the number of names attempted.
func (s *CategoryService) AddBatch(names []string) (int, error) {
	attempted := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := s.Add(name); err != nil {
			return attempted, err
		}
		attempted++
	}
	return attempted, nil
}

// GetOrCreate returns the category with the given name, creating it if absent
func (s *CategoryService) GetOrCreate(name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	return s.categoryRepo.GetOrCreate(name)
}

// Rename changes a category's name
func (s *CategoryService) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrNameRequired
	}
	return s.categoryRepo.Rename(id, name)
}

// SetActive hides or restores a category for budgeting without deleting
// its history.
func (s *CategoryService) SetActive(id string, active bool) error {
	return s.categoryRepo.SetActive(id, active)
}
