package domain

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryRepository interface {
	GetAll(activeOnly bool) ([]*Category, error)
	GetByID(id string) (*Category, error)
	// GetOrCreate returns the category with the given name, matched
	// case-insensitively, creating it if absent.
	GetOrCreate(name string) (*Category, error)
	Rename(id, name string) error
	SetActive(id string, active bool) error
}
