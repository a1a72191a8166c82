package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/casafin/casafin-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using SQLite
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll lists categories ordered by name
func (r *CategoryRepository) GetAll(activeOnly bool) ([]*domain.Category, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM categories`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetByID retrieves a single category
func (r *CategoryRepository) GetByID(id string) (*domain.Category, error) {
	row := r.db.QueryRow(`
		SELECT id, name, active, created_at, updated_at FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetOrCreate returns the category with the given name, creating it if absent
func (r *CategoryRepository) GetOrCreate(name string) (*domain.Category, error) {
	row := r.db.QueryRow(`
		SELECT id, name, active, created_at, updated_at
		FROM categories
		WHERE lower(name) = lower(?)
		LIMIT 1`, name)

	c, err := scanCategory(row)
	if err == nil {
		return c, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	created := &domain.Category{
		ID:     uuid.New().String(),
		Name:   name,
		Active: true,
	}
	now := time.Now().UTC()
	_, err = r.db.Exec(`
		INSERT INTO categories (id, name, active, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)`,
		created.ID, created.Name, timeToText(now), timeToText(now),
	)
	if err != nil {
		return nil, err
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	return created, nil
}

// Rename updates a category's name
func (r *CategoryRepository) Rename(id, name string) error {
	res, err := r.db.Exec(`
		UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`,
		name, timeToText(time.Now()), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// SetActive toggles a category's active flag
func (r *CategoryRepository) SetActive(id string, active bool) error {
	res, err := r.db.Exec(`
		UPDATE categories SET active = ?, updated_at = ? WHERE id = ?`,
		boolToInt(active), timeToText(time.Now()), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	var active int
	var createdAt, updatedAt string
	if err := row.Scan(&c.ID, &c.Name, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.Active = active == 1
	c.CreatedAt = textToTime(createdAt)
	c.UpdatedAt = textToTime(updatedAt)
	return &c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
