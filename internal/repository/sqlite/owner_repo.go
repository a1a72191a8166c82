package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/casafin/casafin-backend/internal/domain"
)

// OwnerRepository implements domain.OwnerRepository using SQLite
type OwnerRepository struct {
	db *sql.DB
}

// NewOwnerRepository creates a new OwnerRepository
func NewOwnerRepository(db *sql.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// Seed inserts the three fixed owners if they do not exist yet. Safe to call
// on every startup.
func (r *OwnerRepository) Seed() error {
	seeds := []struct {
		key   string
		name  string
		order int
	}{
		{domain.SystemKeyShared, "Shared", 0},
		{domain.SystemKeyPersonOne, "Person 1", 1},
		{domain.SystemKeyPersonTwo, "Person 2", 2},
	}

	now := timeToText(time.Now())
	for _, s := range seeds {
		_, err := r.db.Exec(`
			INSERT OR IGNORE INTO owners (id, system_key, display_name, sort_order, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), s.key, s.name, s.order, now, now,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetAll retrieves the three owners in sort order
func (r *OwnerRepository) GetAll() ([]*domain.Owner, error) {
	rows, err := r.db.Query(`
		SELECT id, system_key, display_name, sort_order, created_at, updated_at
		FROM owners
		ORDER BY sort_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []*domain.Owner
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

// GetByID retrieves a single owner
func (r *OwnerRepository) GetByID(id string) (*domain.Owner, error) {
	row := r.db.QueryRow(`
		SELECT id, system_key, display_name, sort_order, created_at, updated_at
		FROM owners
		WHERE id = ?`, id)

	o, err := scanOwner(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrOwnerNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Rename updates an owner's display name
func (r *OwnerRepository) Rename(id, displayName string) error {
	res, err := r.db.Exec(`
		UPDATE owners SET display_name = ?, updated_at = ? WHERE id = ?`,
		displayName, timeToText(time.Now()), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOwnerNotFound
	}
	return nil
}

// ResolveLabel matches a display name or system key case-insensitively
func (r *OwnerRepository) ResolveLabel(label string) (*domain.Owner, error) {
	row := r.db.QueryRow(`
		SELECT id, system_key, display_name, sort_order, created_at, updated_at
		FROM owners
		WHERE lower(display_name) = lower(?) OR lower(system_key) = lower(?)
		LIMIT 1`, label, label)

	o, err := scanOwner(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrOwnerNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwner(row rowScanner) (*domain.Owner, error) {
	var o domain.Owner
	var createdAt, updatedAt string
	if err := row.Scan(&o.ID, &o.SystemKey, &o.DisplayName, &o.SortOrder, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	o.CreatedAt = textToTime(createdAt)
	o.UpdatedAt = textToTime(updatedAt)
	return &o, nil
}
