package domain

import "time"

// System keys for the three fixed spending buckets. Owners are seeded once
// and never created or deleted afterward; only display names change.
const (
	SystemKeyShared    = "shared"
	SystemKeyPersonOne = "person_1"
	SystemKeyPersonTwo = "person_2"
)

type Owner struct {
	ID          string    `json:"id"`
	SystemKey   string    `json:"systemKey"`
	DisplayName string    `json:"displayName"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type OwnerRepository interface {
	GetAll() ([]*Owner, error)
	GetByID(id string) (*Owner, error)
	Rename(id, displayName string) error
	// ResolveLabel matches a display name or system key case-insensitively.
	ResolveLabel(label string) (*Owner, error)
}
