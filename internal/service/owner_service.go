package service

import (
	"strings"

	"github.com/casafin/casafin-backend/internal/domain"
)

// OwnerService handles the three fixed spending buckets
type OwnerService struct {
	ownerRepo domain.OwnerRepository
}

// NewOwnerService creates a new OwnerService
func NewOwnerService(ownerRepo domain.OwnerRepository) *OwnerService {
	return &OwnerService{ownerRepo: ownerRepo}
}

// Owners lists the owners in sort order
func (s *OwnerService) Owners() ([]*domain.Owner, error) {
	return s.ownerRepo.GetAll()
}

// Rename changes an owner's display name. Identity never changes.
func (s *OwnerService) Rename(id, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return domain.ErrNameRequired
	}
	return s.ownerRepo.Rename(id, displayName)
}

// Resolve matches a display name or system key case-insensitively
func (s *OwnerService) Resolve(label string) (*domain.Owner, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, domain.ErrOwnerNotFound
	}
	return s.ownerRepo.ResolveLabel(label)
}
