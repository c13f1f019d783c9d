package service

import (
	"context"

	"github.com/tigoviajes/catalog/internal/domain"
)

// DestinationAdminService handles destination mutations from the admin panel
type DestinationAdminService struct {
	repo        domain.DestinationRepository
	invalidator *Invalidator
}

// NewDestinationAdminService creates a new DestinationAdminService
func NewDestinationAdminService(repo domain.DestinationRepository, invalidator *Invalidator) *DestinationAdminService {
	return &DestinationAdminService{repo: repo, invalidator: invalidator}
}

func (s *DestinationAdminService) List(ctx context.Context) ([]*domain.Destination, error) {
	return s.repo.List(ctx, false)
}

func (s *DestinationAdminService) Create(ctx context.Context, dest *domain.Destination) error {
	dest.ID = ""
	slug, err := resolveSlug(dest.Slug, dest.Name)
	if err != nil {
		return err
	}
	dest.Slug = slug
	if err := s.repo.Create(ctx, dest); err != nil {
		return err
	}
	afterWrite(ctx, s.invalidator.InvalidateDestinations, "destination create")
	return nil
}

func (s *DestinationAdminService) Update(ctx context.Context, id string, dest *domain.Destination) error {
	dest.ID = id
	slug, err := resolveSlug(dest.Slug, dest.Name)
	if err != nil {
		return err
	}
	dest.Slug = slug
	if err := s.repo.Update(ctx, dest); err != nil {
		return err
	}
	afterWrite(ctx, s.invalidator.InvalidateDestinations, "destination update")
	return nil
}

func (s *DestinationAdminService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	afterWrite(ctx, s.invalidator.InvalidateDestinations, "destination toggle")
	return nil
}

func (s *DestinationAdminService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	afterWrite(ctx, s.invalidator.InvalidateDestinations, "destination delete")
	return nil
}
