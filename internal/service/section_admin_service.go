package service

import (
	"context"
	"fmt"

	"github.com/tigoviajes/catalog/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SectionInput is the admin form for a special section
type SectionInput struct {
	Section    domain.SpecialSection
	Features   []*domain.SectionFeature
	PackageIDs []string
}

// SectionAdminService handles special section mutations from the admin panel
type SectionAdminService struct {
	repos       Repositories
	invalidator *Invalidator
}

// NewSectionAdminService creates a new SectionAdminService
func NewSectionAdminService(repos Repositories, invalidator *Invalidator) *SectionAdminService {
	return &SectionAdminService{repos: repos, invalidator: invalidator}
}

// List returns every section with its features and attached packages
func (s *SectionAdminService) List(ctx context.Context) ([]*domain.SpecialSectionFull, error) {
	sections, err := s.repos.Sections.List(ctx, false, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	out := make([]*domain.SpecialSectionFull, len(sections))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, section := range sections {
		g.Go(func() error {
			full, err := s.full(gCtx, section)
			if err != nil {
				return err
			}
			out[i] = full
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one section with its features and attached packages
func (s *SectionAdminService) Get(ctx context.Context, id string) (*domain.SpecialSectionFull, error) {
	section, err := s.repos.Sections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.full(ctx, section)
}

// Create stores a section, its features and its package assignment
func (s *SectionAdminService) Create(ctx context.Context, in SectionInput) (*domain.SpecialSection, error) {
	if len(in.Features) > domain.MaxSectionFeatures {
		return nil, domain.ErrTooManyFeatures
	}

	section := in.Section
	section.ID = ""
	slug, err := resolveSlug(section.Slug, section.Title)
	if err != nil {
		return nil, err
	}
	section.Slug = slug
	if err := s.repos.Sections.Create(ctx, &section); err != nil {
		return nil, err
	}
	defer s.invalidate(ctx, "section create", len(in.PackageIDs) > 0)

	if err := s.saveChildren(ctx, section.ID, in); err != nil {
		return nil, err
	}
	return &section, nil
}

// Update overwrites a section, replaces its features and reassigns its
// packages: every package is detached, then the selected ones attached.
// Once the row is written the catalog is invalidated even if a later step fails.
func (s *SectionAdminService) Update(ctx context.Context, id string, in SectionInput) (*domain.SpecialSection, error) {
	if len(in.Features) > domain.MaxSectionFeatures {
		return nil, domain.ErrTooManyFeatures
	}

	section := in.Section
	section.ID = id
	slug, err := resolveSlug(section.Slug, section.Title)
	if err != nil {
		return nil, err
	}
	section.Slug = slug
	if err := s.repos.Sections.Update(ctx, &section); err != nil {
		return nil, err
	}
	packagesTouched := len(in.PackageIDs) > 0
	defer func() { s.invalidate(ctx, "section update", packagesTouched) }()

	detached, err := s.repos.Packages.DetachFromSection(ctx, id)
	if err != nil {
		return nil, err
	}
	packagesTouched = packagesTouched || detached > 0
	if err := s.saveChildren(ctx, id, in); err != nil {
		return nil, err
	}
	return &section, nil
}

// Delete detaches the section's packages, then removes its features and the row
func (s *SectionAdminService) Delete(ctx context.Context, id string) error {
	detached, err := s.repos.Packages.DetachFromSection(ctx, id)
	if err != nil {
		return err
	}
	defer s.invalidate(ctx, "section delete", detached > 0)

	if err := s.repos.Features.DeleteBySection(ctx, id); err != nil {
		return err
	}
	return s.repos.Sections.Delete(ctx, id)
}

func (s *SectionAdminService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.repos.Sections.SetActive(ctx, id, active); err != nil {
		return err
	}
	afterWrite(ctx, s.invalidator.InvalidateSections, "section toggle")
	return nil
}

// invalidate drops cached sections, and packages when their membership changed
func (s *SectionAdminService) invalidate(ctx context.Context, what string, packagesTouched bool) {
	afterWrite(ctx, s.invalidator.InvalidateSections, what)
	if packagesTouched {
		afterWrite(ctx, s.invalidator.InvalidatePackages, what+" packages")
	}
}

func (s *SectionAdminService) saveChildren(ctx context.Context, sectionID string, in SectionInput) error {
	if err := s.repos.Features.ReplaceForSection(ctx, sectionID, in.Features); err != nil {
		return fmt.Errorf("failed to save section features: %w", err)
	}
	if err := s.repos.Packages.AttachToSection(ctx, sectionID, in.PackageIDs); err != nil {
		return err
	}
	return nil
}

func (s *SectionAdminService) full(ctx context.Context, section *domain.SpecialSection) (*domain.SpecialSectionFull, error) {
	out := &domain.SpecialSectionFull{SpecialSection: *section}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Features, err = s.repos.Features.ListBySection(gCtx, section.ID)
		return err
	})
	g.Go(func() error {
		var err error
		out.Packages, err = s.repos.Packages.List(gCtx, domain.PackageFilter{
			SpecialSectionID: section.ID,
			Order:            domain.OrderFeaturedFirst,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load section %s: %w", section.Slug, err)
	}
	return out, nil
}
