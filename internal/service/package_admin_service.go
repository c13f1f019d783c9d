package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tigoviajes/catalog/internal/domain"
	"golang.org/x/sync/errgroup"
)

// PackageInput is the admin form for creating or updating a package
type PackageInput struct {
	Package        domain.Package
	DepartureDates []*domain.DepartureDate
	Itinerary      []*domain.ItineraryDay
}

// PackageAdminService handles package mutations from the admin panel.
// Reads go straight to the store; every successful write invalidates the packages tag.
type PackageAdminService struct {
	repos       Repositories
	invalidator *Invalidator
	now         func() time.Time
}

// NewPackageAdminService creates a new PackageAdminService
func NewPackageAdminService(repos Repositories, invalidator *Invalidator) *PackageAdminService {
	return &PackageAdminService{repos: repos, invalidator: invalidator, now: time.Now}
}

// List returns every package, newest first, with all of its departure dates
func (s *PackageAdminService) List(ctx context.Context) ([]*domain.PackageWithDepartures, error) {
	pkgs, err := s.repos.Packages.List(ctx, domain.PackageFilter{Order: domain.OrderNewest})
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	dates, err := departureDatesByPackage(ctx, s.repos.DepartureDates, packageIDs(pkgs), false, 0)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.PackageWithDepartures, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, &domain.PackageWithDepartures{Package: pkg, DepartureDates: dates[pkg.ID]})
	}
	return out, nil
}

// Get returns a package with every departure date and its itinerary
func (s *PackageAdminService) Get(ctx context.Context, id string) (*domain.PackageWithDepartures, error) {
	pkg, err := s.repos.Packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &domain.PackageWithDepartures{Package: pkg}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.DepartureDates, err = s.repos.DepartureDates.ListByPackage(gCtx, id, false)
		return err
	})
	g.Go(func() error {
		var err error
		out.Itinerary, err = s.repos.Itinerary.ListByPackage(gCtx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load package details: %w", err)
	}
	return out, nil
}

// Create stores a package with its departure dates and itinerary
func (s *PackageAdminService) Create(ctx context.Context, in PackageInput) (*domain.Package, error) {
	pkg := in.Package
	pkg.ID = ""
	slug, err := resolveSlug(pkg.Slug, pkg.Name)
	if err != nil {
		return nil, err
	}
	pkg.Slug = slug
	pkg.IsSpecial = false
	pkg.SpecialSectionID = nil

	if err := s.repos.Packages.Create(ctx, &pkg); err != nil {
		return nil, err
	}
	defer afterWrite(ctx, s.invalidator.InvalidatePackages, "package create")

	if err := s.createDates(ctx, pkg.ID, in.DepartureDates); err != nil {
		return nil, err
	}
	if len(in.Itinerary) > 0 {
		if err := s.repos.Itinerary.ReplaceForPackage(ctx, pkg.ID, in.Itinerary); err != nil {
			return nil, fmt.Errorf("failed to save itinerary: %w", err)
		}
	}
	return &pkg, nil
}

// Update overwrites a package. Departure dates are diffed against the store:
// dates with an id are updated, dates without one are inserted and stored
// dates missing from the input are deleted. The itinerary is replaced.
// Section membership is managed from the section form and is kept as stored.
// Once the row is written the catalog is invalidated even if a later step fails.
func (s *PackageAdminService) Update(ctx context.Context, id string, in PackageInput) (*domain.Package, error) {
	existing, err := s.repos.Packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pkg := in.Package
	pkg.ID = id
	if pkg.Slug, err = resolveSlug(pkg.Slug, pkg.Name); err != nil {
		return nil, err
	}
	pkg.IsSpecial = existing.IsSpecial
	pkg.SpecialSectionID = existing.SpecialSectionID
	pkg.CreatedAt = existing.CreatedAt

	if err := s.repos.Packages.Update(ctx, &pkg); err != nil {
		return nil, err
	}
	defer afterWrite(ctx, s.invalidator.InvalidatePackages, "package update")

	if err := s.syncDates(ctx, id, in.DepartureDates); err != nil {
		return nil, err
	}
	if err := s.repos.Itinerary.ReplaceForPackage(ctx, id, in.Itinerary); err != nil {
		return nil, fmt.Errorf("failed to save itinerary: %w", err)
	}
	return &pkg, nil
}

// Delete removes a package with its departure dates and itinerary
func (s *PackageAdminService) Delete(ctx context.Context, id string) error {
	if err := s.repos.DepartureDates.DeleteByPackage(ctx, id); err != nil {
		return err
	}
	defer afterWrite(ctx, s.invalidator.InvalidatePackages, "package delete")

	if err := s.repos.Itinerary.DeleteByPackage(ctx, id); err != nil {
		return err
	}
	return s.repos.Packages.Delete(ctx, id)
}

// SetFlag toggles is_active, is_featured or is_offer in place
func (s *PackageAdminService) SetFlag(ctx context.Context, id string, flag domain.PackageFlag, value bool) error {
	if err := s.repos.Packages.SetFlag(ctx, id, flag, value); err != nil {
		return err
	}
	afterWrite(ctx, s.invalidator.InvalidatePackages, "package "+string(flag))
	return nil
}

// Duplicate copies the package row as an inactive draft. Dates and
// itinerary are not copied.
func (s *PackageAdminService) Duplicate(ctx context.Context, id string) (*domain.Package, error) {
	src, err := s.repos.Packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := *src
	dup.ID = ""
	dup.Name = src.Name + " (copia)"
	dup.Slug = fmt.Sprintf("%s-copia-%d", src.Slug, s.now().UnixMilli())
	dup.IsActive = false
	dup.IncludedServices = append([]string(nil), src.IncludedServices...)
	dup.NotIncludedServices = append([]string(nil), src.NotIncludedServices...)
	dup.OptionalExcursions = append([]string(nil), src.OptionalExcursions...)

	if err := s.repos.Packages.Create(ctx, &dup); err != nil {
		return nil, err
	}

	afterWrite(ctx, s.invalidator.InvalidatePackages, "package duplicate")
	return &dup, nil
}

// AddDepartureDate attaches a new date to a package
func (s *PackageAdminService) AddDepartureDate(ctx context.Context, packageID string, date *domain.DepartureDate) error {
	if _, err := s.repos.Packages.GetByID(ctx, packageID); err != nil {
		return err
	}
	date.ID = ""
	date.PackageID = packageID
	if err := s.repos.DepartureDates.Create(ctx, date); err != nil {
		return err
	}
	afterWrite(ctx, s.invalidator.InvalidatePackages, "departure date create")
	return nil
}

// UpdateDepartureDate overwrites a stored date
func (s *PackageAdminService) UpdateDepartureDate(ctx context.Context, date *domain.DepartureDate) error {
	if err := s.repos.DepartureDates.Update(ctx, date); err != nil {
		return err
	}
	afterWrite(ctx, s.invalidator.InvalidatePackages, "departure date update")
	return nil
}

// DeleteDepartureDate removes a stored date
func (s *PackageAdminService) DeleteDepartureDate(ctx context.Context, id string) error {
	if err := s.repos.DepartureDates.Delete(ctx, id); err != nil {
		return err
	}
	afterWrite(ctx, s.invalidator.InvalidatePackages, "departure date delete")
	return nil
}

func (s *PackageAdminService) createDates(ctx context.Context, packageID string, dates []*domain.DepartureDate) error {
	for _, d := range dates {
		d.ID = ""
		d.PackageID = packageID
		if err := s.repos.DepartureDates.Create(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (s *PackageAdminService) syncDates(ctx context.Context, packageID string, dates []*domain.DepartureDate) error {
	stored, err := s.repos.DepartureDates.ListByPackage(ctx, packageID, false)
	if err != nil {
		return err
	}

	kept := make(map[string]bool, len(dates))
	for _, d := range dates {
		if d.ID != "" {
			kept[d.ID] = true
		}
	}
	for _, d := range stored {
		if kept[d.ID] {
			continue
		}
		if err := s.repos.DepartureDates.Delete(ctx, d.ID); err != nil {
			return err
		}
	}

	for _, d := range dates {
		d.PackageID = packageID
		if d.ID == "" {
			err = s.repos.DepartureDates.Create(ctx, d)
		} else {
			err = s.repos.DepartureDates.Update(ctx, d)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
