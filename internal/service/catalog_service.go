package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tigoviajes/catalog/internal/cache"
	"github.com/tigoviajes/catalog/internal/display"
	"github.com/tigoviajes/catalog/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Cache names of the public read operations
const (
	keyHeaderData            = "header-data"
	keyFeaturedPackages      = "featured-packages"
	keyOfferPackages         = "offer-packages"
	keyActiveSection         = "active-section"
	keyPackagesByDestination = "packages-by-destination"
	keyDestinationBySlug     = "destination-by-slug"
	keyPackageByID           = "package-by-id"
	keyPackageBySlug         = "package-by-slug"
	keyRelatedPackages       = "related-packages"
	keySectionBySlug         = "section-by-slug"
	keySpecialPackages       = "special-packages"
)

const (
	homeListLimit       = 6
	DefaultRelatedLimit = 3
)

var (
	tagsPackages = []string{cache.TagPackages}
	tagsSections = []string{cache.TagSections, cache.TagPackages}
	tagsHeader   = []string{cache.TagHeaderData, cache.TagDestinations, cache.TagSections}
	tagsDest     = []string{cache.TagDestinations}
)

// CatalogService serves the public site. Every read goes through the
// read-through cache; a missing row yields nil or an empty list, and store
// failures are returned to the caller.
type CatalogService struct {
	repos Repositories
	cache cache.Service
	ttl   time.Duration
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repos Repositories, c cache.Service, ttl time.Duration) *CatalogService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &CatalogService{repos: repos, cache: c, ttl: ttl}
}

// HeaderData returns active destinations and sections for the navigation
func (s *CatalogService) HeaderData(ctx context.Context) (*domain.HeaderData, error) {
	return cache.GetOrPopulate(ctx, s.cache, keyHeaderData, s.ttl, tagsHeader, func(ctx context.Context) (*domain.HeaderData, error) {
		var (
			destinations []*domain.Destination
			sections     []*domain.SpecialSection
		)

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			destinations, err = s.repos.Destinations.List(gCtx, true)
			return err
		})
		g.Go(func() error {
			var err error
			sections, err = s.repos.Sections.List(gCtx, true, 0)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to load header data: %w", err)
		}

		out := &domain.HeaderData{
			Destinations:    make([]domain.HeaderDestination, 0, len(destinations)),
			SpecialSections: make([]domain.HeaderSection, 0, len(sections)),
		}
		for _, d := range destinations {
			out.Destinations = append(out.Destinations, domain.HeaderDestination{Name: d.Name, Slug: d.Slug, ImageURL: d.ImageURL})
		}
		for _, sec := range sections {
			out.SpecialSections = append(out.SpecialSections, domain.HeaderSection{
				Slug: sec.Slug, Title: sec.Title,
				NavLabel: sec.NavLabel, NavIconName: sec.NavIconName, NavColor: sec.NavColor,
			})
		}
		return out, nil
	})
}

// FeaturedPackages returns up to six active featured packages, newest first
func (s *CatalogService) FeaturedPackages(ctx context.Context) ([]domain.TravelPackageDisplay, error) {
	return cache.GetOrPopulate(ctx, s.cache, keyFeaturedPackages, s.ttl, tagsPackages, func(ctx context.Context) ([]domain.TravelPackageDisplay, error) {
		return s.listWithDates(ctx, domain.PackageFilter{
			IsActive:   domain.Bool(true),
			IsFeatured: domain.Bool(true),
			Order:      domain.OrderNewest,
			Limit:      homeListLimit,
		})
	})
}

// OfferPackages returns up to six active offer packages, newest first
func (s *CatalogService) OfferPackages(ctx context.Context) ([]domain.TravelPackageDisplay, error) {
	return cache.GetOrPopulate(ctx, s.cache, keyOfferPackages, s.ttl, tagsPackages, func(ctx context.Context) ([]domain.TravelPackageDisplay, error) {
		return s.listWithDates(ctx, domain.PackageFilter{
			IsActive: domain.Bool(true),
			IsOffer:  domain.Bool(true),
			Order:    domain.OrderNewest,
			Limit:    homeListLimit,
		})
	})
}

// PackagesByDestination returns the active packages of a destination, featured first
func (s *CatalogService) PackagesByDestination(ctx context.Context, destinationSlug string) ([]domain.TravelPackageDisplay, error) {
	key := cache.Key(keyPackagesByDestination, destinationSlug)
	return cache.GetOrPopulate(ctx, s.cache, key, s.ttl, tagsPackages, func(ctx context.Context) ([]domain.TravelPackageDisplay, error) {
		return s.listWithDates(ctx, domain.PackageFilter{
			IsActive:        domain.Bool(true),
			DestinationSlug: destinationSlug,
			Order:           domain.OrderFeaturedFirst,
		})
	})
}

// DestinationBySlug returns an active destination, or nil
func (s *CatalogService) DestinationBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	key := cache.Key(keyDestinationBySlug, slug)
	return cache.GetOrPopulate(ctx, s.cache, key, s.ttl, tagsDest, func(ctx context.Context) (*domain.Destination, error) {
		dest, err := s.repos.Destinations.GetBySlug(ctx, slug)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !dest.IsActive {
			return nil, nil
		}
		return dest, nil
	})
}

// PackageByID returns an active package with its dates and itinerary, or nil
func (s *CatalogService) PackageByID(ctx context.Context, id string) (*domain.TravelPackageDisplay, error) {
	key := cache.Key(keyPackageByID, id)
	return cache.GetOrPopulate(ctx, s.cache, key, s.ttl, tagsPackages, func(ctx context.Context) (*domain.TravelPackageDisplay, error) {
		return s.packageDetail(ctx, s.repos.Packages.GetByID, id)
	})
}

// PackageBySlug returns an active package with its dates and itinerary, or nil
func (s *CatalogService) PackageBySlug(ctx context.Context, slug string) (*domain.TravelPackageDisplay, error) {
	key := cache.Key(keyPackageBySlug, slug)
	return cache.GetOrPopulate(ctx, s.cache, key, s.ttl, tagsPackages, func(ctx context.Context) (*domain.TravelPackageDisplay, error) {
		return s.packageDetail(ctx, s.repos.Packages.GetBySlug, slug)
	})
}

// RelatedPackages returns up to limit active packages from the same destination,
// excluding currentSlug, topped up with featured packages from other destinations.
// A package without a destination slug has no siblings and gets only the top-up.
func (s *CatalogService) RelatedPackages(ctx context.Context, currentSlug, destinationSlug string, limit int) ([]domain.TravelPackageDisplay, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	key := cache.Key(keyRelatedPackages, currentSlug, destinationSlug, limit)
	return cache.GetOrPopulate(ctx, s.cache, key, s.ttl, tagsPackages, func(ctx context.Context) ([]domain.TravelPackageDisplay, error) {
		var siblings []*domain.Package
		if destinationSlug != "" {
			var err error
			siblings, err = s.repos.Packages.List(ctx, domain.PackageFilter{
				IsActive:        domain.Bool(true),
				DestinationSlug: destinationSlug,
				ExcludeSlug:     currentSlug,
				Order:           domain.OrderNone,
				Limit:           int64(limit),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to list related packages: %w", err)
			}
		}

		related := siblings
		if len(siblings) < limit {
			others, err := s.repos.Packages.List(ctx, domain.PackageFilter{
				IsActive:               domain.Bool(true),
				IsFeatured:             domain.Bool(true),
				ExcludeDestinationSlug: destinationSlug,
				ExcludeSlug:            currentSlug,
				Order:                  domain.OrderNone,
				Limit:                  int64(limit - len(siblings)),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to list featured packages: %w", err)
			}
			related = append(related, others...)
		}

		out := make([]domain.TravelPackageDisplay, 0, len(related))
		for _, pkg := range related {
			out = append(out, display.ToDisplay(pkg, nil, nil))
		}
		return out, nil
	})
}

// ActiveSection returns the active section with the lowest display order, or nil
func (s *CatalogService) ActiveSection(ctx context.Context) (*domain.SectionPage, error) {
	return cache.GetOrPopulate(ctx, s.cache, keyActiveSection, s.ttl, tagsSections, func(ctx context.Context) (*domain.SectionPage, error) {
		sections, err := s.repos.Sections.List(ctx, true, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to load active section: %w", err)
		}
		if len(sections) == 0 {
			return nil, nil
		}
		return s.sectionPage(ctx, sections[0])
	})
}

// SectionBySlug returns an active section with its features and packages, or nil
func (s *CatalogService) SectionBySlug(ctx context.Context, slug string) (*domain.SectionPage, error) {
	key := cache.Key(keySectionBySlug, slug)
	return cache.GetOrPopulate(ctx, s.cache, key, s.ttl, tagsSections, func(ctx context.Context) (*domain.SectionPage, error) {
		section, err := s.repos.Sections.GetBySlug(ctx, slug)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !section.IsActive {
			return nil, nil
		}
		return s.sectionPage(ctx, section)
	})
}

// SpecialPackages returns the active packages attached to a section, featured first
func (s *CatalogService) SpecialPackages(ctx context.Context, sectionSlug string) ([]domain.TravelPackageDisplay, error) {
	key := cache.Key(keySpecialPackages, sectionSlug)
	return cache.GetOrPopulate(ctx, s.cache, key, s.ttl, tagsSections, func(ctx context.Context) ([]domain.TravelPackageDisplay, error) {
		section, err := s.repos.Sections.GetBySlug(ctx, sectionSlug)
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.TravelPackageDisplay{}, nil
		}
		if err != nil {
			return nil, err
		}
		return s.listWithDates(ctx, domain.PackageFilter{
			IsActive:         domain.Bool(true),
			SpecialSectionID: section.ID,
			Order:            domain.OrderFeaturedFirst,
		})
	})
}

// listWithDates lists packages then attaches their dates with one bulk query
func (s *CatalogService) listWithDates(ctx context.Context, filter domain.PackageFilter) ([]domain.TravelPackageDisplay, error) {
	pkgs, err := s.repos.Packages.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	dates, err := departureDatesByPackage(ctx, s.repos.DepartureDates, packageIDs(pkgs), true, listingDateCap)
	if err != nil {
		return nil, err
	}
	return display.ToDisplayList(pkgs, dates), nil
}

func (s *CatalogService) packageDetail(ctx context.Context, get func(context.Context, string) (*domain.Package, error), ref string) (*domain.TravelPackageDisplay, error) {
	pkg, err := get(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, nil
	}

	var (
		dates     []*domain.DepartureDate
		itinerary []*domain.ItineraryDay
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dates, err = s.repos.DepartureDates.ListByPackage(gCtx, pkg.ID, true)
		return err
	})
	g.Go(func() error {
		var err error
		itinerary, err = s.repos.Itinerary.ListByPackage(gCtx, pkg.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load package details: %w", err)
	}

	out := display.ToDisplay(pkg, dates, itinerary)
	return &out, nil
}

func (s *CatalogService) sectionPage(ctx context.Context, section *domain.SpecialSection) (*domain.SectionPage, error) {
	var (
		features []*domain.SectionFeature
		pkgs     []*domain.Package
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		features, err = s.repos.Features.ListBySection(gCtx, section.ID)
		return err
	})
	g.Go(func() error {
		var err error
		pkgs, err = s.repos.Packages.List(gCtx, domain.PackageFilter{
			IsActive:         domain.Bool(true),
			SpecialSectionID: section.ID,
			Order:            domain.OrderFeaturedFirst,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load section %s: %w", section.Slug, err)
	}

	dates, err := departureDatesByPackage(ctx, s.repos.DepartureDates, packageIDs(pkgs), true, listingDateCap)
	if err != nil {
		return nil, err
	}

	return display.ToSectionPage(&domain.SpecialSectionFull{
		SpecialSection: *section,
		Features:       features,
		Packages:       pkgs,
	}, dates), nil
}
