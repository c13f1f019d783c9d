package handler

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tigoviajes/catalog/internal/domain"
	"github.com/tigoviajes/catalog/internal/service"
)

// Stub repositories: reads are empty and every call returns err when set.

type stubPackages struct{ err error }

func (s stubPackages) Create(context.Context, *domain.Package) error { return s.err }
func (s stubPackages) GetByID(context.Context, string) (*domain.Package, error) {
	return nil, s.notFound()
}
func (s stubPackages) GetBySlug(context.Context, string) (*domain.Package, error) {
	return nil, s.notFound()
}
func (s stubPackages) List(context.Context, domain.PackageFilter) ([]*domain.Package, error) {
	return nil, s.err
}
func (s stubPackages) Count(context.Context, domain.PackageFilter) (int64, error) { return 0, s.err }
func (s stubPackages) Update(context.Context, *domain.Package) error              { return s.err }
func (s stubPackages) SetFlag(context.Context, string, domain.PackageFlag, bool) error {
	return s.err
}
func (s stubPackages) Delete(context.Context, string) error { return s.err }
func (s stubPackages) DetachFromSection(context.Context, string) (int64, error) {
	return 0, s.err
}
func (s stubPackages) AttachToSection(context.Context, string, []string) error { return s.err }

func (s stubPackages) notFound() error {
	if s.err != nil {
		return s.err
	}
	return domain.ErrNotFound
}

type stubDates struct{ err error }

func (s stubDates) Create(context.Context, *domain.DepartureDate) error { return s.err }
func (s stubDates) Update(context.Context, *domain.DepartureDate) error { return s.err }
func (s stubDates) Delete(context.Context, string) error                { return s.err }
func (s stubDates) ListByPackage(context.Context, string, bool) ([]*domain.DepartureDate, error) {
	return nil, s.err
}
func (s stubDates) ListByPackageIDs(context.Context, []string, bool) ([]*domain.DepartureDate, error) {
	return nil, s.err
}
func (s stubDates) DeleteByPackage(context.Context, string) error { return s.err }

type stubItinerary struct{ err error }

func (s stubItinerary) ListByPackage(context.Context, string) ([]*domain.ItineraryDay, error) {
	return nil, s.err
}
func (s stubItinerary) ReplaceForPackage(context.Context, string, []*domain.ItineraryDay) error {
	return s.err
}
func (s stubItinerary) DeleteByPackage(context.Context, string) error { return s.err }

type stubDestinations struct{ err error }

func (s stubDestinations) Create(context.Context, *domain.Destination) error { return s.err }
func (s stubDestinations) GetByID(context.Context, string) (*domain.Destination, error) {
	return nil, stubPackages(s).notFound()
}
func (s stubDestinations) GetBySlug(context.Context, string) (*domain.Destination, error) {
	return nil, stubPackages(s).notFound()
}
func (s stubDestinations) List(context.Context, bool) ([]*domain.Destination, error) {
	return nil, s.err
}
func (s stubDestinations) Count(context.Context, bool) (int64, error)         { return 0, s.err }
func (s stubDestinations) Update(context.Context, *domain.Destination) error  { return s.err }
func (s stubDestinations) SetActive(context.Context, string, bool) error      { return s.err }
func (s stubDestinations) Delete(context.Context, string) error               { return s.err }

type stubSections struct{ err error }

func (s stubSections) Create(context.Context, *domain.SpecialSection) error { return s.err }
func (s stubSections) GetByID(context.Context, string) (*domain.SpecialSection, error) {
	return nil, stubPackages(s).notFound()
}
func (s stubSections) GetBySlug(context.Context, string) (*domain.SpecialSection, error) {
	return nil, stubPackages(s).notFound()
}
func (s stubSections) List(context.Context, bool, int64) ([]*domain.SpecialSection, error) {
	return nil, s.err
}
func (s stubSections) Count(context.Context, bool) (int64, error)           { return 0, s.err }
func (s stubSections) Update(context.Context, *domain.SpecialSection) error { return s.err }
func (s stubSections) SetActive(context.Context, string, bool) error        { return s.err }
func (s stubSections) Delete(context.Context, string) error                 { return s.err }

type stubFeatures struct{ err error }

func (s stubFeatures) ListBySection(context.Context, string) ([]*domain.SectionFeature, error) {
	return nil, s.err
}
func (s stubFeatures) ReplaceForSection(context.Context, string, []*domain.SectionFeature) error {
	return s.err
}
func (s stubFeatures) DeleteBySection(context.Context, string) error { return s.err }

// stubRepos returns an empty content store, failing every call with err when non-nil
func stubRepos(err error) service.Repositories {
	return service.Repositories{
		Packages:       stubPackages{err: err},
		DepartureDates: stubDates{err: err},
		Itinerary:      stubItinerary{err: err},
		Destinations:   stubDestinations{err: err},
		Sections:       stubSections{err: err},
		Features:       stubFeatures{err: err},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
