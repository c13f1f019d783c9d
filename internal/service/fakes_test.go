package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tigoviajes/catalog/internal/domain"
)

// store is an in-memory content store that counts reads per operation
type store struct {
	mu       sync.Mutex
	seq      int
	clock    time.Time
	packages map[string]*domain.Package
	dates    map[string]*domain.DepartureDate
	days     map[string][]*domain.ItineraryDay
	dests    map[string]*domain.Destination
	sections map[string]*domain.SpecialSection
	features map[string][]*domain.SectionFeature

	packageLists atomic.Int32
	bulkDates    atomic.Int32
	destLists    atomic.Int32
	sectionGets  atomic.Int32
	failLists    atomic.Bool
	failChildren atomic.Bool
}

func newStore() *store {
	return &store{
		clock:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		packages: map[string]*domain.Package{},
		dates:    map[string]*domain.DepartureDate{},
		days:     map[string][]*domain.ItineraryDay{},
		dests:    map[string]*domain.Destination{},
		sections: map[string]*domain.SpecialSection{},
		features: map[string][]*domain.SectionFeature{},
	}
}

func (s *store) repos() Repositories {
	return Repositories{
		Packages:       fakePackages{s},
		DepartureDates: fakeDates{s},
		Itinerary:      fakeItinerary{s},
		Destinations:   fakeDestinations{s},
		Sections:       fakeSections{s},
		Features:       fakeFeatures{s},
	}
}

// next returns a fresh id and a strictly increasing timestamp; callers hold mu
func (s *store) next(prefix string) (string, time.Time) {
	s.seq++
	s.clock = s.clock.Add(time.Minute)
	return fmt.Sprintf("%s-%03d", prefix, s.seq), s.clock
}

// addPackage stores a package directly, bypassing the services
func (s *store) addPackage(p *domain.Package) *domain.Package {
	if err := (fakePackages{s}).Create(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}

func (s *store) addDate(packageID, date string, active bool) {
	d := &domain.DepartureDate{PackageID: packageID, DepartureDate: date, Price: 1000, Currency: "USD", IsActive: active}
	if err := (fakeDates{s}).Create(context.Background(), d); err != nil {
		panic(err)
	}
}

type fakePackages struct{ s *store }

func (f fakePackages) Create(_ context.Context, p *domain.Package) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.packages {
		if existing.Slug == p.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	id, now := f.s.next("pkg")
	if p.ID == "" {
		p.ID = id
	}
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	f.s.packages[p.ID] = &cp
	return nil
}

func (f fakePackages) GetByID(_ context.Context, id string) (*domain.Package, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.packages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakePackages) GetBySlug(_ context.Context, slug string) (*domain.Package, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.packages {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func matches(p *domain.Package, f domain.PackageFilter) bool {
	switch {
	case f.IsActive != nil && p.IsActive != *f.IsActive,
		f.IsFeatured != nil && p.IsFeatured != *f.IsFeatured,
		f.IsOffer != nil && p.IsOffer != *f.IsOffer,
		f.DestinationSlug != "" && p.DestinationSlug != f.DestinationSlug,
		f.ExcludeDestinationSlug != "" && p.DestinationSlug == f.ExcludeDestinationSlug,
		f.ExcludeSlug != "" && p.Slug == f.ExcludeSlug,
		f.SpecialSectionID != "" && (p.SpecialSectionID == nil || *p.SpecialSectionID != f.SpecialSectionID):
		return false
	}
	return true
}

func (f fakePackages) List(_ context.Context, filter domain.PackageFilter) ([]*domain.Package, error) {
	f.s.packageLists.Add(1)
	if f.s.failLists.Load() {
		return nil, fmt.Errorf("store unavailable")
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	out := []*domain.Package{}
	for _, p := range f.s.packages {
		if matches(p, filter) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		switch filter.Order {
		case domain.OrderFeaturedFirst:
			if out[i].IsFeatured != out[j].IsFeatured {
				return out[i].IsFeatured
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		case domain.OrderNewest:
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && int64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f fakePackages) Count(ctx context.Context, filter domain.PackageFilter) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, p := range f.s.packages {
		if matches(p, filter) {
			n++
		}
	}
	return n, nil
}

func (f fakePackages) Update(_ context.Context, p *domain.Package) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.packages[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.s.packages[p.ID] = &cp
	return nil
}

func (f fakePackages) SetFlag(_ context.Context, id string, flag domain.PackageFlag, value bool) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.packages[id]
	if !ok {
		return domain.ErrNotFound
	}
	switch flag {
	case domain.FlagActive:
		p.IsActive = value
	case domain.FlagFeatured:
		p.IsFeatured = value
	case domain.FlagOffer:
		p.IsOffer = value
	default:
		return fmt.Errorf("unknown package flag %q", flag)
	}
	return nil
}

func (f fakePackages) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.packages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.packages, id)
	return nil
}

func (f fakePackages) DetachFromSection(_ context.Context, sectionID string) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, p := range f.s.packages {
		if p.SpecialSectionID != nil && *p.SpecialSectionID == sectionID {
			p.SpecialSectionID = nil
			p.IsSpecial = false
			n++
		}
	}
	return n, nil
}

func (f fakePackages) AttachToSection(_ context.Context, sectionID string, ids []string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, id := range ids {
		if p, ok := f.s.packages[id]; ok {
			sid := sectionID
			p.SpecialSectionID = &sid
			p.IsSpecial = true
		}
	}
	return nil
}

type fakeDates struct{ s *store }

func (f fakeDates) Create(_ context.Context, d *domain.DepartureDate) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	id, now := f.s.next("date")
	d.ID = id
	d.CreatedAt, d.UpdatedAt = now, now
	cp := *d
	f.s.dates[id] = &cp
	return nil
}

func (f fakeDates) Update(_ context.Context, d *domain.DepartureDate) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.dates[d.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	f.s.dates[d.ID] = &cp
	return nil
}

func (f fakeDates) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.dates[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.dates, id)
	return nil
}

func (f fakeDates) collect(keep func(*domain.DepartureDate) bool) []*domain.DepartureDate {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*domain.DepartureDate{}
	for _, d := range f.s.dates {
		if keep(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DepartureDate != out[j].DepartureDate {
			return out[i].DepartureDate < out[j].DepartureDate
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f fakeDates) ListByPackage(_ context.Context, packageID string, activeOnly bool) ([]*domain.DepartureDate, error) {
	return f.collect(func(d *domain.DepartureDate) bool {
		return d.PackageID == packageID && (!activeOnly || d.IsActive)
	}), nil
}

func (f fakeDates) ListByPackageIDs(_ context.Context, ids []string, activeOnly bool) ([]*domain.DepartureDate, error) {
	f.s.bulkDates.Add(1)
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return f.collect(func(d *domain.DepartureDate) bool {
		return want[d.PackageID] && (!activeOnly || d.IsActive)
	}), nil
}

func (f fakeDates) DeleteByPackage(_ context.Context, packageID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, d := range f.s.dates {
		if d.PackageID == packageID {
			delete(f.s.dates, id)
		}
	}
	return nil
}

type fakeItinerary struct{ s *store }

func (f fakeItinerary) ListByPackage(_ context.Context, packageID string) ([]*domain.ItineraryDay, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return append([]*domain.ItineraryDay{}, f.s.days[packageID]...), nil
}

func (f fakeItinerary) ReplaceForPackage(_ context.Context, packageID string, days []*domain.ItineraryDay) error {
	if f.s.failChildren.Load() {
		return fmt.Errorf("store unavailable")
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.days[packageID] = append([]*domain.ItineraryDay{}, days...)
	return nil
}

func (f fakeItinerary) DeleteByPackage(_ context.Context, packageID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.days, packageID)
	return nil
}

type fakeDestinations struct{ s *store }

func (f fakeDestinations) Create(_ context.Context, d *domain.Destination) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	id, now := f.s.next("dest")
	d.ID = id
	d.CreatedAt, d.UpdatedAt = now, now
	cp := *d
	f.s.dests[id] = &cp
	return nil
}

func (f fakeDestinations) GetByID(_ context.Context, id string) (*domain.Destination, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.dests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f fakeDestinations) GetBySlug(_ context.Context, slug string) (*domain.Destination, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, d := range f.s.dests {
		if d.Slug == slug {
			cp := *d
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeDestinations) List(_ context.Context, activeOnly bool) ([]*domain.Destination, error) {
	f.s.destLists.Add(1)
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*domain.Destination{}
	for _, d := range f.s.dests {
		if !activeOnly || d.IsActive {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (f fakeDestinations) Count(ctx context.Context, activeOnly bool) (int64, error) {
	list, err := f.List(ctx, activeOnly)
	return int64(len(list)), err
}

func (f fakeDestinations) Update(_ context.Context, d *domain.Destination) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.dests[d.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	f.s.dests[d.ID] = &cp
	return nil
}

func (f fakeDestinations) SetActive(_ context.Context, id string, active bool) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.dests[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.IsActive = active
	return nil
}

func (f fakeDestinations) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.dests[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.dests, id)
	return nil
}

type fakeSections struct{ s *store }

func (f fakeSections) Create(_ context.Context, sec *domain.SpecialSection) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	id, now := f.s.next("sec")
	sec.ID = id
	sec.CreatedAt, sec.UpdatedAt = now, now
	cp := *sec
	f.s.sections[id] = &cp
	return nil
}

func (f fakeSections) GetByID(_ context.Context, id string) (*domain.SpecialSection, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sec, ok := f.s.sections[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sec
	return &cp, nil
}

func (f fakeSections) GetBySlug(_ context.Context, slug string) (*domain.SpecialSection, error) {
	f.s.sectionGets.Add(1)
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, sec := range f.s.sections {
		if sec.Slug == slug {
			cp := *sec
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeSections) List(_ context.Context, activeOnly bool, limit int64) ([]*domain.SpecialSection, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*domain.SpecialSection{}
	for _, sec := range f.s.sections {
		if !activeOnly || sec.IsActive {
			cp := *sec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f fakeSections) Count(ctx context.Context, activeOnly bool) (int64, error) {
	list, err := f.List(ctx, activeOnly, 0)
	return int64(len(list)), err
}

func (f fakeSections) Update(_ context.Context, sec *domain.SpecialSection) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.sections[sec.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *sec
	f.s.sections[sec.ID] = &cp
	return nil
}

func (f fakeSections) SetActive(_ context.Context, id string, active bool) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sec, ok := f.s.sections[id]
	if !ok {
		return domain.ErrNotFound
	}
	sec.IsActive = active
	return nil
}

func (f fakeSections) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.sections[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.sections, id)
	return nil
}

type fakeFeatures struct{ s *store }

func (f fakeFeatures) ListBySection(_ context.Context, sectionID string) ([]*domain.SectionFeature, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return append([]*domain.SectionFeature{}, f.s.features[sectionID]...), nil
}

func (f fakeFeatures) ReplaceForSection(_ context.Context, sectionID string, features []*domain.SectionFeature) error {
	if f.s.failChildren.Load() {
		return fmt.Errorf("store unavailable")
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]*domain.SectionFeature, 0, len(features))
	for i, ft := range features {
		cp := *ft
		cp.SectionID = sectionID
		cp.DisplayOrder = i
		out = append(out, &cp)
	}
	f.s.features[sectionID] = out
	return nil
}

func (f fakeFeatures) DeleteBySection(_ context.Context, sectionID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.features, sectionID)
	return nil
}
