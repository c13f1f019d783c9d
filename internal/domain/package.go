package domain

import (
	"context"
	"time"
)

// Package is a sellable travel product
type Package struct {
	ID                  string    `bson:"_id,omitempty" json:"id"`
	Slug                string    `bson:"slug" json:"slug" validate:"omitempty,slug"`
	Name                string    `bson:"name" json:"name" validate:"required"`
	Description         string    `bson:"description" json:"description"`
	LongDescription     *string   `bson:"long_description,omitempty" json:"long_description,omitempty"`
	Destination         string    `bson:"destination" json:"destination" validate:"required"`
	DestinationSlug     string    `bson:"destination_slug" json:"destination_slug" validate:"required,slug"`
	Days                int       `bson:"days" json:"days" validate:"min=1"`
	Nights              int       `bson:"nights" json:"nights" validate:"min=0"`
	GroupSize           *string   `bson:"group_size,omitempty" json:"group_size,omitempty"`
	IsGroupal           bool      `bson:"is_groupal" json:"is_groupal"`
	BasePrice           float64   `bson:"base_price" json:"base_price" validate:"min=0"`
	Currency            string    `bson:"currency" json:"currency" validate:"required,len=3"`
	ImageURL            string    `bson:"image_url" json:"image_url"`
	IncludedServices    []string  `bson:"included_services" json:"included_services"`
	NotIncludedServices []string  `bson:"not_included_services" json:"not_included_services"`
	OptionalExcursions  []string  `bson:"optional_excursions" json:"optional_excursions"`
	IsFeatured          bool      `bson:"is_featured" json:"is_featured"`
	IsOffer             bool      `bson:"is_offer" json:"is_offer"`
	IsSpecial           bool      `bson:"is_special" json:"is_special"`
	SpecialSectionID    *string   `bson:"special_section_id" json:"special_section_id"`
	IsActive            bool      `bson:"is_active" json:"is_active"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}

// DepartureDate is a scheduled instance of a Package with its own price
type DepartureDate struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	PackageID      string    `bson:"package_id" json:"package_id"`
	DepartureDate  string    `bson:"departure_date" json:"departure_date" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD
	Price          float64   `bson:"price" json:"price" validate:"min=0"`
	Currency       string    `bson:"currency" json:"currency" validate:"required,len=3"`
	AvailableSpots *int      `bson:"available_spots,omitempty" json:"available_spots,omitempty"`
	IsSoldOut      bool      `bson:"is_sold_out" json:"is_sold_out"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// ItineraryDay describes one day of a Package's itinerary
type ItineraryDay struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	PackageID   string    `bson:"package_id" json:"package_id"`
	DayNumber   int       `bson:"day_number" json:"day_number" validate:"min=1"`
	Title       string    `bson:"title" json:"title" validate:"required"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// PackageWithDepartures is the admin view of a package
type PackageWithDepartures struct {
	*Package
	DepartureDates []*DepartureDate `json:"departure_dates"`
	Itinerary      []*ItineraryDay  `json:"itinerary_days,omitempty"`
}

// PackageOrder selects the sort applied by PackageRepository.List
type PackageOrder int

const (
	// OrderNewest sorts by created_at descending
	OrderNewest PackageOrder = iota
	// OrderFeaturedFirst sorts featured packages before the rest
	OrderFeaturedFirst
	// OrderNone leaves the store's natural order
	OrderNone
)

// PackageFilter is the set of predicates supported when listing packages.
// Zero values mean "no constraint".
type PackageFilter struct {
	IsActive               *bool
	IsFeatured             *bool
	IsOffer                *bool
	DestinationSlug        string
	ExcludeDestinationSlug string
	ExcludeSlug            string
	SpecialSectionID       string
	Order                  PackageOrder
	Limit                  int64
}

// PackageFlag names a boolean column that the admin panel toggles in place
type PackageFlag string

const (
	FlagActive   PackageFlag = "is_active"
	FlagFeatured PackageFlag = "is_featured"
	FlagOffer    PackageFlag = "is_offer"
)

// Bool returns a pointer to v, for filter fields
func Bool(v bool) *bool {
	return &v
}

// PackageRepository defines operations for managing packages
type PackageRepository interface {
	Create(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, id string) (*Package, error)
	GetBySlug(ctx context.Context, slug string) (*Package, error)
	List(ctx context.Context, filter PackageFilter) ([]*Package, error)
	Count(ctx context.Context, filter PackageFilter) (int64, error)
	Update(ctx context.Context, pkg *Package) error
	SetFlag(ctx context.Context, id string, flag PackageFlag, value bool) error
	Delete(ctx context.Context, id string) error
	// DetachFromSection clears special_section_id and is_special on every package of the section
	DetachFromSection(ctx context.Context, sectionID string) (int64, error)
	// AttachToSection points the given packages at the section and marks them special
	AttachToSection(ctx context.Context, sectionID string, packageIDs []string) error
}

// DepartureDateRepository defines operations for departure dates
type DepartureDateRepository interface {
	Create(ctx context.Context, date *DepartureDate) error
	Update(ctx context.Context, date *DepartureDate) error
	Delete(ctx context.Context, id string) error
	ListByPackage(ctx context.Context, packageID string, activeOnly bool) ([]*DepartureDate, error)
	// ListByPackageIDs returns the dates of all the given packages in a single
	// round trip, ordered by departure date ascending.
	ListByPackageIDs(ctx context.Context, packageIDs []string, activeOnly bool) ([]*DepartureDate, error)
	DeleteByPackage(ctx context.Context, packageID string) error
}

// ItineraryRepository defines operations for itinerary days
type ItineraryRepository interface {
	ListByPackage(ctx context.Context, packageID string) ([]*ItineraryDay, error)
	ReplaceForPackage(ctx context.Context, packageID string, days []*ItineraryDay) error
	DeleteByPackage(ctx context.Context, packageID string) error
}
