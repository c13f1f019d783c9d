package domain

// TravelPackageDisplay is the single presentation shape of a package.
// Store records and the static fallback catalog are both converted into it.
type TravelPackageDisplay struct {
	ID                  string             `json:"id"`
	Slug                string             `json:"slug"`
	Name                string             `json:"name"`
	Description         string             `json:"description"`
	LongDescription     string             `json:"long_description,omitempty"`
	Destination         string             `json:"destination"`
	DestinationSlug     string             `json:"destination_slug"`
	Price               string             `json:"price"`
	Duration            string             `json:"duration"`
	Nights              int                `json:"nights"`
	GroupSize           string             `json:"group_size,omitempty"`
	Dates               []string           `json:"dates"`
	ImageURL            string             `json:"image_url"`
	IsGroupal           bool               `json:"is_groupal"`
	IsFeatured          bool               `json:"is_featured"`
	IsOffer             bool               `json:"is_offer"`
	IncludedServices    []string           `json:"included_services"`
	NotIncludedServices []string           `json:"not_included_services"`
	AdditionalServices  []string           `json:"additional_services"`
	ItineraryDays       []DisplayItinerary `json:"itinerary_days,omitempty"`
}

// DisplayItinerary is one itinerary day as rendered on the package page
type DisplayItinerary struct {
	DayNumber   int    `json:"day_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SectionFeatureDisplay is a feature with its icon resolved
type SectionFeatureDisplay struct {
	IconName    string `json:"icon_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SectionPage is a special section ready for rendering
type SectionPage struct {
	SpecialSection
	Features []SectionFeatureDisplay `json:"features"`
	Packages []TravelPackageDisplay  `json:"packages"`
}

// DestinationProfile is a destination ready for its landing page
type DestinationProfile struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	HeroImage   string   `json:"hero_image"`
	Highlights  []string `json:"highlights"`
}
