package domain

import (
	"context"
	"time"
)

// MaxSectionFeatures is the number of feature tiles a section page shows
const MaxSectionFeatures = 4

// SpecialSection is a themed promotional grouping of packages
type SpecialSection struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	Slug               string    `bson:"slug" json:"slug" validate:"omitempty,slug"`
	Title              string    `bson:"title" json:"title" validate:"required"`
	Subtitle           *string   `bson:"subtitle,omitempty" json:"subtitle"`
	BadgeText          *string   `bson:"badge_text,omitempty" json:"badge_text"`
	BackgroundImageURL *string   `bson:"background_image_url,omitempty" json:"background_image_url"`
	PromoTitle         *string   `bson:"promo_title,omitempty" json:"promo_title"`
	PromoDescription   *string   `bson:"promo_description,omitempty" json:"promo_description"`
	CTAText            *string   `bson:"cta_text,omitempty" json:"cta_text"`
	CTAURL             *string   `bson:"cta_url,omitempty" json:"cta_url"`
	NavLabel           *string   `bson:"nav_label,omitempty" json:"nav_label"`
	NavIconName        *string   `bson:"nav_icon_name,omitempty" json:"nav_icon_name"`
	NavColor           *string   `bson:"nav_color,omitempty" json:"nav_color"`
	IsActive           bool      `bson:"is_active" json:"is_active"`
	DisplayOrder       int       `bson:"display_order" json:"display_order"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}

// SectionFeature is one icon tile of a special section
type SectionFeature struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	SectionID    string    `bson:"section_id" json:"section_id"`
	IconName     string    `bson:"icon_name" json:"icon_name"`
	Title        string    `bson:"title" json:"title" validate:"required"`
	Description  string    `bson:"description" json:"description"`
	DisplayOrder int       `bson:"display_order" json:"display_order"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// SpecialSectionFull is a section with its features and attached packages
type SpecialSectionFull struct {
	SpecialSection
	Features []*SectionFeature `json:"features"`
	Packages []*Package        `json:"packages"`
}

// HeaderDestination is the slice of a destination the navigation header needs
type HeaderDestination struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ImageURL *string `json:"image_url"`
}

// HeaderSection is the slice of a section the navigation header needs
type HeaderSection struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	NavLabel    *string `json:"nav_label"`
	NavIconName *string `json:"nav_icon_name"`
	NavColor    *string `json:"nav_color"`
}

// HeaderData feeds the site navigation
type HeaderData struct {
	Destinations    []HeaderDestination `json:"destinations"`
	SpecialSections []HeaderSection     `json:"special_sections"`
}

// NavLink is a resolved navigation button for a special section
type NavLink struct {
	Label    string `json:"label"`
	Href     string `json:"href"`
	IconName string `json:"icon_name"`
	Color    string `json:"color"`
}

// NavLink resolves label, icon and color defaults for the header button
func (s HeaderSection) NavLink() NavLink {
	label := s.Title
	if s.NavLabel != nil && *s.NavLabel != "" {
		label = *s.NavLabel
	}
	color := DefaultNavColor
	if s.NavColor != nil && *s.NavColor != "" {
		color = *s.NavColor
	}
	icon := ""
	if s.NavIconName != nil {
		icon = *s.NavIconName
	}
	return NavLink{
		Label:    label,
		Href:     "/temporada/" + s.Slug,
		IconName: ResolveNavIcon(icon),
		Color:    color,
	}
}

// SectionRepository defines operations for special sections
type SectionRepository interface {
	Create(ctx context.Context, section *SpecialSection) error
	GetByID(ctx context.Context, id string) (*SpecialSection, error)
	GetBySlug(ctx context.Context, slug string) (*SpecialSection, error)
	// List orders by display_order ascending; limit <= 0 means no limit
	List(ctx context.Context, activeOnly bool, limit int64) ([]*SpecialSection, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, section *SpecialSection) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// SectionFeatureRepository defines operations for section features
type SectionFeatureRepository interface {
	ListBySection(ctx context.Context, sectionID string) ([]*SectionFeature, error)
	ReplaceForSection(ctx context.Context, sectionID string, features []*SectionFeature) error
	DeleteBySection(ctx context.Context, sectionID string) error
}
