// Package display turns raw catalog records into the shape the site renders.
// Everything here is pure: no I/O, no shared state, inputs are never mutated.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/tigoviajes/catalog/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyARS is the only currency formatted with Argentine grouping
const CurrencyARS = "ARS"

const isoDate = "2006-01-02"

var (
	tagARS   = language.MustParse("es-AR")
	tagOther = language.AmericanEnglish
)

var monthAbbr = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// FormatPrice renders "ARS 440.000" for pesos and "<CODE> 1,890" for anything else
func FormatPrice(price float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	tag := tagOther
	if code == CurrencyARS {
		tag = tagARS
	}
	if code == "" {
		code = "USD"
	}
	p := message.NewPrinter(tag)
	return code + " " + p.Sprint(number.Decimal(price))
}

// FormatDate renders an ISO calendar date as "12 Ene 2026".
// Values that are not ISO dates are returned unchanged.
func FormatDate(isoDateStr string) string {
	s := strings.TrimSpace(isoDateStr)
	if len(s) > len(isoDate) {
		s = s[:len(isoDate)]
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return isoDateStr
	}
	return fmt.Sprintf("%d %s %d", t.Day(), monthAbbr[t.Month()-1], t.Year())
}

// FormatDuration renders "8 días / 7 noches"
func FormatDuration(days, nights int) string {
	return fmt.Sprintf("%d días / %d noches", days, nights)
}

// ToDisplay converts a stored package plus its departure dates and itinerary
// into the presentation record. dates and itinerary may be nil.
func ToDisplay(pkg *domain.Package, dates []*domain.DepartureDate, itinerary []*domain.ItineraryDay) domain.TravelPackageDisplay {
	if pkg == nil {
		return domain.TravelPackageDisplay{Dates: []string{}}
	}

	out := domain.TravelPackageDisplay{
		ID:                  pkg.ID,
		Slug:                pkg.Slug,
		Name:                pkg.Name,
		Description:         pkg.Description,
		LongDescription:     deref(pkg.LongDescription),
		Destination:         pkg.Destination,
		DestinationSlug:     pkg.DestinationSlug,
		Price:               FormatPrice(pkg.BasePrice, pkg.Currency),
		Duration:            FormatDuration(pkg.Days, pkg.Nights),
		Nights:              pkg.Nights,
		GroupSize:           deref(pkg.GroupSize),
		Dates:               make([]string, 0, len(dates)),
		ImageURL:            pkg.ImageURL,
		IsGroupal:           pkg.IsGroupal,
		IsFeatured:          pkg.IsFeatured,
		IsOffer:             pkg.IsOffer,
		IncludedServices:    copyStrings(pkg.IncludedServices),
		NotIncludedServices: copyStrings(pkg.NotIncludedServices),
		AdditionalServices:  copyStrings(pkg.OptionalExcursions),
	}

	for _, d := range dates {
		if d == nil {
			continue
		}
		out.Dates = append(out.Dates, FormatDate(d.DepartureDate))
	}

	if len(itinerary) > 0 {
		out.ItineraryDays = make([]domain.DisplayItinerary, 0, len(itinerary))
		for _, day := range itinerary {
			if day == nil {
				continue
			}
			out.ItineraryDays = append(out.ItineraryDays, domain.DisplayItinerary{
				DayNumber:   day.DayNumber,
				Title:       day.Title,
				Description: day.Description,
			})
		}
	}

	return out
}

// ToDisplayList converts packages using a package id -> dates mapping
func ToDisplayList(pkgs []*domain.Package, datesByPackage map[string][]*domain.DepartureDate) []domain.TravelPackageDisplay {
	out := make([]domain.TravelPackageDisplay, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, ToDisplay(pkg, datesByPackage[pkg.ID], nil))
	}
	return out
}

// ToSectionPage resolves feature icons and converts the attached packages
func ToSectionPage(section *domain.SpecialSectionFull, datesByPackage map[string][]*domain.DepartureDate) *domain.SectionPage {
	if section == nil {
		return nil
	}
	page := &domain.SectionPage{
		SpecialSection: section.SpecialSection,
		Features:       make([]domain.SectionFeatureDisplay, 0, len(section.Features)),
		Packages:       ToDisplayList(section.Packages, datesByPackage),
	}
	for _, f := range section.Features {
		page.Features = append(page.Features, domain.SectionFeatureDisplay{
			IconName:    domain.ResolveFeatureIcon(f.IconName),
			Title:       f.Title,
			Description: f.Description,
		})
	}
	return page
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
