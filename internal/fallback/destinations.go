package fallback

import "github.com/tigoviajes/catalog/internal/domain"

const defaultHeroImage = "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?q=80&w=2070"

var destinations = map[string]domain.DestinationProfile{
	"argentina": {
		Slug:        "argentina",
		Name:        "Argentina",
		Description: "Descubrí la belleza de nuestro país. Desde las Cataratas del Iguazú hasta la Patagonia y las termas de Federación.",
		HeroImage:   "https://images.unsplash.com/photo-1589909202802-8f4aadce1849?q=80&w=2070",
		Highlights: []string{
			"Cataratas del Iguazú",
			"Glaciar Perito Moreno",
			"Termas de Federación",
			"Carnavales de Gualeguaychú",
		},
	},
	"brasil": {
		Slug:        "brasil",
		Name:        "Brasil",
		Description: "Playas paradisíacas, ritmo y alegría. Brasil te espera con sus mejores destinos de sol y playa.",
		HeroImage:   "https://images.unsplash.com/photo-1483729558449-99ef09a8c325?q=80&w=2070",
		Highlights:  []string{"Camboriú", "Florianópolis", "Río de Janeiro", "Buzios"},
	},
}

// Destination returns the built-in profile of a destination, or nil
func Destination(slug string) *domain.DestinationProfile {
	d, ok := destinations[slug]
	if !ok {
		return nil
	}
	d.Highlights = append([]string(nil), d.Highlights...)
	return &d
}

// Profile renders a stored destination, completing the fields the store
// does not carry with the built-in profile of the same slug.
func Profile(dest *domain.Destination) *domain.DestinationProfile {
	out := &domain.DestinationProfile{
		Slug:        dest.Slug,
		Name:        dest.Name,
		Description: "Descubrí los mejores paquetes a " + dest.Name,
		HeroImage:   defaultHeroImage,
		Highlights:  []string{},
	}
	builtin := Destination(dest.Slug)
	if builtin != nil {
		out.Description = builtin.Description
		out.HeroImage = builtin.HeroImage
		out.Highlights = builtin.Highlights
	}
	if dest.ImageURL != nil && *dest.ImageURL != "" {
		out.HeroImage = *dest.ImageURL
	}
	return out
}
