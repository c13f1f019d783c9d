// Package fallback holds the built-in Verano 2026 catalog served when the
// content store is unavailable, and used to seed an empty store.
package fallback

import (
	"github.com/tigoviajes/catalog/internal/display"
	"github.com/tigoviajes/catalog/internal/domain"
)

// Item is a raw package with the calendar dates it departs on
type Item struct {
	Package        domain.Package
	DepartureDates []string
}

// Items returns a fresh copy of the built-in catalog
func Items() []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		p := it.Package
		p.IncludedServices = append([]string(nil), it.Package.IncludedServices...)
		p.NotIncludedServices = []string{}
		p.OptionalExcursions = append([]string(nil), it.Package.OptionalExcursions...)
		out = append(out, Item{Package: p, DepartureDates: append([]string(nil), it.DepartureDates...)})
	}
	return out
}

// Featured returns the featured packages of the built-in catalog
func Featured() []domain.TravelPackageDisplay {
	out := []domain.TravelPackageDisplay{}
	for _, it := range Items() {
		if it.Package.IsFeatured {
			out = append(out, toDisplay(it))
		}
	}
	return out
}

// ByID returns the built-in package with the given id, or nil
func ByID(id string) *domain.TravelPackageDisplay {
	return find(func(p *domain.Package) bool { return p.ID == id })
}

// BySlug returns the built-in package with the given slug, or nil
func BySlug(slug string) *domain.TravelPackageDisplay {
	return find(func(p *domain.Package) bool { return p.Slug == slug })
}

// ByDestination returns the built-in packages of a destination
func ByDestination(destinationSlug string) []domain.TravelPackageDisplay {
	out := []domain.TravelPackageDisplay{}
	for _, it := range Items() {
		if it.Package.DestinationSlug == destinationSlug {
			out = append(out, toDisplay(it))
		}
	}
	return out
}

// Related returns up to limit packages of the same destination, completed
// with packages from other destinations.
func Related(currentSlug, destinationSlug string, limit int) []domain.TravelPackageDisplay {
	var same, others []domain.TravelPackageDisplay
	for _, it := range Items() {
		if it.Package.Slug == currentSlug {
			continue
		}
		if it.Package.DestinationSlug == destinationSlug {
			same = append(same, toDisplay(it))
		} else {
			others = append(others, toDisplay(it))
		}
	}
	out := append(same, others...)
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []domain.TravelPackageDisplay{}
	}
	return out
}

func find(match func(*domain.Package) bool) *domain.TravelPackageDisplay {
	for _, it := range Items() {
		if match(&it.Package) {
			d := toDisplay(it)
			return &d
		}
	}
	return nil
}

func toDisplay(it Item) domain.TravelPackageDisplay {
	dates := make([]*domain.DepartureDate, 0, len(it.DepartureDates))
	for _, d := range it.DepartureDates {
		dates = append(dates, &domain.DepartureDate{
			PackageID:     it.Package.ID,
			DepartureDate: d,
			Price:         it.Package.BasePrice,
			Currency:      it.Package.Currency,
			IsActive:      true,
		})
	}
	return display.ToDisplay(&it.Package, dates, nil)
}

func str(s string) *string { return &s }

var items = []Item{
	{
		Package: domain.Package{
			ID:              "verano-2026-1",
			Slug:            "federacion-carnavales-gualeguaychu",
			Name:            "Federación + Carnavales Gualeguaychú",
			Description:     "Combiná las termas de Federación con la magia de los carnavales más importantes del país. Un viaje para disfrutar en grupo.",
			LongDescription: str("Viví la experiencia única de combinar las relajantes termas de Federación con la explosión de color y alegría de los Carnavales de Gualeguaychú. Disfrutá de las piletas termales, los shows nocturnos del corsódromo y toda la energía del verano entrerriano. Viaje grupal en bus de última generación con todas las comodidades."),
			Destination:     "Argentina",
			DestinationSlug: "argentina",
			Days:            6,
			Nights:          4,
			GroupSize:       str("40 pasajeros"),
			IsGroupal:       true,
			BasePrice:       440000,
			Currency:        "ARS",
			ImageURL:        "https://images.unsplash.com/photo-1544551763-46a013bb70d5?q=80&w=2070",
			IncludedServices: []string{
				"Bus Mix de última generación",
				"4 noches de alojamiento con desayuno",
				"Servicio a bordo completo",
				"Coordinador de viaje Tigo",
				"Entrada al corsódromo de Gualeguaychú",
				"Acceso a termas de Federación",
				"Seguro de viaje",
			},
			OptionalExcursions: []string{
				"Excursiones opcionales en Federación",
				"Cenas en restaurantes típicos",
			},
			IsFeatured: true,
			IsActive:   true,
		},
		DepartureDates: []string{"2026-01-12"},
	},
	{
		Package: domain.Package{
			ID:              "verano-2026-2",
			Slug:            "glaciares-tierra-gigantes",
			Name:            "Los Glaciares - Tierra de Gigantes",
			Description:     "Descubrí la majestuosidad del Perito Moreno y los paisajes patagónicos más impresionantes del mundo.",
			LongDescription: str("Una experiencia única en la Patagonia argentina. Contemplá el imponente Glaciar Perito Moreno, navegá entre témpanos milenarios y descubrí la belleza extrema del Parque Nacional Los Glaciares. Viaje grupal en bus de última generación con todas las comodidades para disfrutar del fin del mundo."),
			Destination:     "Argentina",
			DestinationSlug: "argentina",
			Days:            6,
			Nights:          4,
			GroupSize:       str("40 pasajeros"),
			IsGroupal:       true,
			BasePrice:       690000,
			Currency:        "ARS",
			ImageURL:        "https://images.unsplash.com/photo-1516815231560-8f41ec531527?q=80&w=2069",
			IncludedServices: []string{
				"Bus Mix de última generación",
				"4 noches de alojamiento con desayuno",
				"Servicio a bordo completo",
				"Coordinador de viaje Tigo",
				"Excursión Glaciar Perito Moreno",
				"Navegación Ríos de Hielo",
				"Seguro de viaje",
			},
			OptionalExcursions: []string{
				"Minitrekking sobre el glaciar",
				"Excursión El Chaltén",
				"Estancia patagónica con asado",
			},
			IsFeatured: true,
			IsActive:   true,
		},
		DepartureDates: []string{"2026-01-23"},
	},
	{
		Package: domain.Package{
			ID:              "verano-2026-3",
			Slug:            "federacion-camboriu",
			Name:            "Federación y Camboriú",
			Description:     "Lo mejor de Argentina y Brasil en un solo viaje. Termas relajantes y las playas más lindas del sur de Brasil.",
			LongDescription: str("Un viaje que combina lo mejor de dos mundos: las termas de Federación en Argentina y las paradisíacas playas de Camboriú en Brasil. Disfrutá de días de relax termal y noches de playa brasileña. Viaje grupal en bus de última generación con todas las comodidades para cruzar la frontera sin preocupaciones."),
			Destination:     "Brasil",
			DestinationSlug: "brasil",
			Days:            10,
			Nights:          8,
			GroupSize:       str("40 pasajeros"),
			IsGroupal:       true,
			BasePrice:       990,
			Currency:        "USD",
			ImageURL:        "https://images.unsplash.com/photo-1483729558449-99ef09a8c325?q=80&w=2070",
			IncludedServices: []string{
				"Bus Mix de última generación",
				"8 noches de alojamiento con desayuno",
				"Servicio a bordo completo",
				"Coordinador de viaje Tigo",
				"Acceso a termas de Federación",
				"Día libre en playas de Camboriú",
				"Seguro de viaje internacional",
			},
			OptionalExcursions: []string{
				"Excursión Beto Carrero World",
				"Paseo en barco por la costa",
				"City tour Camboriú",
			},
			IsFeatured: true,
			IsActive:   true,
		},
		DepartureDates: []string{"2026-01-31"},
	},
	{
		Package: domain.Package{
			ID:              "verano-2026-4",
			Slug:            "cataratas-iguazu",
			Name:            "Cataratas del Iguazú",
			Description:     "Una de las maravillas naturales del mundo. Visitá el lado argentino y brasileño en un viaje inolvidable.",
			LongDescription: str("Viví la experiencia de las Cataratas del Iguazú, una de las Siete Maravillas Naturales del Mundo. Este paquete incluye visitas a ambos lados de las cataratas (argentino y brasileño), paseos por senderos selváticos y toda la magia de la selva misionera. Viaje grupal en bus de última generación con todas las comodidades."),
			Destination:     "Argentina",
			DestinationSlug: "argentina",
			Days:            6,
			Nights:          4,
			GroupSize:       str("40 pasajeros"),
			IsGroupal:       true,
			BasePrice:       560000,
			Currency:        "ARS",
			ImageURL:        "https://images.unsplash.com/photo-1590523741831-ab7e8b8f9c7f?q=80&w=2074",
			IncludedServices: []string{
				"Bus Mix de última generación",
				"4 noches de alojamiento con desayuno",
				"Servicio a bordo completo",
				"Coordinador de viaje Tigo",
				"Excursión Cataratas lado argentino",
				"Excursión Cataratas lado brasileño",
				"Seguro de viaje",
			},
			OptionalExcursions: []string{
				"Paseo en lancha Gran Aventura",
				"Excursión Minas de Wanda",
				"Cena de despedida con show",
			},
			IsFeatured: true,
			IsActive:   true,
		},
		DepartureDates: []string{"2026-02-01"},
	},
}
