package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/tigoviajes/catalog/internal/domain"
	"github.com/tigoviajes/catalog/internal/fallback"
	"github.com/tigoviajes/catalog/internal/service"
	"github.com/tigoviajes/catalog/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

const maxRelatedLimit = 12

// PublicHandler serves the page data of the public site. Every read goes
// through the cached catalog service. Store failures degrade to built-in or
// empty content and are marked on the request span, never answered with 5xx.
type PublicHandler struct {
	catalog *service.CatalogService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(catalog *service.CatalogService) *PublicHandler {
	return &PublicHandler{catalog: catalog}
}

// Header handles GET /v1/public/header
func (h *PublicHandler) Header(c *fiber.Ctx) error {
	data, err := h.catalog.HeaderData(c.UserContext())
	if err != nil {
		log.Printf("[Catalog] header data unavailable, serving empty menu: %v", err)
		telemetry.MarkFallback(c, "header-data", err)
		data = &domain.HeaderData{}
	}
	if data.Destinations == nil {
		data.Destinations = []domain.HeaderDestination{}
	}
	if data.SpecialSections == nil {
		data.SpecialSections = []domain.HeaderSection{}
	}

	links := make([]domain.NavLink, 0, len(data.SpecialSections))
	for _, s := range data.SpecialSections {
		links = append(links, s.NavLink())
	}

	return c.JSON(fiber.Map{
		"destinations":     data.Destinations,
		"special_sections": data.SpecialSections,
		"nav_links":        links,
	})
}

// Home handles GET /v1/public/home. Featured packages fall back to the
// built-in catalog when the store fails or has none. Failed offers render as
// an empty list and a failed active section as null.
func (h *PublicHandler) Home(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		featured []domain.TravelPackageDisplay
		offers   []domain.TravelPackageDisplay
		section  *domain.SectionPage
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		featured, err = h.catalog.FeaturedPackages(gCtx)
		if err != nil {
			log.Printf("[Catalog] featured packages unavailable, serving fallback: %v", err)
			telemetry.MarkFallback(c, "featured", err)
			featured = fallback.Featured()
		} else if len(featured) == 0 {
			telemetry.MarkFallback(c, "featured", nil)
			featured = fallback.Featured()
		}
		return nil
	})
	g.Go(func() error {
		var err error
		offers, err = h.catalog.OfferPackages(gCtx)
		if err != nil {
			log.Printf("[Catalog] offers unavailable: %v", err)
			telemetry.MarkFallback(c, "offers", err)
			offers = []domain.TravelPackageDisplay{}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		section, err = h.catalog.ActiveSection(gCtx)
		if err != nil {
			log.Printf("[Catalog] active section unavailable: %v", err)
			telemetry.MarkFallback(c, "active-section", err)
			section = nil
		}
		return nil
	})
	_ = g.Wait()

	return c.JSON(fiber.Map{
		"featured":       featured,
		"offers":         offers,
		"active_section": section,
	})
}

// Offers handles GET /v1/public/offers
func (h *PublicHandler) Offers(c *fiber.Ctx) error {
	offers, err := h.catalog.OfferPackages(c.UserContext())
	if err != nil {
		log.Printf("[Catalog] offers unavailable: %v", err)
		telemetry.MarkFallback(c, "offers", err)
		offers = []domain.TravelPackageDisplay{}
	}
	return c.JSON(offers)
}

// PackageByID handles GET /v1/public/packages/:id
func (h *PublicHandler) PackageByID(c *fiber.Ctx) error {
	id := c.Params("id")
	pkg, err := h.catalog.PackageByID(c.UserContext(), id)
	if err != nil {
		log.Printf("[Catalog] package %s unavailable, trying fallback: %v", id, err)
		telemetry.MarkFallback(c, "package-by-id", err)
		pkg = fallback.ByID(id)
	}
	if pkg == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "package not found"})
	}
	return c.JSON(pkg)
}

// PackageBySlug handles GET /v1/public/packages/slug/:slug
func (h *PublicHandler) PackageBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	pkg, err := h.catalog.PackageBySlug(c.UserContext(), slug)
	if err != nil {
		log.Printf("[Catalog] package %s unavailable, trying fallback: %v", slug, err)
		telemetry.MarkFallback(c, "package-by-slug", err)
		pkg = fallback.BySlug(slug)
	}
	if pkg == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "package not found"})
	}
	return c.JSON(pkg)
}

// RelatedPackages handles GET /v1/public/packages/:id/related?limit=3
func (h *PublicHandler) RelatedPackages(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultRelatedLimit)
	if limit <= 0 || limit > maxRelatedLimit {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be between 1 and 12"})
	}

	ctx := c.UserContext()
	id := c.Params("id")
	current, err := h.catalog.PackageByID(ctx, id)
	if err != nil {
		telemetry.MarkFallback(c, "related-packages", err)
		if current = fallback.ByID(id); current == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "package not found"})
		}
		return c.JSON(fallback.Related(current.Slug, current.DestinationSlug, limit))
	}
	if current == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "package not found"})
	}

	related, err := h.catalog.RelatedPackages(ctx, current.Slug, current.DestinationSlug, limit)
	if err != nil {
		log.Printf("[Catalog] related packages of %s unavailable: %v", id, err)
		telemetry.MarkFallback(c, "related-packages", err)
		related = []domain.TravelPackageDisplay{}
	}
	return c.JSON(related)
}

// Destination handles GET /v1/public/destinations/:slug. A stored destination
// is enriched with its built-in profile; a missing or unreadable one is served
// entirely from the built-in catalog when it knows the slug.
func (h *PublicHandler) Destination(c *fiber.Ctx) error {
	slug := c.Params("slug")
	var (
		dest             *domain.Destination
		packages         []domain.TravelPackageDisplay
		destErr, pkgsErr error
	)

	g, gCtx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		dest, destErr = h.catalog.DestinationBySlug(gCtx, slug)
		return nil
	})
	g.Go(func() error {
		packages, pkgsErr = h.catalog.PackagesByDestination(gCtx, slug)
		return nil
	})
	_ = g.Wait()

	if destErr == nil && dest != nil {
		if pkgsErr != nil {
			log.Printf("[Catalog] packages of %s unavailable, serving fallback: %v", slug, pkgsErr)
			telemetry.MarkFallback(c, "packages-by-destination", pkgsErr)
			packages = fallback.ByDestination(slug)
		}
		return c.JSON(fiber.Map{
			"destination": fallback.Profile(dest),
			"packages":    packages,
		})
	}

	profile := fallback.Destination(slug)
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "destination not found"})
	}
	if destErr != nil {
		log.Printf("[Catalog] destination %s unavailable, serving fallback: %v", slug, destErr)
	}
	telemetry.MarkFallback(c, "destination-by-slug", destErr)
	return c.JSON(fiber.Map{
		"destination": profile,
		"packages":    fallback.ByDestination(slug),
	})
}

// Section handles GET /v1/public/sections/:slug. A section that cannot be
// read is answered as not found.
func (h *PublicHandler) Section(c *fiber.Ctx) error {
	slug := c.Params("slug")
	page, err := h.catalog.SectionBySlug(c.UserContext(), slug)
	if err != nil {
		log.Printf("[Catalog] section %s unavailable: %v", slug, err)
		telemetry.MarkFallback(c, "section-by-slug", err)
		page = nil
	}
	if page == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "section not found"})
	}
	return c.JSON(page)
}

// ActiveSection handles GET /v1/public/sections/active
func (h *PublicHandler) ActiveSection(c *fiber.Ctx) error {
	page, err := h.catalog.ActiveSection(c.UserContext())
	if err != nil {
		log.Printf("[Catalog] active section unavailable: %v", err)
		telemetry.MarkFallback(c, "active-section", err)
		page = nil
	}
	return c.JSON(fiber.Map{"section": page})
}

// SectionPackages handles GET /v1/public/sections/:slug/packages
func (h *PublicHandler) SectionPackages(c *fiber.Ctx) error {
	pkgs, err := h.catalog.SpecialPackages(c.UserContext(), c.Params("slug"))
	if err != nil {
		log.Printf("[Catalog] section packages unavailable: %v", err)
		telemetry.MarkFallback(c, "special-packages", err)
		pkgs = []domain.TravelPackageDisplay{}
	}
	return c.JSON(pkgs)
}
