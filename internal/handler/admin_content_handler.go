package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tigoviajes/catalog/internal/domain"
	"github.com/tigoviajes/catalog/internal/service"
)

type sectionRequest struct {
	domain.SpecialSection
	Features   []*domain.SectionFeature `json:"features" validate:"max=4,dive"`
	PackageIDs []string                 `json:"package_ids"`
}

func (r sectionRequest) input() service.SectionInput {
	return service.SectionInput{
		Section:    r.SpecialSection,
		Features:   r.Features,
		PackageIDs: r.PackageIDs,
	}
}

// ContentAdminHandler handles destinations, sections and the dashboard
type ContentAdminHandler struct {
	destinations *service.DestinationAdminService
	sections     *service.SectionAdminService
	dashboard    *service.DashboardService
}

// NewContentAdminHandler creates a new content admin handler
func NewContentAdminHandler(
	destinations *service.DestinationAdminService,
	sections *service.SectionAdminService,
	dashboard *service.DashboardService,
) *ContentAdminHandler {
	return &ContentAdminHandler{
		destinations: destinations,
		sections:     sections,
		dashboard:    dashboard,
	}
}

// Dashboard handles GET /v1/admin/dashboard
func (h *ContentAdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboard.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// --- Destinations ---

func (h *ContentAdminHandler) ListDestinations(c *fiber.Ctx) error {
	dests, err := h.destinations.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dests)
}

func (h *ContentAdminHandler) CreateDestination(c *fiber.Ctx) error {
	var req domain.Destination
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	if err := h.destinations.Create(c.UserContext(), &req); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *ContentAdminHandler) UpdateDestination(c *fiber.Ctx) error {
	var req domain.Destination
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	if err := h.destinations.Update(c.UserContext(), c.Params("id"), &req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(req)
}

func (h *ContentAdminHandler) ToggleDestination(c *fiber.Ctx) error {
	var req toggleRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	if err := h.destinations.SetActive(c.UserContext(), c.Params("id"), *req.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "is_active": *req.Value})
}

func (h *ContentAdminHandler) DeleteDestination(c *fiber.Ctx) error {
	if err := h.destinations.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// --- Sections ---

func (h *ContentAdminHandler) ListSections(c *fiber.Ctx) error {
	sections, err := h.sections.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sections)
}

func (h *ContentAdminHandler) GetSection(c *fiber.Ctx) error {
	section, err := h.sections.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(section)
}

func (h *ContentAdminHandler) CreateSection(c *fiber.Ctx) error {
	var req sectionRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	section, err := h.sections.Create(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(section)
}

func (h *ContentAdminHandler) UpdateSection(c *fiber.Ctx) error {
	var req sectionRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	section, err := h.sections.Update(c.UserContext(), c.Params("id"), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(section)
}

func (h *ContentAdminHandler) ToggleSection(c *fiber.Ctx) error {
	var req toggleRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	if err := h.sections.SetActive(c.UserContext(), c.Params("id"), *req.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "is_active": *req.Value})
}

func (h *ContentAdminHandler) DeleteSection(c *fiber.Ctx) error {
	if err := h.sections.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
