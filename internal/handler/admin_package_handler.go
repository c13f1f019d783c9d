package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tigoviajes/catalog/internal/domain"
	"github.com/tigoviajes/catalog/internal/service"
)

// packageRequest is the admin package form
type packageRequest struct {
	domain.Package
	DepartureDates []*domain.DepartureDate `json:"departure_dates" validate:"dive"`
	Itinerary      []*domain.ItineraryDay  `json:"itinerary_days" validate:"dive"`
}

func (r packageRequest) input() service.PackageInput {
	return service.PackageInput{
		Package:        r.Package,
		DepartureDates: r.DepartureDates,
		Itinerary:      r.Itinerary,
	}
}

type toggleRequest struct {
	Value *bool `json:"value" validate:"required"`
}

// toggleFlags maps the :flag route segment to a package column
var toggleFlags = map[string]domain.PackageFlag{
	"active":   domain.FlagActive,
	"featured": domain.FlagFeatured,
	"offer":    domain.FlagOffer,
}

// PackageAdminHandler handles /v1/admin/packages
type PackageAdminHandler struct {
	packages *service.PackageAdminService
}

// NewPackageAdminHandler creates a new package admin handler
func NewPackageAdminHandler(packages *service.PackageAdminService) *PackageAdminHandler {
	return &PackageAdminHandler{packages: packages}
}

func (h *PackageAdminHandler) List(c *fiber.Ctx) error {
	pkgs, err := h.packages.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pkgs)
}

func (h *PackageAdminHandler) Get(c *fiber.Ctx) error {
	pkg, err := h.packages.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pkg)
}

func (h *PackageAdminHandler) Create(c *fiber.Ctx) error {
	var req packageRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	pkg, err := h.packages.Create(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

func (h *PackageAdminHandler) Update(c *fiber.Ctx) error {
	var req packageRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	pkg, err := h.packages.Update(c.UserContext(), c.Params("id"), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pkg)
}

func (h *PackageAdminHandler) Delete(c *fiber.Ctx) error {
	if err := h.packages.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// Toggle handles PATCH /v1/admin/packages/:id/:flag with {"value": bool}
func (h *PackageAdminHandler) Toggle(c *fiber.Ctx) error {
	flag, ok := toggleFlags[c.Params("flag")]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown flag"})
	}
	var req toggleRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	if err := h.packages.SetFlag(c.UserContext(), c.Params("id"), flag, *req.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), string(flag): *req.Value})
}

func (h *PackageAdminHandler) Duplicate(c *fiber.Ctx) error {
	pkg, err := h.packages.Duplicate(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

// --- Departure dates ---

func (h *PackageAdminHandler) AddDepartureDate(c *fiber.Ctx) error {
	var req domain.DepartureDate
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	if err := h.packages.AddDepartureDate(c.UserContext(), c.Params("id"), &req); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *PackageAdminHandler) UpdateDepartureDate(c *fiber.Ctx) error {
	var req domain.DepartureDate
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	req.ID = c.Params("dateId")
	if err := h.packages.UpdateDepartureDate(c.UserContext(), &req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(req)
}

func (h *PackageAdminHandler) DeleteDepartureDate(c *fiber.Ctx) error {
	if err := h.packages.DeleteDepartureDate(c.UserContext(), c.Params("dateId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
