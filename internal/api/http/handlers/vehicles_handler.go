package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/vehicle-marketplace/internal/api/dto"
	"github.com/spec-kit/vehicle-marketplace/internal/auth"
	"github.com/spec-kit/vehicle-marketplace/internal/domain"
	"github.com/spec-kit/vehicle-marketplace/internal/repository"
	apperrors "github.com/spec-kit/vehicle-marketplace/pkg/util"
)

// VehiclesHandler exposes vehicle endpoints for owner accounts.
type VehiclesHandler struct {
	vehicles repository.VehicleRepository
}

// NewVehiclesHandler constructs handler.
func NewVehiclesHandler(vehicles repository.VehicleRepository) *VehiclesHandler {
	return &VehiclesHandler{vehicles: vehicles}
}

// List handles GET /api/vehicles. Returns the caller's own vehicles.
func (h *VehiclesHandler) List(c *fiber.Ctx, identity *auth.Claims, _ *auth.ResourceContext) error {
	vehicles, err := h.vehicles.ListByOwner(c.Context(), identity.SubjectID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": vehicles})
}

// Create handles POST /api/vehicles.
func (h *VehiclesHandler) Create(c *fiber.Ctx, identity *auth.Claims, _ *auth.ResourceContext) error {
	var req dto.VehicleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Make == "" || req.Model == "" {
		return apperrors.NewValidationError("make and model required", nil)
	}

	vehicle := &domain.Vehicle{
		ID:      uuid.NewString(),
		OwnerID: identity.SubjectID,
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		Plate:   req.Plate,
	}
	if err := h.vehicles.Create(c.Context(), vehicle); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": vehicle})
}

// Delete handles DELETE /api/vehicles/:id. Only the owning account or an
// admin may remove a vehicle.
func (h *VehiclesHandler) Delete(c *fiber.Ctx, identity *auth.Claims, rc *auth.ResourceContext) error {
	vehicle, err := h.vehicles.GetByID(c.Context(), rc.ID)
	if err != nil {
		return apperrors.NewNotFound("vehicle", map[string]any{"id": rc.ID})
	}
	if vehicle.OwnerID != identity.SubjectID && identity.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("not the vehicle owner")
	}

	if err := h.vehicles.Delete(c.Context(), rc.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": rc.ID}})
}
