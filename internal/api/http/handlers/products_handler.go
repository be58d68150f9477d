package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/vehicle-marketplace/internal/api/dto"
	"github.com/spec-kit/vehicle-marketplace/internal/auth"
	"github.com/spec-kit/vehicle-marketplace/internal/domain"
	"github.com/spec-kit/vehicle-marketplace/internal/repository"
	"github.com/spec-kit/vehicle-marketplace/internal/service"
	apperrors "github.com/spec-kit/vehicle-marketplace/pkg/util"
)

// ProductsHandler exposes seller listings. Role membership is enforced by
// the auth wrapper at registration time; per-resource ownership is decided
// here via the ownership lookup.
type ProductsHandler struct {
	products  repository.ProductRepository
	ownership service.OwnerLookup
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products repository.ProductRepository, ownership service.OwnerLookup) *ProductsHandler {
	return &ProductsHandler{products: products, ownership: ownership}
}

// List handles GET /api/products. Public.
func (h *ProductsHandler) List(c *fiber.Ctx, _ *auth.Claims, _ *auth.ResourceContext) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	products, err := h.products.List(c.Context(), limit, offset)
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /api/products/:id. Public.
func (h *ProductsHandler) Get(c *fiber.Ctx, _ *auth.Claims, rc *auth.ResourceContext) error {
	product, err := h.products.GetByID(c.Context(), rc.ID)
	if err != nil {
		return apperrors.NewNotFound("product", map[string]any{"id": rc.ID})
	}
	return c.JSON(fiber.Map{"data": toProductResponse(*product)})
}

// Create handles POST /api/products. Sellers and admins only.
func (h *ProductsHandler) Create(c *fiber.Ctx, identity *auth.Claims, _ *auth.ResourceContext) error {
	var req dto.ProductUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	product := &domain.Product{
		ID:          uuid.NewString(),
		SellerID:    identity.SubjectID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
	}
	if err := h.products.Create(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": toProductResponse(*product)})
}

// Update handles PUT /api/products/:id. Only the owning seller or an admin
// may modify a listing.
func (h *ProductsHandler) Update(c *fiber.Ctx, identity *auth.Claims, rc *auth.ResourceContext) error {
	ok, err := h.ownership.IsOwnerOrAdmin(c.Context(), identity.SubjectID, identity.Role, rc.ID)
	if err != nil {
		return apperrors.NewNotFound("product", map[string]any{"id": rc.ID})
	}
	if !ok {
		return apperrors.NewForbidden("not the listing owner")
	}

	var req dto.ProductUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product := &domain.Product{
		ID:          rc.ID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
	}
	if err := h.products.Update(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": rc.ID}})
}

// Delete handles DELETE /api/products/:id. Same ownership rule as Update.
func (h *ProductsHandler) Delete(c *fiber.Ctx, identity *auth.Claims, rc *auth.ResourceContext) error {
	ok, err := h.ownership.IsOwnerOrAdmin(c.Context(), identity.SubjectID, identity.Role, rc.ID)
	if err != nil {
		return apperrors.NewNotFound("product", map[string]any{"id": rc.ID})
	}
	if !ok {
		return apperrors.NewForbidden("not the listing owner")
	}

	if err := h.products.Delete(c.Context(), rc.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": rc.ID}})
}

func toProductResponse(p domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}
