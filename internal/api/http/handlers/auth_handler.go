package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/vehicle-marketplace/internal/api/dto"
	"github.com/spec-kit/vehicle-marketplace/internal/auth"
	"github.com/spec-kit/vehicle-marketplace/internal/domain"
	"github.com/spec-kit/vehicle-marketplace/internal/service"
	apperrors "github.com/spec-kit/vehicle-marketplace/pkg/util"
)

// AuthHandler exposes registration, login and logout endpoints. Successful
// auth attaches the session cookie pair; logout clears it.
type AuthHandler struct {
	auth    *service.AuthService
	cookies *auth.CookieManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies *auth.CookieManager) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	h.cookies.Attach(c, token, user.Role)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: string(user.Role)},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return apperrors.MapError(err)
	}

	h.cookies.Attach(c, token, user.Role)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: string(user.Role)},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookies.Clear(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "logged out"}})
}
