package handlers

import "github.com/gofiber/fiber/v2"

// PagesHandler serves the guarded navigation endpoints. Page rendering
// lives client-side; these routes exist so the route guard has real paths
// to protect and return minimal page metadata.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Home handles GET /.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "home"})
}

// Login handles GET /login.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login"})
}

// Dashboard serves the per-role dashboard pages.
func (h *PagesHandler) Dashboard(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": name + "/dashboard"})
	}
}

// Profile handles GET /profile.
func (h *PagesHandler) Profile(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "profile"})
}
