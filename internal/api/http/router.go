package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/vehicle-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/vehicle-marketplace/internal/auth"
	"github.com/spec-kit/vehicle-marketplace/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Products   *handlers.ProductsHandler
	Vehicles   *handlers.VehiclesHandler
	Pages      *handlers.PagesHandler
	RouteGuard *auth.RouteGuard
	Guard      *auth.HandlerGuard
}

// RegisterRoutes wires HTTP routes. The route guard runs ahead of every
// handler; API routes additionally self-protect through the handler guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.RouteGuard.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Navigation pages. The guard redirects /dashboard by role before these
	// run; the per-role dashboards below are the redirect targets.
	app.Get("/", cfg.Pages.Home)
	app.Get("/login", cfg.Pages.Login)
	app.Get("/profile", cfg.Pages.Profile)
	app.Get("/vehicle-owner/dashboard", cfg.Pages.Dashboard("vehicle-owner"))
	app.Get("/repairer/dashboard", cfg.Pages.Dashboard("repairer"))
	app.Get("/seller/dashboard", cfg.Pages.Dashboard("seller"))
	app.Get("/admin/dashboard", cfg.Pages.Dashboard("admin"))

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	api := app.Group("/api")

	api.Get("/products", cfg.Guard.Wrap(cfg.Products.List, auth.GuardConfig{}))
	api.Get("/products/:id", cfg.Guard.Wrap(cfg.Products.Get, auth.GuardConfig{}))
	api.Post("/products", cfg.Guard.Wrap(cfg.Products.Create, auth.GuardConfig{
		RequireAuth:  true,
		AllowedRoles: []domain.Role{domain.RoleSeller, domain.RoleAdmin},
	}))
	api.Put("/products/:id", cfg.Guard.Wrap(cfg.Products.Update, auth.GuardConfig{
		RequireAuth:  true,
		AllowedRoles: []domain.Role{domain.RoleSeller, domain.RoleAdmin},
	}))
	api.Delete("/products/:id", cfg.Guard.Wrap(cfg.Products.Delete, auth.GuardConfig{
		RequireAuth:  true,
		AllowedRoles: []domain.Role{domain.RoleSeller, domain.RoleAdmin},
	}))

	api.Get("/vehicles", cfg.Guard.Wrap(cfg.Vehicles.List, auth.GuardConfig{
		RequireAuth:  true,
		AllowedRoles: []domain.Role{domain.RoleVehicleOwner, domain.RoleAdmin},
	}))
	api.Post("/vehicles", cfg.Guard.Wrap(cfg.Vehicles.Create, auth.GuardConfig{
		RequireAuth:  true,
		AllowedRoles: []domain.Role{domain.RoleVehicleOwner, domain.RoleAdmin},
	}))
	api.Delete("/vehicles/:id", cfg.Guard.Wrap(cfg.Vehicles.Delete, auth.GuardConfig{
		RequireAuth:  true,
		AllowedRoles: []domain.Role{domain.RoleVehicleOwner, domain.RoleAdmin},
	}))
}
