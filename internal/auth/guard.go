package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
)

// RouteGuard intercepts every inbound request before any handler runs and
// redirects callers that obviously should not be on the requested page.
//
// Trust boundary: this layer reads only the plain, client-writable role
// cookie, never the signed token. It is a UX convenience, not the authority
// boundary: protected API routes must still be wrapped by HandlerGuard,
// which re-verifies via the signed token. A forged role cookie can therefore
// only misdirect navigation, never widen API access.
type RouteGuard struct {
	policy  *RolePolicy
	cookies *CookieManager
	logger  *zap.Logger
}

// NewRouteGuard constructs the middleware.
func NewRouteGuard(policy *RolePolicy, cookies *CookieManager, logger *zap.Logger) *RouteGuard {
	return &RouteGuard{policy: policy, cookies: cookies, logger: logger}
}

// Handle runs the per-request decision. Transition order is fixed and
// first-match-wins: excluded/unprotected pass through; no session cookie
// redirects to login; the dashboard root dispatches by role; a foreign
// role-exclusive prefix redirects to the caller's own dashboard; anything
// else passes through.
func (g *RouteGuard) Handle(c *fiber.Ctx) error {
	path := c.Path()

	if g.policy.Excluded(path) || !g.policy.Protected(path) {
		return c.Next()
	}

	if _, ok := g.cookies.SessionToken(c); !ok {
		return c.Redirect(LoginPath, fiber.StatusFound)
	}

	role, err := domain.ParseRole(g.cookies.RoleHint(c))
	if err != nil {
		// Unknown role hint: deny role-scoped paths, send home.
		role = ""
	}

	if path == DashboardRootPath {
		return c.Redirect(g.policy.OwnerDashboard(role), fiber.StatusFound)
	}

	if owner, ok := g.policy.ExclusiveOwner(path); ok && owner != role {
		g.logger.Debug("role scope redirect",
			zap.String("path", path),
			zap.String("role_hint", string(role)),
			zap.String("owner_role", string(owner)),
		)
		return c.Redirect(g.policy.OwnerDashboard(role), fiber.StatusFound)
	}

	return c.Next()
}
