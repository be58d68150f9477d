package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
)

// Cookie names for the two session artifacts.
const (
	SessionCookieName = "session_token"
	RoleCookieName    = "user_role"
)

// CookieManager reads and writes the pair of cookies carrying a session.
// The session cookie holds the signed token and is hidden from client
// script. The role cookie is a plain, script-readable hint consumed only by
// the route guard for coarse redirects; it is client-writable and must
// never back a security decision on its own.
type CookieManager struct{}

// NewCookieManager constructs the manager.
func NewCookieManager() *CookieManager {
	return &CookieManager{}
}

// Attach writes the session and role cookies onto the response.
func (cm *CookieManager) Attach(c *fiber.Ctx, token string, role domain.Role) {
	expires := time.Now().Add(SessionTTL)
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     RoleCookieName,
		Value:    string(role),
		Path:     "/",
		Expires:  expires,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear overwrites both cookies with an expired lifetime. Idempotent; no
// side effects beyond the response.
func (cm *CookieManager) Clear(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{SessionCookieName, RoleCookieName} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  expired,
			HTTPOnly: name == SessionCookieName,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}

// SessionToken returns the raw signed token from the request, if present.
func (cm *CookieManager) SessionToken(c *fiber.Ctx) (string, bool) {
	token := c.Cookies(SessionCookieName)
	return token, token != ""
}

// RoleHint returns the plain role cookie value, unvalidated.
func (cm *CookieManager) RoleHint(c *fiber.Ctx) string {
	return c.Cookies(RoleCookieName)
}
