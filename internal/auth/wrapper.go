package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
	"github.com/spec-kit/vehicle-marketplace/internal/events"
)

// ResourceContext carries the resolved resource id for handlers that
// operate on a single resource.
type ResourceContext struct {
	ID string
}

// GuardedHandler is the single call shape every protected business handler
// implements. identity is nil when the route does not require auth and no
// token was presented. rc is always non-nil.
type GuardedHandler func(c *fiber.Ctx, identity *Claims, rc *ResourceContext) error

// GuardConfig controls one wrapped route.
type GuardConfig struct {
	// RequireAuth rejects token-less requests with 401.
	RequireAuth bool
	// AllowedRoles, when non-empty, restricts access to listed roles.
	// Role membership only; per-resource ownership stays in the handler.
	AllowedRoles []domain.Role
}

// HandlerGuard is the authoritative per-route enforcement point. Unlike the
// route guard it verifies the signed token, never the role cookie.
type HandlerGuard struct {
	codec      *TokenCodec
	cookies    *CookieManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewHandlerGuard constructs the wrapper factory.
func NewHandlerGuard(codec *TokenCodec, cookies *CookieManager, dispatcher events.Dispatcher, logger *zap.Logger) *HandlerGuard {
	return &HandlerGuard{codec: codec, cookies: cookies, dispatcher: dispatcher, logger: logger}
}

// Wrap adapts a GuardedHandler into a fiber.Handler. Checks run strictly in
// order (token presence, then signature/expiry, then role membership) and
// short-circuit on the first failure. The optional rc argument supplies a
// router-resolved resource context; when absent the id is derived from the
// final non-empty path segment as a compatibility path.
func (g *HandlerGuard) Wrap(inner GuardedHandler, cfg GuardConfig, rc ...*ResourceContext) fiber.Handler {
	allowed := make(map[domain.Role]struct{}, len(cfg.AllowedRoles))
	for _, role := range cfg.AllowedRoles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		token, present := g.cookies.SessionToken(c)

		if !present {
			if cfg.RequireAuth {
				g.publish(c, events.EventTokenRejected, "", "missing_credential")
				return unauthorized(c, "Authentication required")
			}
			return inner(c, nil, g.resourceContext(c, rc))
		}

		claims, err := g.codec.Verify(token)
		if err != nil {
			kind := failureKind(err)
			g.logger.Warn("token verification failed",
				zap.String("kind", kind),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
			g.publish(c, events.EventTokenRejected, "", kind)
			return unauthorized(c, "Invalid or expired token")
		}

		if len(allowed) > 0 {
			if _, ok := allowed[claims.Role]; !ok {
				g.publish(c, events.EventAccessDenied, claims.SubjectID, "insufficient_role")
				return c.Status(http.StatusForbidden).JSON(fiber.Map{
					"error": "Unauthorized access: insufficient permissions",
				})
			}
		}

		return inner(c, claims, g.resourceContext(c, rc))
	}
}

// resourceContext returns the supplied context, the router-resolved :id
// parameter, or derives one from the request path. The path fallback takes
// the final non-empty URL segment verbatim with no decoding; it is
// deterministic and side-effect-free, kept as a compatibility path for
// routes registered without a parameter.
func (g *HandlerGuard) resourceContext(c *fiber.Ctx, supplied []*ResourceContext) *ResourceContext {
	if len(supplied) > 0 && supplied[0] != nil {
		return supplied[0]
	}
	if id := c.Params("id"); id != "" {
		return &ResourceContext{ID: id}
	}
	return &ResourceContext{ID: finalPathSegment(c.Path())}
}

func finalPathSegment(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}

func (g *HandlerGuard) publish(c *fiber.Ctx, eventType events.EventType, subjectID, reason string) {
	if g.dispatcher == nil {
		return
	}
	_ = g.dispatcher.Publish(c.Context(), events.Event{
		Type:       eventType,
		SubjectID:  subjectID,
		Path:       c.Path(),
		Method:     c.Method(),
		Reason:     reason,
		OccurredAt: time.Now(),
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": message})
}
