package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
	"github.com/spec-kit/vehicle-marketplace/internal/events"
)

// The API reports all token failures with one 401 body, but each kind must
// stay distinguishable internally. The dispatcher is where that shows.
func TestWrapPublishesDistinctFailureKinds(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var reasons []string
	dispatcher.Subscribe(events.EventTokenRejected, func(_ context.Context, event events.Event) error {
		reasons = append(reasons, event.Reason)
		return nil
	})

	codec := NewTokenCodec("test-secret")
	guard := NewHandlerGuard(codec, NewCookieManager(), dispatcher, zap.NewNop())

	app := fiber.New()
	app.Get("/api/orders/:id", guard.Wrap(func(c *fiber.Ctx, _ *Claims, _ *ResourceContext) error {
		return c.JSON(fiber.Map{"ok": true})
	}, GuardConfig{RequireAuth: true}))

	send := func(token string) {
		req := httptest.NewRequest(fiber.MethodGet, "/api/orders/7", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	// Absent token.
	send("")

	// Malformed token.
	send("not-a-token")

	// Signed under a different secret.
	stale, _, err := NewTokenCodec("stale-secret").Issue("u", "u@example.com", domain.RoleSeller)
	require.NoError(t, err)
	send(stale)

	// Properly signed but expired.
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		SubjectID: "u",
		Role:      domain.RoleSeller,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	send(expired)

	assert.Equal(t, []string{"missing_credential", "malformed", "invalid_signature", "expired"}, reasons)
}

func TestWrapPublishesAccessDenied(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var denied []events.Event
	dispatcher.Subscribe(events.EventAccessDenied, func(_ context.Context, event events.Event) error {
		denied = append(denied, event)
		return nil
	})

	codec := NewTokenCodec("test-secret")
	guard := NewHandlerGuard(codec, NewCookieManager(), dispatcher, zap.NewNop())

	app := fiber.New()
	app.Post("/api/products", guard.Wrap(func(c *fiber.Ctx, _ *Claims, _ *ResourceContext) error {
		return c.JSON(fiber.Map{"ok": true})
	}, GuardConfig{RequireAuth: true, AllowedRoles: []domain.Role{domain.RoleSeller}}))

	token, _, err := codec.Issue("owner-1", "owner@example.com", domain.RoleVehicleOwner)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/api/products", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	require.Len(t, denied, 1)
	assert.Equal(t, "owner-1", denied[0].SubjectID)
	assert.Equal(t, "insufficient_role", denied[0].Reason)
}
