package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
)

type wrapperFixture struct {
	app     *fiber.App
	codec   *TokenCodec
	calls   int
	lastID  string
	lastRol domain.Role
	lastNil bool
}

func newWrapperFixture(t *testing.T, cfg GuardConfig, routes ...func(app *fiber.App, handler fiber.Handler)) *wrapperFixture {
	t.Helper()

	f := &wrapperFixture{codec: NewTokenCodec("test-secret")}
	guard := NewHandlerGuard(f.codec, NewCookieManager(), nil, zap.NewNop())

	inner := func(c *fiber.Ctx, identity *Claims, rc *ResourceContext) error {
		f.calls++
		f.lastNil = identity == nil
		if identity != nil {
			f.lastRol = identity.Role
		}
		f.lastID = rc.ID
		return c.JSON(fiber.Map{"ok": true})
	}

	f.app = fiber.New()
	wrapped := guard.Wrap(inner, cfg)
	if len(routes) == 0 {
		f.app.Put("/api/products/:id", wrapped)
	}
	for _, register := range routes {
		register(f.app, wrapped)
	}
	return f
}

func (f *wrapperFixture) request(t *testing.T, method, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func errorBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body["error"]
}

func TestWrapRequiresAuthWhenTokenAbsent(t *testing.T) {
	f := newWrapperFixture(t, GuardConfig{RequireAuth: true})

	resp := f.request(t, fiber.MethodPut, "/api/products/42", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication required", errorBody(t, resp))
	assert.Zero(t, f.calls)
}

func TestWrapOptionalAuthInvokesWithoutIdentity(t *testing.T) {
	f := newWrapperFixture(t, GuardConfig{})

	resp := f.request(t, fiber.MethodPut, "/api/products/42", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, f.calls)
	assert.True(t, f.lastNil)
	assert.Equal(t, "42", f.lastID)
}

func TestWrapRejectsInvalidToken(t *testing.T) {
	f := newWrapperFixture(t, GuardConfig{RequireAuth: true})

	stale := NewTokenCodec("stale-secret")
	token, _, err := stale.Issue("user-1", "seller@example.com", domain.RoleSeller)
	require.NoError(t, err)

	resp := f.request(t, fiber.MethodPut, "/api/products/42", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", errorBody(t, resp))
	assert.Zero(t, f.calls)

	resp = f.request(t, fiber.MethodPut, "/api/products/42", "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", errorBody(t, resp))
	assert.Zero(t, f.calls)
}

func TestWrapEmptyAllowListAdmitsAnyRole(t *testing.T) {
	for _, role := range domain.Roles {
		f := newWrapperFixture(t, GuardConfig{RequireAuth: true})
		token, _, err := f.codec.Issue("user-1", "a@example.com", role)
		require.NoError(t, err)

		resp := f.request(t, fiber.MethodPut, "/api/products/42", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode, role)
		assert.Equal(t, 1, f.calls, role)
		assert.Equal(t, role, f.lastRol)
	}
}

func TestWrapRoleAllowListRejectsOutsider(t *testing.T) {
	f := newWrapperFixture(t, GuardConfig{
		RequireAuth:  true,
		AllowedRoles: []domain.Role{domain.RoleSeller},
	})
	token, _, err := f.codec.Issue("user-1", "owner@example.com", domain.RoleVehicleOwner)
	require.NoError(t, err)

	resp := f.request(t, fiber.MethodPut, "/api/products/42", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Unauthorized access: insufficient permissions", errorBody(t, resp))
	assert.Zero(t, f.calls)
}

func TestWrapRoleAllowListAdmitsMember(t *testing.T) {
	f := newWrapperFixture(t, GuardConfig{
		RequireAuth:  true,
		AllowedRoles: []domain.Role{domain.RoleSeller},
	})
	token, _, err := f.codec.Issue("seller-1", "seller@example.com", domain.RoleSeller)
	require.NoError(t, err)

	resp := f.request(t, fiber.MethodPut, "/api/products/42", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, domain.RoleSeller, f.lastRol)
	assert.Equal(t, "42", f.lastID)
}

func TestWrapDerivesResourceIDFromPathWithoutParam(t *testing.T) {
	// Route registered without :id, exercising the final-segment fallback.
	f := newWrapperFixture(t, GuardConfig{}, func(app *fiber.App, handler fiber.Handler) {
		app.Put("/api/products/42", handler)
		app.Put("/api/products/42/", handler)
	})

	resp := f.request(t, fiber.MethodPut, "/api/products/42", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "42", f.lastID)

	resp = f.request(t, fiber.MethodPut, "/api/products/42/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "42", f.lastID)
}

func TestWrapPrefersSuppliedResourceContext(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	guard := NewHandlerGuard(codec, NewCookieManager(), nil, zap.NewNop())

	var gotID string
	inner := func(c *fiber.Ctx, identity *Claims, rc *ResourceContext) error {
		gotID = rc.ID
		return c.JSON(fiber.Map{"ok": true})
	}

	app := fiber.New()
	app.Put("/api/products/42", guard.Wrap(inner, GuardConfig{}, &ResourceContext{ID: "supplied"}))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPut, "/api/products/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "supplied", gotID)
}
