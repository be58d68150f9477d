package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
)

func responseCookies(t *testing.T, resp *http.Response) map[string]*http.Cookie {
	t.Helper()
	out := map[string]*http.Cookie{}
	for _, cookie := range resp.Cookies() {
		out[cookie.Name] = cookie
	}
	return out
}

func TestAttachWritesSessionAndRoleCookies(t *testing.T) {
	cm := NewCookieManager()
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		cm.Attach(c, "signed-token", domain.RoleSeller)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/set", nil))
	require.NoError(t, err)

	cookies := responseCookies(t, resp)
	session := cookies[SessionCookieName]
	require.NotNil(t, session)
	assert.Equal(t, "signed-token", session.Value)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, "/", session.Path)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), session.Expires, time.Minute)

	role := cookies[RoleCookieName]
	require.NotNil(t, role)
	assert.Equal(t, "SELLER", role.Value)
	assert.False(t, role.HttpOnly)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), role.Expires, time.Minute)
}

func TestClearExpiresBothCookies(t *testing.T) {
	cm := NewCookieManager()
	app := fiber.New()
	app.Get("/clear", func(c *fiber.Ctx) error {
		cm.Clear(c)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/clear", nil))
	require.NoError(t, err)

	cookies := responseCookies(t, resp)
	for _, name := range []string{SessionCookieName, RoleCookieName} {
		cookie := cookies[name]
		require.NotNil(t, cookie, name)
		assert.Empty(t, cookie.Value, name)
		assert.True(t, cookie.Expires.Before(time.Now()), name)
	}
}

func TestSessionTokenReadsRequestCookie(t *testing.T) {
	cm := NewCookieManager()
	app := fiber.New()

	var token string
	var present bool
	app.Get("/read", func(c *fiber.Ctx) error {
		token, present = cm.SessionToken(c)
		return c.SendString("ok")
	})

	req := httptest.NewRequest(fiber.MethodGet, "/read", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "abc", token)

	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/read", nil))
	require.NoError(t, err)
	assert.False(t, present)
	assert.Empty(t, token)
}
