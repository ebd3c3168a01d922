package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"era-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionApp() *fiber.App {
	app := fiber.New()
	app.Use(Session("eraquiz_sid", time.Hour))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(SessionID(c))
	})
	return app
}

func TestSession_IssuesCookie(t *testing.T) {
	app := newSessionApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	sid := string(body)
	assert.True(t, util.IsULID(sid))

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == "eraquiz_sid" {
			found = true
			assert.Equal(t, sid, c.Value)
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found)
}

func TestSession_ReusesValidCookie(t *testing.T) {
	app := newSessionApp()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", "eraquiz_sid=01HGZ8VNRYXS8QKNJV5GRWPWDQ")

	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "01HGZ8VNRYXS8QKNJV5GRWPWDQ", string(body))
}

func TestSession_ReplacesMalformedCookie(t *testing.T) {
	app := newSessionApp()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", "eraquiz_sid=../../etc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.NotEqual(t, "../../etc", string(body))
	assert.True(t, util.IsULID(string(body)))
}

func TestSessionID_OutsideMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("[" + SessionID(c) + "]")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "[]", string(body))
}
