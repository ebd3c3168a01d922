package middleware

import (
	"time"

	"era-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
)

// SessionIDKey is the Locals key holding the browser session id.
const SessionIDKey = "session_id"

// Session makes sure every request carries a session cookie and exposes its
// value under SessionIDKey. Unknown or malformed ids are replaced.
func Session(cookieName string, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cookieName)
		if !util.IsULID(sid) {
			sid = util.NewULID()
		}
		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    sid,
			Path:     "/",
			Expires:  time.Now().Add(ttl),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(SessionIDKey, sid)
		return c.Next()
	}
}

// SessionID returns the session id set by Session, or "" outside it.
func SessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(SessionIDKey).(string)
	return sid
}
