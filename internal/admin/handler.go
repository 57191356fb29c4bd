package admin

import (
	"time"

	"catalog-backend/internal/notice"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Password string `json:"password"`
	ReturnTo string `json:"return_to"`
}

// LoginHandler performs the Anonymous -> Elevated transition. The
// response carries a redirect target instead of replaying the original
// request: the client issues a fresh request after following it, so a
// pending form submission is never silently re-executed.
func (g *Gate) LoginHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
		}
		if body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Password is required.")
		}

		// bcrypt comparison is constant-time safe; never plain equality.
		if err := bcrypt.CompareHashAndPassword([]byte(g.passwordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid admin password.")
		}

		token, err := g.grant(time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Admin session could not be established.")
		}

		// Replaces any prior session state with a fresh elevation stamp.
		c.Cookie(&fiber.Cookie{
			Name:     g.cookieName,
			Value:    token,
			Path:     "/",
			HTTPOnly: true,
			SameSite: "Lax",
		})

		return c.JSON(fiber.Map{
			"redirect": SafeReturnTarget(body.ReturnTo, "/"),
			"notice":   notice.Success("Logged in successfully."),
		})
	}
}

// LogoutHandler clears elevation state immediately.
func (g *Gate) LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     g.cookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		return c.JSON(fiber.Map{
			"notice": notice.Success("Logged out successfully."),
		})
	}
}

// SessionHandler reports the current elevation state and the unexpired
// portion of the window, in whole seconds.
func (g *Gate) SessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		left, ok := g.Remaining(c)
		res := fiber.Map{"elevated": ok}
		if ok && g.ttl > 0 {
			res["expires_in"] = int(left.Seconds())
		}
		return c.JSON(res)
	}
}

// RequireElevation guards mutating routes. A request without current
// elevation is answered with a password prompt indication and a safe
// target to return to after authenticating, never with the operation.
func (g *Gate) RequireElevation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.Elevated(c) {
			return c.Next()
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":     notice.Error("Admin elevation required."),
			"return_to": SafeReturnTarget(c.Path(), "/"),
		})
	}
}
