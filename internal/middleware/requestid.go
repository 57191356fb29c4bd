package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderXRequestID = "X-Request-ID"
	CtxRequestIDKey  = "request_id"
)

// RequestID tags every request with a unique id, reusing the caller's
// X-Request-ID when present.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderXRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(CtxRequestIDKey, id)
		c.Set(HeaderXRequestID, id)
		return c.Next()
	}
}
