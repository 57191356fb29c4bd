package audit

import (
	"github.com/gofiber/fiber/v2"
)

// ListHandler serves GET /api/audit-logs for the admin surface.
func ListHandler(rec *Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := rec.List(c.Query("entity_type"), c.QueryInt("limit", 100))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit logs could not be listed.")
		}
		return c.JSON(logs)
	}
}
