package catalog

import (
	"errors"
	"fmt"
	"time"

	"catalog-backend/internal/audit"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the catalog as a JSON API. It converts typed input
// into store calls and store errors into user-facing notices; it never
// touches the session or renders anything beyond plain data.
type Handler struct {
	store               *Store
	recorder            *audit.Recorder
	defaultCategoryName string
	requireDescription  bool
}

func NewHandler(store *Store, recorder *audit.Recorder, defaultCategoryName string, requireDescription bool) *Handler {
	return &Handler{
		store:               store,
		recorder:            recorder,
		defaultCategoryName: defaultCategoryName,
		requireDescription:  requireDescription,
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id.")
	}
	return uint(id), nil
}

// categoryError maps store failures on category operations to HTTP
// errors carrying the notice text the UI shows.
func categoryError(err error, name string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Category not found.")
	case errors.Is(err, ErrDuplicateName):
		return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Category %q already exists.", name))
	case errors.Is(err, ErrProtected):
		return fiber.NewError(fiber.StatusForbidden, "The default category cannot be edited or deleted.")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Category operation failed.")
	}
}

func productError(err error, name string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Product not found.")
	case errors.Is(err, ErrDuplicateName):
		return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Product %q already exists.", name))
	case errors.Is(err, ErrInvalidReference):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "The selected category does not exist.")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Product operation failed.")
	}
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
