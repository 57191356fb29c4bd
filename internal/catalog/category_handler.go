package catalog

import (
	"fmt"
	"strings"

	"catalog-backend/internal/audit"
	"catalog-backend/internal/models"
	"catalog-backend/internal/notice"

	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *CategoryRequest) Validate(requireDescription bool) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)

	if r.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name is required.")
	}
	if len(r.Name) > 50 {
		return fiber.NewError(fiber.StatusBadRequest, "Name must be 50 characters or fewer.")
	}
	if requireDescription && r.Description == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Description is required.")
	}
	return nil
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toCategoryResponse(cat *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   formatTime(cat.CreatedAt),
		UpdatedAt:   formatTime(cat.UpdatedAt),
	}
}

// GET /api/categories
func (h *Handler) ListCategories() fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := h.store.ListCategories()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Categories could not be listed.")
		}

		res := make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			res = append(res, toCategoryResponse(&categories[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/categories/:id
func (h *Handler) GetCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		cat, err := h.store.GetCategory(id)
		if err != nil {
			return categoryError(err, "")
		}
		products, err := h.store.ListProductsByCategory(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Products could not be listed.")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, toProductResponse(&products[i]))
		}
		return c.JSON(fiber.Map{
			"category": toCategoryResponse(cat),
			"products": res,
		})
	}
}

// GET /api/categories/:id/products
func (h *Handler) ListCategoryProducts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		if _, err := h.store.GetCategory(id); err != nil {
			return categoryError(err, "")
		}
		products, err := h.store.ListProductsByCategory(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Products could not be listed.")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, toProductResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/categories
func (h *Handler) CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
		}
		if err := body.Validate(h.requireDescription); err != nil {
			return err
		}

		cat, err := h.store.CreateCategory(body.Name, body.Description)
		if err != nil {
			return categoryError(err, body.Name)
		}

		_ = h.recorder.Write(audit.LogOptions{
			EntityType:  "category",
			EntityID:    cat.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Category %q created", cat.Name),
			After:       cat,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"category": toCategoryResponse(cat),
			"notice":   notice.Success(fmt.Sprintf("Category %q was successfully created.", cat.Name)),
		})
	}
}

// PUT /api/categories/:id
func (h *Handler) UpdateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
		}
		if err := body.Validate(h.requireDescription); err != nil {
			return err
		}

		before, err := h.store.GetCategory(id)
		if err != nil {
			return categoryError(err, body.Name)
		}

		cat, err := h.store.UpdateCategory(id, body.Name, body.Description)
		if err != nil {
			return categoryError(err, body.Name)
		}

		_ = h.recorder.Write(audit.LogOptions{
			EntityType:  "category",
			EntityID:    cat.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Category %q updated", cat.Name),
			Before:      before,
			After:       cat,
		})

		return c.JSON(fiber.Map{
			"category": toCategoryResponse(cat),
			"notice":   notice.Success("Category updated successfully."),
		})
	}
}

// DELETE /api/categories/:id
func (h *Handler) DeleteCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		before, err := h.store.GetCategory(id)
		if err != nil {
			return categoryError(err, "")
		}

		reassigned, err := h.store.DeleteCategory(id)
		if err != nil {
			return categoryError(err, before.Name)
		}

		_ = h.recorder.Write(audit.LogOptions{
			EntityType:  "category",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Category %q deleted (%d products reassigned)", before.Name, reassigned),
			Before:      before,
		})

		notices := []notice.Notice{notice.Success("Category deleted successfully.")}
		if reassigned > 0 {
			notices = append(notices, notice.Success(fmt.Sprintf(
				"%d deleted products moved to default category (%q)", reassigned, h.defaultCategoryName)))
		}
		return c.JSON(fiber.Map{
			"reassigned": reassigned,
			"notices":    notices,
		})
	}
}
