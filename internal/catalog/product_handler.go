package catalog

import (
	"errors"
	"fmt"
	"strings"

	"catalog-backend/internal/audit"
	"catalog-backend/internal/models"
	"catalog-backend/internal/notice"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// asReferenceError maps a missing category onto ErrInvalidReference.
// Any other lookup failure, a dropped connection for one, stays what it
// is so it renders as a server error rather than a validation verdict.
func asReferenceError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrInvalidReference
	}
	return err
}

type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  uint            `json:"category_id"`
}

func (r *ProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)

	if r.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name is required.")
	}
	if len(r.Name) > 50 {
		return fiber.NewError(fiber.StatusBadRequest, "Name must be 50 characters or fewer.")
	}
	if r.Price.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "Price must be zero or greater.")
	}
	if r.Price.Exponent() < -2 {
		return fiber.NewError(fiber.StatusBadRequest, "Price can have at most 2 decimal places.")
	}
	if r.Stock < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Stock must be zero or greater.")
	}
	if r.CategoryID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "A category must be selected.")
	}
	return nil
}

type ProductResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  uint            `json:"category_id"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

// GET /api/products
func (h *Handler) ListProducts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := h.store.ListProducts()
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

// GET /api/products/:id
func (h *Handler) GetProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		product, err := h.store.GetProduct(id)
		if err != nil {
			return productError(err, "")
		}
		return c.JSON(toProductResponse(product))
	}
}

// POST /api/products
func (h *Handler) CreateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
		}
		if err := body.Validate(); err != nil {
			return err
		}

		// Resolved up front so the success notice can name the category.
		cat, err := h.store.GetCategory(body.CategoryID)
		if err != nil {
			return productError(asReferenceError(err), body.Name)
		}

		product, err := h.store.CreateProduct(body.Name, body.Description, body.Price, body.Stock, body.CategoryID)
		if err != nil {
			return productError(err, body.Name)
		}

		_ = h.recorder.Write(audit.LogOptions{
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Product %q created in category %q", product.Name, cat.Name),
			After:       product,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"product": toProductResponse(product),
			"notice": notice.Success(fmt.Sprintf(
				"Product %q was successfully added to the %q category.", product.Name, cat.Name)),
		})
	}
}

// PUT /api/products/:id
func (h *Handler) UpdateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
		}
		if err := body.Validate(); err != nil {
			return err
		}

		before, err := h.store.GetProduct(id)
		if err != nil {
			return productError(err, body.Name)
		}
		cat, err := h.store.GetCategory(body.CategoryID)
		if err != nil {
			return productError(asReferenceError(err), body.Name)
		}

		product, err := h.store.UpdateProduct(id, body.Name, body.Description, body.Price, body.Stock, body.CategoryID)
		if err != nil {
			return productError(err, body.Name)
		}

		_ = h.recorder.Write(audit.LogOptions{
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Product %q updated", product.Name),
			Before:      before,
			After:       product,
		})

		return c.JSON(fiber.Map{
			"product": toProductResponse(product),
			"notice": notice.Success(fmt.Sprintf(
				"Product %q was successfully updated in the %q category.", product.Name, cat.Name)),
		})
	}
}

// DELETE /api/products/:id
func (h *Handler) DeleteProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		before, err := h.store.GetProduct(id)
		if err != nil {
			return productError(err, "")
		}

		if err := h.store.DeleteProduct(id); err != nil {
			return productError(err, before.Name)
		}

		_ = h.recorder.Write(audit.LogOptions{
			EntityType:  "product",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Product %q deleted", before.Name),
			Before:      before,
		})

		return c.JSON(fiber.Map{
			"notice": notice.Success("Product deleted successfully."),
		})
	}
}
