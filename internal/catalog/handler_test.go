package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"catalog-backend/internal/audit"
	"catalog-backend/internal/notice"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *Store) {
	t.Helper()

	store := setupTestStore(t)
	handler := NewHandler(store, audit.NewRecorder(store.db), "Uncategorized", true)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": notice.Error(e.Message)})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": notice.Error("Unexpected server error.")})
		},
	})

	api := app.Group("/api")
	api.Get("/categories", handler.ListCategories())
	api.Get("/categories/:id", handler.GetCategory())
	api.Get("/categories/:id/products", handler.ListCategoryProducts())
	api.Post("/categories", handler.CreateCategory())
	api.Put("/categories/:id", handler.UpdateCategory())
	api.Delete("/categories/:id", handler.DeleteCategory())
	api.Get("/products", handler.ListProducts())
	api.Get("/products/:id", handler.GetProduct())
	api.Post("/products", handler.CreateProduct())
	api.Put("/products/:id", handler.UpdateProduct())
	api.Delete("/products/:id", handler.DeleteProduct())

	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	payload := decodeBody(t, resp)
	errObj, ok := payload["error"].(map[string]any)
	require.True(t, ok, "error payload missing: %v", payload)
	msg, _ := errObj["message"].(string)
	return msg
}

func TestCreateCategoryHandler(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, "POST", "/api/categories", CategoryRequest{Name: "Gadgets", Description: "Small devices"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	payload := decodeBody(t, resp)
	noticeObj := payload["notice"].(map[string]any)
	assert.Equal(t, `Category "Gadgets" was successfully created.`, noticeObj["message"])
	assert.Equal(t, "success", noticeObj["level"])

	resp = doJSON(t, app, "POST", "/api/categories", CategoryRequest{Name: "Gadgets", Description: "Again"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, `Category "Gadgets" already exists.`, errorMessage(t, resp))
}

func TestCategoryValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	testCases := []struct {
		name    string
		body    CategoryRequest
		message string
	}{
		{"empty name", CategoryRequest{Name: "  ", Description: "x"}, "Name is required."},
		{"name too long", CategoryRequest{Name: strings.Repeat("a", 51), Description: "x"}, "Name must be 50 characters or fewer."},
		{"missing description", CategoryRequest{Name: "Gadgets"}, "Description is required."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, "POST", "/api/categories", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.message, errorMessage(t, resp))
		})
	}
}

func TestDefaultCategoryIsProtected(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, "PUT", "/api/categories/1", CategoryRequest{Name: "Renamed", Description: "x"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", "/api/categories/1", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteCategoryHandlerReportsReassignment(t *testing.T) {
	app, store := setupTestApp(t)

	cat := mustCreateCategory(t, store, "Gadgets")
	_, err := store.CreateProduct("Widget", "", decimal.RequireFromString("9.99"), 3, cat.ID)
	require.NoError(t, err)

	resp := doJSON(t, app, "DELETE", "/api/categories/2", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp)
	assert.Equal(t, float64(1), payload["reassigned"])

	notices := payload["notices"].([]any)
	require.Len(t, notices, 2)
	second := notices[1].(map[string]any)
	assert.Equal(t, `1 deleted products moved to default category ("Uncategorized")`, second["message"])
}

func TestProductHandlers(t *testing.T) {
	app, store := setupTestApp(t)
	cat := mustCreateCategory(t, store, "Gadgets")

	t.Run("create in missing category", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/products", ProductRequest{
			Name: "Widget", Price: decimal.RequireFromString("9.99"), Stock: 1, CategoryID: 9999,
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "The selected category does not exist.", errorMessage(t, resp))
	})

	t.Run("price precision rejected", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/products", ProductRequest{
			Name: "Widget", Price: decimal.RequireFromString("9.999"), Stock: 1, CategoryID: cat.ID,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Price can have at most 2 decimal places.", errorMessage(t, resp))
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/products", ProductRequest{
			Name: "Widget", Price: decimal.RequireFromString("9.99"), Stock: -1, CategoryID: cat.ID,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("create and fetch", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/products", ProductRequest{
			Name: "Widget", Description: "A widget", Price: decimal.RequireFromString("19.99"), Stock: 5, CategoryID: cat.ID,
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		payload := decodeBody(t, resp)
		noticeObj := payload["notice"].(map[string]any)
		assert.Equal(t, `Product "Widget" was successfully added to the "Gadgets" category.`, noticeObj["message"])

		product := payload["product"].(map[string]any)
		id := int(product["id"].(float64))

		resp = doJSON(t, app, "GET", "/api/products/"+strconv.Itoa(id), nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		got := decodeBody(t, resp)
		assert.Equal(t, "Widget", got["name"])
		assert.Equal(t, "19.99", got["price"])
		assert.Equal(t, float64(5), got["stock"])
	})

	t.Run("duplicate name", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/products", ProductRequest{
			Name: "Widget", Price: decimal.RequireFromString("1.00"), Stock: 0, CategoryID: cat.ID,
		})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, `Product "Widget" already exists.`, errorMessage(t, resp))
	})

	t.Run("delete missing product", func(t *testing.T) {
		resp := doJSON(t, app, "DELETE", "/api/products/9999", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Product not found.", errorMessage(t, resp))
	})
}

func TestCreateProductLookupFailureIsServerError(t *testing.T) {
	app, store := setupTestApp(t)
	cat := mustCreateCategory(t, store, "Gadgets")

	// A failed category lookup that is not a missing row must surface
	// as a server error, not as a validation verdict on the reference.
	sqlDB, err := store.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp := doJSON(t, app, "POST", "/api/products", ProductRequest{
		Name: "Widget", Description: "A widget", Price: decimal.RequireFromString("1.00"), Stock: 1, CategoryID: cat.ID,
	})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Product operation failed.", errorMessage(t, resp))
}

func TestGetCategoryWithProducts(t *testing.T) {
	app, store := setupTestApp(t)
	cat := mustCreateCategory(t, store, "Gadgets")
	_, err := store.CreateProduct("Widget", "", decimal.RequireFromString("9.99"), 3, cat.ID)
	require.NoError(t, err)

	resp := doJSON(t, app, "GET", "/api/categories/2", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp)
	category := payload["category"].(map[string]any)
	assert.Equal(t, "Gadgets", category["name"])
	products := payload["products"].([]any)
	require.Len(t, products, 1)

	resp = doJSON(t, app, "GET", "/api/categories/9999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
