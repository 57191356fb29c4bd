package main

import (
	"strings"

	"catalog-backend/internal/admin"
	"catalog-backend/internal/audit"
	"catalog-backend/internal/catalog"
	"catalog-backend/internal/config"
	"catalog-backend/internal/database"
	"catalog-backend/internal/importer"
	"catalog-backend/internal/logger"
	"catalog-backend/internal/middleware"
	"catalog-backend/internal/notice"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	log := logger.L()
	defer log.Sync()

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	log.Info("database connection established")

	store := catalog.NewStore(db, cfg.DefaultCategoryID)
	recorder := audit.NewRecorder(db)
	gate := admin.NewGate(cfg)
	catalogHandler := catalog.NewHandler(store, recorder, cfg.DefaultCategoryName, cfg.RequireDescription)
	bulkImporter := importer.New(store)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": notice.Error(e.Message),
				})
			}
			log.Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": notice.Error("Unexpected server error."),
			})
		},
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(log))
	app.Use(middleware.NewHTTPMetrics("catalog-backend").Middleware())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Admin elevation
	api.Post("/admin/login", gate.LoginHandler())
	api.Post("/admin/logout", gate.LogoutHandler())
	api.Get("/admin/session", gate.SessionHandler())

	// Public catalog reads and creates
	api.Get("/categories", catalogHandler.ListCategories())
	api.Get("/categories/:id", catalogHandler.GetCategory())
	api.Get("/categories/:id/products", catalogHandler.ListCategoryProducts())
	api.Post("/categories", catalogHandler.CreateCategory())
	api.Get("/products", catalogHandler.ListProducts())
	api.Get("/products/:id", catalogHandler.GetProduct())
	api.Post("/products", catalogHandler.CreateProduct())

	// Gated mutations
	gated := api.Group("")
	gated.Use(gate.RequireElevation())
	gated.Put("/categories/:id", catalogHandler.UpdateCategory())
	gated.Delete("/categories/:id", catalogHandler.DeleteCategory())
	gated.Put("/products/:id", catalogHandler.UpdateProduct())
	gated.Delete("/products/:id", catalogHandler.DeleteProduct())
	gated.Post("/admin/import", importer.UploadHandler(bulkImporter, recorder))
	gated.Get("/audit-logs", audit.ListHandler(recorder))

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
