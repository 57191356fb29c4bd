// Command seed wipes the catalog tables and loads the demo data set.
package main

import (
	"catalog-backend/internal/config"
	"catalog-backend/internal/database"
	"catalog-backend/internal/logger"
	"catalog-backend/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedProduct struct {
	name, description, price string
	stock                    int
	category                 string
}

var seedCategories = []models.Category{
	{Name: "Computers & Laptops", Description: "Desktops, laptops, and accessories"},
	{Name: "Phones & Tablets", Description: "Smartphones, tablets, and related devices"},
	{Name: "TVs & Audio", Description: "Televisions, sound systems, and audio equipment"},
	{Name: "Gaming", Description: "Consoles, games, and gaming accessories"},
	{Name: "Home Appliances", Description: "Electronics and appliances for the home"},
}

var seedProducts = []seedProduct{
	{"MacBook Pro 14\"", "Apple laptop with M2 Pro chip", "1999.99", 10, "Computers & Laptops"},
	{"Dell XPS 13", "Compact Windows ultrabook", "1399.99", 15, "Computers & Laptops"},
	{"Lenovo ThinkPad X1", "Business laptop with great keyboard", "1299.99", 20, "Computers & Laptops"},
	{"LG Gram 16", "Ultra-lightweight laptop", "1499.99", 12, "Computers & Laptops"},
	{"Sony Vaio Z", "High-performance ultrabook", "1799.99", 8, "Computers & Laptops"},

	{"iPhone 15", "Latest Apple smartphone", "1199.99", 25, "Phones & Tablets"},
	{"Samsung Galaxy S24", "Flagship Android phone", "1099.99", 30, "Phones & Tablets"},
	{"Sony Xperia 5", "Compact Android phone", "899.99", 18, "Phones & Tablets"},
	{"iPad Pro 12.9\"", "Apple high-end tablet", "1399.99", 14, "Phones & Tablets"},
	{"Samsung Galaxy Tab S9", "Premium Android tablet", "999.99", 20, "Phones & Tablets"},

	{"LG OLED55", "55-inch OLED TV", "1499.99", 12, "TVs & Audio"},
	{"Sony Bravia XR", "65-inch 4K HDR TV", "1999.99", 10, "TVs & Audio"},
	{"Samsung QLED Q90", "High-end QLED TV", "1799.99", 9, "TVs & Audio"},
	{"Apple HomePod", "Smart speaker with high-fidelity sound", "299.99", 25, "TVs & Audio"},
	{"Sony WH-1000XM5", "Noise-cancelling headphones", "399.99", 40, "TVs & Audio"},

	{"PlayStation 5", "Sony next-gen console", "499.99", 20, "Gaming"},
	{"Xbox Series X", "Microsoft flagship console", "499.99", 18, "Gaming"},
	{"Nintendo Switch OLED", "Portable hybrid console", "349.99", 25, "Gaming"},
	{"Alienware Gaming Laptop", "High-performance gaming laptop", "2299.99", 7, "Gaming"},
	{"LG Ultragear Monitor", "High refresh rate gaming monitor", "599.99", 15, "Home Appliances"},

	{"Roomba i7", "Robot vacuum cleaner", "599.99", 22, "Home Appliances"},
	{"LG Air Purifier", "Removes dust and allergens", "399.99", 17, "Home Appliances"},
	{"Samsung Family Hub Fridge", "Smart refrigerator with touchscreen", "2999.99", 5, "Home Appliances"},
	{"Sony Bluetooth Speaker", "Portable speaker with deep bass", "149.99", 30, "Home Appliances"},
	{"Apple AirPods Pro 2", "Noise-cancelling wireless earbuds", "249.99", 35, "Home Appliances"},
}

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

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id <> ?", cfg.DefaultCategoryID).Delete(&models.Category{}).Error; err != nil {
			return err
		}

		categoryIDs := make(map[string]uint, len(seedCategories))
		for i := range seedCategories {
			cat := seedCategories[i]
			if err := tx.Create(&cat).Error; err != nil {
				return err
			}
			categoryIDs[cat.Name] = cat.ID
		}

		for _, sp := range seedProducts {
			product := models.Product{
				Name:        sp.name,
				Description: sp.description,
				Price:       decimal.RequireFromString(sp.price),
				Stock:       sp.stock,
				CategoryID:  categoryIDs[sp.category],
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	log.Info("database populated with demo data",
		zap.Int("categories", len(seedCategories)),
		zap.Int("products", len(seedProducts)))
}
