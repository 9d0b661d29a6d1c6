package main

import (
	"context"
	"log"

	"github.com/concho-nutrition/storefront/internal/cache"
	"github.com/concho-nutrition/storefront/internal/config"
	"github.com/concho-nutrition/storefront/internal/constants"
	"github.com/concho-nutrition/storefront/internal/logger"
	"github.com/concho-nutrition/storefront/internal/models"
	"github.com/concho-nutrition/storefront/internal/repository"
	"github.com/concho-nutrition/storefront/internal/service"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	seedCategories(stdLog, repository.NewCategoryRepository(models.DB))
	seedProducts(stdLog, repository.NewProductRepository(models.DB))
	seedCheckoutSetting(stdLog, service.NewSettingService(repository.NewSettingRepository(models.DB)), cfg.Checkout.FreeShippingThreshold)

	// Drop cached catalog pages so the storefront serves the new rows
	// before the TTL runs out.
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		stdLog.Printf("Redis unavailable, skipping cache invalidation: %v", err)
	} else if err := cache.InvalidateCatalog(context.Background()); err != nil {
		stdLog.Printf("Failed to invalidate catalog cache: %v", err)
	}

	stdLog.Printf("Seed complete")
}

// seedCategories installs the standardized taxonomy. Existing entries
// get their display name and sort order refreshed so reseeding picks up
// taxonomy changes.
func seedCategories(stdLog *log.Logger, categoryRepo repository.CategoryRepository) {
	for i, slug := range service.TaxonomySlugs() {
		existing, err := categoryRepo.GetBySlug(slug)
		if err != nil {
			stdLog.Printf("Failed to look up category %s: %v", slug, err)
			continue
		}
		if existing != nil {
			existing.Name = service.CategoryDisplayName(slug)
			existing.SortOrder = i
			if err := categoryRepo.Update(existing); err != nil {
				stdLog.Printf("Failed to refresh category %s: %v", slug, err)
			} else {
				stdLog.Printf("Refreshed category: %s", slug)
			}
			continue
		}
		cat := models.Category{
			Slug:      slug,
			Name:      service.CategoryDisplayName(slug),
			SortOrder: i,
		}
		if err := categoryRepo.Create(&cat); err != nil {
			stdLog.Printf("Failed to create category %s: %v", slug, err)
		} else {
			stdLog.Printf("Created category: %s", slug)
		}
	}
}

// seedProducts installs the starter catalog in one transaction. The
// standardized category is derived from the vendor category and title,
// the same way catalog ingest does it.
func seedProducts(stdLog *log.Logger, productRepo *repository.GormProductRepository) {
	products := []models.Product{
		{
			Slug:              "whey-isolate-2lb",
			Title:             "Whey Protein Isolate 2lb",
			Description:       "25g of fast-absorbing whey isolate per serving.",
			PriceAmount:       money("44.99"),
			SubscriptionPrice: moneyPtr("38.24"),
			Currency:          "USD",
			Flavors:           models.StringArray{"Chocolate", "Vanilla", "Strawberry"},
			VendorCategory:    "Protein Powders",
			Stock:             120,
			IsActive:          true,
			SortOrder:         100,
		},
		{
			Slug:              "pre-workout-ignite",
			Title:             "Ignite Pre-Workout",
			Description:       "Clean energy and focus without the crash.",
			PriceAmount:       money("39.99"),
			SalePriceAmount:   moneyPtr("34.99"),
			SubscriptionPrice: moneyPtr("29.74"),
			Currency:          "USD",
			Flavors:           models.StringArray{"Blue Razz", "Fruit Punch"},
			VendorCategory:    "Pre-Workout",
			Stock:             80,
			IsActive:          true,
			SortOrder:         90,
		},
		{
			Slug:           "daily-multivitamin",
			Title:          "Daily Multivitamin",
			Description:    "Complete micronutrient coverage, 90 capsules.",
			PriceAmount:    money("24.99"),
			Currency:       "USD",
			VendorCategory: "Vitamins & Minerals",
			Stock:          200,
			IsActive:       true,
			SortOrder:      80,
		},
		{
			Slug:              "creatine-monohydrate",
			Title:             "Creatine Monohydrate",
			Description:       "5g micronized creatine per scoop, unflavored.",
			PriceAmount:       money("29.99"),
			SubscriptionPrice: moneyPtr("25.49"),
			Currency:          "USD",
			VendorCategory:    "Recovery",
			Stock:             150,
			IsActive:          true,
			SortOrder:         70,
		},
		{
			Slug:           "blender-shaker-28oz",
			Title:          "Shaker Bottle 28oz",
			Description:    "Leak-proof shaker with wire whisk ball.",
			PriceAmount:    money("12.99"),
			Currency:       "USD",
			VendorCategory: "Gear",
			Stock:          60,
			IsActive:       true,
			SortOrder:      60,
		},
		{
			Slug:           "ashwagandha-ksm66",
			Title:          "Ashwagandha KSM-66",
			Description:    "600mg full-spectrum root extract for stress support.",
			PriceAmount:    money("21.99"),
			Currency:       "USD",
			VendorCategory: "Wellness",
			Stock:          0, // out of stock on purpose, exercises the add-to-cart gate
			IsActive:       true,
			SortOrder:      50,
		},
	}

	err := productRepo.Transaction(func(tx *gorm.DB) error {
		repo := productRepo.WithTx(tx)
		for i := range products {
			product := &products[i]
			product.Category = service.StandardizeCategory(product.VendorCategory, product.Title)
			count, err := repo.CountBySlug(product.Slug, nil)
			if err != nil {
				return err
			}
			if count > 0 {
				stdLog.Printf("Product already exists: %s", product.Slug)
				continue
			}
			if err := repo.Create(product); err != nil {
				return err
			}
			stdLog.Printf("Created product: %s (%s)", product.Slug, product.Category)
		}
		return nil
	})
	if err != nil {
		stdLog.Printf("Failed to seed products: %v", err)
	}
}

// seedCheckoutSetting writes the checkout settings row read at startup
// over the static config. An existing row is left alone so a tuned
// threshold survives reseeding.
func seedCheckoutSetting(stdLog *log.Logger, settings *service.SettingService, threshold float64) {
	value, err := settings.GetByKey(constants.SettingKeyCheckout)
	if err != nil {
		stdLog.Printf("Failed to read checkout setting: %v", err)
		return
	}
	if value != nil {
		stdLog.Printf("Checkout setting already exists")
		return
	}
	if _, err := settings.Update(constants.SettingKeyCheckout, map[string]interface{}{
		"free_shipping_threshold": threshold,
	}); err != nil {
		stdLog.Printf("Failed to create checkout setting: %v", err)
	} else {
		stdLog.Printf("Created checkout setting")
	}
}

func money(amount string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(amount))
}

func moneyPtr(amount string) *models.Money {
	value := money(amount)
	return &value
}
