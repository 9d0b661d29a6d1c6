package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/concho-nutrition/storefront/internal/models"
)

const (
	productListKey = "catalog:products"
	categoryKey    = "catalog:categories"
)

func productDetailKey(slug string) string {
	return fmt.Sprintf("catalog:product:%s", slug)
}

// productListEntry caches the default first page along with the total
// catalog count, which exceeds the page when the catalog is larger.
type productListEntry struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// GetProductList reads the cached default product page.
func GetProductList(ctx context.Context) ([]models.Product, int64, bool, error) {
	var entry productListEntry
	hit, err := GetJSON(ctx, productListKey, &entry)
	if err != nil || !hit {
		return nil, 0, hit, err
	}
	return entry.Products, entry.Total, true, nil
}

// SetProductList caches the default product page.
func SetProductList(ctx context.Context, products []models.Product, total int64, ttl time.Duration) error {
	if products == nil {
		return nil
	}
	return SetJSON(ctx, productListKey, productListEntry{Products: products, Total: total}, ttl)
}

// GetProductDetail reads a cached product by slug.
func GetProductDetail(ctx context.Context, slug string) (*models.Product, bool, error) {
	if slug == "" {
		return nil, false, nil
	}
	var product models.Product
	hit, err := GetJSON(ctx, productDetailKey(slug), &product)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &product, true, nil
}

// SetProductDetail caches a product by slug.
func SetProductDetail(ctx context.Context, product *models.Product, ttl time.Duration) error {
	if product == nil || product.Slug == "" {
		return nil
	}
	return SetJSON(ctx, productDetailKey(product.Slug), product, ttl)
}

// GetCategoryList reads the cached category list.
func GetCategoryList(ctx context.Context) ([]models.Category, bool, error) {
	var categories []models.Category
	hit, err := GetJSON(ctx, categoryKey, &categories)
	if err != nil || !hit {
		return nil, hit, err
	}
	return categories, true, nil
}

// SetCategoryList caches the category list.
func SetCategoryList(ctx context.Context, categories []models.Category, ttl time.Duration) error {
	if categories == nil {
		return nil
	}
	return SetJSON(ctx, categoryKey, categories, ttl)
}

// InvalidateCatalog drops every catalog cache entry tracked by fixed keys.
// Product detail entries expire on their own TTL.
func InvalidateCatalog(ctx context.Context) error {
	if err := Del(ctx, productListKey); err != nil {
		return err
	}
	return Del(ctx, categoryKey)
}
