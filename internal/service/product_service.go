package service

import (
	"context"
	"time"

	"github.com/concho-nutrition/storefront/internal/cache"
	"github.com/concho-nutrition/storefront/internal/config"
	"github.com/concho-nutrition/storefront/internal/logger"
	"github.com/concho-nutrition/storefront/internal/models"
	"github.com/concho-nutrition/storefront/internal/repository"
)

const (
	defaultCatalogCacheTTL = 15 * time.Minute

	// The storefront landing page requests the first page at this size
	// after pagination clamping; that is the query worth caching.
	defaultCatalogPageSize = 20
)

// ProductService serves the storefront catalog with a read-through
// cache in front of the database.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cacheTTL     time.Duration
}

// NewProductService creates a product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, cfg *config.CatalogConfig) *ProductService {
	ttl := defaultCatalogCacheTTL
	if cfg != nil && cfg.CacheTTLMinutes > 0 {
		ttl = time.Duration(cfg.CacheTTLMinutes) * time.Minute
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cacheTTL:     ttl,
	}
}

// List returns active products, optionally filtered by taxonomy slug
// or search text. The unfiltered list is cached; filtered queries go to
// the database. Cache failures degrade to a database read.
func (s *ProductService) List(ctx context.Context, category, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   category,
		Search:     search,
		OnlyActive: true,
	}

	cacheable := cacheableList(category, search, page, pageSize)
	if cacheable {
		if products, total, hit, err := cache.GetProductList(ctx); err == nil && hit {
			return products, total, nil
		} else if err != nil {
			logger.Warnw("product list cache read failed", "error", err)
		}
	}

	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		if err := cache.SetProductList(ctx, products, total, s.cacheTTL); err != nil {
			logger.Warnw("product list cache write failed", "error", err)
		}
	}
	return products, total, nil
}

// cacheableList reports whether a list query is the default first page,
// the only query served from the cache. Handlers clamp the page size to
// its default before calling, so an unset size also matches.
func cacheableList(category, search string, page, pageSize int) bool {
	if category != "" || search != "" || page > 1 {
		return false
	}
	return pageSize <= 0 || pageSize == defaultCatalogPageSize
}

// GetBySlug returns one active product, read through the cache.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if product, hit, err := cache.GetProductDetail(ctx, slug); err == nil && hit {
		return product, nil
	} else if err != nil {
		logger.Warnw("product detail cache read failed", "slug", slug, "error", err)
	}

	product, err := s.productRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotAvailable
	}

	if err := cache.SetProductDetail(ctx, product, s.cacheTTL); err != nil {
		logger.Warnw("product detail cache write failed", "slug", slug, "error", err)
	}
	return product, nil
}

// CategoryWithCount pairs a taxonomy entry with its live product count.
type CategoryWithCount struct {
	models.Category
	ProductCount int64 `json:"product_count"`
}

// ListCategories returns the taxonomy with product counts, cached.
func (s *ProductService) ListCategories(ctx context.Context) ([]CategoryWithCount, error) {
	if categories, hit, err := cache.GetCategoryList(ctx); err == nil && hit {
		return s.attachCounts(categories)
	} else if err != nil {
		logger.Warnw("category cache read failed", "error", err)
	}

	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetCategoryList(ctx, categories, s.cacheTTL); err != nil {
		logger.Warnw("category cache write failed", "error", err)
	}
	return s.attachCounts(categories)
}

func (s *ProductService) attachCounts(categories []models.Category) ([]CategoryWithCount, error) {
	result := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := s.categoryRepo.CountProducts(category.Slug)
		if err != nil {
			return nil, err
		}
		result = append(result, CategoryWithCount{Category: category, ProductCount: count})
	}
	return result, nil
}
