package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/concho-nutrition/storefront/internal/http/response"
	"github.com/concho-nutrition/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts lists active products with optional category and search
// filters.
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.List(c.Request.Context(), category, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Product listing failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProductBySlug returns one active product by slug.
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	product, err := h.ProductService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotAvailable) {
			respondError(c, response.CodeNotFound, "Product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Product fetch failed", err)
		return
	}

	response.Success(c, product)
}
