package public

import (
	"github.com/concho-nutrition/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCategories lists the product taxonomy with per-category product
// counts.
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.ProductService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "Category listing failed", err)
		return
	}

	response.Success(c, categories)
}
