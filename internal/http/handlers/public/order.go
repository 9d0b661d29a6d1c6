package public

import (
	"github.com/concho-nutrition/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetOrder returns the session's order by its public number, for the
// post-checkout status page.
func (h *Handler) GetOrder(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	order, err := h.CheckoutService.GetOrder(sessionID, c.Param("order_no"))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}
