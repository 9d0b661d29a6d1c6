package public

import (
	"strconv"

	"github.com/concho-nutrition/storefront/internal/http/response"
	"github.com/concho-nutrition/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest is the add-to-cart body.
type AddCartItemRequest struct {
	ProductID      uint   `json:"product_id" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required"`
	Variant        string `json:"variant"`
	IsSubscription bool   `json:"is_subscription"`
}

// UpdateCartQuantityRequest is the quantity-update body.
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the session cart with derived totals.
func (h *Handler) GetCart(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	detail, err := h.CartService.Get(sessionID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, detail)
}

// AddCartItem adds a product line to the cart, merging with an existing
// line that has the same product, flavor, and purchase mode.
func (h *Handler) AddCartItem(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Request body is invalid", err)
		return
	}

	detail, err := h.CartService.Add(service.AddCartItemInput{
		SessionID:      sessionID,
		ProductID:      req.ProductID,
		Variant:        req.Variant,
		IsSubscription: req.IsSubscription,
		Quantity:       req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, detail)
}

// UpdateCartItemQuantity sets the quantity for every line of a product.
func (h *Handler) UpdateCartItemQuantity(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	productID, ok := cartProductID(c)
	if !ok {
		return
	}
	var req UpdateCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Request body is invalid", err)
		return
	}

	detail, err := h.CartService.UpdateQuantity(sessionID, productID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, detail)
}

// DeleteCartItem removes every line of a product from the cart.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	productID, ok := cartProductID(c)
	if !ok {
		return
	}

	detail, err := h.CartService.Remove(sessionID, productID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, detail)
}

// ToggleCartSubscription flips a product's lines between one-time
// purchase and subscription pricing.
func (h *Handler) ToggleCartSubscription(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	productID, ok := cartProductID(c)
	if !ok {
		return
	}

	detail, err := h.CartService.ToggleSubscription(sessionID, productID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, detail)
}

// ClearCart removes every line from the session cart.
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(sessionID); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

func cartProductID(c *gin.Context) (uint, bool) {
	rawID := c.Param("product_id")
	productID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "Product ID is invalid", nil)
		return 0, false
	}
	return uint(productID), true
}
