package public

import (
	"github.com/concho-nutrition/storefront/internal/http/response"
	"github.com/concho-nutrition/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest is the checkout submission body.
type CheckoutRequest struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zip_code"`
	DeliveryMethod string `json:"delivery_method"`
}

// SubmitCheckout validates the customer info, prices the cart, records
// the order, and hands the buyer off to the Square-hosted payment page.
func (h *Handler) SubmitCheckout(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Request body is invalid", err)
		return
	}

	result, err := h.CheckoutService.Submit(c.Request.Context(), service.CheckoutInput{
		SessionID: sessionID,
		Customer: service.CustomerInfo{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Address:   req.Address,
			City:      req.City,
			State:     req.State,
			ZipCode:   req.ZipCode,
		},
		DeliveryMethod: req.DeliveryMethod,
		ClientIP:       c.ClientIP(),
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, result)
}
