package public

import (
	"errors"

	"github.com/concho-nutrition/storefront/internal/http/response"
	"github.com/concho-nutrition/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// DeliveryEligibilityRequest is the address fragment checked for local
// delivery.
type DeliveryEligibilityRequest struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// SelectDeliveryMethodRequest picks the session's delivery method.
type SelectDeliveryMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// CheckDeliveryEligibility runs a local-delivery eligibility check for
// the session address. The response reflects the session's decision
// after the check, so a reply overtaken by a newer check reports the
// newer outcome.
func (h *Handler) CheckDeliveryEligibility(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req DeliveryEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Request body is invalid", err)
		return
	}

	result, err := h.DeliveryService.Check(c.Request.Context(), sessionID, req.City, req.State)
	if err != nil {
		if errors.Is(err, service.ErrSessionInvalid) {
			respondError(c, response.CodeUnauthorized, "Session token is missing or invalid", nil)
			return
		}
		// A failed check must read as not eligible rather than erroring
		// the address form.
		response.Success(c, service.EligibilityResult{IsLocalDeliveryAvailable: false})
		return
	}
	response.Success(c, result)
}

// SelectDeliveryMethod records the session's delivery method choice.
func (h *Handler) SelectDeliveryMethod(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req SelectDeliveryMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Request body is invalid", err)
		return
	}

	decision, err := h.DeliveryService.SelectMethod(sessionID, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeliveryNotEligible):
			respondError(c, response.CodeBadRequest, "Local delivery is not available for this address", nil)
		case errors.Is(err, service.ErrInvalidDeliveryMethod):
			respondError(c, response.CodeBadRequest, "Delivery method is invalid", nil)
		case errors.Is(err, service.ErrSessionInvalid):
			respondError(c, response.CodeUnauthorized, "Session token is missing or invalid", nil)
		default:
			respondError(c, response.CodeInternal, "Delivery method update failed", err)
		}
		return
	}
	response.Success(c, decision)
}
